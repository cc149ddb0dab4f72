package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Dan9191/ambient-finance/internal/models"
)

// FileStore reads records from two JSON documents on disk
type FileStore struct {
	transactionsPath string
	profilePath      string
}

// NewFileStore initializes a new file-backed store
func NewFileStore(transactionsPath, profilePath string) *FileStore {
	return &FileStore{transactionsPath: transactionsPath, profilePath: profilePath}
}

type transactionsDocument struct {
	Transactions []models.Transaction `json:"transactions"`
}

// Transactions reads the transactions document. Both {"transactions": [...]} and a bare array are accepted.
func (s *FileStore) Transactions(_ context.Context) ([]models.Transaction, error) {
	data, err := os.ReadFile(s.transactionsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var txs []models.Transaction
		if err := json.Unmarshal(trimmed, &txs); err != nil {
			return nil, fmt.Errorf("failed to parse transactions %s: %w", s.transactionsPath, err)
		}
		return txs, nil
	}

	var doc transactionsDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse transactions %s: %w", s.transactionsPath, err)
	}
	return doc.Transactions, nil
}

// Profile reads the profile document. A missing or empty document yields an empty profile.
func (s *FileStore) Profile(_ context.Context) (models.Profile, error) {
	if s.profilePath == "" {
		return models.Profile{}, nil
	}
	data, err := os.ReadFile(s.profilePath)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Profile{}, nil
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return models.Profile{}, nil
	}

	var p models.Profile
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return models.Profile{}, fmt.Errorf("failed to parse profile %s: %w", s.profilePath, err)
	}
	return p, nil
}
