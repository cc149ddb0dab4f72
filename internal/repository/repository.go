package repository

import (
	"context"

	"github.com/Dan9191/ambient-finance/internal/models"
)

// Store provides read access to transaction and profile records
type Store interface {
	Transactions(ctx context.Context) ([]models.Transaction, error)
	Profile(ctx context.Context) (models.Profile, error)
}
