package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/ambient-finance/internal/models"
)

// PostgresStore reads records from PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore initializes a new PostgreSQL-backed store
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Transactions retrieves every transaction ordered by date
func (r *PostgresStore) Transactions(ctx context.Context) ([]models.Transaction, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM-DD'), amount, type, COALESCE(category, '')
		FROM finance.transactions
		ORDER BY date, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.Date, &tx.Amount, &tx.Type, &tx.Category); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return txs, nil
}

// Profile retrieves the first stored profile, or an empty one when none exists
func (r *PostgresStore) Profile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	query := `
		SELECT COALESCE(name, ''), COALESCE(email, ''), COALESCE(goal, ''),
		       COALESCE(savings_goal, 0), COALESCE(currency, '')
		FROM finance.profiles
		ORDER BY id
		LIMIT 1`
	err := r.db.QueryRowContext(ctx, query).
		Scan(&p.Name, &p.Email, &p.Goal, &p.SavingsGoal, &p.Currency)
	if err == sql.ErrNoRows {
		return models.Profile{}, nil
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to find profile: %w", err)
	}
	return p, nil
}
