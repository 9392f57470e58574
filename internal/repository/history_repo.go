package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HistoryRepo struct {
	pool *pgxpool.Pool
}

func NewHistoryRepo(pool *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{pool: pool}
}

// RecentTexts returns the option texts proposed for a category since the
// given cutoff, newest first. Used only as negative examples in prompts.
func (r *HistoryRepo) RecentTexts(ctx context.Context, category string, since time.Time) ([]string, error) {
	query := `
		SELECT design_text
		FROM trend_history
		WHERE category = $1 AND created_at >= $2
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, category, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	return texts, rows.Err()
}

// Append writes one ledger entry per option text in a single transaction.
// Callers invoke this only after the corresponding trend insert succeeded,
// so the ledger never records options that were not committed.
func (r *HistoryRepo) Append(ctx context.Context, category string, texts []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, text := range texts {
		_, err = tx.Exec(ctx, `
			INSERT INTO trend_history (id, category, design_text)
			VALUES ($1, $2, $3)`,
			uuid.NewString(), category, text)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
