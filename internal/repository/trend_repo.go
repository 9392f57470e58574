package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/git-pulkit3010/blackfeel-voting/internal/model"
)

const trendColumns = `id, category, option_a, option_b, option_a_image_url, option_b_image_url,
	       votes_a, votes_b, active, created_at`

type TrendRepo struct {
	pool *pgxpool.Pool
}

func NewTrendRepo(pool *pgxpool.Pool) *TrendRepo {
	return &TrendRepo{pool: pool}
}

func scanTrend(row pgx.Row) (*model.Trend, error) {
	var t model.Trend
	err := row.Scan(
		&t.ID, &t.Category, &t.OptionA, &t.OptionB,
		&t.OptionAImageURL, &t.OptionBImageURL,
		&t.VotesA, &t.VotesB, &t.Active, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListActive returns all active trends, most recently created first.
// The ordering is defensive: if the store ever holds more than one active
// row per category, readers deterministically see the newest one.
func (r *TrendRepo) ListActive(ctx context.Context) ([]model.Trend, error) {
	query := `
		SELECT ` + trendColumns + `
		FROM trends
		WHERE active = true
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []model.Trend
	for rows.Next() {
		t, err := scanTrend(rows)
		if err != nil {
			return nil, err
		}
		trends = append(trends, *t)
	}
	return trends, rows.Err()
}

// GetActive returns the active trend for a category, or pgx.ErrNoRows.
func (r *TrendRepo) GetActive(ctx context.Context, category string) (*model.Trend, error) {
	query := `
		SELECT ` + trendColumns + `
		FROM trends
		WHERE category = $1 AND active = true
		ORDER BY created_at DESC
		LIMIT 1`

	return scanTrend(r.pool.QueryRow(ctx, query, category))
}

// DeactivateAll retires every active trend across all categories in one
// statement. The caller must not insert replacements until this returns.
func (r *TrendRepo) DeactivateAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE trends SET active = false WHERE active = true`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// InsertActive commits a new active trend and fills in the store-assigned
// creation timestamp.
func (r *TrendRepo) InsertActive(ctx context.Context, t *model.Trend) error {
	query := `
		INSERT INTO trends (id, category, option_a, option_b, votes_a, votes_b, active)
		VALUES ($1, $2, $3, $4, 0, 0, true)
		RETURNING created_at`

	return r.pool.QueryRow(ctx, query, t.ID, t.Category, t.OptionA, t.OptionB).
		Scan(&t.CreatedAt)
}

// IncrementVote bumps one counter by exactly 1 in a single round trip and
// returns the updated row. The increment happens inside the UPDATE, so
// concurrent votes on the same trend never lose updates.
func (r *TrendRepo) IncrementVote(ctx context.Context, trendID, choice string) (*model.Trend, error) {
	col := "votes_a"
	if choice == "b" {
		col = "votes_b"
	}
	// col is one of two fixed identifiers, never caller input.
	query := fmt.Sprintf(`
		UPDATE trends SET %s = %s + 1
		WHERE id = $1
		RETURNING `+trendColumns, col, col)

	return scanTrend(r.pool.QueryRow(ctx, query, trendID))
}

// SetImage records a resolved image URL for one side of a trend.
func (r *TrendRepo) SetImage(ctx context.Context, trendID, side, url string) error {
	col := "option_a_image_url"
	if side == "b" {
		col = "option_b_image_url"
	}
	query := fmt.Sprintf(`UPDATE trends SET %s = $2 WHERE id = $1`, col)

	tag, err := r.pool.Exec(ctx, query, trendID, url)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// FindMissingImages returns trends in the given categories that are missing
// at least one image. Rows with both images set are excluded, which makes
// the backfill job idempotent.
func (r *TrendRepo) FindMissingImages(ctx context.Context, categories []string) ([]model.Trend, error) {
	query := `
		SELECT ` + trendColumns + `
		FROM trends
		WHERE category = ANY($1)
		  AND (option_a_image_url IS NULL OR option_b_image_url IS NULL)
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, categories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []model.Trend
	for rows.Next() {
		t, err := scanTrend(rows)
		if err != nil {
			return nil, err
		}
		trends = append(trends, *t)
	}
	return trends, rows.Err()
}
