package service

import (
	"context"
	"time"

	"github.com/git-pulkit3010/blackfeel-voting/internal/model"
)

// TrendStore is the slice of the trend repository the services depend on.
// *repository.TrendRepo satisfies it; tests substitute an in-memory store.
type TrendStore interface {
	ListActive(ctx context.Context) ([]model.Trend, error)
	GetActive(ctx context.Context, category string) (*model.Trend, error)
	DeactivateAll(ctx context.Context) (int64, error)
	InsertActive(ctx context.Context, t *model.Trend) error
	IncrementVote(ctx context.Context, trendID, choice string) (*model.Trend, error)
	SetImage(ctx context.Context, trendID, side, url string) error
	FindMissingImages(ctx context.Context, categories []string) ([]model.Trend, error)
}

// HistoryStore is the ledger surface used by generation.
type HistoryStore interface {
	RecentTexts(ctx context.Context, category string, since time.Time) ([]string, error)
	Append(ctx context.Context, category string, texts []string) error
}

// TextProvider produces free text for a prompt (OpenRouter in production).
type TextProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageResolver maps an option text and media kind to zero-or-one image URL
// (TMDB in production). An empty URL with nil error is a miss, not a failure.
type ImageResolver interface {
	Resolve(ctx context.Context, query, kind string) (string, error)
}
