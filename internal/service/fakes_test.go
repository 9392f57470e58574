package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/git-pulkit3010/blackfeel-voting/internal/model"
)

// memTrendStore is an in-memory TrendStore mirroring the repository's SQL
// behavior: bulk deactivate, newest-first active reads, and counter
// increments that are atomic under the store lock.
type memTrendStore struct {
	mu     sync.Mutex
	trends map[string]*model.Trend
	clock  int64 // monotonic creation order

	insertErr map[string]error // category -> forced InsertActive error
	imageErr  map[string]error // trendID -> forced SetImage error
}

func newMemTrendStore() *memTrendStore {
	return &memTrendStore{
		trends:    make(map[string]*model.Trend),
		insertErr: make(map[string]error),
		imageErr:  make(map[string]error),
	}
}

func (s *memTrendStore) ListActive(ctx context.Context) ([]model.Trend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Trend
	for _, t := range s.trends {
		if t.Active {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memTrendStore) GetActive(ctx context.Context, category string) (*model.Trend, error) {
	trends, _ := s.ListActive(ctx)
	for _, t := range trends {
		if t.Category == category {
			cp := t
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *memTrendStore) DeactivateAll(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, t := range s.trends {
		if t.Active {
			t.Active = false
			n++
		}
	}
	return n, nil
}

func (s *memTrendStore) InsertActive(ctx context.Context, t *model.Trend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.insertErr[t.Category]; err != nil {
		return err
	}
	s.clock++
	t.CreatedAt = time.Unix(s.clock, 0)
	cp := *t
	s.trends[t.ID] = &cp
	return nil
}

func (s *memTrendStore) IncrementVote(ctx context.Context, trendID, choice string) (*model.Trend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trends[trendID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if choice == "b" {
		t.VotesB++
	} else {
		t.VotesA++
	}
	cp := *t
	return &cp, nil
}

func (s *memTrendStore) SetImage(ctx context.Context, trendID, side, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.imageErr[trendID]; err != nil {
		return err
	}
	t, ok := s.trends[trendID]
	if !ok {
		return pgx.ErrNoRows
	}
	if side == "b" {
		t.OptionBImageURL = &url
	} else {
		t.OptionAImageURL = &url
	}
	return nil
}

func (s *memTrendStore) FindMissingImages(ctx context.Context, categories []string) ([]model.Trend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eligible := make(map[string]bool, len(categories))
	for _, c := range categories {
		eligible[c] = true
	}

	var out []model.Trend
	for _, t := range s.trends {
		if eligible[t.Category] && (t.OptionAImageURL == nil || t.OptionBImageURL == nil) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// activeFor counts active trends for a category (invariant checks).
func (s *memTrendStore) activeFor(category string) []model.Trend {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Trend
	for _, t := range s.trends {
		if t.Active && t.Category == category {
			out = append(out, *t)
		}
	}
	return out
}

// memHistoryStore is an in-memory append-only ledger.
type memHistoryStore struct {
	mu      sync.Mutex
	entries []model.HistoryItem

	recentErr error
	appendErr error
}

func newMemHistoryStore() *memHistoryStore {
	return &memHistoryStore{}
}

func (s *memHistoryStore) RecentTexts(ctx context.Context, category string, since time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recentErr != nil {
		return nil, s.recentErr
	}
	var texts []string
	for _, e := range s.entries {
		if e.Category == category {
			texts = append(texts, e.DesignText)
		}
	}
	return texts, nil
}

func (s *memHistoryStore) Append(ctx context.Context, category string, texts []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.appendErr != nil {
		return s.appendErr
	}
	for _, t := range texts {
		s.entries = append(s.entries, model.HistoryItem{
			ID:         fmt.Sprintf("h-%d", len(s.entries)+1),
			Category:   category,
			DesignText: t,
			CreatedAt:  time.Now(),
		})
	}
	return nil
}

func (s *memHistoryStore) forCategory(category string) []model.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.HistoryItem
	for _, e := range s.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// providerFunc adapts a function to the TextProvider interface.
type providerFunc func(ctx context.Context, prompt string) (string, error)

func (f providerFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// resolverFunc adapts a function to the ImageResolver interface.
type resolverFunc func(ctx context.Context, query, kind string) (string, error)

func (f resolverFunc) Resolve(ctx context.Context, query, kind string) (string, error) {
	return f(ctx, query, kind)
}
