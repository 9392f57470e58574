package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/git-pulkit3010/blackfeel-voting/internal/model"
)

type TrendService struct {
	store TrendStore
	cache *CacheService
}

func NewTrendService(store TrendStore, cache *CacheService) *TrendService {
	return &TrendService{store: store, cache: cache}
}

// ActiveByCategory returns the current active trend per category. Categories
// with no active trend (generation failed or pending) are simply absent from
// the map. The second return reports whether the result came from cache.
func (s *TrendService) ActiveByCategory(ctx context.Context) (map[string]model.Trend, bool, error) {
	if s.cache != nil {
		if data, err := s.cache.GetActiveTrends(ctx); err != nil {
			log.Printf("cache: get active trends error: %v", err)
		} else if data != nil {
			var byCategory map[string]model.Trend
			if err := json.Unmarshal(data, &byCategory); err == nil {
				return byCategory, true, nil
			}
			// Corrupt entry; fall through to the store.
		}
	}

	trends, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Rows arrive newest first, so the first row per category wins even if
	// the store ever held duplicate active rows.
	byCategory := make(map[string]model.Trend, len(trends))
	for _, t := range trends {
		if _, seen := byCategory[t.Category]; !seen {
			byCategory[t.Category] = t
		}
	}

	if s.cache != nil {
		if err := s.cache.SetActiveTrends(ctx, byCategory); err != nil {
			log.Printf("cache: set active trends error: %v", err)
		}
	}

	return byCategory, false, nil
}
