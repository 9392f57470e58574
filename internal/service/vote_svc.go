package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/git-pulkit3010/blackfeel-voting/internal/model"
)

type VoteService struct {
	store TrendStore
	cache *CacheService
}

func NewVoteService(store TrendStore, cache *CacheService) *VoteService {
	return &VoteService{store: store, cache: cache}
}

// Vote applies a single vote for one side of a trend and returns the updated
// row. The increment itself is a single atomic store operation; this method
// never reads a counter and writes it back.
func (s *VoteService) Vote(ctx context.Context, trendID, choice string) (*model.Trend, error) {
	if choice != "a" && choice != "b" {
		return nil, fmt.Errorf("%w: choice must be \"a\" or \"b\"", ErrInvalidRequest)
	}
	if trendID == "" {
		return nil, fmt.Errorf("%w: trendId is required", ErrInvalidRequest)
	}

	trend, err := s.store.IncrementVote(ctx, trendID, choice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: trend %s", ErrNotFound, trendID)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateActiveTrends(ctx); err != nil {
			log.Printf("cache: invalidate error after vote: %v", err)
		}
	}

	return trend, nil
}
