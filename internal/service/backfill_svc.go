package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/git-pulkit3010/blackfeel-voting/internal/model"
)

// Backfill outcome statuses per image slot.
const (
	BackfillResolved = "resolved"
	BackfillMiss     = "miss"
	BackfillError    = "error"
)

// BackfillSummary aggregates one image backfill run.
type BackfillSummary struct {
	StartedAt time.Time `json:"startedAt"`
	Duration  string    `json:"duration"`
	Scanned   int       `json:"scanned"`
	Resolved  int       `json:"resolved"`
	Misses    int       `json:"misses"`
	Errors    int       `json:"errors"`
}

// BackfillService enriches trends with illustrative images after creation.
// It never gates voting: a trend without images is fully votable.
type BackfillService struct {
	trends      TrendStore
	resolver    ImageResolver
	cache       *CacheService
	callTimeout time.Duration
}

func NewBackfillService(trends TrendStore, resolver ImageResolver,
	cache *CacheService, timeoutSeconds int) *BackfillService {
	return &BackfillService{
		trends:      trends,
		resolver:    resolver,
		cache:       cache,
		callTimeout: time.Duration(timeoutSeconds) * time.Second,
	}
}

// mediaKind maps a category to the TMDB search endpoint to use.
func mediaKind(category string) string {
	if category == "tv-shows" {
		return "tv"
	}
	return "movie"
}

// Run scans image-eligible trends missing at least one image and resolves
// the missing sides. Safe to re-run any number of times: rows with both
// images set are excluded by the selection, and a miss just leaves the slot
// empty for a later run. Individual failures never stop the scan.
func (s *BackfillService) Run(ctx context.Context) (*BackfillSummary, error) {
	start := time.Now()

	trends, err := s.trends.FindMissingImages(ctx, model.ImageCategories)
	if err != nil {
		return nil, fmt.Errorf("%w: find missing images: %v", ErrUnavailable, err)
	}

	summary := &BackfillSummary{StartedAt: start.UTC(), Scanned: len(trends)}
	for _, t := range trends {
		if t.OptionAImageURL == nil {
			s.fillSide(ctx, summary, t, "a", t.OptionA)
		}
		if t.OptionBImageURL == nil {
			s.fillSide(ctx, summary, t, "b", t.OptionB)
		}
	}

	if summary.Resolved > 0 && s.cache != nil {
		if err := s.cache.InvalidateActiveTrends(ctx); err != nil {
			log.Printf("cache: invalidate error after backfill: %v", err)
		}
	}

	summary.Duration = time.Since(start).Round(time.Millisecond).String()
	log.Printf("backfill: run complete — %d trends scanned, %d resolved, %d misses, %d errors (%s)",
		summary.Scanned, summary.Resolved, summary.Misses, summary.Errors, summary.Duration)
	return summary, nil
}

func (s *BackfillService) fillSide(ctx context.Context, summary *BackfillSummary,
	t model.Trend, side, query string) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	url, err := s.resolver.Resolve(callCtx, query, mediaKind(t.Category))
	if err != nil {
		log.Printf("backfill: %s side %s (%q): resolve error: %v", t.ID, side, query, err)
		summary.Errors++
		return
	}
	if url == "" {
		// Not an error: the slot stays empty for a later run.
		log.Printf("backfill: %s side %s (%q): no candidate found", t.ID, side, query)
		summary.Misses++
		return
	}

	if err := s.trends.SetImage(ctx, t.ID, side, url); err != nil {
		log.Printf("backfill: %s side %s: persist error: %v", t.ID, side, err)
		summary.Errors++
		return
	}
	summary.Resolved++
}
