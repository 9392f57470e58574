package service

import (
	"context"
	"errors"
	"testing"

	"github.com/git-pulkit3010/blackfeel-voting/internal/model"
)

func seedImageTrend(t *testing.T, store *memTrendStore, id, category string) {
	t.Helper()
	err := store.InsertActive(context.Background(), &model.Trend{
		ID:       id,
		Category: category,
		OptionA:  "Option A " + id,
		OptionB:  "Option B " + id,
		Active:   true,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestBackfill_ResolvesMissingSides(t *testing.T) {
	store := newMemTrendStore()
	seedImageTrend(t, store, "t-movies", "movies")
	seedImageTrend(t, store, "t-tv", "tv-shows")
	seedImageTrend(t, store, "t-music", "music") // not image-eligible

	var kinds []string
	resolver := resolverFunc(func(ctx context.Context, query, kind string) (string, error) {
		kinds = append(kinds, kind)
		return "https://image.example/" + kind + ".jpg", nil
	})

	svc := NewBackfillService(store, resolver, nil, 5)
	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Scanned != 2 {
		t.Errorf("scanned = %d, want 2 (music is not image-eligible)", summary.Scanned)
	}
	if summary.Resolved != 4 {
		t.Errorf("resolved = %d, want 4", summary.Resolved)
	}

	// tv-shows resolves with kind "tv", movies with "movie".
	kindCount := map[string]int{}
	for _, k := range kinds {
		kindCount[k]++
	}
	if kindCount["tv"] != 2 || kindCount["movie"] != 2 {
		t.Errorf("kinds = %v, want two tv and two movie lookups", kindCount)
	}

	movie, err := store.GetActive(context.Background(), "movies")
	if err != nil {
		t.Fatal(err)
	}
	if movie.OptionAImageURL == nil || movie.OptionBImageURL == nil {
		t.Error("both movie image slots should be set")
	}

	music, err := store.GetActive(context.Background(), "music")
	if err != nil {
		t.Fatal(err)
	}
	if music.OptionAImageURL != nil || music.OptionBImageURL != nil {
		t.Error("music trends must never be backfilled")
	}
}

func TestBackfill_MissIsNotAnError(t *testing.T) {
	store := newMemTrendStore()
	seedImageTrend(t, store, "t-1", "movies")

	resolver := resolverFunc(func(ctx context.Context, query, kind string) (string, error) {
		return "", nil // no candidate found
	})

	summary, err := NewBackfillService(store, resolver, nil, 5).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Misses != 2 || summary.Errors != 0 || summary.Resolved != 0 {
		t.Errorf("summary = %+v, want 2 misses and no errors", summary)
	}
}

func TestBackfill_FailuresAreIsolated(t *testing.T) {
	store := newMemTrendStore()
	seedImageTrend(t, store, "t-bad", "movies")
	seedImageTrend(t, store, "t-good", "tv-shows")

	resolver := resolverFunc(func(ctx context.Context, query, kind string) (string, error) {
		if kind == "movie" {
			return "", errors.New("search unavailable")
		}
		return "https://image.example/tv.jpg", nil
	})

	summary, err := NewBackfillService(store, resolver, nil, 5).Run(context.Background())
	if err != nil {
		t.Fatalf("Run must complete despite per-side failures: %v", err)
	}
	if summary.Errors != 2 {
		t.Errorf("errors = %d, want 2", summary.Errors)
	}
	if summary.Resolved != 2 {
		t.Errorf("resolved = %d, want 2 (failures must not block other trends)", summary.Resolved)
	}
}

func TestBackfill_SkipsAlreadyResolvedSide(t *testing.T) {
	store := newMemTrendStore()
	seedImageTrend(t, store, "t-1", "movies")
	if err := store.SetImage(context.Background(), "t-1", "a", "https://image.example/existing.jpg"); err != nil {
		t.Fatal(err)
	}

	var queries []string
	resolver := resolverFunc(func(ctx context.Context, query, kind string) (string, error) {
		queries = append(queries, query)
		return "https://image.example/new.jpg", nil
	})

	summary, err := NewBackfillService(store, resolver, nil, 5).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(queries) != 1 {
		t.Fatalf("resolver called %d times, want 1 (side a already resolved)", len(queries))
	}
	if summary.Resolved != 1 {
		t.Errorf("resolved = %d, want 1", summary.Resolved)
	}

	got, err := store.GetActive(context.Background(), "movies")
	if err != nil {
		t.Fatal(err)
	}
	if got.OptionAImageURL == nil || *got.OptionAImageURL != "https://image.example/existing.jpg" {
		t.Error("existing image must not be overwritten")
	}
}

func TestBackfill_Idempotent(t *testing.T) {
	store := newMemTrendStore()
	seedImageTrend(t, store, "t-1", "movies")

	calls := 0
	resolver := resolverFunc(func(ctx context.Context, query, kind string) (string, error) {
		calls++
		return "https://image.example/x.jpg", nil
	})

	svc := NewBackfillService(store, resolver, nil, 5)
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	second, err := svc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("resolver calls = %d, want 2 (second run should be a no-op)", calls)
	}
	if second.Scanned != 0 {
		t.Errorf("second run scanned = %d, want 0", second.Scanned)
	}
}

func TestMediaKind(t *testing.T) {
	if mediaKind("tv-shows") != "tv" {
		t.Error(`mediaKind("tv-shows") should be "tv"`)
	}
	if mediaKind("movies") != "movie" {
		t.Error(`mediaKind("movies") should be "movie"`)
	}
}
