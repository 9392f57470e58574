package service

import (
	"context"
	"testing"

	"github.com/git-pulkit3010/blackfeel-voting/internal/model"
)

func TestActiveByCategory_AbsentCategories(t *testing.T) {
	store := newMemTrendStore()
	err := store.InsertActive(context.Background(), &model.Trend{
		ID: "t-1", Category: "anime", OptionA: "A", OptionB: "B", Active: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	svc := NewTrendService(store, nil)
	got, cached, err := svc.ActiveByCategory(context.Background())
	if err != nil {
		t.Fatalf("ActiveByCategory: %v", err)
	}
	if cached {
		t.Error("no cache configured, result cannot be cached")
	}

	if len(got) != 1 {
		t.Fatalf("categories = %d, want 1", len(got))
	}
	if _, ok := got["anime"]; !ok {
		t.Error("anime should be present")
	}
	// Categories without an active trend are absent, not an error.
	if _, ok := got["movies"]; ok {
		t.Error("movies has no active trend and should be absent")
	}
}

func TestActiveByCategory_NewestWinsOnAnomaly(t *testing.T) {
	// If the store ever holds two active rows for one category (a store
	// anomaly the retire protocol normally prevents), readers must see the
	// newest row, deterministically.
	store := newMemTrendStore()
	for _, id := range []string{"t-old", "t-new"} {
		err := store.InsertActive(context.Background(), &model.Trend{
			ID: id, Category: "music", OptionA: "A " + id, OptionB: "B " + id, Active: true,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	svc := NewTrendService(store, nil)
	got, _, err := svc.ActiveByCategory(context.Background())
	if err != nil {
		t.Fatalf("ActiveByCategory: %v", err)
	}
	if got["music"].ID != "t-new" {
		t.Errorf("music trend = %s, want t-new", got["music"].ID)
	}
}

func TestActiveByCategory_ExcludesInactive(t *testing.T) {
	store := newMemTrendStore()
	err := store.InsertActive(context.Background(), &model.Trend{
		ID: "t-1", Category: "cricket", OptionA: "A", OptionB: "B", Active: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.DeactivateAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	svc := NewTrendService(store, nil)
	got, _, err := svc.ActiveByCategory(context.Background())
	if err != nil {
		t.Fatalf("ActiveByCategory: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("retired trends must not be served, got %v", got)
	}
}
