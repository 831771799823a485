package service

import (
	"context"
	"testing"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/internal/testdb"
)

func TestBootstrap_SeedIsRepeatable(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	stores := newStores(db)
	svc := NewBootstrap(db, stores, fixedClock(testNow))

	for run := 1; run <= 2; run++ {
		result, err := svc.Seed(ctx)
		if err != nil {
			t.Fatalf("Seed run %d: %v", run, err)
		}
		if result.Assets != 32 || result.Services != 3 || result.Columns != 160 {
			t.Errorf("run %d result = %+v", run, result)
		}

		count, err := stores.Assets.Count(ctx)
		if err != nil {
			t.Fatalf("count assets: %v", err)
		}
		if count != 32 {
			t.Errorf("run %d: %d assets stored, want 32", run, count)
		}
	}

	pending, err := stores.Requests.Count(ctx, access.WithStatus(access.StatusPending))
	if err != nil || pending != 1 {
		t.Errorf("pending requests = %d, %v", pending, err)
	}

	views, err := NewAsset(stores, access.NewPolicy(false), 0, fixedClock(testNow)).List(ctx, access.Anonymous(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, v := range views {
		if v.IsMasked() != (v.Asset().Sensitivity() != "public") {
			t.Errorf("asset %s: isMasked=%v sensitivity=%s", v.Asset().ID(), v.IsMasked(), v.Asset().Sensitivity())
		}
	}
}

func TestRequestCenter_CategoriesWithTypes(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	stores := newStores(db)
	if _, err := NewBootstrap(db, stores, nil).Seed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	categories, err := NewRequestCenter(stores).Categories(ctx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(categories) == 0 {
		t.Fatal("no categories")
	}
	for i, c := range categories {
		if i > 0 && c.Category.SortOrder() < categories[i-1].Category.SortOrder() {
			t.Errorf("categories out of order at %d", i)
		}
		for _, typ := range c.Types {
			if typ.CategoryID() != c.Category.ID() {
				t.Errorf("type %s listed under wrong category", typ.Slug())
			}
		}
	}

	submitted, err := NewRequestCenter(stores).ServiceRequests(ctx, "submitted")
	if err != nil || len(submitted) != 1 {
		t.Errorf("submitted service requests = %d, %v", len(submitted), err)
	}
}
