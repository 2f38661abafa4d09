package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/storefront-backend/internal/data/repos/testutil"
	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
)

func TestProductRepoSearchPagination(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))

	for i := 0; i < 10; i++ {
		testutil.SeedProduct(t, ctx, tx, fmt.Sprintf("Gadget %02d", i), "Gadgets", "10.00", 5)
	}

	page1, err := repo.Search(ctx, tx, ProductFilter{Page: 1, PerPage: 6})
	if err != nil {
		t.Fatalf("Search page 1: %v", err)
	}
	if page1.Total != 10 {
		t.Fatalf("Total: expected 10, got %d", page1.Total)
	}
	if len(page1.Items) != 6 {
		t.Fatalf("page 1 items: expected 6, got %d", len(page1.Items))
	}
	if page1.LastPage != 2 {
		t.Fatalf("LastPage: expected 2, got %d", page1.LastPage)
	}

	page2, err := repo.Search(ctx, tx, ProductFilter{Page: 2, PerPage: 6})
	if err != nil {
		t.Fatalf("Search page 2: %v", err)
	}
	if len(page2.Items) != 4 {
		t.Fatalf("page 2 items: expected 4, got %d", len(page2.Items))
	}

	empty, err := repo.Search(ctx, tx, ProductFilter{Page: 5, PerPage: 6})
	if err != nil {
		t.Fatalf("Search page 5: %v", err)
	}
	if len(empty.Items) != 0 {
		t.Fatalf("page past end: expected 0 items, got %d", len(empty.Items))
	}
	if empty.Total != 10 {
		t.Fatalf("page past end keeps total: expected 10, got %d", empty.Total)
	}
}

func TestProductRepoSearchFilters(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))

	testutil.SeedProduct(t, ctx, tx, "Walnut Desk", "Furniture", "300.00", 3)
	testutil.SeedProduct(t, ctx, tx, "Oak Chair", "Furniture", "120.00", 8)
	testutil.SeedProduct(t, ctx, tx, "Desk Lamp", "Lighting", "35.00", 20)

	byName, err := repo.Search(ctx, tx, ProductFilter{Search: "desk", Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("Search by name: %v", err)
	}
	if len(byName.Items) != 2 {
		t.Fatalf("search 'desk': expected 2 matches, got %d", len(byName.Items))
	}

	byCategory, err := repo.Search(ctx, tx, ProductFilter{Category: "Furniture", Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("Search by category: %v", err)
	}
	if len(byCategory.Items) != 2 {
		t.Fatalf("category Furniture: expected 2, got %d", len(byCategory.Items))
	}

	byPrice, err := repo.Search(ctx, tx, ProductFilter{
		MinPrice: testutil.PtrDecimal("100.00"),
		MaxPrice: testutil.PtrDecimal("400.00"),
		Page:     1,
		PerPage:  10,
	})
	if err != nil {
		t.Fatalf("Search by price range: %v", err)
	}
	if len(byPrice.Items) != 2 {
		t.Fatalf("price 100..400: expected 2, got %d", len(byPrice.Items))
	}

	sorted, err := repo.Search(ctx, tx, ProductFilter{SortBy: "price", SortDir: "asc", Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("Search sorted: %v", err)
	}
	for i := 1; i < len(sorted.Items); i++ {
		if sorted.Items[i].Price.LessThan(sorted.Items[i-1].Price) {
			t.Fatalf("sort by price asc violated at index %d", i)
		}
	}
}

func TestProductRepoSearchRejectsUnknownSort(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))

	_, err := repo.Search(ctx, tx, ProductFilter{SortBy: "password; DROP TABLE product", Page: 1, PerPage: 6})
	if err == nil {
		t.Fatal("expected validation error for unknown sort column")
	}
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestProductRepoGetByID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))

	seeded := testutil.SeedProduct(t, ctx, tx, "Solo Product", "Misc", "9.99", 1)

	got, err := repo.GetByID(ctx, tx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Solo Product" {
		t.Fatalf("GetByID name: got %q", got.Name)
	}
	if !got.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("GetByID price: got %s", got.Price)
	}

	missing, err := repo.GetByID(ctx, tx, uuid.New())
	if missing != nil || !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v / %v", missing, err)
	}

	other := testutil.SeedProduct(t, ctx, tx, "Second Product", "Misc", "4.50", 1)
	batch, err := repo.GetByIDs(ctx, tx, []uuid.UUID{seeded.ID, other.ID, uuid.New()})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("GetByIDs: expected 2 rows, got %d", len(batch))
	}
}

func TestProductRepoCategories(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewProductRepo(db, testutil.Logger(t))

	testutil.SeedProduct(t, ctx, tx, "A", "Audio", "1.00", 1)
	testutil.SeedProduct(t, ctx, tx, "B", "Audio", "1.00", 1)
	testutil.SeedProduct(t, ctx, tx, "C", "Video", "1.00", 1)

	categories, err := repo.Categories(ctx, tx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	seen := map[string]bool{}
	for _, c := range categories {
		if seen[c] {
			t.Fatalf("duplicate category %q", c)
		}
		seen[c] = true
	}
	if !seen["Audio"] || !seen["Video"] {
		t.Fatalf("expected Audio and Video, got %v", categories)
	}
}
