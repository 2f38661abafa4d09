package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
)

func TestCatalogBuildFilterDefaults(t *testing.T) {
	cs := &catalogService{log: testLogger(t), perPage: 6}

	filter, err := cs.buildFilter(SearchQuery{})
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}
	if filter.Page != 1 {
		t.Fatalf("default page: expected 1, got %d", filter.Page)
	}
	if filter.PerPage != 6 {
		t.Fatalf("default per page: expected 6, got %d", filter.PerPage)
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		t.Fatal("price bounds should be nil when unset")
	}
}

func TestCatalogBuildFilterParsesPrices(t *testing.T) {
	cs := &catalogService{log: testLogger(t), perPage: 6}

	filter, err := cs.buildFilter(SearchQuery{MinPrice: "10.50", MaxPrice: "99.99"})
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}
	if filter.MinPrice == nil || filter.MinPrice.String() != "10.5" {
		t.Fatalf("min price: got %v", filter.MinPrice)
	}
	if filter.MaxPrice == nil || filter.MaxPrice.String() != "99.99" {
		t.Fatalf("max price: got %v", filter.MaxPrice)
	}
}

func TestCatalogBuildFilterRejectsBadPrices(t *testing.T) {
	cs := &catalogService{log: testLogger(t), perPage: 6}

	_, err := cs.buildFilter(SearchQuery{MinPrice: "cheap", MaxPrice: "expensive"})
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["min_price"]; !ok {
		t.Fatal("expected min_price error")
	}
	if _, ok := verr.Fields["max_price"]; !ok {
		t.Fatal("expected max_price error")
	}
}

func TestCatalogBuildFilterRejectsInvertedRange(t *testing.T) {
	cs := &catalogService{log: testLogger(t), perPage: 6}

	_, err := cs.buildFilter(SearchQuery{MinPrice: "50.00", MaxPrice: "10.00"})
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCatalogGetByIDsRequiresIDs(t *testing.T) {
	cs := &catalogService{log: testLogger(t), perPage: 6}

	_, err := cs.GetByIDs(context.Background(), nil)
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["ids"]; !ok {
		t.Fatal("expected ids error")
	}
}
