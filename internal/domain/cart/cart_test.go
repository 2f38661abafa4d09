package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartTotalFoldsLineSubtotals(t *testing.T) {
	c := Cart{
		Items: []CartItem{
			{Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{Quantity: 3, Price: decimal.RequireFromString("5.00")},
		},
	}
	if got := c.Total(); !got.Equal(decimal.RequireFromString("35.00")) {
		t.Fatalf("total: expected 35.00, got %s", got)
	}
}

func TestCartTotalEmpty(t *testing.T) {
	var c Cart
	if got := c.Total(); !got.IsZero() {
		t.Fatalf("empty cart total: expected 0, got %s", got)
	}
}

func TestCartItemSubtotalExact(t *testing.T) {
	item := CartItem{Quantity: 3, Price: decimal.RequireFromString("0.10")}
	if got := item.Subtotal(); !got.Equal(decimal.RequireFromString("0.30")) {
		t.Fatalf("subtotal: expected 0.30, got %s", got)
	}
}
