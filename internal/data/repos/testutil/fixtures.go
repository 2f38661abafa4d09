package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    email,
		Password: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, name, category string, price string, stock int) *types.Product {
	tb.Helper()
	p := &types.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: "description of " + name,
		Price:       mustDecimal(tb, price),
		Stock:       stock,
		Category:    category,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedCart(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.Cart {
	tb.Helper()
	c := &types.Cart{
		ID:          uuid.New(),
		UserID:      userID,
		TotalAmount: decimal.Zero,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed cart: %v", err)
	}
	return c
}

func SeedCartItem(tb testing.TB, ctx context.Context, tx *gorm.DB, cartID, productID uuid.UUID, quantity int, price string) *types.CartItem {
	tb.Helper()
	ci := &types.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     mustDecimal(tb, price),
	}
	if err := tx.WithContext(ctx).Create(ci).Error; err != nil {
		tb.Fatalf("seed cart item: %v", err)
	}
	return ci
}

func SeedToken(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, token string, expiresAt time.Time) *types.UserToken {
	tb.Helper()
	t := &types.UserToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed token: %v", err)
	}
	return t
}

func mustDecimal(tb testing.TB, v string) decimal.Decimal {
	tb.Helper()
	d, err := decimal.NewFromString(v)
	if err != nil {
		tb.Fatalf("parse decimal %q: %v", v, err)
	}
	return d
}

func PtrDecimal(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}
