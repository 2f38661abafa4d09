package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type CartRepo interface {
	// GetOrCreate never produces a second cart for the same user; the
	// unique index on user_id backs the insert-if-absent.
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Cart, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Cart, error)
	// GetByUserIDForUpdate takes a row lock on the cart so concurrent
	// checkouts for the same user serialize.
	GetByUserIDForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Cart, error)
	UpdateTotal(ctx context.Context, tx *gorm.DB, cartID uuid.UUID, total decimal.Decimal) error
}

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	return &cartRepo{db: db, log: baseLog.With("repo", "CartRepo")}
}

func (cr *cartRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Cart, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	fresh := &types.Cart{
		ID:          uuid.New(),
		UserID:      userID,
		TotalAmount: decimal.Zero,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(fresh).Error; err != nil {
		return nil, err
	}

	// Re-read regardless of whether the insert won: a concurrent caller
	// may have created the row first.
	return cr.GetByUserID(ctx, transaction, userID)
}

func (cr *cartRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Cart, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var cart types.Cart
	if err := transaction.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("cart")
		}
		return nil, err
	}
	return &cart, nil
}

func (cr *cartRepo) GetByUserIDForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Cart, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var cart types.Cart
	if err := transaction.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("cart")
		}
		return nil, err
	}
	// Items are loaded after the lock is held so nobody can slip a
	// mutation in between.
	if err := transaction.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cart.ID).
		Find(&cart.Items).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (cr *cartRepo) UpdateTotal(ctx context.Context, tx *gorm.DB, cartID uuid.UUID, total decimal.Decimal) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Cart{}).
		Where("id = ?", cartID).
		Update("total_amount", total).Error
}
