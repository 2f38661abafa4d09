package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type CartItemRepo interface {
	// Upsert keys on (cart_id, product_id): an existing row gets its
	// quantity and price snapshot overwritten, never duplicated.
	Upsert(ctx context.Context, tx *gorm.DB, item *types.CartItem) (*types.CartItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CartItem, error)
	ListByCartID(ctx context.Context, tx *gorm.DB, cartID uuid.UUID) ([]*types.CartItem, error)
	UpdateQuantity(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByCartID(ctx context.Context, tx *gorm.DB, cartID uuid.UUID) error
}

type cartItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartItemRepo(db *gorm.DB, baseLog *logger.Logger) CartItemRepo {
	return &cartItemRepo{db: db, log: baseLog.With("repo", "CartItemRepo")}
}

func (ir *cartItemRepo) Upsert(ctx context.Context, tx *gorm.DB, item *types.CartItem) (*types.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "price", "updated_at"}),
		}).
		Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (ir *cartItemRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var item types.CartItem
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("cart item")
		}
		return nil, err
	}
	return &item, nil
}

func (ir *cartItemRepo) ListByCartID(ctx context.Context, tx *gorm.DB, cartID uuid.UUID) ([]*types.CartItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var items []*types.CartItem
	if err := transaction.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (ir *cartItemRepo) UpdateQuantity(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Model(&types.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (ir *cartItemRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.CartItem{}).Error
}

func (ir *cartItemRepo) DeleteByCartID(ctx context.Context, tx *gorm.DB, cartID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&types.CartItem{}).Error
}
