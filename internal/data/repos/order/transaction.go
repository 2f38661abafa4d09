package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

// TransactionRepo only ever inserts and reads; transaction rows are
// immutable once written.
type TransactionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, transaction *types.Transaction) (*types.Transaction, error)
	CreateItems(ctx context.Context, tx *gorm.DB, items []*types.TransactionItem) ([]*types.TransactionItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Transaction, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Transaction, error)
	CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type transactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTransactionRepo(db *gorm.DB, baseLog *logger.Logger) TransactionRepo {
	return &transactionRepo{db: db, log: baseLog.With("repo", "TransactionRepo")}
}

func (tr *transactionRepo) Create(ctx context.Context, tx *gorm.DB, transaction *types.Transaction) (*types.Transaction, error) {
	session := tx
	if session == nil {
		session = tr.db
	}
	if err := session.WithContext(ctx).
		Omit("Items").
		Create(transaction).Error; err != nil {
		return nil, err
	}
	return transaction, nil
}

func (tr *transactionRepo) CreateItems(ctx context.Context, tx *gorm.DB, items []*types.TransactionItem) ([]*types.TransactionItem, error) {
	session := tx
	if session == nil {
		session = tr.db
	}
	if len(items) == 0 {
		return []*types.TransactionItem{}, nil
	}
	if err := session.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (tr *transactionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Transaction, error) {
	session := tx
	if session == nil {
		session = tr.db
	}
	var transaction types.Transaction
	if err := session.WithContext(ctx).
		Preload("Items.Product").
		Where("id = ?", id).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("transaction")
		}
		return nil, err
	}
	return &transaction, nil
}

func (tr *transactionRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Transaction, error) {
	session := tx
	if session == nil {
		session = tr.db
	}
	var results []*types.Transaction
	if err := session.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *transactionRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	session := tx
	if session == nil {
		session = tr.db
	}
	var count int64
	if err := session.WithContext(ctx).
		Model(&types.Transaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
