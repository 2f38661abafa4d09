package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	cartrepo "github.com/yungbote/storefront-backend/internal/data/repos/cart"
	orderrepo "github.com/yungbote/storefront-backend/internal/data/repos/order"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
	"github.com/yungbote/storefront-backend/internal/pkg/ctxutil"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type CheckoutInput struct {
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
}

type CheckoutService interface {
	Checkout(ctx context.Context, input CheckoutInput) (*types.Transaction, error)
	ListByUser(ctx context.Context) ([]*types.Transaction, error)
	GetForUser(ctx context.Context, id uuid.UUID) (*types.Transaction, error)
}

type checkoutService struct {
	db              *gorm.DB
	log             *logger.Logger
	cartRepo        cartrepo.CartRepo
	cartItemRepo    cartrepo.CartItemRepo
	transactionRepo orderrepo.TransactionRepo
}

func NewCheckoutService(
	db *gorm.DB,
	log *logger.Logger,
	cartRepo cartrepo.CartRepo,
	cartItemRepo cartrepo.CartItemRepo,
	transactionRepo orderrepo.TransactionRepo,
) CheckoutService {
	return &checkoutService{
		db:              db,
		log:             log.With("service", "CheckoutService"),
		cartRepo:        cartRepo,
		cartItemRepo:    cartItemRepo,
		transactionRepo: transactionRepo,
	}
}

// Checkout converts the caller's cart into an immutable transaction and clears
// the cart, all inside one database transaction. The cart row is locked for
// update so two concurrent checkouts by the same user serialize; the loser
// re-reads an empty cart and fails with apperr.ErrEmptyCart.
func (cks *checkoutService) Checkout(ctx context.Context, input CheckoutInput) (*types.Transaction, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.NewAuth("not authenticated")
	}

	verr := apperr.NewValidationError()
	shippingAddress := strings.TrimSpace(input.ShippingAddress)
	paymentMethod := strings.TrimSpace(input.PaymentMethod)
	if shippingAddress == "" {
		verr.Add("shipping_address", "The shipping address field is required.")
	}
	if paymentMethod == "" {
		verr.Add("payment_method", "The payment method field is required.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var out *types.Transaction
	err := cks.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := cks.cartRepo.GetByUserIDForUpdate(ctx, tx, rd.UserID)
		if err != nil {
			if apperr.IsNotFound(err) {
				return apperr.ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return apperr.ErrEmptyCart
		}

		transaction := &types.Transaction{
			ID:              uuid.New(),
			UserID:          rd.UserID,
			TotalAmount:     cart.TotalAmount,
			ShippingAddress: shippingAddress,
			PaymentMethod:   paymentMethod,
			Status:          types.TransactionStatusPending,
		}
		if _, err := cks.transactionRepo.Create(ctx, tx, transaction); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}

		items := make([]*types.TransactionItem, 0, len(cart.Items))
		for _, ci := range cart.Items {
			items = append(items, &types.TransactionItem{
				ID:            uuid.New(),
				TransactionID: transaction.ID,
				ProductID:     ci.ProductID,
				Quantity:      ci.Quantity,
				Price:         ci.Price,
			})
		}
		if _, err := cks.transactionRepo.CreateItems(ctx, tx, items); err != nil {
			return fmt.Errorf("create transaction items: %w", err)
		}

		if err := cks.cartItemRepo.DeleteByCartID(ctx, tx, cart.ID); err != nil {
			return fmt.Errorf("clear cart items: %w", err)
		}
		if err := cks.cartRepo.UpdateTotal(ctx, tx, cart.ID, decimal.Zero); err != nil {
			return fmt.Errorf("reset cart total: %w", err)
		}

		loaded, err := cks.transactionRepo.GetByID(ctx, tx, transaction.ID)
		if err != nil {
			return fmt.Errorf("reload transaction: %w", err)
		}
		out = loaded
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrEmptyCart) {
			return nil, err
		}
		cks.log.Error("checkout failed", "user_id", rd.UserID, "error", err)
		return nil, fmt.Errorf("%w: %v", apperr.ErrCheckoutFailed, err)
	}

	cks.log.Info("checkout completed", "user_id", rd.UserID, "transaction_id", out.ID, "total", out.TotalAmount)
	return out, nil
}

func (cks *checkoutService) ListByUser(ctx context.Context) ([]*types.Transaction, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.NewAuth("not authenticated")
	}
	return cks.transactionRepo.ListByUserID(ctx, nil, rd.UserID)
}

// GetForUser hides other users' transactions behind a not-found error so the
// endpoint does not leak which ids exist.
func (cks *checkoutService) GetForUser(ctx context.Context, id uuid.UUID) (*types.Transaction, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.NewAuth("not authenticated")
	}
	transaction, err := cks.transactionRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if transaction.UserID != rd.UserID {
		return nil, apperr.NewNotFound("transaction")
	}
	return transaction, nil
}
