package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	cartrepo "github.com/yungbote/storefront-backend/internal/data/repos/cart"
	catalogrepo "github.com/yungbote/storefront-backend/internal/data/repos/catalog"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
	"github.com/yungbote/storefront-backend/internal/pkg/ctxutil"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type AddItemInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type CartService interface {
	Get(ctx context.Context) (*types.Cart, error)
	AddItem(ctx context.Context, input AddItemInput) (*types.Cart, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int) (*types.Cart, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) (*types.Cart, error)
}

type cartService struct {
	db           *gorm.DB
	log          *logger.Logger
	cartRepo     cartrepo.CartRepo
	cartItemRepo cartrepo.CartItemRepo
	productRepo  catalogrepo.ProductRepo
}

func NewCartService(
	db *gorm.DB,
	log *logger.Logger,
	cartRepo cartrepo.CartRepo,
	cartItemRepo cartrepo.CartItemRepo,
	productRepo catalogrepo.ProductRepo,
) CartService {
	return &cartService{
		db:           db,
		log:          log.With("service", "CartService"),
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

func (cs *cartService) userID(ctx context.Context) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apperr.NewAuth("not authenticated")
	}
	return rd.UserID, nil
}

func (cs *cartService) Get(ctx context.Context) (*types.Cart, error) {
	userID, err := cs.userID(ctx)
	if err != nil {
		return nil, err
	}
	var out *types.Cart
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := cs.cartRepo.GetOrCreate(ctx, tx, userID)
		if err != nil {
			return err
		}
		out = cart
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// AddItem puts a product in the cart at the requested quantity. Re-adding a
// product already in the cart replaces its quantity and refreshes the price
// snapshot rather than incrementing.
func (cs *cartService) AddItem(ctx context.Context, input AddItemInput) (*types.Cart, error) {
	userID, err := cs.userID(ctx)
	if err != nil {
		return nil, err
	}

	verr := apperr.NewValidationError()
	if input.ProductID == uuid.Nil {
		verr.Add("product_id", "The product id field is required.")
	}
	if input.Quantity < 1 {
		verr.Add("quantity", "The quantity must be at least 1.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var out *types.Cart
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := cs.productRepo.GetByID(ctx, tx, input.ProductID)
		if err != nil {
			return err
		}
		cart, err := cs.cartRepo.GetOrCreate(ctx, tx, userID)
		if err != nil {
			return err
		}
		item := &types.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  input.Quantity,
			Price:     product.Price,
		}
		if _, err := cs.cartItemRepo.Upsert(ctx, tx, item); err != nil {
			return fmt.Errorf("upsert cart item: %w", err)
		}
		reloaded, err := cs.recomputeTotal(ctx, tx, cart.ID, userID)
		if err != nil {
			return err
		}
		out = reloaded
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (cs *cartService) UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int) (*types.Cart, error) {
	userID, err := cs.userID(ctx)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, apperr.NewValidationError().Add("quantity", "The quantity must be at least 1.")
	}

	var out *types.Cart
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := cs.cartRepo.GetOrCreate(ctx, tx, userID)
		if err != nil {
			return err
		}
		item, err := cs.cartItemRepo.GetByID(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if item.CartID != cart.ID {
			return apperr.NewNotFound("cart item")
		}
		if err := cs.cartItemRepo.UpdateQuantity(ctx, tx, item.ID, quantity); err != nil {
			return fmt.Errorf("update quantity: %w", err)
		}
		reloaded, err := cs.recomputeTotal(ctx, tx, cart.ID, userID)
		if err != nil {
			return err
		}
		out = reloaded
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (cs *cartService) RemoveItem(ctx context.Context, itemID uuid.UUID) (*types.Cart, error) {
	userID, err := cs.userID(ctx)
	if err != nil {
		return nil, err
	}

	var out *types.Cart
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := cs.cartRepo.GetOrCreate(ctx, tx, userID)
		if err != nil {
			return err
		}
		item, err := cs.cartItemRepo.GetByID(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if item.CartID != cart.ID {
			return apperr.NewNotFound("cart item")
		}
		if err := cs.cartItemRepo.Delete(ctx, tx, item.ID); err != nil {
			return fmt.Errorf("delete cart item: %w", err)
		}
		reloaded, err := cs.recomputeTotal(ctx, tx, cart.ID, userID)
		if err != nil {
			return err
		}
		out = reloaded
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// recomputeTotal folds the total from scratch over every line instead of
// adjusting it incrementally, so a missed update cannot leave it drifted.
func (cs *cartService) recomputeTotal(ctx context.Context, tx *gorm.DB, cartID, userID uuid.UUID) (*types.Cart, error) {
	items, err := cs.cartItemRepo.ListByCartID(ctx, tx, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	if err := cs.cartRepo.UpdateTotal(ctx, tx, cartID, total); err != nil {
		return nil, fmt.Errorf("update cart total: %w", err)
	}
	return cs.cartRepo.GetByUserID(ctx, tx, userID)
}
