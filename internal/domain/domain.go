package domain

import (
	"github.com/yungbote/storefront-backend/internal/domain/auth"
	"github.com/yungbote/storefront-backend/internal/domain/cart"
	"github.com/yungbote/storefront-backend/internal/domain/catalog"
	"github.com/yungbote/storefront-backend/internal/domain/order"
	"github.com/yungbote/storefront-backend/internal/domain/user"
)

const (
	TransactionStatusPending = order.StatusPending
)

type User = user.User
type UserToken = auth.UserToken

type Product = catalog.Product

type Cart = cart.Cart
type CartItem = cart.CartItem

type Transaction = order.Transaction
type TransactionItem = order.TransactionItem
