package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/http/response"
	"github.com/yungbote/storefront-backend/internal/services"
)

type TransactionHandler struct {
	checkoutService services.CheckoutService
}

func NewTransactionHandler(checkoutService services.CheckoutService) *TransactionHandler {
	return &TransactionHandler{checkoutService: checkoutService}
}

// POST /api/checkout
func (th *TransactionHandler) Checkout(c *gin.Context) {
	var req services.CheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	transaction, err := th.checkoutService.Checkout(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Transaction completed successfully", gin.H{"transaction": transaction})
}

// GET /api/transactions
func (th *TransactionHandler) List(c *gin.Context) {
	transactions, err := th.checkoutService.ListByUser(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", gin.H{"transactions": transactions})
}

// GET /api/transactions/:id
func (th *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid transaction id")
		return
	}
	transaction, err := th.checkoutService.GetForUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", gin.H{"transaction": transaction})
}
