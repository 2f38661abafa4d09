package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
)

// Error maps a service error onto the right status code and envelope.
func Error(c *gin.Context, err error) {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, Envelope{
			Status:  "error",
			Message: "The given data was invalid.",
			Errors:  verr.Fields,
		})
		return
	}

	var lockErr *apperr.LockedOutError
	if errors.As(err, &lockErr) {
		retrySeconds := int(lockErr.RetryAfter.Seconds())
		if retrySeconds < 1 {
			retrySeconds = 1
		}
		c.Header("Retry-After", fmt.Sprintf("%d", retrySeconds))
		c.JSON(http.StatusTooManyRequests, Envelope{
			Status:  "error",
			Message: lockErr.Error(),
			Data:    gin.H{"retry_after": retrySeconds},
		})
		return
	}

	switch {
	case errors.Is(err, apperr.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, Envelope{
			Status:  "error",
			Message: err.Error(),
		})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, Envelope{
			Status:  "error",
			Message: err.Error(),
		})
	case errors.Is(err, apperr.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, Envelope{
			Status:  "error",
			Message: apperr.ErrEmptyCart.Error(),
		})
	case errors.Is(err, apperr.ErrCheckoutFailed):
		c.JSON(http.StatusInternalServerError, Envelope{
			Status:  "error",
			Message: apperr.ErrCheckoutFailed.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, Envelope{
			Status:  "error",
			Message: "internal server error",
		})
	}
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Status:  "error",
		Message: message,
	})
}
