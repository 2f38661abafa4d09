package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
)

func respondWith(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Error(c, err)
	return rec
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.NewValidationError().Add("email", "bad"), http.StatusUnprocessableEntity},
		{"not found", apperr.NewNotFound("product"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", apperr.NewNotFound("cart")), http.StatusNotFound},
		{"auth", apperr.NewAuth("invalid credentials"), http.StatusUnauthorized},
		{"locked out", apperr.NewLockedOut(time.Minute), http.StatusTooManyRequests},
		{"empty cart", apperr.ErrEmptyCart, http.StatusBadRequest},
		{"checkout failed", fmt.Errorf("%w: db down", apperr.ErrCheckoutFailed), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := respondWith(t, tc.err)
			if rec.Code != tc.want {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.want)
			}
			var env Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if env.Status != "error" {
				t.Fatalf("envelope status: got %q", env.Status)
			}
		})
	}
}

func TestLockedOutSetsRetryAfter(t *testing.T) {
	rec := respondWith(t, apperr.NewLockedOut(90*time.Second))
	if got := rec.Header().Get("Retry-After"); got != "90" {
		t.Fatalf("Retry-After: got %q want %q", got, "90")
	}

	var env struct {
		Data struct {
			RetryAfter int `json:"retry_after"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if env.Data.RetryAfter != 90 {
		t.Fatalf("retry_after: got %d want 90", env.Data.RetryAfter)
	}
}

func TestValidationErrorsCarryFields(t *testing.T) {
	verr := apperr.NewValidationError().
		Add("email", "The email has already been taken.").
		Add("password", "The password must be at least 8 characters.")

	rec := respondWith(t, verr)
	var env struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(env.Errors["email"]) != 1 || len(env.Errors["password"]) != 1 {
		t.Fatalf("field errors: %v", env.Errors)
	}
}

func TestUnknownErrorIsNotEchoed(t *testing.T) {
	rec := respondWith(t, errors.New("pq: password authentication failed"))
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if env.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", env.Message)
	}
}
