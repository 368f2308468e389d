package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	userdomain "github.com/billfold/billfold/internal/user/domain"
	walletdomain "github.com/billfold/billfold/internal/wallet/domain"
	"github.com/billfold/billfold/pkg/db"
	"github.com/billfold/billfold/pkg/ddd"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
)

// ErrorHandlingMiddleware maps domain errors to transport responses after
// the handler chain completes.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var validation *ddd.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Field:   validation.Field,
			Code:    validation.Code,
		}
	}

	var conflict *db.ConflictError
	if errors.As(err, &conflict) {
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
			Code:    conflict.Constraint,
		}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, userdomain.ErrInvalidID),
		errors.Is(err, walletdomain.ErrInvalidID):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "invalid request",
			Code:    "invalid_request",
		}
	case errors.Is(err, userdomain.ErrEmailTaken):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "email already registered",
			Code:    "email_taken",
		}
	case errors.Is(err, walletdomain.ErrInsufficientFunds):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "insufficient funds",
			Code:    "insufficient_funds",
		}
	case errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, walletdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}
