package common

import (
	"context"
	"net/http"

	"dinehub/internal/apperr"
	"dinehub/internal/models"

	"github.com/labstack/echo/v4"
)

type contextKey string

// RoleKey carries the resolved caller role through the request context once
// the access guard has allowed the request.
const RoleKey contextKey = "role"

// WithRole attaches the resolved role to the context.
func WithRole(ctx context.Context, role models.Role) context.Context {
	return context.WithValue(ctx, RoleKey, role)
}

// GetRoleFromContext extracts the resolved role from the request context.
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(RoleKey).(models.Role)
	return role, ok
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendDomainError writes a domain error with its fixed status; anything
// unclassified becomes a generic 500 so storage details never leak.
func SendDomainError(c echo.Context, err error) error {
	if e, ok := apperr.As(err); ok {
		return c.JSON(e.HTTPStatus(), CreateErrorResponse(e.Code(), e.Message, nil))
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError,
		CreateErrorResponse("SERVER_ERROR", "operation could not be completed", nil))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}
