package handlers

import (
	"net/http"

	"dinehub/internal/common"
	"dinehub/internal/models"
	"dinehub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ThemeHandlers handles the tenant theme token endpoints
type ThemeHandlers struct {
	themeService services.ThemeService
}

func NewThemeHandlers(themeService services.ThemeService) *ThemeHandlers {
	return &ThemeHandlers{themeService: themeService}
}

// GetTheme handles reading the tenant's theme tokens
func (h *ThemeHandlers) GetTheme(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return common.SendClientError(c, "Invalid tenant ID format")
	}

	tokens, err := h.themeService.Get(c.Request().Context(), tenantID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, tokens)
}

// ReplaceTheme handles PUT semantics: the stored map becomes exactly the body.
// A non-string value fails the bind, so type violations never reach storage.
func (h *ThemeHandlers) ReplaceTheme(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return common.SendClientError(c, "Invalid tenant ID format")
	}

	var tokens models.ThemeTokens
	if err := c.Bind(&tokens); err != nil {
		return common.SendClientError(c, "tokens must be a flat object of string values")
	}

	updated, err := h.themeService.Replace(c.Request().Context(), tenantID, tokens)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// PatchTheme handles PATCH semantics: string sets a key, explicit null
// deletes it.
func (h *ThemeHandlers) PatchTheme(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return common.SendClientError(c, "Invalid tenant ID format")
	}

	var delta map[string]*string
	if err := c.Bind(&delta); err != nil {
		return common.SendClientError(c, "delta must be a flat object of string or null values")
	}

	updated, err := h.themeService.Patch(c.Request().Context(), tenantID, delta)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}
