package handlers

import (
	"net/http"

	"dinehub/internal/common"
	"dinehub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TenantHandlers handles tenant admin and public endpoints
type TenantHandlers struct {
	tenantService services.TenantService
}

func NewTenantHandlers(tenantService services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantService: tenantService}
}

// CreateTenant handles creating a new tenant (theme included)
func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	var req services.CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	tenant, err := h.tenantService.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, tenant)
}

// ListTenantsRequest represents query parameters for listing tenants
type ListTenantsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListTenants handles listing tenants, newest first
func (h *TenantHandlers) ListTenants(c echo.Context) error {
	var req ListTenantsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	if req.Limit <= 0 {
		req.Limit = 50
	}
	if req.Limit > 100 {
		req.Limit = 100
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	tenants, err := h.tenantService.List(c.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tenants": tenants,
		"limit":   req.Limit,
		"offset":  req.Offset,
	})
}

// GetTenant handles getting tenant details by ID
func (h *TenantHandlers) GetTenant(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return common.SendClientError(c, "Invalid tenant ID format")
	}

	tenant, err := h.tenantService.Get(c.Request().Context(), tenantID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// UpdateTenant handles partial tenant updates
func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return common.SendClientError(c, "Invalid tenant ID format")
	}

	var req services.UpdateTenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	tenant, err := h.tenantService.Update(c.Request().Context(), tenantID, &req)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// DeleteTenant handles deleting a tenant (storage cascades children)
func (h *TenantHandlers) DeleteTenant(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return common.SendClientError(c, "Invalid tenant ID format")
	}

	if err := h.tenantService.Delete(c.Request().Context(), tenantID); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Tenant deleted successfully",
	})
}

// GetPublicTenant serves the unauthenticated tenant projection
func (h *TenantHandlers) GetPublicTenant(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return common.SendClientError(c, "Invalid tenant ID format")
	}

	tenant, err := h.tenantService.GetPublic(c.Request().Context(), tenantID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// ResolveByDomain resolves a tenant by its custom domain
func (h *TenantHandlers) ResolveByDomain(c echo.Context) error {
	domain := c.QueryParam("domain")
	tenant, err := h.tenantService.ResolveByDomain(c.Request().Context(), domain)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}
