package handlers

import (
	"net/http"

	"dinehub/internal/common"
	"dinehub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// LocationHandlers handles location endpoints nested under a tenant
type LocationHandlers struct {
	locationService services.LocationService
}

func NewLocationHandlers(locationService services.LocationService) *LocationHandlers {
	return &LocationHandlers{locationService: locationService}
}

// ListLocations handles listing a tenant's locations
func (h *LocationHandlers) ListLocations(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return common.SendClientError(c, "Invalid tenant ID format")
	}

	locations, err := h.locationService.List(c.Request().Context(), tenantID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, locations)
}

// GetLocation handles getting a location scoped to its tenant
func (h *LocationHandlers) GetLocation(c echo.Context) error {
	tenantID, locationID, err := chainParams(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	location, err := h.locationService.Get(c.Request().Context(), tenantID, locationID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, location)
}

// CreateLocation handles creating a location for a tenant
func (h *LocationHandlers) CreateLocation(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return common.SendClientError(c, "Invalid tenant ID format")
	}

	var req services.CreateLocationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	location, err := h.locationService.Create(c.Request().Context(), tenantID, &req)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, location)
}

// UpdateLocation handles partial location updates scoped to the tenant
func (h *LocationHandlers) UpdateLocation(c echo.Context) error {
	tenantID, locationID, err := chainParams(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.UpdateLocationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	location, err := h.locationService.Update(c.Request().Context(), tenantID, locationID, &req)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, location)
}

// DeleteLocation handles deleting a location scoped to the tenant
func (h *LocationHandlers) DeleteLocation(c echo.Context) error {
	tenantID, locationID, err := chainParams(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.locationService.Delete(c.Request().Context(), tenantID, locationID); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Location deleted successfully",
	})
}
