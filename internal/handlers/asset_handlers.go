package handlers

import (
	"net/http"

	"dinehub/internal/common"
	"dinehub/internal/models"
	"dinehub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AssetHandlers handles tenant-scoped asset metadata endpoints
type AssetHandlers struct {
	assetService services.AssetService
}

func NewAssetHandlers(assetService services.AssetService) *AssetHandlers {
	return &AssetHandlers{assetService: assetService}
}

// ListAssets handles listing a tenant's assets with an optional kind filter
func (h *AssetHandlers) ListAssets(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return common.SendClientError(c, "Invalid tenant ID format")
	}

	var kind *models.AssetKind
	if kindStr := c.QueryParam("kind"); kindStr != "" {
		parsed, err := models.ParseAssetKind(kindStr)
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		kind = &parsed
	}

	assets, err := h.assetService.List(c.Request().Context(), tenantID, kind)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, assets)
}

// GetAsset handles getting an asset scoped to its tenant
func (h *AssetHandlers) GetAsset(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return common.SendClientError(c, "Invalid tenant ID format")
	}
	assetID, err := uuid.Parse(c.Param("assetId"))
	if err != nil {
		return common.SendClientError(c, "Invalid asset ID format")
	}

	asset, err := h.assetService.Get(c.Request().Context(), tenantID, assetID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, asset)
}

// CreateAsset handles creating asset metadata; the response carries a
// presigned upload URL when object storage is configured
func (h *AssetHandlers) CreateAsset(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return common.SendClientError(c, "Invalid tenant ID format")
	}

	var req services.CreateAssetRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	result, err := h.assetService.Create(c.Request().Context(), tenantID, &req)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// DeleteAsset handles deleting asset metadata and its stored object
func (h *AssetHandlers) DeleteAsset(c echo.Context) error {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return common.SendClientError(c, "Invalid tenant ID format")
	}
	assetID, err := uuid.Parse(c.Param("assetId"))
	if err != nil {
		return common.SendClientError(c, "Invalid asset ID format")
	}

	if err := h.assetService.Delete(c.Request().Context(), tenantID, assetID); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Asset deleted successfully",
	})
}
