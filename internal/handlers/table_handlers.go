package handlers

import (
	"net/http"
	"time"

	"dinehub/internal/common"
	"dinehub/internal/models"
	"dinehub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TableHandlers handles table endpoints nested under tenant → location
type TableHandlers struct {
	tableService services.TableService
}

func NewTableHandlers(tableService services.TableService) *TableHandlers {
	return &TableHandlers{tableService: tableService}
}

// ListTables handles listing tables of a location, scoped to the tenant
func (h *TableHandlers) ListTables(c echo.Context) error {
	tenantID, locationID, err := chainParams(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	tables, err := h.tableService.List(c.Request().Context(), tenantID, locationID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, tables)
}

// GetTable handles getting a table scoped to tenant and location
func (h *TableHandlers) GetTable(c echo.Context) error {
	tenantID, locationID, err := chainParams(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	tableID, err := uuid.Parse(c.Param("tableId"))
	if err != nil {
		return common.SendClientError(c, "Invalid table ID format")
	}

	table, err := h.tableService.Get(c.Request().Context(), tenantID, locationID, tableID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, table)
}

// CreateTable handles creating a table in a location
func (h *TableHandlers) CreateTable(c echo.Context) error {
	tenantID, locationID, err := chainParams(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.CreateTableRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	table, err := h.tableService.Create(c.Request().Context(), tenantID, locationID, &req)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, table)
}

// UpdateTable handles partial table updates scoped to the full chain
func (h *TableHandlers) UpdateTable(c echo.Context) error {
	tenantID, locationID, err := chainParams(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	tableID, err := uuid.Parse(c.Param("tableId"))
	if err != nil {
		return common.SendClientError(c, "Invalid table ID format")
	}

	var req services.UpdateTableRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	table, err := h.tableService.Update(c.Request().Context(), tenantID, locationID, tableID, &req)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, table)
}

// DeleteTable handles deleting a table scoped to the full chain
func (h *TableHandlers) DeleteTable(c echo.Context) error {
	tenantID, locationID, err := chainParams(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	tableID, err := uuid.Parse(c.Param("tableId"))
	if err != nil {
		return common.SendClientError(c, "Invalid table ID format")
	}

	if err := h.tableService.Delete(c.Request().Context(), tenantID, locationID, tableID); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Table deleted successfully",
	})
}

// RotateSaltResponse is the only place the QR salt crosses the wire.
type RotateSaltResponse struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	Active    bool      `json:"active"`
	QRSalt    string    `json:"qr_salt"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RotateQRSalt handles regenerating a table's QR salt
func (h *TableHandlers) RotateQRSalt(c echo.Context) error {
	tenantID, locationID, err := chainParams(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	tableID, err := uuid.Parse(c.Param("tableId"))
	if err != nil {
		return common.SendClientError(c, "Invalid table ID format")
	}

	table, err := h.tableService.RotateSalt(c.Request().Context(), tenantID, locationID, tableID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, rotateResponse(table))
}

func rotateResponse(table *models.Table) *RotateSaltResponse {
	return &RotateSaltResponse{
		ID:        table.ID,
		Number:    table.Number,
		Active:    table.Active,
		QRSalt:    table.QRSalt,
		UpdatedAt: table.UpdatedAt,
	}
}
