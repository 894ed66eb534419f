package handlers

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// chainParams parses the tenantId/locationId path pair shared by nested routes.
func chainParams(c echo.Context) (tenantID, locationID uuid.UUID, err error) {
	tenantID, err = uuid.Parse(c.Param("tenantId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("Invalid tenant ID format")
	}
	locationID, err = uuid.Parse(c.Param("locationId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("Invalid location ID format")
	}
	return tenantID, locationID, nil
}
