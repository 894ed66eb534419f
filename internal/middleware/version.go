package middleware

import (
	"github.com/labstack/echo/v4"
)

// VersionMiddleware stamps responses with the API version they were served by
type VersionMiddleware struct{}

func NewVersionMiddleware() *VersionMiddleware {
	return &VersionMiddleware{}
}

// VersionHeader adds the X-API-Version response header for a route group
func (m *VersionMiddleware) VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", version)
			return next(c)
		}
	}
}
