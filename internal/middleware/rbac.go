package middleware

import (
	"fmt"
	"strings"

	"dinehub/internal/apperr"
	"dinehub/internal/common"
	"dinehub/internal/models"

	"github.com/labstack/echo/v4"
)

// RoleHeader is the request field carrying the caller's asserted role.
const RoleHeader = "X-Role"

// RoleResolver resolves the caller's asserted role token from the request.
// It is the pluggable identity-resolution step: swapping the header read for
// a verified-token read must not touch the allow/deny logic below.
type RoleResolver interface {
	Resolve(c echo.Context) (string, bool)
}

// HeaderRoleResolver reads the role from the X-Role header. Outside
// production a configured DevDefault fills in when the header is absent; the
// header always wins when present.
type HeaderRoleResolver struct {
	Header     string
	DevDefault string
}

func NewHeaderRoleResolver(devDefault string) *HeaderRoleResolver {
	return &HeaderRoleResolver{Header: RoleHeader, DevDefault: devDefault}
}

func (r *HeaderRoleResolver) Resolve(c echo.Context) (string, bool) {
	header := r.Header
	if header == "" {
		header = RoleHeader
	}
	if v := strings.TrimSpace(c.Request().Header.Get(header)); v != "" {
		return v, true
	}
	if r.DevDefault != "" {
		return r.DevDefault, true
	}
	return "", false
}

// RBACMiddleware guards routes with a per-route allow-set.
type RBACMiddleware struct {
	resolver RoleResolver
}

func NewRBACMiddleware(resolver RoleResolver) *RBACMiddleware {
	return &RBACMiddleware{resolver: resolver}
}

// Require allows the request only if the resolved role is a member of the
// allow-set. An empty allow-set means the route is unrestricted. Missing or
// unparseable roles are a malformed request (400), a recognized role outside
// the allow-set is forbidden (403); the split is deliberate and must hold.
func (m *RBACMiddleware) Require(allowed ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(allowed) == 0 {
				return next(c)
			}

			raw, ok := m.resolver.Resolve(c)
			if !ok {
				return common.SendDomainError(c, apperr.MissingOrInvalidRole(
					fmt.Sprintf("missing role: provide %q header (%s)", RoleHeader, models.RoleNames())))
			}

			role, err := models.ParseRole(raw)
			if err != nil {
				return common.SendDomainError(c, apperr.MissingOrInvalidRole(err.Error()))
			}

			for _, a := range allowed {
				if role == a {
					c.SetRequest(c.Request().WithContext(common.WithRole(c.Request().Context(), role)))
					return next(c)
				}
			}
			return common.SendDomainError(c, apperr.Forbidden("insufficient role"))
		}
	}
}
