package models

import (
	"time"

	"github.com/google/uuid"
)

// ThemeTokenPrefix marks CSS custom property names; every token key must
// start with it.
const ThemeTokenPrefix = "--"

// ThemeTokens maps CSS custom property names to string values.
type ThemeTokens map[string]string

// DefaultThemeTokens is the starter token set written when a tenant is
// created. Returned fresh so callers can mutate their copy.
func DefaultThemeTokens() ThemeTokens {
	return ThemeTokens{
		"--color-primary": "#3b82f6",
		"--color-bg":      "#ffffff",
		"--radius-md":     "8px",
	}
}

// Theme is 1:1 with a tenant. It is created with the tenant and only ever
// read, replaced or patched afterwards.
type Theme struct {
	TenantID  uuid.UUID   `json:"tenant_id" db:"tenant_id"`
	Tokens    ThemeTokens `json:"tokens" db:"tokens"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}
