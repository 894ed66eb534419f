package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Locale is the tenant's default storefront language.
type Locale string

const (
	LocaleDE Locale = "de"
	LocaleEN Locale = "en"
	LocaleRU Locale = "ru"
)

// DefaultLocale is applied when a tenant is created without one.
const DefaultLocale = LocaleDE

func ParseLocale(s string) (Locale, error) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case LocaleDE, LocaleEN, LocaleRU:
		return l, nil
	}
	return "", fmt.Errorf("invalid locale %q, allowed: de|en|ru", s)
}

// Tenant is an isolated brand account, the root of the ownership hierarchy.
// Domain is case-normalized and unique across tenants; nil means no custom
// domain is attached.
type Tenant struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Domain        *string   `json:"domain" db:"domain"`
	DefaultLocale Locale    `json:"default_locale" db:"default_locale"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// PublicTenant is the unauthenticated projection served to storefront clients.
type PublicTenant struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	DefaultLocale Locale    `json:"default_locale"`
}

// Public strips everything a guest has no business seeing.
func (t *Tenant) Public() *PublicTenant {
	return &PublicTenant{ID: t.ID, Name: t.Name, DefaultLocale: t.DefaultLocale}
}
