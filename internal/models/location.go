package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTimezone is applied when a location is created without one.
const DefaultTimezone = "Europe/Berlin"

// Location is a physical venue of a tenant. The tenant reference never
// changes after creation.
type Location struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name      string    `json:"name" db:"name"`
	Address   *string   `json:"address" db:"address"`
	Timezone  string    `json:"timezone" db:"timezone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
