package models

import (
	"time"

	"github.com/google/uuid"
)

// Table is a seat/table inside a location. Number is unique within the
// location. QRSalt feeds QR-code derivation and is deliberately excluded from
// JSON: callers only ever see it in the rotate-salt response.
type Table struct {
	ID         uuid.UUID `json:"id" db:"id"`
	LocationID uuid.UUID `json:"location_id" db:"location_id"`
	Number     string    `json:"number" db:"number"`
	Active     bool      `json:"active" db:"active"`
	QRSalt     string    `json:"-" db:"qr_salt"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
