package testhelpers

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"dinehub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB creates a pooled connection for testing. Tests that need a real
// database are skipped when TEST_DATABASE_URL is not set.
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			t.Skip("TEST_DATABASE_URL not set, skipping database test")
		}
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SetupTestTenant creates a test tenant with its theme row
func SetupTestTenant(t *testing.T, db *TestDB) uuid.UUID {
	t.Helper()

	tenantID := uuid.New()
	_, err := db.Pool.Exec(context.Background(), `
		INSERT INTO tenants (id, name, domain, default_locale, created_at, updated_at)
		VALUES ($1, $2, NULL, $3, NOW(), NOW())
	`, tenantID, "Test Tenant", models.DefaultLocale)
	if err != nil {
		t.Fatalf("Failed to create test tenant: %v", err)
	}

	tokens, err := json.Marshal(models.DefaultThemeTokens())
	if err != nil {
		t.Fatalf("Failed to marshal theme tokens: %v", err)
	}
	_, err = db.Pool.Exec(context.Background(), `
		INSERT INTO themes (tenant_id, tokens, updated_at)
		VALUES ($1, $2, NOW())
	`, tenantID, tokens)
	if err != nil {
		t.Fatalf("Failed to create test theme: %v", err)
	}

	return tenantID
}

// SetupTestLocation creates a test location under the tenant
func SetupTestLocation(t *testing.T, db *TestDB, tenantID uuid.UUID) uuid.UUID {
	t.Helper()

	locationID := uuid.New()
	_, err := db.Pool.Exec(context.Background(), `
		INSERT INTO locations (id, tenant_id, name, address, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, NULL, $4, NOW(), NOW())
	`, locationID, tenantID, "Test Location", models.DefaultTimezone)
	if err != nil {
		t.Fatalf("Failed to create test location: %v", err)
	}

	return locationID
}

// SetupTestTable creates a test table under the location
func SetupTestTable(t *testing.T, db *TestDB, locationID uuid.UUID, number string) *models.Table {
	t.Helper()

	table := &models.Table{
		ID:         uuid.New(),
		LocationID: locationID,
		Number:     number,
		Active:     true,
		QRSalt:     uuid.NewString(),
	}
	_, err := db.Pool.Exec(context.Background(), `
		INSERT INTO tables (id, location_id, number, active, qr_salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`, table.ID, table.LocationID, table.Number, table.Active, table.QRSalt)
	if err != nil {
		t.Fatalf("Failed to create test table: %v", err)
	}

	return table
}

// CleanupTenant deletes the tenant; the schema cascades to children
func CleanupTenant(t *testing.T, db *TestDB, tenantID uuid.UUID) {
	t.Helper()

	if _, err := db.Pool.Exec(context.Background(),
		`DELETE FROM tenants WHERE id = $1`, tenantID); err != nil {
		t.Logf("Failed to clean up tenant %s: %v", tenantID, err)
	}
}
