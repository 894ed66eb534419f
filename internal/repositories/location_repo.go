package repositories

import (
	"context"

	"dinehub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	// GetOwned returns the location only when it belongs to the tenant;
	// a chain mismatch is indistinguishable from a missing row.
	GetOwned(ctx context.Context, tenantID, id uuid.UUID) (*models.Location, error)
	ExistsOwned(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Location, error)
}

type locationRepo struct {
	db Database
}

func NewLocationRepo(db Database) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) Create(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO locations (id, tenant_id, name, address, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		location.ID, location.TenantID, location.Name, location.Address, location.Timezone)
	return err
}

func (r *locationRepo) GetOwned(ctx context.Context, tenantID, id uuid.UUID) (*models.Location, error) {
	location := &models.Location{}
	query := `
		SELECT id, tenant_id, name, address, timezone, created_at, updated_at
		FROM locations
		WHERE id = $1 AND tenant_id = $2
	`
	err := r.db.QueryRow(ctx, query, id, tenantID).Scan(
		&location.ID, &location.TenantID, &location.Name, &location.Address,
		&location.Timezone, &location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return location, nil
}

func (r *locationRepo) ExistsOwned(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM locations WHERE id = $1 AND tenant_id = $2)`
	err := r.db.QueryRow(ctx, query, id, tenantID).Scan(&exists)
	return exists, err
}

// Update is a single conditional mutation: the tenant scope sits in the WHERE
// clause, so a vanished or foreign row shows up as zero rows affected.
func (r *locationRepo) Update(ctx context.Context, location *models.Location) error {
	query := `
		UPDATE locations
		SET name = $1, address = $2, timezone = $3, updated_at = NOW()
		WHERE id = $4 AND tenant_id = $5
	`
	ct, err := r.db.Exec(ctx, query,
		location.Name, location.Address, location.Timezone, location.ID, location.TenantID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *locationRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM locations WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *locationRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Location, error) {
	query := `
		SELECT id, tenant_id, name, address, timezone, created_at, updated_at
		FROM locations
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		location := &models.Location{}
		if err := rows.Scan(&location.ID, &location.TenantID, &location.Name, &location.Address,
			&location.Timezone, &location.CreatedAt, &location.UpdatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}
