package repositories

import (
	"context"

	"dinehub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TableRepository verifies the full tenant→location→table chain inside each
// statement. The join is deliberate: two sequential lookups would leave a
// window where the chain changes between checks.
type TableRepository interface {
	Create(ctx context.Context, table *models.Table) error
	GetOwned(ctx context.Context, tenantID, locationID, id uuid.UUID) (*models.Table, error)
	Update(ctx context.Context, tenantID uuid.UUID, table *models.Table) error
	Delete(ctx context.Context, tenantID, locationID, id uuid.UUID) error
	RotateSalt(ctx context.Context, tenantID, locationID, id uuid.UUID, salt string) (*models.Table, error)
	ListByLocation(ctx context.Context, tenantID, locationID uuid.UUID) ([]*models.Table, error)
}

type tableRepo struct {
	db Database
}

func NewTableRepo(db Database) TableRepository {
	return &tableRepo{db: db}
}

func (r *tableRepo) Create(ctx context.Context, table *models.Table) error {
	query := `
		INSERT INTO tables (id, location_id, number, active, qr_salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		table.ID, table.LocationID, table.Number, table.Active, table.QRSalt)
	return err
}

func (r *tableRepo) GetOwned(ctx context.Context, tenantID, locationID, id uuid.UUID) (*models.Table, error) {
	table := &models.Table{}
	query := `
		SELECT t.id, t.location_id, t.number, t.active, t.qr_salt, t.created_at, t.updated_at
		FROM tables t
		JOIN locations l ON l.id = t.location_id
		WHERE t.id = $1 AND t.location_id = $2 AND l.tenant_id = $3
	`
	err := r.db.QueryRow(ctx, query, id, locationID, tenantID).Scan(
		&table.ID, &table.LocationID, &table.Number, &table.Active, &table.QRSalt,
		&table.CreatedAt, &table.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (r *tableRepo) Update(ctx context.Context, tenantID uuid.UUID, table *models.Table) error {
	query := `
		UPDATE tables t
		SET number = $1, active = $2, updated_at = NOW()
		FROM locations l
		WHERE t.id = $3 AND t.location_id = $4 AND l.id = t.location_id AND l.tenant_id = $5
	`
	ct, err := r.db.Exec(ctx, query,
		table.Number, table.Active, table.ID, table.LocationID, tenantID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tableRepo) Delete(ctx context.Context, tenantID, locationID, id uuid.UUID) error {
	query := `
		DELETE FROM tables t
		USING locations l
		WHERE t.id = $1 AND t.location_id = $2 AND l.id = t.location_id AND l.tenant_id = $3
	`
	ct, err := r.db.Exec(ctx, query, id, locationID, tenantID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tableRepo) RotateSalt(ctx context.Context, tenantID, locationID, id uuid.UUID, salt string) (*models.Table, error) {
	table := &models.Table{}
	query := `
		UPDATE tables t
		SET qr_salt = $1, updated_at = NOW()
		FROM locations l
		WHERE t.id = $2 AND t.location_id = $3 AND l.id = t.location_id AND l.tenant_id = $4
		RETURNING t.id, t.location_id, t.number, t.active, t.qr_salt, t.created_at, t.updated_at
	`
	err := r.db.QueryRow(ctx, query, salt, id, locationID, tenantID).Scan(
		&table.ID, &table.LocationID, &table.Number, &table.Active, &table.QRSalt,
		&table.CreatedAt, &table.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (r *tableRepo) ListByLocation(ctx context.Context, tenantID, locationID uuid.UUID) ([]*models.Table, error) {
	query := `
		SELECT t.id, t.location_id, t.number, t.active, t.qr_salt, t.created_at, t.updated_at
		FROM tables t
		JOIN locations l ON l.id = t.location_id
		WHERE t.location_id = $1 AND l.tenant_id = $2
		ORDER BY t.number ASC, t.created_at ASC
	`
	rows, err := r.db.Query(ctx, query, locationID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []*models.Table
	for rows.Next() {
		table := &models.Table{}
		if err := rows.Scan(&table.ID, &table.LocationID, &table.Number, &table.Active,
			&table.QRSalt, &table.CreatedAt, &table.UpdatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}
