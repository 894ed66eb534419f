package repositories

import (
	"context"
	"encoding/json"

	"dinehub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetOwned(ctx context.Context, tenantID, id uuid.UUID) (*models.Asset, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID, kind *models.AssetKind) ([]*models.Asset, error)
	// KeyExists reports whether any tenant still references the storage key.
	// Used by the orphan sweeper.
	KeyExists(ctx context.Context, key string) (bool, error)
}

type assetRepo struct {
	db Database
}

func NewAssetRepo(db Database) AssetRepository {
	return &assetRepo{db: db}
}

func (r *assetRepo) Create(ctx context.Context, asset *models.Asset) error {
	var metaJSON []byte
	if asset.Meta != nil {
		var err error
		metaJSON, err = json.Marshal(asset.Meta)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO assets (id, tenant_id, kind, key, filename, content_type, size, meta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := r.db.Exec(ctx, query,
		asset.ID, asset.TenantID, asset.Kind, asset.Key,
		asset.Filename, asset.ContentType, asset.Size, metaJSON)
	return err
}

func (r *assetRepo) GetOwned(ctx context.Context, tenantID, id uuid.UUID) (*models.Asset, error) {
	query := `
		SELECT id, tenant_id, kind, key, filename, content_type, size, meta, created_at
		FROM assets
		WHERE id = $1 AND tenant_id = $2
	`
	return r.scanAsset(r.db.QueryRow(ctx, query, id, tenantID))
}

func (r *assetRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assetRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, kind *models.AssetKind) ([]*models.Asset, error) {
	query := `
		SELECT id, tenant_id, kind, key, filename, content_type, size, meta, created_at
		FROM assets
		WHERE tenant_id = $1 AND ($2::text IS NULL OR kind = $2)
		ORDER BY created_at DESC
	`
	var kindArg *string
	if kind != nil {
		s := string(*kind)
		kindArg = &s
	}

	rows, err := r.db.Query(ctx, query, tenantID, kindArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*models.Asset
	for rows.Next() {
		asset, err := r.scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (r *assetRepo) KeyExists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM assets WHERE key = $1)`, key).Scan(&exists)
	return exists, err
}

func (r *assetRepo) scanAsset(row pgx.Row) (*models.Asset, error) {
	asset := &models.Asset{}
	var metaJSON []byte
	err := row.Scan(&asset.ID, &asset.TenantID, &asset.Kind, &asset.Key,
		&asset.Filename, &asset.ContentType, &asset.Size, &metaJSON, &asset.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &asset.Meta); err != nil {
			return nil, err
		}
	}
	return asset, nil
}
