package repositories

import (
	"context"
	"encoding/json"

	"dinehub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ThemeRepository never creates or deletes rows: the theme row is born in the
// tenant-create transaction and dies with the tenant cascade.
type ThemeRepository interface {
	GetTokens(ctx context.Context, tenantID uuid.UUID) (models.ThemeTokens, error)
	UpdateTokens(ctx context.Context, tenantID uuid.UUID, tokens models.ThemeTokens) error
}

type themeRepo struct {
	db Database
}

func NewThemeRepo(db Database) ThemeRepository {
	return &themeRepo{db: db}
}

func (r *themeRepo) GetTokens(ctx context.Context, tenantID uuid.UUID) (models.ThemeTokens, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT tokens FROM themes WHERE tenant_id = $1`, tenantID).Scan(&raw)
	if err != nil {
		return nil, err
	}

	tokens := models.ThemeTokens{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &tokens); err != nil {
			return nil, err
		}
	}
	return tokens, nil
}

func (r *themeRepo) UpdateTokens(ctx context.Context, tenantID uuid.UUID, tokens models.ThemeTokens) error {
	raw, err := json.Marshal(tokens)
	if err != nil {
		return err
	}

	ct, err := r.db.Exec(ctx, `
		UPDATE themes
		SET tokens = $1, updated_at = NOW()
		WHERE tenant_id = $2
	`, raw, tenantID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
