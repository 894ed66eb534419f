package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"dinehub/internal/handlers"
	"dinehub/internal/middleware"
	"dinehub/internal/models"
	"dinehub/internal/repositories"
	"dinehub/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory stand-in for Postgres that honors the same
// constraint semantics the real schema enforces: unique violations come back
// as SQLSTATE 23505 and conditional mutations report zero affected rows as
// pgx.ErrNoRows.
type fakeStore struct {
	mu        sync.Mutex
	tenants   map[uuid.UUID]*models.Tenant
	locations map[uuid.UUID]*models.Location
	tables    map[uuid.UUID]*models.Table
	assets    map[uuid.UUID]*models.Asset
	themes    map[uuid.UUID]models.ThemeTokens
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tenants:   map[uuid.UUID]*models.Tenant{},
		locations: map[uuid.UUID]*models.Location{},
		tables:    map[uuid.UUID]*models.Table{},
		assets:    map[uuid.UUID]*models.Asset{},
		themes:    map[uuid.UUID]models.ThemeTokens{},
	}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

type fakeTenantRepo struct{ store *fakeStore }

func (r *fakeTenantRepo) Create(_ context.Context, tenant *models.Tenant, tokens models.ThemeTokens) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if tenant.Domain != nil {
		for _, t := range r.store.tenants {
			if t.Domain != nil && *t.Domain == *tenant.Domain {
				return uniqueViolation("tenants_domain_key")
			}
		}
	}
	now := time.Now()
	tenant.CreatedAt, tenant.UpdatedAt = now, now
	stored := *tenant
	r.store.tenants[tenant.ID] = &stored
	r.store.themes[tenant.ID] = tokens
	return nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tenants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTenantRepo) GetByDomain(_ context.Context, domain string) (*models.Tenant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.tenants {
		if t.Domain != nil && *t.Domain == domain {
			copied := *t
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTenantRepo) Update(_ context.Context, tenant *models.Tenant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.tenants[tenant.ID]; !ok {
		return pgx.ErrNoRows
	}
	tenant.UpdatedAt = time.Now()
	stored := *tenant
	r.store.tenants[tenant.ID] = &stored
	return nil
}

func (r *fakeTenantRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.tenants[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.store.tenants, id)
	delete(r.store.themes, id)
	return nil
}

func (r *fakeTenantRepo) List(_ context.Context, limit, offset int) ([]*models.Tenant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Tenant
	for _, t := range r.store.tenants {
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

type fakeLocationRepo struct{ store *fakeStore }

func (r *fakeLocationRepo) Create(_ context.Context, location *models.Location) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	location.CreatedAt, location.UpdatedAt = now, now
	stored := *location
	r.store.locations[location.ID] = &stored
	return nil
}

func (r *fakeLocationRepo) GetOwned(_ context.Context, tenantID, id uuid.UUID) (*models.Location, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	l, ok := r.store.locations[id]
	if !ok || l.TenantID != tenantID {
		return nil, pgx.ErrNoRows
	}
	copied := *l
	return &copied, nil
}

func (r *fakeLocationRepo) ExistsOwned(_ context.Context, tenantID, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	l, ok := r.store.locations[id]
	return ok && l.TenantID == tenantID, nil
}

func (r *fakeLocationRepo) Update(_ context.Context, location *models.Location) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.locations[location.ID]
	if !ok || existing.TenantID != location.TenantID {
		return pgx.ErrNoRows
	}
	location.UpdatedAt = time.Now()
	stored := *location
	r.store.locations[location.ID] = &stored
	return nil
}

func (r *fakeLocationRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	l, ok := r.store.locations[id]
	if !ok || l.TenantID != tenantID {
		return pgx.ErrNoRows
	}
	delete(r.store.locations, id)
	return nil
}

func (r *fakeLocationRepo) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]*models.Location, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Location
	for _, l := range r.store.locations {
		if l.TenantID == tenantID {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeTableRepo struct{ store *fakeStore }

func (r *fakeTableRepo) chainOK(tenantID, locationID uuid.UUID) bool {
	l, ok := r.store.locations[locationID]
	return ok && l.TenantID == tenantID
}

func (r *fakeTableRepo) Create(_ context.Context, table *models.Table) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.tables {
		if t.LocationID == table.LocationID && t.Number == table.Number {
			return uniqueViolation("tables_location_id_number_key")
		}
	}
	now := time.Now()
	table.CreatedAt, table.UpdatedAt = now, now
	stored := *table
	r.store.tables[table.ID] = &stored
	return nil
}

func (r *fakeTableRepo) GetOwned(_ context.Context, tenantID, locationID, id uuid.UUID) (*models.Table, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tables[id]
	if !ok || t.LocationID != locationID || !r.chainOK(tenantID, locationID) {
		return nil, pgx.ErrNoRows
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTableRepo) Update(_ context.Context, tenantID uuid.UUID, table *models.Table) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.tables[table.ID]
	if !ok || existing.LocationID != table.LocationID || !r.chainOK(tenantID, table.LocationID) {
		return pgx.ErrNoRows
	}
	table.UpdatedAt = time.Now()
	stored := *table
	r.store.tables[table.ID] = &stored
	return nil
}

func (r *fakeTableRepo) Delete(_ context.Context, tenantID, locationID, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tables[id]
	if !ok || t.LocationID != locationID || !r.chainOK(tenantID, locationID) {
		return pgx.ErrNoRows
	}
	delete(r.store.tables, id)
	return nil
}

func (r *fakeTableRepo) RotateSalt(_ context.Context, tenantID, locationID, id uuid.UUID, salt string) (*models.Table, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tables[id]
	if !ok || t.LocationID != locationID || !r.chainOK(tenantID, locationID) {
		return nil, pgx.ErrNoRows
	}
	t.QRSalt = salt
	t.UpdatedAt = time.Now()
	copied := *t
	return &copied, nil
}

func (r *fakeTableRepo) ListByLocation(_ context.Context, tenantID, locationID uuid.UUID) ([]*models.Table, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.chainOK(tenantID, locationID) {
		return nil, nil
	}
	var out []*models.Table
	for _, t := range r.store.tables {
		if t.LocationID == locationID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeAssetRepo struct{ store *fakeStore }

func (r *fakeAssetRepo) Create(_ context.Context, asset *models.Asset) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.assets {
		if a.TenantID == asset.TenantID && a.Key == asset.Key {
			return uniqueViolation("assets_tenant_id_key_key")
		}
	}
	asset.CreatedAt = time.Now()
	stored := *asset
	r.store.assets[asset.ID] = &stored
	return nil
}

func (r *fakeAssetRepo) GetOwned(_ context.Context, tenantID, id uuid.UUID) (*models.Asset, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.assets[id]
	if !ok || a.TenantID != tenantID {
		return nil, pgx.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAssetRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.assets[id]
	if !ok || a.TenantID != tenantID {
		return pgx.ErrNoRows
	}
	delete(r.store.assets, id)
	return nil
}

func (r *fakeAssetRepo) ListByTenant(_ context.Context, tenantID uuid.UUID, kind *models.AssetKind) ([]*models.Asset, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Asset
	for _, a := range r.store.assets {
		if a.TenantID != tenantID {
			continue
		}
		if kind != nil && a.Kind != *kind {
			continue
		}
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeAssetRepo) KeyExists(_ context.Context, key string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.assets {
		if a.Key == key {
			return true, nil
		}
	}
	return false, nil
}

type fakeThemeRepo struct{ store *fakeStore }

func (r *fakeThemeRepo) GetTokens(_ context.Context, tenantID uuid.UUID) (models.ThemeTokens, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tokens, ok := r.store.themes[tenantID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := models.ThemeTokens{}
	for k, v := range tokens {
		copied[k] = v
	}
	return copied, nil
}

func (r *fakeThemeRepo) UpdateTokens(_ context.Context, tenantID uuid.UUID, tokens models.ThemeTokens) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.themes[tenantID]; !ok {
		return pgx.ErrNoRows
	}
	r.store.themes[tenantID] = tokens
	return nil
}

var (
	_ repositories.TenantRepository   = (*fakeTenantRepo)(nil)
	_ repositories.LocationRepository = (*fakeLocationRepo)(nil)
	_ repositories.TableRepository    = (*fakeTableRepo)(nil)
	_ repositories.AssetRepository    = (*fakeAssetRepo)(nil)
	_ repositories.ThemeRepository    = (*fakeThemeRepo)(nil)
)

// newTestServer wires the real services, handlers, guard, and routes on top
// of the in-memory store, mirroring the production route table.
func newTestServer() (*echo.Echo, *fakeStore) {
	store := newFakeStore()

	tenantRepo := &fakeTenantRepo{store: store}
	locationRepo := &fakeLocationRepo{store: store}
	tableRepo := &fakeTableRepo{store: store}
	assetRepo := &fakeAssetRepo{store: store}
	themeRepo := &fakeThemeRepo{store: store}

	tenantSvc := services.NewTenantService(tenantRepo)
	locationSvc := services.NewLocationService(locationRepo, tenantRepo)
	tableSvc := services.NewTableService(tableRepo, locationRepo)
	assetSvc := services.NewAssetService(assetRepo, nil, "")
	themeSvc := services.NewThemeService(themeRepo, nil)

	guard := middleware.NewRBACMiddleware(middleware.NewHeaderRoleResolver(""))

	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	locationHandlers := handlers.NewLocationHandlers(locationSvc)
	tableHandlers := handlers.NewTableHandlers(tableSvc)
	assetHandlers := handlers.NewAssetHandlers(assetSvc)
	themeHandlers := handlers.NewThemeHandlers(themeSvc)

	e := echo.New()
	v1 := e.Group("/v1")
	v1.GET("/tenants/resolve/by-domain", tenantHandlers.ResolveByDomain)
	v1.GET("/tenants/:tenantId", tenantHandlers.GetPublicTenant)

	admin := v1.Group("/admin")
	manage := guard.Require(models.RoleOwner, models.RoleManager)
	read := guard.Require(models.RoleOwner, models.RoleManager, models.RoleWaiter, models.RoleKitchen)
	ownerOnly := guard.Require(models.RoleOwner)

	admin.POST("/tenants", tenantHandlers.CreateTenant, ownerOnly)
	admin.GET("/tenants/:tenantId", tenantHandlers.GetTenant, ownerOnly)
	admin.POST("/tenants/:tenantId/locations", locationHandlers.CreateLocation, manage)
	tables := "/tenants/:tenantId/locations/:locationId/tables"
	admin.GET(tables, tableHandlers.ListTables, read)
	admin.POST(tables, tableHandlers.CreateTable, manage)
	admin.GET(tables+"/:tableId", tableHandlers.GetTable, read)
	admin.POST(tables+"/:tableId/rotate-qr-salt", tableHandlers.RotateQRSalt, manage)
	admin.POST("/tenants/:tenantId/assets", assetHandlers.CreateAsset, manage)
	admin.GET("/tenants/:tenantId/theme", themeHandlers.GetTheme, manage)
	admin.PUT("/tenants/:tenantId/theme", themeHandlers.ReplaceTheme, manage)
	admin.PATCH("/tenants/:tenantId/theme", themeHandlers.PatchTheme, manage)

	return e, store
}

func do(e *echo.Echo, method, path, role string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if role != "" {
		req.Header.Set(middleware.RoleHeader, role)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestTenantLocationTableLifecycle(t *testing.T) {
	e, _ := newTestServer()

	// owner creates the tenant
	rec := do(e, http.MethodPost, "/v1/admin/tenants", "owner",
		map[string]any{"name": "Bella Vista", "domain": "Bella.Example.COM"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tenant models.Tenant
	decode(t, rec, &tenant)
	assert.Equal(t, "bella.example.com", *tenant.Domain)

	// manager adds a location
	rec = do(e, http.MethodPost, fmt.Sprintf("/v1/admin/tenants/%s/locations", tenant.ID),
		"manager", map[string]any{"name": "Hauptfiliale"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var location models.Location
	decode(t, rec, &location)
	assert.Equal(t, "Europe/Berlin", location.Timezone)

	// manager adds table A1
	tablesPath := fmt.Sprintf("/v1/admin/tenants/%s/locations/%s/tables", tenant.ID, location.ID)
	rec = do(e, http.MethodPost, tablesPath, "manager", map[string]any{"number": "A1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var table models.Table
	decode(t, rec, &table)
	assert.Equal(t, "A1", table.Number)
	// the salt never leaves the server on the create path
	assert.NotContains(t, rec.Body.String(), "qr_salt")

	// waiter can list tables
	rec = do(e, http.MethodGet, tablesPath, "waiter", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "A1")

	// same table under a foreign tenant is a 404, not a 403
	otherTenant := uuid.New()
	rec = do(e, http.MethodGet, fmt.Sprintf("/v1/admin/tenants/%s/locations/%s/tables/%s",
		otherTenant, location.ID, table.ID), "owner", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// duplicate table number in the same location conflicts
	rec = do(e, http.MethodPost, tablesPath, "manager", map[string]any{"number": "A1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// rotating twice produces two distinct salts
	rotatePath := tablesPath + "/" + table.ID.String() + "/rotate-qr-salt"
	rec = do(e, http.MethodPost, rotatePath, "manager", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var first handlers.RotateSaltResponse
	decode(t, rec, &first)
	assert.NotEmpty(t, first.QRSalt)

	rec = do(e, http.MethodPost, rotatePath, "manager", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var second handlers.RotateSaltResponse
	decode(t, rec, &second)
	assert.NotEqual(t, first.QRSalt, second.QRSalt)

	// waiter may read but not rotate
	rec = do(e, http.MethodPost, rotatePath, "waiter", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// missing role on a guarded route is a 400, not a 403
	rec = do(e, http.MethodGet, tablesPath, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssetKeyUniquePerTenant(t *testing.T) {
	e, _ := newTestServer()

	rec := do(e, http.MethodPost, "/v1/admin/tenants", "owner", map[string]any{"name": "Bella"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var tenant models.Tenant
	decode(t, rec, &tenant)

	assetsPath := fmt.Sprintf("/v1/admin/tenants/%s/assets", tenant.ID)
	body := map[string]any{"kind": "logo", "key": "tenants/shared/logo.png"}

	rec = do(e, http.MethodPost, assetsPath, "manager", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodPost, assetsPath, "manager", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "asset key already exists")
}

func TestThemeLifecycle(t *testing.T) {
	e, _ := newTestServer()

	rec := do(e, http.MethodPost, "/v1/admin/tenants", "owner", map[string]any{"name": "Bella"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var tenant models.Tenant
	decode(t, rec, &tenant)

	themePath := fmt.Sprintf("/v1/admin/tenants/%s/theme", tenant.ID)

	// theme is born with the tenant
	rec = do(e, http.MethodGet, themePath, "manager", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "--color-primary")

	// replace swaps the whole set
	rec = do(e, http.MethodPut, themePath, "manager",
		map[string]string{"--color-primary": "#ff0000"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "--color-bg")

	// patch sets one key and deletes another
	rec = do(e, http.MethodPatch, themePath, "manager",
		map[string]any{"--radius-md": "4px", "--color-primary": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	var tokens models.ThemeTokens
	decode(t, rec, &tokens)
	assert.Equal(t, "4px", tokens["--radius-md"])
	_, present := tokens["--color-primary"]
	assert.False(t, present)

	// a key without the custom-property prefix is rejected before storage
	rec = do(e, http.MethodPut, themePath, "manager", map[string]string{"color": "#fff"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")

	// the stored set is untouched by the failed replace
	rec = do(e, http.MethodGet, themePath, "manager", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "--radius-md")
}
