package services

import (
	"strings"

	"context"

	"dinehub/internal/apperr"
	"dinehub/internal/models"
	"dinehub/internal/repositories"

	"github.com/google/uuid"
)

type CreateTenantRequest struct {
	Name          string  `json:"name"`
	Domain        *string `json:"domain"`
	DefaultLocale *string `json:"default_locale"`
}

type UpdateTenantRequest struct {
	Name          *string `json:"name"`
	Domain        *string `json:"domain"`
	DefaultLocale *string `json:"default_locale"`
}

type TenantService interface {
	Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error)
	List(ctx context.Context, limit, offset int) ([]*models.Tenant, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateTenantRequest) (*models.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetPublic(ctx context.Context, id uuid.UUID) (*models.PublicTenant, error)
	ResolveByDomain(ctx context.Context, domain string) (*models.PublicTenant, error)
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
}

func NewTenantService(tenantRepo repositories.TenantRepository) TenantService {
	return &tenantService{tenantRepo: tenantRepo}
}

func (s *tenantService) Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("tenant name is required")
	}

	locale := models.DefaultLocale
	if req.DefaultLocale != nil {
		parsed, err := models.ParseLocale(*req.DefaultLocale)
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}
		locale = parsed
	}

	tenant := &models.Tenant{
		ID:            uuid.New(),
		Name:          name,
		Domain:        normalizeDomain(req.Domain),
		DefaultLocale: locale,
	}

	// The repository creates the theme row in the same transaction; a tenant
	// without a theme must be impossible.
	if err := s.tenantRepo.Create(ctx, tenant, models.DefaultThemeTokens()); err != nil {
		return nil, apperr.Translate(err, "tenant not found", "domain is already in use")
	}
	return tenant, nil
}

func (s *tenantService) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	return s.tenantRepo.List(ctx, limit, offset)
}

func (s *tenantService) Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Translate(err, "tenant not found", "")
	}
	return tenant, nil
}

func (s *tenantService) Update(ctx context.Context, id uuid.UUID, req *UpdateTenantRequest) (*models.Tenant, error) {
	tenant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.Validation("tenant name cannot be empty")
		}
		tenant.Name = name
	}
	if req.Domain != nil {
		tenant.Domain = normalizeDomain(req.Domain)
	}
	if req.DefaultLocale != nil {
		locale, err := models.ParseLocale(*req.DefaultLocale)
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}
		tenant.DefaultLocale = locale
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, apperr.Translate(err, "tenant not found", "domain is already in use")
	}
	return tenant, nil
}

func (s *tenantService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return apperr.Translate(err, "tenant not found", "")
	}
	return nil
}

func (s *tenantService) GetPublic(ctx context.Context, id uuid.UUID) (*models.PublicTenant, error) {
	tenant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return tenant.Public(), nil
}

func (s *tenantService) ResolveByDomain(ctx context.Context, domain string) (*models.PublicTenant, error) {
	normalized := normalizeDomain(&domain)
	if normalized == nil {
		return nil, apperr.Validation("domain is required")
	}

	tenant, err := s.tenantRepo.GetByDomain(ctx, *normalized)
	if err != nil {
		return nil, apperr.Translate(err, "tenant not found", "")
	}
	return tenant.Public(), nil
}

// normalizeDomain trims and lower-cases the domain; the empty string clears
// it (stored as NULL so the unique index ignores it).
func normalizeDomain(domain *string) *string {
	if domain == nil {
		return nil
	}
	d := strings.ToLower(strings.TrimSpace(*domain))
	if d == "" {
		return nil
	}
	return &d
}
