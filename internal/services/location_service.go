package services

import (
	"context"
	"strings"

	"dinehub/internal/apperr"
	"dinehub/internal/models"
	"dinehub/internal/repositories"

	"github.com/google/uuid"
)

type CreateLocationRequest struct {
	Name     string  `json:"name"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
}

type UpdateLocationRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
}

type LocationService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req *CreateLocationRequest) (*models.Location, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]*models.Location, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Location, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req *UpdateLocationRequest) (*models.Location, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type locationService struct {
	locationRepo repositories.LocationRepository
	tenantRepo   repositories.TenantRepository
}

func NewLocationService(locationRepo repositories.LocationRepository, tenantRepo repositories.TenantRepository) LocationService {
	return &locationService{locationRepo: locationRepo, tenantRepo: tenantRepo}
}

func (s *locationService) Create(ctx context.Context, tenantID uuid.UUID, req *CreateLocationRequest) (*models.Location, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("location name is required")
	}

	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		return nil, apperr.Translate(err, "tenant not found", "")
	}

	timezone := models.DefaultTimezone
	if req.Timezone != nil && strings.TrimSpace(*req.Timezone) != "" {
		timezone = strings.TrimSpace(*req.Timezone)
	}

	location := &models.Location{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     name,
		Address:  req.Address,
		Timezone: timezone,
	}

	// A concurrent tenant delete between the check above and this insert
	// trips the FK and translates to NotFound, which is the intended outcome.
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, apperr.Translate(err, "tenant not found", "")
	}
	return location, nil
}

func (s *locationService) List(ctx context.Context, tenantID uuid.UUID) ([]*models.Location, error) {
	return s.locationRepo.ListByTenant(ctx, tenantID)
}

func (s *locationService) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Location, error) {
	location, err := s.locationRepo.GetOwned(ctx, tenantID, id)
	if err != nil {
		return nil, apperr.Translate(err, "location not found", "")
	}
	return location, nil
}

func (s *locationService) Update(ctx context.Context, tenantID, id uuid.UUID, req *UpdateLocationRequest) (*models.Location, error) {
	location, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.Validation("location name cannot be empty")
		}
		location.Name = name
	}
	if req.Address != nil {
		location.Address = req.Address
	}
	if req.Timezone != nil && strings.TrimSpace(*req.Timezone) != "" {
		location.Timezone = strings.TrimSpace(*req.Timezone)
	}

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, apperr.Translate(err, "location not found", "")
	}
	return location, nil
}

func (s *locationService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.locationRepo.Delete(ctx, tenantID, id); err != nil {
		return apperr.Translate(err, "location not found", "")
	}
	return nil
}
