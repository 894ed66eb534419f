package services

import (
	"context"
	"strings"

	"dinehub/internal/apperr"
	"dinehub/internal/models"
	"dinehub/internal/repositories"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	Number string `json:"number"`
	Active *bool  `json:"active"`
}

type UpdateTableRequest struct {
	Number *string `json:"number"`
	Active *bool   `json:"active"`
}

type TableService interface {
	Create(ctx context.Context, tenantID, locationID uuid.UUID, req *CreateTableRequest) (*models.Table, error)
	List(ctx context.Context, tenantID, locationID uuid.UUID) ([]*models.Table, error)
	Get(ctx context.Context, tenantID, locationID, id uuid.UUID) (*models.Table, error)
	Update(ctx context.Context, tenantID, locationID, id uuid.UUID, req *UpdateTableRequest) (*models.Table, error)
	Delete(ctx context.Context, tenantID, locationID, id uuid.UUID) error
	// RotateSalt replaces the QR salt with a fresh random value and returns
	// the updated table; the new salt is only ever visible in this result.
	RotateSalt(ctx context.Context, tenantID, locationID, id uuid.UUID) (*models.Table, error)
}

type tableService struct {
	tableRepo    repositories.TableRepository
	locationRepo repositories.LocationRepository
}

func NewTableService(tableRepo repositories.TableRepository, locationRepo repositories.LocationRepository) TableService {
	return &tableService{tableRepo: tableRepo, locationRepo: locationRepo}
}

func (s *tableService) Create(ctx context.Context, tenantID, locationID uuid.UUID, req *CreateTableRequest) (*models.Table, error) {
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, apperr.Validation("table number is required")
	}

	owned, err := s.locationRepo.ExistsOwned(ctx, tenantID, locationID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperr.NotFound("location not found")
	}

	table := &models.Table{
		ID:         uuid.New(),
		LocationID: locationID,
		Number:     number,
		Active:     true,
		QRSalt:     uuid.NewString(),
	}
	if req.Active != nil {
		table.Active = *req.Active
	}

	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, apperr.Translate(err, "location not found",
			"table number already exists in this location")
	}
	return table, nil
}

func (s *tableService) List(ctx context.Context, tenantID, locationID uuid.UUID) ([]*models.Table, error) {
	return s.tableRepo.ListByLocation(ctx, tenantID, locationID)
}

func (s *tableService) Get(ctx context.Context, tenantID, locationID, id uuid.UUID) (*models.Table, error) {
	table, err := s.tableRepo.GetOwned(ctx, tenantID, locationID, id)
	if err != nil {
		return nil, apperr.Translate(err, "table not found", "")
	}
	return table, nil
}

func (s *tableService) Update(ctx context.Context, tenantID, locationID, id uuid.UUID, req *UpdateTableRequest) (*models.Table, error) {
	table, err := s.Get(ctx, tenantID, locationID, id)
	if err != nil {
		return nil, err
	}

	if req.Number != nil {
		number := strings.TrimSpace(*req.Number)
		if number == "" {
			return nil, apperr.Validation("table number cannot be empty")
		}
		table.Number = number
	}
	if req.Active != nil {
		table.Active = *req.Active
	}

	if err := s.tableRepo.Update(ctx, tenantID, table); err != nil {
		return nil, apperr.Translate(err, "table not found",
			"table number already exists in this location")
	}
	return table, nil
}

func (s *tableService) Delete(ctx context.Context, tenantID, locationID, id uuid.UUID) error {
	if err := s.tableRepo.Delete(ctx, tenantID, locationID, id); err != nil {
		return apperr.Translate(err, "table not found", "")
	}
	return nil
}

func (s *tableService) RotateSalt(ctx context.Context, tenantID, locationID, id uuid.UUID) (*models.Table, error) {
	table, err := s.tableRepo.RotateSalt(ctx, tenantID, locationID, id, uuid.NewString())
	if err != nil {
		return nil, apperr.Translate(err, "table not found", "")
	}
	return table, nil
}
