package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"dinehub/internal/apperr"
	"dinehub/internal/models"
	"dinehub/internal/repositories"

	"github.com/google/uuid"
)

// uploadURLExpiry bounds how long a presigned PUT for a freshly created
// asset stays valid.
const uploadURLExpiry = 15 * time.Minute

type CreateAssetRequest struct {
	Kind        string         `json:"kind"`
	Key         *string        `json:"key"`
	Filename    *string        `json:"filename"`
	ContentType *string        `json:"content_type"`
	Size        *int64         `json:"size"`
	Meta        map[string]any `json:"meta"`
}

// CreateAssetResult pairs the stored metadata with a presigned upload URL
// for the object itself.
type CreateAssetResult struct {
	Asset     *models.Asset `json:"asset"`
	UploadURL string        `json:"upload_url,omitempty"`
}

type AssetService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req *CreateAssetRequest) (*CreateAssetResult, error)
	List(ctx context.Context, tenantID uuid.UUID, kind *models.AssetKind) ([]*models.Asset, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Asset, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type assetService struct {
	assetRepo repositories.AssetRepository
	storage   AssetStorage
	bucket    string
}

func NewAssetService(assetRepo repositories.AssetRepository, storage AssetStorage, bucket string) AssetService {
	return &assetService{assetRepo: assetRepo, storage: storage, bucket: bucket}
}

func (s *assetService) Create(ctx context.Context, tenantID uuid.UUID, req *CreateAssetRequest) (*CreateAssetResult, error) {
	kind, err := models.ParseAssetKind(req.Kind)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	key := ""
	if req.Key != nil {
		key = strings.TrimSpace(*req.Key)
	}
	if key == "" {
		key = generateAssetKey(tenantID, req.Filename)
	}

	asset := &models.Asset{
		ID:          uuid.New(),
		TenantID:    tenantID,
		Kind:        kind,
		Key:         key,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		Size:        req.Size,
		Meta:        req.Meta,
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, apperr.Translate(err, "tenant not found",
			"asset key already exists for this tenant")
	}

	result := &CreateAssetResult{Asset: asset}
	if s.storage != nil {
		url, err := s.storage.PresignedPutURL(ctx, s.bucket, asset.Key, uploadURLExpiry)
		if err != nil {
			// Metadata is committed; the caller can re-request an upload URL.
			log.Printf("presign upload URL for %s failed: %v", asset.Key, err)
		} else {
			result.UploadURL = url
		}
	}
	return result, nil
}

func (s *assetService) List(ctx context.Context, tenantID uuid.UUID, kind *models.AssetKind) ([]*models.Asset, error) {
	return s.assetRepo.ListByTenant(ctx, tenantID, kind)
}

func (s *assetService) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Asset, error) {
	asset, err := s.assetRepo.GetOwned(ctx, tenantID, id)
	if err != nil {
		return nil, apperr.Translate(err, "asset not found", "")
	}
	return asset, nil
}

func (s *assetService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	asset, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if err := s.assetRepo.Delete(ctx, tenantID, id); err != nil {
		return apperr.Translate(err, "asset not found", "")
	}

	if s.storage != nil {
		// Best effort; the orphan sweeper picks up whatever this misses.
		if err := s.storage.RemoveObject(ctx, s.bucket, asset.Key); err != nil {
			log.Printf("remove object %s failed: %v", asset.Key, err)
		}
	}
	return nil
}

var safeExtPattern = regexp.MustCompile(`\.[a-z0-9]{1,8}$`)

// generateAssetKey builds a collision-resistant storage key scoped under the
// tenant. Only the sanitized extension of the caller's filename makes it in.
func generateAssetKey(tenantID uuid.UUID, filename *string) string {
	ext := ""
	if filename != nil {
		ext = safeExt(*filename)
	}
	return fmt.Sprintf("tenants/%s/assets/%s%s", tenantID, uuid.New(), ext)
}

// safeExt extracts a short alphanumeric suffix from the filename, lower-cased.
// Anything that could smuggle a double-dot sequence is dropped entirely.
func safeExt(filename string) string {
	name := strings.ToLower(strings.TrimSpace(filename))
	ext := safeExtPattern.FindString(name)
	if ext == "" || strings.Contains(ext, "..") || strings.HasSuffix(strings.TrimSuffix(name, ext), ".") {
		return ""
	}
	return ext
}
