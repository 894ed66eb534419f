package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AssetKind classifies tenant-scoped binary assets.
type AssetKind string

const (
	AssetKindLogo   AssetKind = "logo"
	AssetKindBanner AssetKind = "banner"
	AssetKindIcon   AssetKind = "icon"
	AssetKindImage  AssetKind = "image"
)

func ParseAssetKind(s string) (AssetKind, error) {
	k := AssetKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case AssetKindLogo, AssetKindBanner, AssetKindIcon, AssetKindImage:
		return k, nil
	}
	return "", fmt.Errorf("invalid asset kind %q, allowed: logo|banner|icon|image", s)
}

// Asset is metadata for an object stored in the bucket. (TenantID, Key) is
// unique; the tenant reference never changes after creation.
type Asset struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	TenantID    uuid.UUID      `json:"tenant_id" db:"tenant_id"`
	Kind        AssetKind      `json:"kind" db:"kind"`
	Key         string         `json:"key" db:"key"`
	Filename    *string        `json:"filename" db:"filename"`
	ContentType *string        `json:"content_type" db:"content_type"`
	Size        *int64         `json:"size" db:"size"`
	Meta        map[string]any `json:"meta" db:"meta"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}
