package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dinehub/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService caches theme tokens, the one hot read path of the API: every
// storefront render pulls them.
type CacheService interface {
	GetThemeTokens(ctx context.Context, tenantID uuid.UUID) (models.ThemeTokens, error)
	SetThemeTokens(ctx context.Context, tenantID uuid.UUID, tokens models.ThemeTokens, ttl time.Duration) error
	DeleteThemeTokens(ctx context.Context, tenantID uuid.UUID) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func themeKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("theme:%s", tenantID)
}

// GetThemeTokens returns (nil, nil) on a cache miss.
func (s *redisCacheService) GetThemeTokens(ctx context.Context, tenantID uuid.UUID) (models.ThemeTokens, error) {
	data, err := s.client.Get(ctx, themeKey(tenantID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tokens := models.ThemeTokens{}
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *redisCacheService) SetThemeTokens(ctx context.Context, tenantID uuid.UUID, tokens models.ThemeTokens, ttl time.Duration) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, themeKey(tenantID), data, ttl).Err()
}

func (s *redisCacheService) DeleteThemeTokens(ctx context.Context, tenantID uuid.UUID) error {
	return s.client.Del(ctx, themeKey(tenantID)).Err()
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
