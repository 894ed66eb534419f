package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dinehub/internal/apperr"
	"dinehub/internal/caching"
	"dinehub/internal/models"
	"dinehub/internal/repositories"

	"github.com/google/uuid"
)

// themeCacheTTL bounds staleness of the storefront token cache.
const themeCacheTTL = 10 * time.Minute

type ThemeService interface {
	Get(ctx context.Context, tenantID uuid.UUID) (models.ThemeTokens, error)
	// Replace swaps the whole token set (PUT semantics).
	Replace(ctx context.Context, tenantID uuid.UUID, tokens models.ThemeTokens) (models.ThemeTokens, error)
	// Patch applies a delta: string sets the key, explicit null deletes it.
	Patch(ctx context.Context, tenantID uuid.UUID, delta map[string]*string) (models.ThemeTokens, error)
}

type themeService struct {
	themeRepo repositories.ThemeRepository
	cache     caching.CacheService
}

func NewThemeService(themeRepo repositories.ThemeRepository, cache caching.CacheService) ThemeService {
	return &themeService{themeRepo: themeRepo, cache: cache}
}

func (s *themeService) Get(ctx context.Context, tenantID uuid.UUID) (models.ThemeTokens, error) {
	if s.cache != nil {
		if tokens, err := s.cache.GetThemeTokens(ctx, tenantID); err == nil && tokens != nil {
			return tokens, nil
		}
	}

	tokens, err := s.themeRepo.GetTokens(ctx, tenantID)
	if err != nil {
		return nil, apperr.Translate(err, "theme not found for tenant", "")
	}

	if s.cache != nil {
		// Best effort; a cache write failure must not fail the read.
		_ = s.cache.SetThemeTokens(ctx, tenantID, tokens, themeCacheTTL)
	}
	return tokens, nil
}

func (s *themeService) Replace(ctx context.Context, tenantID uuid.UUID, tokens models.ThemeTokens) (models.ThemeTokens, error) {
	if err := validateTokenKeys(tokens); err != nil {
		return nil, err
	}

	if err := s.themeRepo.UpdateTokens(ctx, tenantID, tokens); err != nil {
		return nil, apperr.Translate(err, "theme not found for tenant", "")
	}

	s.invalidate(ctx, tenantID)
	return tokens, nil
}

func (s *themeService) Patch(ctx context.Context, tenantID uuid.UUID, delta map[string]*string) (models.ThemeTokens, error) {
	for key, value := range delta {
		if !strings.HasPrefix(key, models.ThemeTokenPrefix) {
			return nil, apperr.Validation(fmt.Sprintf("invalid token key %q (must start with %s)", key, models.ThemeTokenPrefix))
		}
		_ = value // null deletes, string sets; both are valid
	}

	current, err := s.themeRepo.GetTokens(ctx, tenantID)
	if err != nil {
		return nil, apperr.Translate(err, "theme not found for tenant", "")
	}

	next := models.ThemeTokens{}
	for k, v := range current {
		next[k] = v
	}
	for key, value := range delta {
		if value == nil {
			delete(next, key)
		} else {
			next[key] = *value
		}
	}

	// Plain read-modify-write: concurrent patches are last-write-wins, which
	// is acceptable for low-frequency admin edits.
	if err := s.themeRepo.UpdateTokens(ctx, tenantID, next); err != nil {
		return nil, apperr.Translate(err, "theme not found for tenant", "")
	}

	s.invalidate(ctx, tenantID)
	return next, nil
}

func (s *themeService) invalidate(ctx context.Context, tenantID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.DeleteThemeTokens(ctx, tenantID)
	}
}

func validateTokenKeys(tokens models.ThemeTokens) error {
	for key := range tokens {
		if !strings.HasPrefix(key, models.ThemeTokenPrefix) {
			return apperr.Validation(fmt.Sprintf("invalid token key %q (must start with %s)", key, models.ThemeTokenPrefix))
		}
	}
	return nil
}
