package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	settingsID       = 1
	settingsCacheKey = "settings"
	settingsCacheTTL = 10 * time.Minute
)

// SettingsStore reads the singleton BusinessSettings row through the cache.
// Until an admin saves the row, Defaults are served.
type SettingsStore struct {
	db       *gorm.DB
	cache    *cache.Cache
	defaults models.BusinessSettings
}

func NewSettingsStore(db *gorm.DB, c *cache.Cache, defaults models.BusinessSettings) *SettingsStore {
	defaults.ID = settingsID
	return &SettingsStore{db: db, cache: c, defaults: defaults}
}

func (s *SettingsStore) Get(ctx context.Context) (*models.BusinessSettings, error) {
	var out models.BusinessSettings

	found, err := s.cache.Get(ctx, settingsCacheKey, &out)
	if err != nil {
		slog.Warn("settings cache read failed", "error", err)
	}
	if found {
		return &out, nil
	}

	err = s.db.WithContext(ctx).First(&out, settingsID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		out = s.defaults
	case err != nil:
		return nil, fmt.Errorf("load settings: %w", err)
	}

	s.fillDefaults(&out)

	if err := s.cache.Set(ctx, settingsCacheKey, out, settingsCacheTTL); err != nil {
		slog.Warn("settings cache write failed", "error", err)
	}
	return &out, nil
}

func (s *SettingsStore) Save(ctx context.Context, settings *models.BusinessSettings) error {
	settings.ID = settingsID
	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.cache.Del(ctx, settingsCacheKey)
	return nil
}

// Empty PIX fields fall back to the environment-provided business identity.
func (s *SettingsStore) fillDefaults(out *models.BusinessSettings) {
	if out.PixKey == "" {
		out.PixKey = s.defaults.PixKey
	}
	if out.MerchantName == "" {
		out.MerchantName = s.defaults.MerchantName
	}
	if out.MerchantCity == "" {
		out.MerchantCity = s.defaults.MerchantCity
	}
	if out.Timezone == "" {
		out.Timezone = s.defaults.Timezone
	}
	if out.Name == "" {
		out.Name = s.defaults.Name
	}
}
