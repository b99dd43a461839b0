package logics

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"portal-server/internal/storage"
	"portal-server/pkg/errors"
)

// SettingsStore is the persistence surface for storage settings.
type SettingsStore interface {
	Save(ctx context.Context, settings storage.Settings) error
	Load(ctx context.Context) (*storage.Settings, error)
}

// SettingsService reads and updates the runtime storage configuration,
// rebuilding the active adapter on change.
type SettingsService struct {
	repo     SettingsStore
	adapters *storage.Manager
	validate *validator.Validate
	logger   *zap.Logger
}

// NewSettingsService wires the settings service.
func NewSettingsService(repo SettingsStore, adapters *storage.Manager, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repo:     repo,
		adapters: adapters,
		validate: validator.New(),
		logger:   logger,
	}
}

// Get returns the persisted settings, or the active ones when nothing has
// been saved yet.
func (s *SettingsService) Get(ctx context.Context) (*storage.Settings, error) {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		if errors.IsNotFound(err) {
			active := s.adapters.Settings()
			return &active, nil
		}
		return nil, err
	}
	return settings, nil
}

// Update validates, persists and applies new storage settings. The adapter
// is rebuilt before the settings are persisted so an unusable configuration
// never survives a restart.
func (s *SettingsService) Update(ctx context.Context, settings storage.Settings) (*storage.Settings, error) {
	if err := s.validate.Struct(settings); err != nil {
		return nil, errors.NewAppError(errors.ErrValidation, "invalid storage settings", err)
	}
	settings.LastUpdated = time.Now().UTC()

	if err := s.adapters.Apply(settings); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info("storage settings updated",
		zap.String("storage_type", settings.StorageType),
		zap.String("bucket", settings.BucketName))
	return &settings, nil
}
