package storage

import (
	"context"
	"sync"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"portal-server/config"
	"portal-server/pkg/errors"
)

// Manager owns the active adapter and rebuilds it when storage settings
// change at runtime. Credentials come from the service config; the settings
// only carry the switchable parameters.
type Manager struct {
	mu       sync.RWMutex
	cfg      config.Storage
	settings Settings
	adapter  Adapter
	logger   *zap.Logger
}

// NewManager builds the initial adapter from the given settings.
func NewManager(cfg config.Storage, settings Settings, logger *zap.Logger) (*Manager, error) {
	m := &Manager{cfg: cfg, logger: logger}
	if err := m.Apply(settings); err != nil {
		return nil, err
	}
	return m, nil
}

// DefaultSettings derives initial settings from the service config, used
// until an operator saves explicit ones.
func DefaultSettings(cfg config.Storage) Settings {
	settings := Settings{
		StorageType: cfg.Type,
		SupabaseURL: cfg.Supabase.URL,
		LastUpdated: time.Now().UTC(),
	}
	switch cfg.Type {
	case TypeSupabase:
		settings.BucketName = cfg.Supabase.Bucket
	case TypeS3:
		settings.BucketName = cfg.S3.Bucket
	}
	if settings.StorageType == "" {
		settings.StorageType = TypeLocal
	}
	return settings
}

// Current returns the active adapter.
func (m *Manager) Current() Adapter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.adapter
}

// Settings returns a copy of the active settings.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Apply rebuilds the adapter for the given settings. On build failure the
// previous adapter stays active.
func (m *Manager) Apply(settings Settings) error {
	adapter, err := m.build(settings)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.adapter = adapter
	m.settings = settings
	m.mu.Unlock()

	m.logger.Info("storage adapter rebuilt",
		zap.String("storage_type", settings.StorageType),
		zap.String("bucket", settings.BucketName))
	return nil
}

func (m *Manager) build(settings Settings) (Adapter, error) {
	switch settings.StorageType {
	case TypeLocal, "":
		return NewLocalAdapter(m.cfg.LocalRoot, m.logger)

	case TypeSupabase:
		baseURL := settings.SupabaseURL
		if baseURL == "" {
			baseURL = m.cfg.Supabase.URL
		}
		bucket := settings.BucketName
		if bucket == "" {
			bucket = m.cfg.Supabase.Bucket
		}
		if baseURL == "" || bucket == "" {
			return nil, errors.NewAppError(errors.ErrInvalidArgument, "supabase storage requires a project URL and bucket", nil)
		}
		return NewSupabaseAdapter(baseURL, m.cfg.Supabase.APIKey, bucket, m.logger), nil

	case TypeS3:
		bucket := settings.BucketName
		if bucket == "" {
			bucket = m.cfg.S3.Bucket
		}
		if bucket == "" {
			return nil, errors.NewAppError(errors.ErrInvalidArgument, "s3 storage requires a bucket", nil)
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(m.cfg.S3.Region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(m.cfg.S3.AccessKey, m.cfg.S3.SecretKey, ""),
			),
		)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrStorage, "failed to load AWS configuration", err)
		}
		return NewS3Adapter(s3.NewFromConfig(awsCfg), bucket, m.logger), nil

	default:
		return nil, errors.NewAppError(errors.ErrInvalidArgument, "unknown storage type: "+settings.StorageType, nil)
	}
}
