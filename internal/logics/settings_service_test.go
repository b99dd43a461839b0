package logics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portal-server/config"
	"portal-server/internal/storage"
	"portal-server/pkg/errors"
)

func newSettingsFixture(t *testing.T) (*SettingsService, *MockSettingsStore, *storage.Manager) {
	t.Helper()

	cfg := config.Storage{Type: storage.TypeLocal, LocalRoot: t.TempDir()}
	adapters, err := storage.NewManager(cfg, storage.DefaultSettings(cfg), zap.NewNop())
	require.NoError(t, err)

	store := &MockSettingsStore{}
	return NewSettingsService(store, adapters, zap.NewNop()), store, adapters
}

func TestSettingsService_GetFallsBackToActive(t *testing.T) {
	service, store, _ := newSettingsFixture(t)
	store.On("Load", mock.Anything).Return(nil, errors.NewAppError(errors.ErrNotFound, "no settings", nil))

	settings, err := service.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, storage.TypeLocal, settings.StorageType)
}

func TestSettingsService_GetReturnsPersisted(t *testing.T) {
	service, store, _ := newSettingsFixture(t)
	store.On("Load", mock.Anything).Return(&storage.Settings{
		StorageType: storage.TypeSupabase,
		SupabaseURL: "https://proj.supabase.co",
		BucketName:  "portal",
	}, nil)

	settings, err := service.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, storage.TypeSupabase, settings.StorageType)
	assert.Equal(t, "portal", settings.BucketName)
}

func TestSettingsService_UpdateRejectsUnknownType(t *testing.T) {
	service, store, _ := newSettingsFixture(t)

	_, err := service.Update(context.Background(), storage.Settings{StorageType: "carrier-pigeon"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSettingsService_UpdateAppliesAndPersists(t *testing.T) {
	service, store, adapters := newSettingsFixture(t)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	updated, err := service.Update(context.Background(), storage.Settings{
		StorageType: storage.TypeSupabase,
		SupabaseURL: "https://proj.supabase.co",
		BucketName:  "portal",
	})
	require.NoError(t, err)

	assert.False(t, updated.LastUpdated.IsZero())
	assert.Equal(t, storage.TypeSupabase, adapters.Settings().StorageType)
	assert.IsType(t, &storage.SupabaseAdapter{}, adapters.Current())
	store.AssertCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSettingsService_UpdateKeepsAdapterWhenBuildFails(t *testing.T) {
	service, store, adapters := newSettingsFixture(t)

	// Supabase without a URL cannot be built; the local adapter must survive
	// and nothing gets persisted.
	_, err := service.Update(context.Background(), storage.Settings{StorageType: storage.TypeSupabase})
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidArgument, errors.CodeOf(err))

	assert.Equal(t, storage.TypeLocal, adapters.Settings().StorageType)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
