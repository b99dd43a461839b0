package logics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portal-server/config"
	"portal-server/internal/cache"
	"portal-server/internal/models"
	"portal-server/internal/storage"
	"portal-server/internal/xmlcodec"
)

// MockProductStore is a mock implementation of ProductStore.
type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) UpsertProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductStore) UpsertPortfolio(ctx context.Context, portfolio *models.Portfolio) error {
	args := m.Called(ctx, portfolio)
	return args.Error(0)
}

// MockPublisher is a mock implementation of messaging.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

// MockSettingsStore is a mock implementation of SettingsStore.
type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) Save(ctx context.Context, settings storage.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsStore) Load(ctx context.Context) (*storage.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Settings), args.Error(1)
}

// fixture wires the services over a local storage root seeded per test.
type fixture struct {
	root      string
	adapters  *storage.Manager
	cache     *cache.PortfolioCache
	store     *MockProductStore
	publisher *MockPublisher
	loader    *LoaderService
	merge     *MergeService
	transfer  *TransferService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := config.Storage{
		Type:      storage.TypeLocal,
		LocalRoot: t.TempDir(),
		IndexPath: "portfolios/index.xml",
	}
	adapters, err := storage.NewManager(cfg, storage.DefaultSettings(cfg), zap.NewNop())
	require.NoError(t, err)

	store := &MockProductStore{}
	store.On("UpsertProduct", mock.Anything, mock.Anything).Return(nil)
	store.On("UpsertPortfolio", mock.Anything, mock.Anything).Return(nil)

	publisher := &MockPublisher{}
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	portfolioCache := cache.New(nil, zap.NewNop())
	loader := NewLoaderService(adapters, portfolioCache, store, cfg.IndexPath, zap.NewNop())
	merge := NewMergeService(adapters, portfolioCache, store, loader, publisher, zap.NewNop())
	transfer := NewTransferService(loader, merge, zap.NewNop())

	return &fixture{
		root:      cfg.LocalRoot,
		adapters:  adapters,
		cache:     portfolioCache,
		store:     store,
		publisher: publisher,
		loader:    loader,
		merge:     merge,
		transfer:  transfer,
	}
}

// seed writes the index and any product files into the storage root.
func (f *fixture) seed(t *testing.T, index []xmlcodec.IndexPortfolio, files map[string]string) {
	t.Helper()
	ctx := context.Background()
	adapter := f.adapters.Current()

	require.NoError(t, adapter.Save(ctx, "portfolios/index.xml", []byte(xmlcodec.EncodePortfolioIndex(index))))
	for path, content := range files {
		require.NoError(t, adapter.Save(ctx, path, []byte(content)))
	}
}

// seedDefault sets up two portfolios with one loadable product each.
func (f *fixture) seedDefault(t *testing.T) {
	t.Helper()
	f.seed(t,
		[]xmlcodec.IndexPortfolio{
			{
				ID:   "pf-1",
				Name: "Core",
				Products: []xmlcodec.IndexProduct{
					{ID: "prod-1", Name: "Analytics", Filepath: "portfolios/products/prod-1.xml"},
				},
			},
			{
				ID:   "pf-2",
				Name: "Emerging",
				Products: []xmlcodec.IndexProduct{
					{ID: "prod-2", Name: "Billing", Filepath: "portfolios/products/prod-2.xml"},
				},
			},
		},
		map[string]string{
			"portfolios/products/prod-1.xml": `<Product id="prod-1" name="Analytics">
  <Metrics>
    <Metric id="m-1" month="6" year="2025" version="1" createdAt="2025-06-01T00:00:00Z">
      <MetricItem id="mi-1" name="MAU" value="1200" status="on-track"/>
    </Metric>
  </Metrics>
</Product>`,
			"portfolios/products/prod-2.xml": `<Product id="prod-2" name="Billing"/>`,
		},
	)
}
