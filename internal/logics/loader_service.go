package logics

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"portal-server/internal/cache"
	"portal-server/internal/models"
	"portal-server/internal/storage"
	"portal-server/internal/xmlcodec"
	"portal-server/pkg/errors"
)

// ProductStore is the document-store surface the services write through.
type ProductStore interface {
	UpsertProduct(ctx context.Context, product *models.Product) error
	UpsertPortfolio(ctx context.Context, portfolio *models.Portfolio) error
}

// LoaderService materializes the portfolio tree: it reads the index
// document, loads each product's XML file through the codec, and fills the
// cache. A broken or missing product file degrades to a skeleton product
// instead of failing the whole load.
type LoaderService struct {
	adapters  *storage.Manager
	cache     *cache.PortfolioCache
	repo      ProductStore
	indexPath string
	logger    *zap.Logger

	mu        sync.RWMutex
	filePaths map[string]string
}

// NewLoaderService creates a loader reading the index at indexPath.
func NewLoaderService(
	adapters *storage.Manager,
	portfolioCache *cache.PortfolioCache,
	repo ProductStore,
	indexPath string,
	logger *zap.Logger,
) *LoaderService {
	return &LoaderService{
		adapters:  adapters,
		cache:     portfolioCache,
		repo:      repo,
		indexPath: indexPath,
		logger:    logger,
		filePaths: map[string]string{},
	}
}

// LoadTree returns the cached portfolio tree, loading it from storage when
// the cache is empty.
func (s *LoaderService) LoadTree(ctx context.Context) ([]models.Portfolio, error) {
	if cached := s.cache.Get(); cached != nil {
		return cached, nil
	}
	return s.Reload(ctx)
}

// Reload loads the tree from storage unconditionally and repopulates the
// cache and the document store.
func (s *LoaderService) Reload(ctx context.Context) ([]models.Portfolio, error) {
	adapter := s.adapters.Current()

	indexData, err := adapter.Load(ctx, s.indexPath)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewAppError(errors.ErrNotFound, "portfolio index not found at "+s.indexPath, err)
		}
		return nil, err
	}

	index, err := xmlcodec.DecodePortfolioIndex(indexData)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse portfolio index")
	}

	filePaths := map[string]string{}
	portfolios := make([]models.Portfolio, 0, len(index))
	for _, entry := range index {
		portfolio := models.Portfolio{
			ID:       entry.ID,
			Name:     entry.Name,
			Products: []models.Product{},
		}
		for _, ip := range entry.Products {
			portfolio.Products = append(portfolio.Products, s.loadProduct(ctx, adapter, ip))
			if ip.Filepath != "" {
				filePaths[ip.ID] = ip.Filepath
			}
		}
		portfolios = append(portfolios, portfolio)
	}

	s.mu.Lock()
	s.filePaths = filePaths
	s.mu.Unlock()

	s.cache.Set(ctx, portfolios)

	// Keep the document store in sync. Best effort: a write failure leaves
	// the previous documents in place and is visible only in the log.
	for i := range portfolios {
		if err := s.repo.UpsertPortfolio(ctx, &portfolios[i]); err != nil {
			errors.LogError(s.logger, err, "failed to sync portfolio to document store",
				zap.String("portfolio_id", portfolios[i].ID))
		}
	}

	return portfolios, nil
}

// loadProduct loads and decodes one product file, degrading to a skeleton on
// any failure.
func (s *LoaderService) loadProduct(ctx context.Context, adapter storage.Adapter, ip xmlcodec.IndexProduct) models.Product {
	if ip.Filepath == "" {
		return models.Skeleton(ip.ID, ip.Name, ip.Description)
	}

	data, err := adapter.Load(ctx, ip.Filepath)
	if err != nil {
		s.logger.Warn("product file unavailable, using skeleton",
			zap.String("product_id", ip.ID),
			zap.String("filepath", ip.Filepath),
			zap.Error(err))
		return models.Skeleton(ip.ID, ip.Name, ip.Description)
	}

	product, err := xmlcodec.DecodeProduct(data)
	if err != nil {
		s.logger.Warn("product file failed to parse, using skeleton",
			zap.String("product_id", ip.ID),
			zap.String("filepath", ip.Filepath),
			zap.Error(err))
		return models.Skeleton(ip.ID, ip.Name, ip.Description)
	}

	// Identity comes from the index; the file may predate a rename.
	product.ID = ip.ID
	if product.Name == "" {
		product.Name = ip.Name
	}
	if product.Description == "" {
		product.Description = ip.Description
	}
	return *product
}

// FilePath returns the XML file path of a product as recorded in the index.
// The fallback convention covers products the index has no explicit path
// for.
func (s *LoaderService) FilePath(productID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if path, ok := s.filePaths[productID]; ok {
		return path
	}
	return "portfolios/products/" + productID + ".xml"
}
