package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portal-server/internal/cache"
	"portal-server/internal/logics"
	"portal-server/pkg/errors"
)

// PortfolioController serves the portfolio tree and product reads.
type PortfolioController struct {
	loader *logics.LoaderService
	cache  *cache.PortfolioCache
	logger *zap.Logger
}

// NewPortfolioController creates the controller.
func NewPortfolioController(loader *logics.LoaderService, portfolioCache *cache.PortfolioCache, logger *zap.Logger) *PortfolioController {
	return &PortfolioController{loader: loader, cache: portfolioCache, logger: logger}
}

// GetPortfolios returns the full portfolio tree, loading it when the cache
// is empty.
func (ctl *PortfolioController) GetPortfolios(c echo.Context) error {
	portfolios, err := ctl.loader.LoadTree(c.Request().Context())
	if err != nil {
		errors.LogError(ctl.logger, err, "failed to load portfolio tree")
		return errors.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, portfolios)
}

// RefreshPortfolios invalidates the cache and reloads the tree from storage.
func (ctl *PortfolioController) RefreshPortfolios(c echo.Context) error {
	ctx := c.Request().Context()
	ctl.cache.Invalidate(ctx)

	portfolios, err := ctl.loader.Reload(ctx)
	if err != nil {
		errors.LogError(ctl.logger, err, "failed to reload portfolio tree")
		return errors.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, portfolios)
}

// GetProduct returns one product from the tree.
func (ctl *PortfolioController) GetProduct(c echo.Context) error {
	productID := c.Param("id")

	portfolios, err := ctl.loader.LoadTree(c.Request().Context())
	if err != nil {
		errors.LogError(ctl.logger, err, "failed to load portfolio tree",
			zap.String("product_id", productID))
		return errors.ToHTTPError(err)
	}

	for i := range portfolios {
		if p := portfolios[i].FindProduct(productID); p != nil {
			return c.JSON(http.StatusOK, p)
		}
	}
	return errors.ToHTTPError(errors.NewAppError(errors.ErrNotFound, "product not found: "+productID, nil))
}
