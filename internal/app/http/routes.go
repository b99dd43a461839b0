package httpEngine

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portal-server/internal/cache"
	"portal-server/internal/controllers"
	"portal-server/internal/logics"
)

// Deps carries everything the route handlers need.
type Deps struct {
	Loader   *logics.LoaderService
	Merge    *logics.MergeService
	Transfer *logics.TransferService
	Settings *logics.SettingsService
	Cache    *cache.PortfolioCache
	Logger   *zap.Logger
}

// RegisterRoutes wires the API surface.
func RegisterRoutes(e *echo.Echo, deps *Deps) {
	portfolioCtl := controllers.NewPortfolioController(deps.Loader, deps.Cache, deps.Logger)
	productCtl := controllers.NewProductController(deps.Merge, deps.Logger)
	transferCtl := controllers.NewTransferController(deps.Transfer, deps.Logger)
	settingsCtl := controllers.NewSettingsController(deps.Settings, deps.Logger)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "portal",
		})
	})

	v1 := e.Group("/api/v1")

	v1.GET("/portfolios", portfolioCtl.GetPortfolios)
	v1.GET("/portfolios/refresh", portfolioCtl.RefreshPortfolios)
	v1.GET("/products/:id", portfolioCtl.GetProduct)
	v1.POST("/products/:id/update", productCtl.UpdateProduct)

	v1.POST("/import", transferCtl.Import)
	v1.GET("/export", transferCtl.ExportCombined)
	v1.GET("/products/:id/export", transferCtl.ExportProduct)

	v1.GET("/settings/storage", settingsCtl.GetStorageSettings)
	v1.PUT("/settings/storage", settingsCtl.UpdateStorageSettings)
}
