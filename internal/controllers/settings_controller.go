package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portal-server/internal/logics"
	"portal-server/internal/storage"
	"portal-server/pkg/errors"
)

// SettingsController reads and updates the runtime storage configuration.
type SettingsController struct {
	settings *logics.SettingsService
	logger   *zap.Logger
}

// NewSettingsController creates the controller.
func NewSettingsController(settings *logics.SettingsService, logger *zap.Logger) *SettingsController {
	return &SettingsController{settings: settings, logger: logger}
}

// GetStorageSettings returns the active storage configuration.
func (ctl *SettingsController) GetStorageSettings(c echo.Context) error {
	settings, err := ctl.settings.Get(c.Request().Context())
	if err != nil {
		errors.LogError(ctl.logger, err, "failed to load storage settings")
		return errors.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateStorageSettings applies and persists new storage configuration,
// rebuilding the storage adapter.
func (ctl *SettingsController) UpdateStorageSettings(c echo.Context) error {
	var settings storage.Settings
	if err := c.Bind(&settings); err != nil {
		return errors.ToHTTPError(errors.NewAppError(errors.ErrInvalidArgument, "invalid settings payload", err))
	}

	updated, err := ctl.settings.Update(c.Request().Context(), settings)
	if err != nil {
		errors.LogError(ctl.logger, err, "failed to update storage settings")
		return errors.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, updated)
}
