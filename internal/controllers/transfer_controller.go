package controllers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portal-server/internal/logics"
	"portal-server/pkg/errors"
)

// TransferController handles XML file import and export.
type TransferController struct {
	transfer *logics.TransferService
	logger   *zap.Logger
}

// NewTransferController creates the controller.
func NewTransferController(transfer *logics.TransferService, logger *zap.Logger) *TransferController {
	return &TransferController{transfer: transfer, logger: logger}
}

// Import accepts a multipart .xml upload and merges its contents into the
// portfolio tree.
func (ctl *TransferController) Import(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errors.ToHTTPError(errors.NewAppError(errors.ErrInvalidArgument, "missing file upload", err))
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xml") {
		return errors.ToHTTPError(errors.NewAppError(errors.ErrInvalidArgument, "only .xml files can be imported", nil))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.ToHTTPError(errors.NewAppError(errors.ErrInvalidArgument, "failed to open uploaded file", err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return errors.ToHTTPError(errors.NewAppError(errors.ErrInvalidArgument, "failed to read uploaded file", err))
	}

	summary, err := ctl.transfer.Import(c.Request().Context(), data)
	if err != nil {
		errors.LogError(ctl.logger, err, "import failed",
			zap.String("filename", fileHeader.Filename))
		return errors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, summary)
}

// ExportProduct streams one product's XML document as a download.
func (ctl *TransferController) ExportProduct(c echo.Context) error {
	productID := c.Param("id")

	filename, data, err := ctl.transfer.ExportProduct(c.Request().Context(), productID)
	if err != nil {
		errors.LogError(ctl.logger, err, "product export failed",
			zap.String("product_id", productID))
		return errors.ToHTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/xml", data)
}

// ExportCombined streams the combined portfolio XML document as a download.
func (ctl *TransferController) ExportCombined(c echo.Context) error {
	filename, data, err := ctl.transfer.ExportCombined(c.Request().Context())
	if err != nil {
		errors.LogError(ctl.logger, err, "combined export failed")
		return errors.ToHTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/xml", data)
}
