package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portal-server/internal/logics"
	"portal-server/pkg/errors"
)

// ProductController applies edits to a product through the versioned merge.
type ProductController struct {
	merge  *logics.MergeService
	logger *zap.Logger
}

// NewProductController creates the controller.
func NewProductController(merge *logics.MergeService, logger *zap.Logger) *ProductController {
	return &ProductController{merge: merge, logger: logger}
}

// UpdateProduct merges a partial category update into the product. The
// response reports the assigned versions and whether the XML mirror was
// persisted.
func (ctl *ProductController) UpdateProduct(c echo.Context) error {
	productID := c.Param("id")

	var update logics.ProductUpdate
	if err := c.Bind(&update); err != nil {
		return errors.ToHTTPError(errors.NewAppError(errors.ErrInvalidArgument, "invalid update payload", err))
	}

	result, err := ctl.merge.Apply(c.Request().Context(), productID, &update)
	if err != nil {
		errors.LogError(ctl.logger, err, "merge failed",
			zap.String("product_id", productID))
		return errors.ToHTTPError(err)
	}

	return c.JSON(http.StatusOK, result)
}
