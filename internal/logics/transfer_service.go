package logics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"portal-server/internal/models"
	"portal-server/internal/xmlcodec"
	"portal-server/pkg/errors"
)

// TransferService implements XML file import and export.
type TransferService struct {
	loader *LoaderService
	merge  *MergeService
	logger *zap.Logger
}

// NewTransferService wires the import/export service.
func NewTransferService(loader *LoaderService, merge *MergeService, logger *zap.Logger) *TransferService {
	return &TransferService{loader: loader, merge: merge, logger: logger}
}

// ImportSummary reports what an import touched.
type ImportSummary struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped"`
}

// Import parses an uploaded XML document, either a single product file or a
// combined portfolio document, and merges every contained product into the
// tree through the versioned merge, so imported records never overwrite
// stored history. Products the index does not know are skipped, not
// registered.
func (s *TransferService) Import(ctx context.Context, data []byte) (*ImportSummary, error) {
	products, err := s.decode(data)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, errors.NewAppError(errors.ErrValidation, "document contains no products", nil)
	}

	summary := &ImportSummary{Imported: []string{}, Skipped: []string{}}
	for i := range products {
		p := &products[i]
		update := &ProductUpdate{
			Metrics:      p.Metrics,
			Roadmap:      p.Roadmap,
			ReleaseGoals: p.ReleaseGoals,
			ReleasePlans: p.ReleasePlans,
			ReleaseNotes: p.ReleaseNotes,
			Objectives:   p.Objectives,
		}
		if update.IsEmpty() {
			summary.Skipped = append(summary.Skipped, p.ID)
			continue
		}
		if _, err := s.merge.Apply(ctx, p.ID, update); err != nil {
			if errors.IsNotFound(err) {
				s.logger.Warn("imported product not present in index, skipping",
					zap.String("product_id", p.ID))
				summary.Skipped = append(summary.Skipped, p.ID)
				continue
			}
			return nil, err
		}
		summary.Imported = append(summary.Imported, p.ID)
	}
	return summary, nil
}

// decode accepts either document shape. A combined document is recognized by
// its <Portfolios> wrapper; anything else must be a single product file.
func (s *TransferService) decode(data []byte) ([]models.Product, error) {
	portfolios, err := xmlcodec.DecodePortfolios(data)
	if err == nil {
		products := []models.Product{}
		for i := range portfolios {
			products = append(products, portfolios[i].Products...)
		}
		return products, nil
	}
	if errors.CodeOf(err) == errors.ErrParse {
		return nil, err
	}

	product, err := xmlcodec.DecodeProduct(data)
	if err != nil {
		return nil, err
	}
	return []models.Product{*product}, nil
}

// ExportProduct renders one product's current XML document.
func (s *TransferService) ExportProduct(ctx context.Context, productID string) (string, []byte, error) {
	portfolios, err := s.loader.LoadTree(ctx)
	if err != nil {
		return "", nil, err
	}
	for i := range portfolios {
		if p := portfolios[i].FindProduct(productID); p != nil {
			filename := productID + "_" + time.Now().UTC().Format("20060102") + ".xml"
			return filename, []byte(xmlcodec.EncodeProduct(p)), nil
		}
	}
	return "", nil, errors.NewAppError(errors.ErrNotFound, "product not found: "+productID, nil)
}

// ExportCombined renders the combined portfolio XML document.
func (s *TransferService) ExportCombined(ctx context.Context) (string, []byte, error) {
	portfolios, err := s.loader.LoadTree(ctx)
	if err != nil {
		return "", nil, err
	}
	filename := "portfolios_" + time.Now().UTC().Format("20060102") + ".xml"
	return filename, []byte(xmlcodec.EncodePortfolios(portfolios)), nil
}
