package logics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"portal-server/internal/cache"
	"portal-server/internal/models"
	"portal-server/internal/storage"
	"portal-server/internal/xmlcodec"
	"portal-server/pkg/errors"
	"portal-server/pkg/messaging"
)

// ProductUpdate carries the incoming records of one edit, at most one list
// per category.
type ProductUpdate struct {
	Metrics      []models.Metric           `json:"metrics,omitempty"`
	Roadmap      []models.Roadmap          `json:"roadmap,omitempty"`
	ReleaseGoals []models.ReleaseGoal      `json:"releaseGoals,omitempty"`
	ReleasePlans []models.ReleasePlan      `json:"releasePlans,omitempty"`
	ReleaseNotes []models.ReleaseNote      `json:"releaseNotes,omitempty"`
	Objectives   []models.ProductObjective `json:"objectives,omitempty"`
}

// IsEmpty reports whether the update carries no records at all.
func (u *ProductUpdate) IsEmpty() bool {
	return len(u.Metrics) == 0 && len(u.Roadmap) == 0 && len(u.ReleaseGoals) == 0 &&
		len(u.ReleasePlans) == 0 && len(u.ReleaseNotes) == 0 && len(u.Objectives) == 0
}

// MergeResult reports the outcome of one merge call. XMLPersisted is false
// when the XML mirror write failed after the in-memory state was already
// mutated; the two stores diverge until the next full persist.
type MergeResult struct {
	Success      bool               `json:"success"`
	XMLPersisted bool               `json:"xmlPersisted"`
	Versions     map[string]float64 `json:"versions"`
	Categories   []string           `json:"categories"`
}

// MergeService applies partial, single-category updates to one product
// without destroying prior history: matching-period records get an
// incremented version and are appended, never replaced.
type MergeService struct {
	adapters  *storage.Manager
	cache     *cache.PortfolioCache
	repo      ProductStore
	loader    *LoaderService
	publisher messaging.Publisher
	logger    *zap.Logger
}

// NewMergeService wires the merge service.
func NewMergeService(
	adapters *storage.Manager,
	portfolioCache *cache.PortfolioCache,
	repo ProductStore,
	loader *LoaderService,
	publisher messaging.Publisher,
	logger *zap.Logger,
) *MergeService {
	return &MergeService{
		adapters:  adapters,
		cache:     portfolioCache,
		repo:      repo,
		loader:    loader,
		publisher: publisher,
		logger:    logger,
	}
}

// nextVersion computes maxExisting + 1 through decimal arithmetic so float
// noise can never produce a non-monotonic version.
func nextVersion(maxExisting float64) float64 {
	next, _ := decimal.NewFromFloat(maxExisting).Add(decimal.NewFromInt(1)).Float64()
	return next
}

// Apply merges the update into the product, persists the result and notifies
// consumers. The in-memory/document-store mutation is not rolled back when
// the XML persist step fails; the result records the divergence.
func (s *MergeService) Apply(ctx context.Context, productID string, update *ProductUpdate) (*MergeResult, error) {
	if update.IsEmpty() {
		return nil, errors.NewAppError(errors.ErrInvalidArgument, "update carries no records", nil)
	}

	portfolios, err := s.loader.LoadTree(ctx)
	if err != nil {
		return nil, err
	}

	var product *models.Product
	for i := range portfolios {
		if p := portfolios[i].FindProduct(productID); p != nil {
			product = p
			break
		}
	}
	if product == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "product not found: "+productID, nil)
	}

	s.backup(ctx, product)

	result := &MergeResult{
		Success:      true,
		XMLPersisted: true,
		Versions:     map[string]float64{},
	}
	s.mergeUpdate(product, update, result)

	// The cache is the state the UI reads; write it before the slower
	// persistence steps.
	s.cache.Set(ctx, portfolios)

	if err := s.repo.UpsertProduct(ctx, product); err != nil {
		errors.LogError(s.logger, err, "failed to persist merged product to document store",
			zap.String("product_id", productID))
	}

	if err := s.persistXML(ctx, product, portfolios); err != nil {
		errors.LogError(s.logger, err, "failed to persist XML mirror after merge",
			zap.String("product_id", productID))
		result.XMLPersisted = false
	}

	s.notify(ctx, productID, result.Categories)

	return result, nil
}

// backup writes a timestamped pre-merge snapshot of the product. Best
// effort: failure is logged and the merge proceeds without a safety net.
func (s *MergeService) backup(ctx context.Context, product *models.Product) {
	path := "backups/" + product.ID + "_" + time.Now().UTC().Format("20060102_150405") + ".xml"
	if err := s.adapters.Current().Save(ctx, path, []byte(xmlcodec.EncodeProduct(product))); err != nil {
		s.logger.Warn("pre-merge backup failed, continuing without one",
			zap.String("product_id", product.ID),
			zap.Error(err))
	}
}

func (s *MergeService) mergeUpdate(product *models.Product, update *ProductUpdate, result *MergeResult) {
	now := time.Now().UTC()

	if len(update.Metrics) > 0 {
		for _, m := range update.Metrics {
			maxV, found := maxMetricVersion(product.Metrics, m.Month, m.Year)
			m.Version = assignVersion(m.Version, maxV, found)
			if m.ID == "" {
				m.ID = uuid.NewString()
			}
			if m.CreatedAt.IsZero() {
				m.CreatedAt = now
			}
			product.Metrics = append(product.Metrics, m)
			result.Versions["metrics"] = m.Version
		}
		result.Categories = append(result.Categories, "metrics")
	}

	if len(update.Roadmap) > 0 {
		for _, r := range update.Roadmap {
			maxV, found := maxRoadmapVersion(product.Roadmap, r.Year)
			r.Version = assignVersion(r.Version, maxV, found)
			if r.ID == "" {
				r.ID = uuid.NewString()
			}
			if r.CreatedAt.IsZero() {
				r.CreatedAt = now
			}
			product.Roadmap = append(product.Roadmap, r)
			result.Versions["roadmap"] = r.Version
		}
		result.Categories = append(result.Categories, "roadmap")
	}

	if len(update.ReleaseGoals) > 0 {
		for _, g := range update.ReleaseGoals {
			maxV, found := maxGoalVersion(product.ReleaseGoals, g.Month, g.Year)
			g.Version = assignVersion(g.Version, maxV, found)
			if g.ID == "" {
				g.ID = uuid.NewString()
			}
			if g.CreatedAt.IsZero() {
				g.CreatedAt = now
			}
			g.Normalize()
			product.ReleaseGoals = append(product.ReleaseGoals, g)
			result.Versions["releaseGoals"] = g.Version
		}
		result.Categories = append(result.Categories, "releaseGoals")
	}

	if len(update.ReleasePlans) > 0 {
		for _, p := range update.ReleasePlans {
			maxV, found := maxPlanVersion(product.ReleasePlans, p.Month, p.Year)
			p.Version = assignVersion(p.Version, maxV, found)
			if p.ID == "" {
				p.ID = uuid.NewString()
			}
			if p.CreatedAt.IsZero() {
				p.CreatedAt = now
			}
			p.Normalize()
			product.ReleasePlans = append(product.ReleasePlans, p)
			result.Versions["releasePlans"] = p.Version
		}
		result.Categories = append(result.Categories, "releasePlans")
	}

	if len(update.ReleaseNotes) > 0 {
		for _, n := range update.ReleaseNotes {
			maxV, found := maxNoteVersion(product.ReleaseNotes, n.Month, n.Year)
			n.Version = assignVersion(n.Version, maxV, found)
			if n.ID == "" {
				n.ID = uuid.NewString()
			}
			if n.CreatedAt.IsZero() {
				n.CreatedAt = now
			}
			product.ReleaseNotes = append(product.ReleaseNotes, n)
			result.Versions["releaseNotes"] = n.Version
		}
		result.Categories = append(result.Categories, "releaseNotes")
	}

	if len(update.Objectives) > 0 {
		for _, o := range update.Objectives {
			maxV, found := maxObjectiveVersion(product.Objectives, o.Title)
			o.Version = assignVersion(o.Version, maxV, found)
			if o.ID == "" {
				o.ID = uuid.NewString()
			}
			if o.CreatedAt.IsZero() {
				o.CreatedAt = now
			}
			o.ProductID = product.ID
			product.Objectives = append(product.Objectives, o)
			result.Versions["objectives"] = o.Version
		}
		result.Categories = append(result.Categories, "objectives")
	}
}

// assignVersion keeps the caller-supplied version when the period has no
// prior records, and computes maxExisting + 1 when it does.
func assignVersion(supplied, maxExisting float64, periodExists bool) float64 {
	if periodExists {
		return nextVersion(maxExisting)
	}
	if supplied == 0 {
		return 1
	}
	return supplied
}

func maxMetricVersion(metrics []models.Metric, month, year int) (float64, bool) {
	var max float64
	found := false
	for i := range metrics {
		if metrics[i].Month == month && metrics[i].Year == year {
			if !found || metrics[i].Version > max {
				max = metrics[i].Version
			}
			found = true
		}
	}
	return max, found
}

// Roadmap versions increment across the whole year; the quarter is part of
// the record's identity for display grouping but not of the merge key.
func maxRoadmapVersion(roadmaps []models.Roadmap, year int) (float64, bool) {
	var max float64
	found := false
	for i := range roadmaps {
		if roadmaps[i].Year == year {
			if !found || roadmaps[i].Version > max {
				max = roadmaps[i].Version
			}
			found = true
		}
	}
	return max, found
}

func maxGoalVersion(goals []models.ReleaseGoal, month, year int) (float64, bool) {
	var max float64
	found := false
	for i := range goals {
		if goals[i].Month == month && goals[i].Year == year {
			if !found || goals[i].Version > max {
				max = goals[i].Version
			}
			found = true
		}
	}
	return max, found
}

func maxPlanVersion(plans []models.ReleasePlan, month, year int) (float64, bool) {
	var max float64
	found := false
	for i := range plans {
		if plans[i].Month == month && plans[i].Year == year {
			if !found || plans[i].Version > max {
				max = plans[i].Version
			}
			found = true
		}
	}
	return max, found
}

func maxNoteVersion(notes []models.ReleaseNote, month, year int) (float64, bool) {
	var max float64
	found := false
	for i := range notes {
		if notes[i].Month == month && notes[i].Year == year {
			if !found || notes[i].Version > max {
				max = notes[i].Version
			}
			found = true
		}
	}
	return max, found
}

func maxObjectiveVersion(objectives []models.ProductObjective, title string) (float64, bool) {
	var max float64
	found := false
	for i := range objectives {
		if objectives[i].Title == title {
			if !found || objectives[i].Version > max {
				max = objectives[i].Version
			}
			found = true
		}
	}
	return max, found
}

// persistXML regenerates and stores the product's XML mirror: the current
// file, a timestamped version snapshot, and the combined portfolio document.
// The encoded document is re-parsed first; a document that fails its own
// decode never reaches storage.
func (s *MergeService) persistXML(ctx context.Context, product *models.Product, portfolios []models.Portfolio) error {
	encoded := xmlcodec.EncodeProduct(product)
	if _, err := xmlcodec.DecodeProduct([]byte(encoded)); err != nil {
		return errors.NewAppError(errors.ErrValidation, "generated product XML failed re-parse", err)
	}

	adapter := s.adapters.Current()
	currentPath := s.loader.FilePath(product.ID)

	if err := adapter.Save(ctx, currentPath, []byte(encoded)); err != nil {
		return err
	}

	versionPath := "portfolios/versions/" + product.ID + "_" + time.Now().UTC().Format("20060102_150405") + ".xml"
	if err := adapter.Save(ctx, versionPath, []byte(encoded)); err != nil {
		return err
	}

	combined := xmlcodec.EncodePortfolios(portfolios)
	if err := adapter.Save(ctx, "portfolios/combined.xml", []byte(combined)); err != nil {
		return err
	}

	return nil
}

// notify publishes the advisory update events. Failures are logged only;
// the merge outcome does not depend on them.
func (s *MergeService) notify(ctx context.Context, productID string, categories []string) {
	if s.publisher == nil {
		return
	}
	event := UpdateEvent{ProductID: productID, Categories: categories, At: time.Now().UTC()}
	if err := s.publisher.Publish(ctx, ChannelProductDataUpdated, event); err != nil {
		s.logger.Warn("failed to publish product update event",
			zap.String("product_id", productID), zap.Error(err))
	}
	for _, c := range categories {
		if c == "objectives" {
			if err := s.publisher.Publish(ctx, ChannelOKRDataUpdated, event); err != nil {
				s.logger.Warn("failed to publish OKR update event",
					zap.String("product_id", productID), zap.Error(err))
			}
			break
		}
	}
}
