package logics

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portal-server/internal/models"
	"portal-server/internal/xmlcodec"
	"portal-server/pkg/errors"
)

func TestMergeService_EmptyUpdate(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)

	_, err := f.merge.Apply(context.Background(), "prod-1", &ProductUpdate{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidArgument, errors.CodeOf(err))
}

func TestMergeService_UnknownProduct(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)

	update := &ProductUpdate{Metrics: []models.Metric{{Month: 6, Year: 2025}}}
	_, err := f.merge.Apply(context.Background(), "prod-99", update)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestMergeService_ExistingPeriodIncrementsVersion(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)
	ctx := context.Background()

	update := &ProductUpdate{
		Metrics: []models.Metric{
			{
				Month: 6, Year: 2025, Version: 1,
				Items: []models.MetricItem{{ID: "mi-2", Name: "MAU", Value: 1400, Status: models.MetricStatusOnTrack}},
			},
		},
	}

	result, err := f.merge.Apply(ctx, "prod-1", update)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.XMLPersisted)
	assert.Equal(t, float64(2), result.Versions["metrics"])
	assert.Equal(t, []string{"metrics"}, result.Categories)

	// Both versions stay: the original and the appended one.
	tree, err := f.loader.LoadTree(ctx)
	require.NoError(t, err)
	product := tree[0].FindProduct("prod-1")
	require.NotNil(t, product)
	require.Len(t, product.Metrics, 2)
	assert.Equal(t, float64(1), product.Metrics[0].Version)
	assert.Equal(t, float64(2), product.Metrics[1].Version)

	latest := models.LatestMetric(product.Metrics, 6, 2025)
	require.NotNil(t, latest)
	assert.Equal(t, float64(1400), latest.Items[0].Value)
}

func TestMergeService_NewPeriodKeepsSuppliedVersion(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)
	ctx := context.Background()

	result, err := f.merge.Apply(ctx, "prod-1", &ProductUpdate{
		Roadmap: []models.Roadmap{{Year: 2025, Quarter: 4, Version: 2.5, Title: "Q4 push", Status: models.RoadmapStatusPlanned}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2.5, result.Versions["roadmap"])

	// A zero supplied version defaults to 1 for another new period.
	result, err = f.merge.Apply(ctx, "prod-1", &ProductUpdate{
		Roadmap: []models.Roadmap{{Year: 2026, Quarter: 1, Title: "Next year", Status: models.RoadmapStatusPlanned}},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(1), result.Versions["roadmap"])
}

func TestMergeService_RoadmapVersionedByYearAcrossQuarters(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)
	ctx := context.Background()

	result, err := f.merge.Apply(ctx, "prod-1", &ProductUpdate{
		Roadmap: []models.Roadmap{{Year: 2025, Quarter: 1, Version: 1, Title: "Q1 plan", Status: models.RoadmapStatusPlanned}},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(1), result.Versions["roadmap"])

	// A different quarter of the same year still increments: roadmap
	// versions are keyed by year alone.
	result, err = f.merge.Apply(ctx, "prod-1", &ProductUpdate{
		Roadmap: []models.Roadmap{{Year: 2025, Quarter: 4, Version: 1, Title: "Q4 plan", Status: models.RoadmapStatusPlanned}},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(2), result.Versions["roadmap"])

	tree, err := f.loader.LoadTree(ctx)
	require.NoError(t, err)
	product := tree[0].FindProduct("prod-1")
	require.Len(t, product.Roadmap, 2)

	// Display grouping stays per quarter.
	latest := models.LatestRoadmap(product.Roadmap, 2025, 4)
	require.NotNil(t, latest)
	assert.Equal(t, "Q4 plan", latest.Title)
	assert.Equal(t, float64(2), latest.Version)
}

func TestMergeService_VersionsStayMonotonic(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)
	ctx := context.Background()

	for i, expected := range []float64{2, 3, 4} {
		result, err := f.merge.Apply(ctx, "prod-1", &ProductUpdate{
			Metrics: []models.Metric{{Month: 6, Year: 2025}},
		})
		require.NoError(t, err, "merge %d", i)
		assert.Equal(t, expected, result.Versions["metrics"])
	}

	tree, err := f.loader.LoadTree(ctx)
	require.NoError(t, err)
	assert.Len(t, tree[0].FindProduct("prod-1").Metrics, 4)
}

func TestMergeService_GeneratesIDAndCreatedAt(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)

	_, err := f.merge.Apply(context.Background(), "prod-2", &ProductUpdate{
		ReleaseNotes: []models.ReleaseNote{{Month: 7, Year: 2025, Type: models.NoteTypeFeature}},
	})
	require.NoError(t, err)

	tree, err := f.loader.LoadTree(context.Background())
	require.NoError(t, err)
	product := tree[1].FindProduct("prod-2")
	require.Len(t, product.ReleaseNotes, 1)
	assert.NotEmpty(t, product.ReleaseNotes[0].ID)
	assert.False(t, product.ReleaseNotes[0].CreatedAt.IsZero())
}

func TestMergeService_NormalizesFlatRecords(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)

	_, err := f.merge.Apply(context.Background(), "prod-2", &ProductUpdate{
		ReleaseGoals: []models.ReleaseGoal{
			{ID: "g-1", Month: 7, Year: 2025, Description: "Ship SSO", CurrentState: "None", TargetState: "SAML"},
		},
		ReleasePlans: []models.ReleasePlan{
			{ID: "p-1", Month: 7, Year: 2025, Title: "SSO rollout"},
		},
	})
	require.NoError(t, err)

	tree, err := f.loader.LoadTree(context.Background())
	require.NoError(t, err)
	product := tree[1].FindProduct("prod-2")

	require.Len(t, product.ReleaseGoals, 1)
	require.Len(t, product.ReleaseGoals[0].Goals, 1)
	assert.Equal(t, "g-1-item-1", product.ReleaseGoals[0].Goals[0].ID)

	require.Len(t, product.ReleasePlans, 1)
	require.Len(t, product.ReleasePlans[0].Items, 1)
	assert.Equal(t, "p-1-item-1", product.ReleasePlans[0].Items[0].ID)
}

func TestMergeService_ObjectivesVersionedByTitle(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)
	ctx := context.Background()

	objective := models.ProductObjective{Title: "Grow adoption", Status: models.ObjectiveStatusInProgress}

	result, err := f.merge.Apply(ctx, "prod-1", &ProductUpdate{Objectives: []models.ProductObjective{objective}})
	require.NoError(t, err)
	assert.Equal(t, float64(1), result.Versions["objectives"])

	result, err = f.merge.Apply(ctx, "prod-1", &ProductUpdate{Objectives: []models.ProductObjective{objective}})
	require.NoError(t, err)
	assert.Equal(t, float64(2), result.Versions["objectives"])

	tree, err := f.loader.LoadTree(ctx)
	require.NoError(t, err)
	product := tree[0].FindProduct("prod-1")
	require.Len(t, product.Objectives, 2)
	assert.Equal(t, "prod-1", product.Objectives[0].ProductID)

	latest := models.LatestObjective(product.Objectives, "Grow adoption")
	require.NotNil(t, latest)
	assert.Equal(t, float64(2), latest.Version)
}

func TestMergeService_PublishesUpdateEvents(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)
	ctx := context.Background()

	_, err := f.merge.Apply(ctx, "prod-1", &ProductUpdate{
		Metrics: []models.Metric{{Month: 6, Year: 2025}},
	})
	require.NoError(t, err)

	f.publisher.AssertCalled(t, "Publish", mock.Anything, ChannelProductDataUpdated, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, ChannelOKRDataUpdated, mock.Anything)

	_, err = f.merge.Apply(ctx, "prod-1", &ProductUpdate{
		Objectives: []models.ProductObjective{{Title: "Grow adoption"}},
	})
	require.NoError(t, err)

	f.publisher.AssertCalled(t, "Publish", mock.Anything, ChannelOKRDataUpdated, mock.Anything)
}

func TestMergeService_PersistsXMLMirror(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)
	ctx := context.Background()

	_, err := f.merge.Apply(ctx, "prod-1", &ProductUpdate{
		Metrics: []models.Metric{{Month: 6, Year: 2025}},
	})
	require.NoError(t, err)

	adapter := f.adapters.Current()

	// The current file carries the merged state.
	data, err := adapter.Load(ctx, "portfolios/products/prod-1.xml")
	require.NoError(t, err)
	product, err := xmlcodec.DecodeProduct(data)
	require.NoError(t, err)
	assert.Len(t, product.Metrics, 2)

	// A dated version snapshot and the combined document exist.
	versions, err := adapter.List(ctx, "portfolios/versions/")
	require.NoError(t, err)
	assert.Len(t, versions, 1)

	combined, err := adapter.Load(ctx, "portfolios/combined.xml")
	require.NoError(t, err)
	portfolios, err := xmlcodec.DecodePortfolios(combined)
	require.NoError(t, err)
	assert.Len(t, portfolios, 2)

	// A pre-merge backup of the product was taken.
	backups, err := filepath.Glob(filepath.Join(f.root, "backups", "prod-1_*.xml"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	// The document store received the merged aggregate.
	f.store.AssertCalled(t, "UpsertProduct", mock.Anything, mock.Anything)
}
