package logics

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal-server/internal/xmlcodec"
	"portal-server/pkg/errors"
)

func TestTransferService_ImportSingleProduct(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)
	ctx := context.Background()

	doc := `<Product id="prod-2" name="Billing">
  <ReleaseNotes>
    <ReleaseNote id="n-1" month="7" year="2025" version="1" type="feature" highlights="Faster exports"/>
  </ReleaseNotes>
</Product>`

	summary, err := f.transfer.Import(ctx, []byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"prod-2"}, summary.Imported)
	assert.Empty(t, summary.Skipped)

	tree, err := f.loader.LoadTree(ctx)
	require.NoError(t, err)
	product := tree[1].FindProduct("prod-2")
	require.Len(t, product.ReleaseNotes, 1)
	assert.Equal(t, "Faster exports", product.ReleaseNotes[0].Highlights)
}

func TestTransferService_ImportCombinedDocument(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)
	ctx := context.Background()

	doc := `<Portfolios>
  <Portfolio id="pf-1" name="Core">
    <Product id="prod-1" name="Analytics">
      <Metrics>
        <Metric id="m-9" month="6" year="2025" version="1">
          <MetricItem id="mi-9" name="MAU" value="1500"/>
        </Metric>
      </Metrics>
    </Product>
    <Product id="prod-99" name="Unknown">
      <ReleaseNotes>
        <ReleaseNote id="n-9" month="7" year="2025" version="1"/>
      </ReleaseNotes>
    </Product>
  </Portfolio>
</Portfolios>`

	summary, err := f.transfer.Import(ctx, []byte(doc))
	require.NoError(t, err)

	// The known product merges; the one the index does not list is skipped.
	assert.Equal(t, []string{"prod-1"}, summary.Imported)
	assert.Equal(t, []string{"prod-99"}, summary.Skipped)

	tree, err := f.loader.LoadTree(ctx)
	require.NoError(t, err)
	product := tree[0].FindProduct("prod-1")
	// Existing period: the imported metric lands as version 2.
	require.Len(t, product.Metrics, 2)
	assert.Equal(t, float64(2), product.Metrics[1].Version)
}

func TestTransferService_ImportSkipsEmptyProduct(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)

	summary, err := f.transfer.Import(context.Background(), []byte(`<Product id="prod-2" name="Billing"/>`))
	require.NoError(t, err)

	assert.Empty(t, summary.Imported)
	assert.Equal(t, []string{"prod-2"}, summary.Skipped)
}

func TestTransferService_ImportMalformedDocument(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)

	_, err := f.transfer.Import(context.Background(), []byte(`<Portfolios><Portfolio`))
	require.Error(t, err)
	assert.Equal(t, errors.ErrParse, errors.CodeOf(err))
}

func TestTransferService_ExportProduct(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)
	ctx := context.Background()

	filename, data, err := f.transfer.ExportProduct(ctx, "prod-1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "prod-1_"))
	assert.True(t, strings.HasSuffix(filename, ".xml"))

	product, err := xmlcodec.DecodeProduct(data)
	require.NoError(t, err)
	assert.Equal(t, "prod-1", product.ID)
	assert.Len(t, product.Metrics, 1)
}

func TestTransferService_ExportProductUnknown(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)

	_, _, err := f.transfer.ExportProduct(context.Background(), "prod-99")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestTransferService_ExportCombined(t *testing.T) {
	f := newFixture(t)
	f.seedDefault(t)

	filename, data, err := f.transfer.ExportCombined(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "portfolios_"))

	portfolios, err := xmlcodec.DecodePortfolios(data)
	require.NoError(t, err)
	assert.Len(t, portfolios, 2)
}
