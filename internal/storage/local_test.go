package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portal-server/pkg/errors"
)

func newLocal(t *testing.T) (*LocalAdapter, string) {
	t.Helper()
	root := t.TempDir()
	adapter, err := NewLocalAdapter(root, zap.NewNop())
	require.NoError(t, err)
	return adapter, root
}

func TestLocalAdapter_SaveLoad(t *testing.T) {
	adapter, root := newLocal(t)
	ctx := context.Background()

	content := []byte(`<Product id="prod-1" name="Analytics"/>`)
	require.NoError(t, adapter.Save(ctx, "portfolios/products/prod-1.xml", content))

	loaded, err := adapter.Load(ctx, "portfolios/products/prod-1.xml")
	require.NoError(t, err)
	assert.Equal(t, content, loaded)

	// The staging file must be gone after the rename.
	_, err = os.Stat(filepath.Join(root, "portfolios/products/prod-1.xml.temp"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalAdapter_LoadMissing(t *testing.T) {
	adapter, _ := newLocal(t)

	_, err := adapter.Load(context.Background(), "portfolios/nope.xml")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLocalAdapter_OverwriteSnapshotsPrevious(t *testing.T) {
	adapter, root := newLocal(t)
	ctx := context.Background()

	require.NoError(t, adapter.Save(ctx, "portfolios/index.xml", []byte("first")))
	require.NoError(t, adapter.Save(ctx, "portfolios/index.xml", []byte("second")))

	loaded, err := adapter.Load(ctx, "portfolios/index.xml")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), loaded)

	backups, err := filepath.Glob(filepath.Join(root, "backups/portfolios/index.xml.*"))
	require.NoError(t, err)
	require.Len(t, backups, 1)

	snapshot, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), snapshot)
}

func TestLocalAdapter_ListSkipsBackupsAndStaging(t *testing.T) {
	adapter, root := newLocal(t)
	ctx := context.Background()

	require.NoError(t, adapter.Save(ctx, "portfolios/products/prod-1.xml", []byte("a")))
	require.NoError(t, adapter.Save(ctx, "portfolios/products/prod-2.xml", []byte("b")))
	require.NoError(t, adapter.Save(ctx, "portfolios/products/prod-2.xml", []byte("b2")))
	require.NoError(t, adapter.Save(ctx, "other/readme.xml", []byte("c")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "portfolios/products/stray.xml.temp"), []byte("x"), 0644))

	paths, err := adapter.List(ctx, "portfolios/")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"portfolios/products/prod-1.xml",
		"portfolios/products/prod-2.xml",
	}, paths)
}

func TestLocalAdapter_DeleteSnapshotsFirst(t *testing.T) {
	adapter, root := newLocal(t)
	ctx := context.Background()

	require.NoError(t, adapter.Save(ctx, "portfolios/old.xml", []byte("gone soon")))
	require.NoError(t, adapter.Delete(ctx, "portfolios/old.xml"))

	_, err := adapter.Load(ctx, "portfolios/old.xml")
	assert.True(t, errors.IsNotFound(err))

	backups, err := filepath.Glob(filepath.Join(root, "backups/portfolios/old.xml.*"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	err = adapter.Delete(ctx, "portfolios/old.xml")
	assert.True(t, errors.IsNotFound(err))
}

func TestLocalAdapter_Publish(t *testing.T) {
	adapter, _ := newLocal(t)
	ctx := context.Background()

	require.NoError(t, adapter.Publish(ctx, "portfolios/combined.xml", []byte("published")))

	loaded, err := adapter.Load(ctx, "published/portfolios/combined.xml")
	require.NoError(t, err)
	assert.Equal(t, []byte("published"), loaded)
}
