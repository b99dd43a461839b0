package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"portal-server/pkg/errors"
)

const backupDir = "backups"

// LocalAdapter stores objects as files under a root directory. Overwrites
// and deletes snapshot the previous content into a timestamp-suffixed backup
// path first, and writes go through a temp file swapped into place so a
// concurrent reader never observes a half-written document.
type LocalAdapter struct {
	root   string
	logger *zap.Logger
}

// NewLocalAdapter creates the root directory if needed.
func NewLocalAdapter(root string, logger *zap.Logger) (*LocalAdapter, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to create storage root", err)
	}
	return &LocalAdapter{root: root, logger: logger}, nil
}

func (a *LocalAdapter) fullPath(path string) string {
	return filepath.Join(a.root, filepath.FromSlash(path))
}

// snapshot copies the current content of path into the backup namespace.
// Best effort: a failed snapshot is logged, not fatal.
func (a *LocalAdapter) snapshot(path string) {
	current, err := os.ReadFile(a.fullPath(path))
	if err != nil {
		return
	}
	backupPath := a.fullPath(filepath.Join(backupDir, path+"."+time.Now().UTC().Format("20060102_150405")))
	if err := os.MkdirAll(filepath.Dir(backupPath), 0755); err != nil {
		a.logger.Warn("failed to create backup directory", zap.String("path", path), zap.Error(err))
		return
	}
	if err := os.WriteFile(backupPath, current, 0644); err != nil {
		a.logger.Warn("failed to write backup snapshot", zap.String("path", path), zap.Error(err))
	}
}

func (a *LocalAdapter) Save(ctx context.Context, path string, content []byte) error {
	target := a.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.NewAppError(errors.ErrStorage, "failed to create directory for "+path, err)
	}

	a.snapshot(path)

	temp := target + ".temp"
	if err := os.WriteFile(temp, content, 0644); err != nil {
		return errors.NewAppError(errors.ErrStorage, "failed to stage write for "+path, err)
	}
	if err := os.Rename(temp, target); err != nil {
		os.Remove(temp)
		return errors.NewAppError(errors.ErrStorage, "failed to commit write for "+path, err)
	}
	return nil
}

func (a *LocalAdapter) Load(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(a.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewAppError(errors.ErrNotFound, "object not found: "+path, err)
		}
		return nil, errors.NewAppError(errors.ErrStorage, "failed to read "+path, err)
	}
	return content, nil
}

func (a *LocalAdapter) List(ctx context.Context, prefix string) ([]string, error) {
	paths := []string{}
	err := filepath.WalkDir(a.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(p, ".temp") {
			return nil
		}
		rel, err := filepath.Rel(a.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, backupDir+"/") {
			return nil
		}
		if strings.HasPrefix(rel, prefix) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorage, "failed to list prefix "+prefix, err)
	}
	return paths, nil
}

func (a *LocalAdapter) Delete(ctx context.Context, path string) error {
	a.snapshot(path)
	if err := os.Remove(a.fullPath(path)); err != nil {
		if os.IsNotExist(err) {
			return errors.NewAppError(errors.ErrNotFound, "object not found: "+path, err)
		}
		return errors.NewAppError(errors.ErrStorage, "failed to delete "+path, err)
	}
	return nil
}

func (a *LocalAdapter) Publish(ctx context.Context, path string, content []byte) error {
	return a.Save(ctx, PublishedPrefix+path, content)
}
