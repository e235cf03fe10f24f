package catalog

import (
	"context"
	"os"
	"path/filepath"
)

// AssetDeleter removes a stored product image. Failures are the caller's to
// tolerate; the domain layer treats asset cleanup as best effort.
type AssetDeleter interface {
	DeleteAsset(ctx context.Context, name string) error
}

// DiskAssets deletes image files from a local directory.
type DiskAssets struct {
	Dir string
}

func (d DiskAssets) DeleteAsset(_ context.Context, name string) error {
	return os.Remove(filepath.Join(d.Dir, filepath.Base(name)))
}

// NopAssets ignores deletions. Used when no asset store is configured.
type NopAssets struct{}

func (NopAssets) DeleteAsset(context.Context, string) error { return nil }
