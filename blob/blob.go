// Package blob stores exported artifacts such as synthesized OpenAPI documents.
package blob

import (
	"context"

	"github.com/awantoch/foundryflow/config"
	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/utils"
)

// Store is the interface for pluggable blob storage backends.
type Store interface {
	Put(ctx context.Context, data []byte, mime, filename string) (url string, err error)
	Get(ctx context.Context, url string) ([]byte, error)
}

// New returns the Store cfg selects. An empty driver means the local filesystem.
func New(ctx context.Context, cfg config.BlobConfig) (Store, error) {
	switch cfg.Driver {
	case "", constants.BlobDriverFilesystem:
		dir := cfg.Directory
		if dir == "" {
			dir = constants.DefaultBlobDir
		}
		return NewFilesystemStore(dir)
	case constants.BlobDriverS3:
		if cfg.Bucket == "" || cfg.Region == "" {
			return nil, utils.Errorf("s3 driver requires bucket and region")
		}
		return NewS3Store(ctx, cfg.Bucket, cfg.Region)
	default:
		return nil, utils.Errorf("unsupported blob driver: %s", cfg.Driver)
	}
}
