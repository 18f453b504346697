package service

import (
	"context"
	"io"
)

// Uploader stores binary artifacts (profile snapshots, database dumps)
// under folder/publicID and returns their public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
