package storage

import (
	"context"
	"io"
)

// Provider is the destination for export artifacts.
type Provider interface {
	// StreamToFile returns a WriteCloser; data written to it is streamed
	// to the destination under key (a relative path). The channel yields a
	// single error, or nil, once the storage side has finished.
	StreamToFile(ctx context.Context, key string) (io.WriteCloser, <-chan error)

	// OpenFile opens a stored artifact for reading.
	OpenFile(ctx context.Context, key string) (io.ReadCloser, error)

	// GetDownloadURL returns a viewable/downloadable URL for the artifact.
	GetDownloadURL(key string) string
}
