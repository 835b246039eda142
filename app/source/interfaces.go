package source

import (
	"context"
)

// Fetcher returns the raw bytes of one named catalog file.
// Implementations are used from a single goroutine.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
	Close() error
}

var (
	_ Fetcher = (*FTP)(nil)
	_ Fetcher = (*HTTP)(nil)
	_ Fetcher = (*Dir)(nil)
)
