package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Dir reads catalog files from a local directory, e.g. a mirrored export.
type Dir struct {
	root string
}

func NewDir(root string) *Dir {
	return &Dir{root: root}
}

func (d *Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid file name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(d.root, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (d *Dir) Close() error {
	return nil
}
