package publish

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lysyi3m/catalog-comb/app/catalog"
)

const (
	PreviewFile = "catalog_preview.csv"
	LightFile   = "catalog_light.csv"
	FeedFile    = "feed.xml"
	LastRunFile = "last_run.txt"
	PingFile    = "_ping.txt"

	PingOK = "ok"
)

type Publisher struct {
	outDir           string
	compareReference bool
	generator        *Generator
}

func NewPublisher(outDir string, compareReference bool) *Publisher {
	return &Publisher{
		outDir:           outDir,
		compareReference: compareReference,
		generator:        NewGenerator(),
	}
}

// Publish writes the preview CSV, the light CSV and the XML feed and returns
// their paths in that order.
func (p *Publisher) Publish(products []catalog.Product) ([]string, error) {
	if err := os.MkdirAll(p.outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var preview, light bytes.Buffer
	if err := writePreview(&preview, products, p.compareReference); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", PreviewFile, err)
	}
	if err := writeLight(&light, products, p.compareReference); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", LightFile, err)
	}

	outputs := []struct {
		name string
		data []byte
	}{
		{PreviewFile, preview.Bytes()},
		{LightFile, light.Bytes()},
		{FeedFile, p.generator.Run(products)},
	}

	paths := make([]string, 0, len(outputs))
	for _, out := range outputs {
		path, err := p.write(out.name, out.data)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// WriteMarkers records the completion time and the liveness marker.
func (p *Publisher) WriteMarkers(at time.Time) error {
	if err := os.MkdirAll(p.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if _, err := p.write(LastRunFile, []byte(at.UTC().Format(time.RFC3339))); err != nil {
		return err
	}
	if _, err := p.write(PingFile, []byte(PingOK)); err != nil {
		return err
	}
	return nil
}

func (p *Publisher) write(name string, data []byte) (string, error) {
	path := filepath.Join(p.outDir, name)

	tmp, err := os.CreateTemp(p.outDir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to replace %s: %w", name, err)
	}

	return path, nil
}
