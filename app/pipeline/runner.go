package pipeline

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/lysyi3m/catalog-comb/app/catalog"
	"github.com/lysyi3m/catalog-comb/app/source"
)

type Recorder interface {
	FileProcessed(parsed, kept int)
	FileFailed(stage string)
}

type FileResult struct {
	Name     string
	Parsed   int
	Kept     int
	Duration time.Duration
	Err      error
}

type Result struct {
	Files     []FileResult
	Products  []catalog.Product
	FilesDone int // files that were fetched and parsed
}

type Runner struct {
	fetcher     source.Fetcher
	parser      *catalog.Parser
	filterer    *catalog.Filterer
	pricer      *catalog.Pricer
	maxProducts int
	recorder    Recorder
	logger      *slog.Logger
}

func NewRunner(fetcher source.Fetcher, parser *catalog.Parser, filterer *catalog.Filterer,
	pricer *catalog.Pricer, maxProducts int, recorder Recorder, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		fetcher:     fetcher,
		parser:      parser,
		filterer:    filterer,
		pricer:      pricer,
		maxProducts: maxProducts,
		recorder:    recorder,
		logger:      logger,
	}
}

// Run processes the files one after another. A file that cannot be fetched
// or parsed is skipped; the run always returns whatever was accumulated.
func (r *Runner) Run(ctx context.Context, files []string) Result {
	var result Result
	var accumulated []catalog.Product

	for _, name := range files {
		if ctx.Err() != nil {
			r.logger.Warn("Run interrupted, skipping remaining files", "file", name, "error", ctx.Err())
			break
		}

		fileResult, kept := r.processFile(ctx, name)
		result.Files = append(result.Files, fileResult)
		if fileResult.Err != nil {
			continue
		}

		result.FilesDone++
		accumulated = append(accumulated, kept...)
	}

	sortProducts(accumulated)

	if r.maxProducts > 0 && len(accumulated) > r.maxProducts {
		accumulated = accumulated[:r.maxProducts]
	}

	for i := range accumulated {
		r.pricer.Annotate(&accumulated[i])
	}

	result.Products = accumulated
	return result
}

func (r *Runner) processFile(ctx context.Context, name string) (FileResult, []catalog.Product) {
	started := time.Now()
	fileResult := FileResult{Name: name}

	data, err := r.fetcher.Fetch(ctx, name)
	if err != nil {
		return r.fail(fileResult, started, "fetch", fmt.Errorf("failed to fetch: %w", err)), nil
	}

	products, err := r.parser.Run(data)
	if err != nil {
		return r.fail(fileResult, started, "parse", err), nil
	}

	kept := make([]catalog.Product, 0, len(products))
	for _, product := range products {
		ok, reason := r.filterer.Keep(product)
		if !ok {
			r.logger.Debug("Product filtered", "file", name, "id", product.ID, "reason", reason)
			continue
		}
		kept = append(kept, product)
	}

	fileResult.Parsed = len(products)
	fileResult.Kept = len(kept)
	fileResult.Duration = time.Since(started)

	if r.recorder != nil {
		r.recorder.FileProcessed(fileResult.Parsed, fileResult.Kept)
	}

	r.logger.Info("File processed",
		"file", name,
		"parsed", fileResult.Parsed,
		"kept", fileResult.Kept,
		"duration", fileResult.Duration)

	return fileResult, kept
}

func (r *Runner) fail(fileResult FileResult, started time.Time, stage string, err error) FileResult {
	fileResult.Err = err
	fileResult.Duration = time.Since(started)

	if r.recorder != nil {
		r.recorder.FileFailed(stage)
	}

	r.logger.Warn("File skipped", "file", fileResult.Name, "stage", stage, "error", err)
	return fileResult
}

// sortProducts orders by stock descending, then primary price ascending.
// Ties keep their accumulation order.
func sortProducts(products []catalog.Product) {
	slices.SortStableFunc(products, func(a, b catalog.Product) int {
		if c := cmp.Compare(b.StockQty(), a.StockQty()); c != 0 {
			return c
		}
		return a.PriceValue().Cmp(b.PriceValue())
	})
}
