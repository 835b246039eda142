package publish

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/lysyi3m/catalog-comb/app/catalog"
)

func writeCSV[T any](w io.Writer, rows []T) error {
	cw := csv.NewWriter(w)

	enc := csvutil.NewEncoder(cw)
	enc.AutoHeader = false

	// header goes out even when there are no rows
	var zero T
	if err := enc.EncodeHeader(zero); err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}

	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to encode row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func writePreview(w io.Writer, products []catalog.Product, compare bool) error {
	if compare {
		rows := make([]previewCompareRow, len(products))
		for i, p := range products {
			rows[i] = previewCompareRow{
				ProductColumns:    productColumns(p),
				PricingColumns:    pricingColumns(p),
				ComparisonColumns: comparisonColumns(p),
				ImagePreview:      imagePreview(p),
			}
		}
		return writeCSV(w, rows)
	}

	rows := make([]previewRow, len(products))
	for i, p := range products {
		rows[i] = previewRow{
			ProductColumns: productColumns(p),
			PricingColumns: pricingColumns(p),
			ImagePreview:   imagePreview(p),
		}
	}
	return writeCSV(w, rows)
}

func writeLight(w io.Writer, products []catalog.Product, compare bool) error {
	if compare {
		rows := make([]lightCompareRow, len(products))
		for i, p := range products {
			rows[i] = lightCompareRow{
				LightColumns:      lightColumns(p),
				PricingColumns:    pricingColumns(p),
				ComparisonColumns: comparisonColumns(p),
			}
		}
		return writeCSV(w, rows)
	}

	rows := make([]lightRow, len(products))
	for i, p := range products {
		rows[i] = lightRow{
			LightColumns:   lightColumns(p),
			PricingColumns: pricingColumns(p),
		}
	}
	return writeCSV(w, rows)
}
