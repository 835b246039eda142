package publish

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/catalog-comb/app/catalog"
	"github.com/shopspring/decimal"
)

func testProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:          "1001",
			Name:        `Mug "Classic", 350ml`,
			Description: "<b>Stoneware</b> & dishwasher safe",
			Price:       "15.00",
			Pvd:         "10.00",
			EAN13:       "8400000001001",
			Stock:       "12",
			Image1:      "https://cdn.example.com/1001.jpg",
			Category:    "2662,2700",
			Brand:       "Fish & Chips <Ltd>",
			DateUpd:     "2025-05-01 08:00:00",
			Weight:      "0.4",
			Pricing: &catalog.PricingResult{
				SellPrice:          decimal.RequireFromString("19.99"),
				Profit:             decimal.RequireFromString("3.09"),
				Margin:             decimal.RequireFromString("0.1547"),
				OK:                 true,
				ReferenceInc:       decimal.RequireFromString("15"),
				ReferenceExcl:      decimal.RequireFromString("12.4"),
				Compared:           true,
				DiffVsReference:    decimal.RequireFromString("0.3327"),
				AtOrAboveReference: true,
			},
		},
		{
			ID:    "1002",
			Name:  "Odd ]]> name",
			Price: "12",
			Pvd:   "4",
			Stock: "3",
			Pricing: &catalog.PricingResult{
				SellPrice:     decimal.RequireFromString("10.99"),
				Profit:        decimal.RequireFromString("2.06"),
				Margin:        decimal.RequireFromString("0.1874"),
				ReferenceInc:  decimal.RequireFromString("12"),
				ReferenceExcl: decimal.RequireFromString("9.92"),
			},
		},
	}
}

func readCSV(t *testing.T, path string) []map[string]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	if len(records) == 0 {
		t.Fatalf("Expected a header in %s", path)
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			row[name] = record[i]
		}
		rows = append(rows, row)
	}
	return rows
}

func readHeader(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return line
}

func TestPublishPreview(t *testing.T) {
	outDir := t.TempDir()
	publisher := NewPublisher(outDir, true)

	paths, err := publisher.Publish(testProducts())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(paths) != 3 || paths[0] != filepath.Join(outDir, PreviewFile) {
		t.Fatalf("Unexpected output paths: %v", paths)
	}

	wantHeader := "Keep?," + strings.Join(catalog.Fields, ",") +
		",sell_price,profit_eur,margin_pct,ok,avp_inc,avp_excl,diff_vs_avp,ge_avp,image_preview"
	if got := readHeader(t, paths[0]); got != wantHeader {
		t.Errorf("Unexpected preview header:\n got %s\nwant %s", got, wantHeader)
	}

	rows := readCSV(t, paths[0])
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	expected := map[string]string{
		"Keep?":         "",
		"id":            "1001",
		"name":          `Mug "Classic", 350ml`,
		"brand":         "Fish & Chips <Ltd>",
		"category":      "2662,2700",
		"sell_price":    "19.99",
		"profit_eur":    "3.09",
		"margin_pct":    "0.1547",
		"ok":            "TRUE",
		"avp_inc":       "15.00",
		"avp_excl":      "12.40",
		"diff_vs_avp":   "0.3327",
		"ge_avp":        "TRUE",
		"image_preview": `=IMAGE("https://cdn.example.com/1001.jpg")`,
	}
	for column, want := range expected {
		if first[column] != want {
			t.Errorf("Expected %s %q, got %q", column, want, first[column])
		}
	}

	second := rows[1]
	if second["image_preview"] != "" {
		t.Errorf("Expected empty image preview without image, got %q", second["image_preview"])
	}
	if second["ok"] != "FALSE" {
		t.Errorf("Expected ok FALSE, got %q", second["ok"])
	}
	if second["diff_vs_avp"] != "" || second["ge_avp"] != "" {
		t.Errorf("Expected empty comparison for a product priced without comparison, got %q/%q",
			second["diff_vs_avp"], second["ge_avp"])
	}
}

func TestPublishWithoutComparison(t *testing.T) {
	outDir := t.TempDir()
	publisher := NewPublisher(outDir, false)

	if _, err := publisher.Publish(testProducts()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	previewHeader := readHeader(t, filepath.Join(outDir, PreviewFile))
	if strings.Contains(previewHeader, "diff_vs_avp") || strings.Contains(previewHeader, "ge_avp") {
		t.Errorf("Expected no comparison columns, got %s", previewHeader)
	}
	if !strings.HasSuffix(previewHeader, ",avp_excl,image_preview") {
		t.Errorf("Expected image preview to follow pricing columns, got %s", previewHeader)
	}

	wantLight := "Keep?,id,name,price,pvd,ean13,stock,image1,brand," +
		"sell_price,profit_eur,margin_pct,ok,avp_inc,avp_excl"
	if got := readHeader(t, filepath.Join(outDir, LightFile)); got != wantLight {
		t.Errorf("Unexpected light header:\n got %s\nwant %s", got, wantLight)
	}
}

func TestPublishLight(t *testing.T) {
	outDir := t.TempDir()
	publisher := NewPublisher(outDir, true)

	if _, err := publisher.Publish(testProducts()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	path := filepath.Join(outDir, LightFile)
	wantHeader := "Keep?,id,name,price,pvd,ean13,stock,image1,brand," +
		"sell_price,profit_eur,margin_pct,ok,avp_inc,avp_excl,diff_vs_avp,ge_avp"
	if got := readHeader(t, path); got != wantHeader {
		t.Errorf("Unexpected light header:\n got %s\nwant %s", got, wantHeader)
	}

	rows := readCSV(t, path)
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0]["ean13"] != "8400000001001" || rows[0]["sell_price"] != "19.99" {
		t.Errorf("Unexpected light row: %v", rows[0])
	}
	if rows[1]["avp_excl"] != "9.92" {
		t.Errorf("Expected avp_excl 9.92, got %q", rows[1]["avp_excl"])
	}
}

func TestPublishEmpty(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "public")
	publisher := NewPublisher(outDir, true)

	if _, err := publisher.Publish(nil); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	rows := readCSV(t, filepath.Join(outDir, PreviewFile))
	if len(rows) != 0 {
		t.Errorf("Expected header only, got %d rows", len(rows))
	}

	data, err := os.ReadFile(filepath.Join(outDir, FeedFile))
	if err != nil {
		t.Fatal(err)
	}
	want := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<catalog>\n</catalog>\n"
	if string(data) != want {
		t.Errorf("Unexpected empty feed: %q", data)
	}
}

func TestFeedEscaping(t *testing.T) {
	feed := string(NewGenerator().Run(testProducts()))

	for _, want := range []string{
		"<name><![CDATA[Mug \"Classic\", 350ml]]></name>",
		"<description><![CDATA[<b>Stoneware</b> & dishwasher safe]]></description>",
		"<brand>Fish &amp; Chips &lt;Ltd&gt;</brand>",
		"<name><![CDATA[Odd ]]]]><![CDATA[> name]]></name>",
		"<weight></weight>",
	} {
		if !strings.Contains(feed, want) {
			t.Errorf("Expected feed to contain %q", want)
		}
	}
}

func TestFeedRoundTrip(t *testing.T) {
	products := testProducts()
	feed := NewGenerator().Run(products)

	parsed, err := catalog.NewParser().Run(feed)
	if err != nil {
		t.Fatalf("Expected generated feed to parse, got: %v", err)
	}
	if len(parsed) != len(products) {
		t.Fatalf("Expected %d products, got %d", len(products), len(parsed))
	}

	for i := range products {
		for _, field := range catalog.Fields {
			if got, want := parsed[i].Field(field), products[i].Field(field); got != want {
				t.Errorf("Product %d field %s: expected %q, got %q", i, field, want, got)
			}
		}
	}
}

func TestWriteMarkers(t *testing.T) {
	outDir := t.TempDir()
	publisher := NewPublisher(outDir, true)

	at := time.Date(2025, 6, 1, 14, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	if err := publisher.WriteMarkers(at); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	lastRun, err := os.ReadFile(filepath.Join(outDir, LastRunFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(lastRun) != "2025-06-01T12:30:00Z" {
		t.Errorf("Expected UTC timestamp, got %q", lastRun)
	}

	ping, err := os.ReadFile(filepath.Join(outDir, PingFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(ping) != PingOK {
		t.Errorf("Expected ping marker %q, got %q", PingOK, ping)
	}
}

func TestPublishLeavesNoTempFiles(t *testing.T) {
	outDir := t.TempDir()
	publisher := NewPublisher(outDir, true)

	for range 2 {
		if _, err := publisher.Publish(testProducts()); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	}
	if err := publisher.WriteMarkers(time.Now()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	slices.Sort(names)

	want := []string{PingFile, PreviewFile, LightFile, FeedFile, LastRunFile}
	slices.Sort(want)
	if !slices.Equal(names, want) {
		t.Errorf("Expected only published files, got %v", names)
	}
}
