package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/lysyi3m/catalog-comb/app/catalog"
	"github.com/lysyi3m/catalog-comb/app/config"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

// Numeric settings are plain text so a malformed value can fall back to its
// default instead of aborting the run.
type rawCfg struct {
	// Source configuration
	FTPHost      string `long:"ftp-host" env:"BB_HOST" description:"FTP host of the supplier catalog"`
	FTPUser      string `long:"ftp-user" env:"BB_USER" description:"FTP user"`
	FTPPassword  string `long:"ftp-password" env:"BB_PASS" description:"FTP password"`
	FTPDir       string `long:"ftp-dir" env:"BB_DIR" default:"/files/products/xml/standard" description:"Remote directory holding the catalog files"`
	SourceURL    string `long:"source-url" env:"SOURCE_URL" description:"Fetch catalog files over HTTP(S) from this base URL instead of FTP"`
	SourceDir    string `long:"source-dir" env:"SOURCE_DIR" description:"Read catalog files from this local directory instead of FTP"`
	FetchTimeout string `long:"fetch-timeout" env:"FETCH_TIMEOUT" description:"Fetch timeout in seconds (default 60)"`
	InputList    string `long:"input-list" env:"INPUT_LIST" default:"products_list.txt" description:"File listing the catalog files to process"`

	// Rule configuration
	AllowCategoriesFile string `long:"allow-categories" env:"ALLOW_CATEGORIES_FILE" default:"allow_categories.txt" description:"Allowed category ids, one per line"`
	DenyKeywordsFile    string `long:"deny-keywords" env:"DENY_KEYWORDS_FILE" default:"deny_keywords.txt" description:"Denied keywords, one per line"`
	AllowBrandsFile     string `long:"allow-brands" env:"ALLOW_BRANDS_FILE" default:"allow_brands.txt" description:"Allowed brands, one per line"`
	RulesFile           string `long:"rules-file" env:"RULES_FILE" description:"Optional YAML file with filter, pricing and list settings"`

	// Filter thresholds
	MinPrice     string `long:"min-price" env:"MIN_PRICE" description:"Minimum consumer price, also the sell price floor; sell prices round up to the next .99 at or above every floor, so a floor of 10 sells at 10.99 rather than 9.99 (default 10)"`
	MaxPrice     string `long:"max-price" env:"MAX_PRICE" description:"Maximum consumer price, also the sell price cap applied after the .99 step (default 80)"`
	MinStock     string `long:"min-stock" env:"MIN_STOCK" description:"Minimum stock (default 1)"`
	MaxWeight    string `long:"max-weight" env:"MAX_WEIGHT" description:"Maximum weight when known (default 8)"`
	RecentMonths string `long:"recent-months" env:"RECENT_MONTHS" description:"Recency window in 30 day months (default 18)"`
	MaxProducts  string `long:"max-products" env:"MAX_PRODUCTS" description:"Maximum products published, 0 for no limit (default 5000)"`

	// Pricing model
	VATPct           string `long:"vat-pct" env:"VAT_PCT" description:"Default tax percentage (default 21)"`
	ShipCost         string `long:"ship-cost" env:"SHIP_COST_EUR" description:"Shipping cost added per product (default 0)"`
	FeePct           string `long:"fee-pct" env:"BOL_FEE_PCT" description:"Marketplace fee percentage (default 12)"`
	FeeFixed         string `long:"fee-fixed" env:"BOL_FEE_FIXED" description:"Marketplace fixed fee (default 0.30)"`
	MinProfit        string `long:"min-profit" env:"MIN_PROFIT_EUR" description:"Minimum profit per product (default 3)"`
	MinMarginPct     string `long:"min-margin-pct" env:"MIN_MARGIN_PCT" description:"Minimum margin percentage (default 15)"`
	Reference        string `long:"price-reference" env:"PRICE_REFERENCE" description:"Reference price field: price or pvp_bigbuy (default price)"`
	CompareReference string `long:"compare-reference" env:"COMPARE_REFERENCE" description:"Emit reference comparison columns (default true)"`

	// Output configuration
	OutDir      string `long:"out-dir" env:"OUT_DIR" default:"public" description:"Directory the feeds are published to"`
	MetricsFile string `long:"metrics-file" env:"METRICS_FILE" description:"Write run metrics to this Prometheus textfile (optional)"`
	Port        string `long:"port" env:"PORT" default:"8080" description:"HTTP port of the publication server"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Catalog Comb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" description:"Timezone for product update dates (e.g., Europe/Madrid)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load reads a .env file when present, then flags and environment, then the
// optional rules file. It returns nil when help was requested.
func Load() (*Cfg, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}
	return loadFrom(os.Args[1:])
}

func loadFrom(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	rules, err := config.Load(raw.RulesFile)
	if err != nil {
		return nil, err
	}

	filters := rules.Filters
	pricing := rules.Pricing

	thresholds := catalog.Thresholds{
		MinPrice:     pickDecimal("MIN_PRICE", "10", raw.MinPrice, filters.MinPrice),
		MaxPrice:     pickDecimal("MAX_PRICE", "80", raw.MaxPrice, filters.MaxPrice),
		MinStock:     int64(pickInt("MIN_STOCK", 1, raw.MinStock, filters.MinStock)),
		MaxWeight:    pickDecimal("MAX_WEIGHT", "8", raw.MaxWeight, filters.MaxWeight),
		RecentMonths: pickInt("RECENT_MONTHS", 18, raw.RecentMonths, filters.RecentMonths),
		MaxProducts:  pickInt("MAX_PRODUCTS", 5000, raw.MaxProducts, filters.MaxProducts),
	}

	cfg := &Cfg{
		FTPHost:      raw.FTPHost,
		FTPUser:      raw.FTPUser,
		FTPPassword:  raw.FTPPassword,
		FTPDir:       raw.FTPDir,
		SourceURL:    raw.SourceURL,
		SourceDir:    raw.SourceDir,
		FetchTimeout: time.Duration(pickPositiveInt("FETCH_TIMEOUT", 60, raw.FetchTimeout)) * time.Second,
		InputList:    raw.InputList,

		AllowCategoriesFile: raw.AllowCategoriesFile,
		DenyKeywordsFile:    raw.DenyKeywordsFile,
		AllowBrandsFile:     raw.AllowBrandsFile,
		AllowCategories:     rules.Lists.AllowCategories,
		DenyKeywords:        rules.Lists.DenyKeywords,
		AllowBrands:         rules.Lists.AllowBrands,
		Thresholds:          thresholds,
		Pricing: catalog.PricingConfig{
			VATPct:           pickDecimal("VAT_PCT", "21", raw.VATPct, pricing.VATPct),
			ShipCost:         pickDecimal("SHIP_COST_EUR", "0", raw.ShipCost, pricing.ShipCost),
			FeePct:           pickDecimal("BOL_FEE_PCT", "12", raw.FeePct, pricing.FeePct),
			FeeFixed:         pickDecimal("BOL_FEE_FIXED", "0.30", raw.FeeFixed, pricing.FeeFixed),
			MinProfit:        pickDecimal("MIN_PROFIT_EUR", "3", raw.MinProfit, pricing.MinProfit),
			MinMarginPct:     pickDecimal("MIN_MARGIN_PCT", "15", raw.MinMarginPct, pricing.MinMarginPct),
			MinPrice:         thresholds.MinPrice,
			MaxPrice:         thresholds.MaxPrice,
			Reference:        pickReference(raw.Reference, pricing.Reference),
			CompareReference: pickBool("COMPARE_REFERENCE", true, raw.CompareReference, pricing.CompareReference),
		},

		OutDir:      raw.OutDir,
		MetricsFile: raw.MetricsFile,
		Port:        raw.Port,

		UserAgent: raw.UserAgent,
		Timezone:  raw.Timezone,
		Debug:     raw.Debug,
		Version:   GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
