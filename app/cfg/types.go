package cfg

import (
	"time"

	"github.com/lysyi3m/catalog-comb/app/catalog"
)

type Cfg struct {
	// Source configuration
	FTPHost      string
	FTPUser      string
	FTPPassword  string
	FTPDir       string
	SourceURL    string
	SourceDir    string
	FetchTimeout time.Duration
	InputList    string

	// Rule configuration
	AllowCategoriesFile string
	DenyKeywordsFile    string
	AllowBrandsFile     string
	AllowCategories     []string // from the rules file, merged with the list file
	DenyKeywords        []string
	AllowBrands         []string
	Thresholds          catalog.Thresholds
	Pricing             catalog.PricingConfig

	// Output configuration
	OutDir      string
	MetricsFile string
	Port        string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
