package config

// RulesConfig is the optional YAML rules file. Numeric values are kept as
// text and parsed by the runtime configuration, which decides the fallback.
type RulesConfig struct {
	Filters FilterSettings  `yaml:"filters"`
	Pricing PricingSettings `yaml:"pricing"`
	Lists   RuleLists       `yaml:"lists"`
}

type FilterSettings struct {
	MinPrice     string `yaml:"min_price"`
	MaxPrice     string `yaml:"max_price"`
	MinStock     string `yaml:"min_stock"`
	MaxWeight    string `yaml:"max_weight"`
	RecentMonths string `yaml:"recent_months"`
	MaxProducts  string `yaml:"max_products"`
}

type PricingSettings struct {
	VATPct           string `yaml:"vat_pct"`
	ShipCost         string `yaml:"ship_cost_eur"`
	FeePct           string `yaml:"bol_fee_pct"`
	FeeFixed         string `yaml:"bol_fee_fixed"`
	MinProfit        string `yaml:"min_profit_eur"`
	MinMarginPct     string `yaml:"min_margin_pct"`
	Reference        string `yaml:"price_reference"`
	CompareReference string `yaml:"compare_reference"`
}

// RuleLists are merged with the entries of the list files.
type RuleLists struct {
	AllowCategories []string `yaml:"allow_categories"`
	DenyKeywords    []string `yaml:"deny_keywords"`
	AllowBrands     []string `yaml:"allow_brands"`
}
