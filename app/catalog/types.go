package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product processing types

// Fields lists the product attributes in the order they are parsed and published.
var Fields = []string{
	"id", "name", "description", "price", "pvp_bigbuy", "pvd", "iva", "ean13", "stock",
	"image1", "category", "brand", "date_upd", "width", "height", "depth", "weight",
}

const DateLayout = "2006-01-02 15:04:05"

type Product struct {
	ID          string `xml:"id"`
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Price       string `xml:"price"`      // consumer price incl. tax
	PvpBigbuy   string `xml:"pvp_bigbuy"` // alternate consumer price incl. tax
	Pvd         string `xml:"pvd"`        // wholesale cost excl. tax
	Iva         string `xml:"iva"`        // tax percentage
	EAN13       string `xml:"ean13"`
	Stock       string `xml:"stock"`
	Image1      string `xml:"image1"`
	Category    string `xml:"category"` // comma separated category ids
	Brand       string `xml:"brand"`
	DateUpd     string `xml:"date_upd"`
	Width       string `xml:"width"`
	Height      string `xml:"height"`
	Depth       string `xml:"depth"`
	Weight      string `xml:"weight"`

	Pricing *PricingResult `xml:"-"`
}

// Field returns the raw value of a declared attribute.
func (p Product) Field(name string) string {
	switch name {
	case "id":
		return p.ID
	case "name":
		return p.Name
	case "description":
		return p.Description
	case "price":
		return p.Price
	case "pvp_bigbuy":
		return p.PvpBigbuy
	case "pvd":
		return p.Pvd
	case "iva":
		return p.Iva
	case "ean13":
		return p.EAN13
	case "stock":
		return p.Stock
	case "image1":
		return p.Image1
	case "category":
		return p.Category
	case "brand":
		return p.Brand
	case "date_upd":
		return p.DateUpd
	case "width":
		return p.Width
	case "height":
		return p.Height
	case "depth":
		return p.Depth
	case "weight":
		return p.Weight
	default:
		return ""
	}
}

func (p Product) StockQty() int64 {
	return ParseInt(p.Stock)
}

func (p Product) PriceValue() decimal.Decimal {
	return ParseDecimal(p.Price)
}

func (p Product) WeightValue() decimal.Decimal {
	return ParseDecimal(p.Weight)
}

// UpdatedAt reports the parsed date_upd and whether it was present and valid.
func (p Product) UpdatedAt() (time.Time, bool) {
	if p.DateUpd == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, p.DateUpd, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Rule configuration types

type Thresholds struct {
	MinPrice     decimal.Decimal
	MaxPrice     decimal.Decimal
	MinStock     int64
	MaxWeight    decimal.Decimal
	RecentMonths int
	MaxProducts  int // 0 disables the cap
}

type RuleSet struct {
	Thresholds
	AllowCategories StringSet
	AllowBrands     StringSet
	DenyKeywords    []string // case folded
}

// Pricing types

type ReferenceField string

const (
	ReferencePrice     ReferenceField = "price"
	ReferencePvpBigbuy ReferenceField = "pvp_bigbuy"
)

type PricingConfig struct {
	VATPct           decimal.Decimal
	ShipCost         decimal.Decimal
	FeePct           decimal.Decimal
	FeeFixed         decimal.Decimal
	MinProfit        decimal.Decimal
	MinMarginPct     decimal.Decimal
	MinPrice         decimal.Decimal
	MaxPrice         decimal.Decimal
	Reference        ReferenceField
	CompareReference bool // emit DiffVsReference and AtOrAboveReference
}

type PricingResult struct {
	SellPrice     decimal.Decimal
	Profit        decimal.Decimal
	Margin        decimal.Decimal // fraction, 0.1578 = 15.78%
	OK            bool
	ReferenceInc  decimal.Decimal
	ReferenceExcl decimal.Decimal

	Compared           bool
	DiffVsReference    decimal.Decimal
	AtOrAboveReference bool
}
