package publish

import (
	"github.com/lysyi3m/catalog-comb/app/catalog"
	"github.com/shopspring/decimal"
)

type ProductColumns struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Description string `csv:"description"`
	Price       string `csv:"price"`
	PvpBigbuy   string `csv:"pvp_bigbuy"`
	Pvd         string `csv:"pvd"`
	Iva         string `csv:"iva"`
	EAN13       string `csv:"ean13"`
	Stock       string `csv:"stock"`
	Image1      string `csv:"image1"`
	Category    string `csv:"category"`
	Brand       string `csv:"brand"`
	DateUpd     string `csv:"date_upd"`
	Width       string `csv:"width"`
	Height      string `csv:"height"`
	Depth       string `csv:"depth"`
	Weight      string `csv:"weight"`
}

type LightColumns struct {
	ID     string `csv:"id"`
	Name   string `csv:"name"`
	Price  string `csv:"price"`
	Pvd    string `csv:"pvd"`
	EAN13  string `csv:"ean13"`
	Stock  string `csv:"stock"`
	Image1 string `csv:"image1"`
	Brand  string `csv:"brand"`
}

type PricingColumns struct {
	SellPrice string `csv:"sell_price"`
	Profit    string `csv:"profit_eur"`
	Margin    string `csv:"margin_pct"`
	OK        string `csv:"ok"`
	AvpInc    string `csv:"avp_inc"`
	AvpExcl   string `csv:"avp_excl"`
}

type ComparisonColumns struct {
	DiffVsAvp string `csv:"diff_vs_avp"`
	GeAvp     string `csv:"ge_avp"`
}

type previewRow struct {
	Keep string `csv:"Keep?"` // left blank for manual review
	ProductColumns
	PricingColumns
	ImagePreview string `csv:"image_preview"`
}

type previewCompareRow struct {
	Keep string `csv:"Keep?"`
	ProductColumns
	PricingColumns
	ComparisonColumns
	ImagePreview string `csv:"image_preview"`
}

type lightRow struct {
	Keep string `csv:"Keep?"`
	LightColumns
	PricingColumns
}

type lightCompareRow struct {
	Keep string `csv:"Keep?"`
	LightColumns
	PricingColumns
	ComparisonColumns
}

func productColumns(p catalog.Product) ProductColumns {
	return ProductColumns{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		PvpBigbuy:   p.PvpBigbuy,
		Pvd:         p.Pvd,
		Iva:         p.Iva,
		EAN13:       p.EAN13,
		Stock:       p.Stock,
		Image1:      p.Image1,
		Category:    p.Category,
		Brand:       p.Brand,
		DateUpd:     p.DateUpd,
		Width:       p.Width,
		Height:      p.Height,
		Depth:       p.Depth,
		Weight:      p.Weight,
	}
}

func lightColumns(p catalog.Product) LightColumns {
	return LightColumns{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price,
		Pvd:    p.Pvd,
		EAN13:  p.EAN13,
		Stock:  p.Stock,
		Image1: p.Image1,
		Brand:  p.Brand,
	}
}

func pricingColumns(p catalog.Product) PricingColumns {
	if p.Pricing == nil {
		return PricingColumns{}
	}
	return PricingColumns{
		SellPrice: currency(p.Pricing.SellPrice),
		Profit:    currency(p.Pricing.Profit),
		Margin:    fraction(p.Pricing.Margin),
		OK:        boolean(p.Pricing.OK),
		AvpInc:    currency(p.Pricing.ReferenceInc),
		AvpExcl:   currency(p.Pricing.ReferenceExcl),
	}
}

func comparisonColumns(p catalog.Product) ComparisonColumns {
	if p.Pricing == nil || !p.Pricing.Compared {
		return ComparisonColumns{}
	}
	return ComparisonColumns{
		DiffVsAvp: fraction(p.Pricing.DiffVsReference),
		GeAvp:     boolean(p.Pricing.AtOrAboveReference),
	}
}

func imagePreview(p catalog.Product) string {
	if p.Image1 == "" {
		return ""
	}
	return `=IMAGE("` + p.Image1 + `")`
}

func currency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func fraction(d decimal.Decimal) string {
	return d.StringFixed(4)
}

func boolean(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
