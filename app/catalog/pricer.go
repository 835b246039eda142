package catalog

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
	cent    = decimal.New(1, -2)
	epsilon = decimal.New(1, -9)
)

type Pricer struct {
	config PricingConfig
}

func NewPricer(config PricingConfig) *Pricer {
	return &Pricer{config: config}
}

// Annotate prices the product from its wholesale cost, its configured reference
// price and its own tax rate when it carries one.
func (p *Pricer) Annotate(product *Product) {
	result := p.Price(ParseDecimal(product.Pvd), p.reference(*product), p.taxPct(*product))
	product.Pricing = &result
}

// Price derives the lowest compliant .99 sell price for a wholesale cost and a
// tax inclusive reference price, together with the resulting economics.
func (p *Pricer) Price(wholesale, reference, taxPct decimal.Decimal) PricingResult {
	cfg := p.config

	vat := taxPct.Div(hundred)
	fee := cfg.FeePct.Div(hundred)
	minMargin := cfg.MinMarginPct.Div(hundred)
	costs := cfg.FeeFixed.Add(cfg.ShipCost).Add(wholesale)
	netShare := one.Sub(vat).Sub(fee)

	floorProfit := cfg.MinProfit.Add(costs).Div(decimal.Max(epsilon, netShare))
	floorMargin := costs.Div(decimal.Max(epsilon, netShare.Sub(minMargin)))

	base := decimal.Max(cfg.MinPrice, floorProfit, floorMargin, reference)

	// next .99 price point at or above base
	candidate := base.Add(cent).Ceil().Sub(cent)
	sell := decimal.Min(cfg.MaxPrice, candidate)

	profit := sell.Mul(netShare).Sub(costs)
	margin := decimal.Zero
	if sell.IsPositive() {
		margin = profit.Div(sell)
	}

	ok := profit.GreaterThanOrEqual(cfg.MinProfit) &&
		margin.GreaterThanOrEqual(minMargin) &&
		sell.GreaterThanOrEqual(cfg.MinPrice) &&
		sell.LessThanOrEqual(cfg.MaxPrice)

	hasReference := !reference.IsZero()

	referenceExcl := decimal.Zero
	if hasReference {
		referenceExcl = reference.Div(one.Add(vat))
	}

	result := PricingResult{
		SellPrice:     sell.Round(2),
		Profit:        profit.Round(2),
		Margin:        margin.Round(4),
		OK:            ok,
		ReferenceInc:  reference.Round(2),
		ReferenceExcl: referenceExcl.Round(2),
	}

	if cfg.CompareReference {
		result.Compared = true
		result.AtOrAboveReference = true
		result.DiffVsReference = decimal.Zero
		if hasReference {
			result.DiffVsReference = sell.Div(reference).Sub(one).Round(4)
			result.AtOrAboveReference = sell.GreaterThanOrEqual(reference)
		}
	}

	return result
}

func (p *Pricer) reference(product Product) decimal.Decimal {
	if p.config.Reference == ReferencePvpBigbuy {
		if alt := ParseDecimal(product.PvpBigbuy); alt.IsPositive() {
			return alt
		}
	}
	return product.PriceValue()
}

func (p *Pricer) taxPct(product Product) decimal.Decimal {
	if iva := ParseDecimal(product.Iva); iva.IsPositive() {
		return iva
	}
	return p.config.VATPct
}
