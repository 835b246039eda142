package catalog

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

type Filterer struct {
	rules RuleSet
	now   func() time.Time
	fold  cases.Caser
}

func NewFilterer(rules RuleSet) *Filterer {
	return NewFiltererAt(rules, time.Now)
}

// NewFiltererAt uses now as the reference clock for the recency rule.
func NewFiltererAt(rules RuleSet, now func() time.Time) *Filterer {
	return &Filterer{
		rules: rules,
		now:   now,
		fold:  cases.Fold(),
	}
}

// Run returns the kept products in input order.
func (f *Filterer) Run(products []Product) []Product {
	kept := make([]Product, 0, len(products))
	for _, product := range products {
		if ok, _ := f.Keep(product); ok {
			kept = append(kept, product)
		}
	}
	return kept
}

// Keep reports whether the product passes every rule, and if not, which rule rejected it.
func (f *Filterer) Keep(p Product) (bool, string) {
	rules := f.rules

	if !f.hasAllowedCategory(p.Category) {
		return false, fmt.Sprintf("category %q not allowed", p.Category)
	}

	if stock := p.StockQty(); stock < rules.MinStock {
		return false, fmt.Sprintf("stock %d below %d", stock, rules.MinStock)
	}

	price := p.PriceValue()
	if price.LessThan(rules.MinPrice) || price.GreaterThan(rules.MaxPrice) {
		return false, fmt.Sprintf("price %s outside [%s, %s]", price, rules.MinPrice, rules.MaxPrice)
	}

	if p.EAN13 == "" {
		return false, "missing ean13"
	}
	if p.Image1 == "" {
		return false, "missing image1"
	}

	if weight := p.WeightValue(); !weight.IsZero() && weight.GreaterThan(rules.MaxWeight) {
		return false, fmt.Sprintf("weight %s above %s", weight, rules.MaxWeight)
	}

	if !f.isRecent(p) {
		return false, fmt.Sprintf("updated %s is older than %d months", p.DateUpd, rules.RecentMonths)
	}

	if len(rules.AllowBrands) > 0 && !rules.AllowBrands.Has(p.Brand) {
		return false, fmt.Sprintf("brand %q not allowed", p.Brand)
	}

	if keyword := f.deniedKeyword(p.Name, p.Description); keyword != "" {
		return false, fmt.Sprintf("contains denied keyword %q", keyword)
	}

	return true, ""
}

func (f *Filterer) hasAllowedCategory(field string) bool {
	if len(f.rules.AllowCategories) == 0 {
		return true
	}
	for _, part := range strings.Split(field, ",") {
		part = strings.TrimSpace(part)
		if part != "" && f.rules.AllowCategories.Has(part) {
			return true
		}
	}
	return false
}

// isRecent passes products without a usable date_upd.
func (f *Filterer) isRecent(p Product) bool {
	updated, ok := p.UpdatedAt()
	if !ok {
		return true
	}
	days := int64(math.Floor(f.now().Sub(updated).Hours() / 24))
	return days <= int64(f.rules.RecentMonths)*30
}

func (f *Filterer) deniedKeyword(name, description string) string {
	if len(f.rules.DenyKeywords) == 0 {
		return ""
	}
	text := f.fold.String(name + " " + description)
	for _, keyword := range f.rules.DenyKeywords {
		if strings.Contains(text, keyword) {
			return keyword
		}
	}
	return ""
}
