package catalog

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// ParseDecimal parses a supplier number, accepting a comma as decimal separator.
// Anything unparseable yields zero.
func ParseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseInt truncates a supplier number toward zero, so "3.7" is 3.
// Values beyond the int64 range saturate.
func ParseInt(s string) int64 {
	d := ParseDecimal(s).Truncate(0)
	switch {
	case d.GreaterThan(maxInt64):
		return math.MaxInt64
	case d.LessThan(minInt64):
		return math.MinInt64
	}
	return d.IntPart()
}
