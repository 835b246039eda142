package cfg

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/lysyi3m/catalog-comb/app/catalog"
	"github.com/shopspring/decimal"
)

// firstSet returns the first non-blank value, flags and environment first.
func firstSet(values ...string) (string, bool) {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v, true
		}
	}
	return "", false
}

func warnInvalid(key, value string, def any) {
	slog.Warn("Invalid configuration value, using default", "key", key, "value", value, "default", def)
}

func pickDecimal(key, def string, values ...string) decimal.Decimal {
	fallback := decimal.RequireFromString(def)

	v, ok := firstSet(values...)
	if !ok {
		return fallback
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", "."))
	if err != nil {
		warnInvalid(key, v, def)
		return fallback
	}
	return d
}

func pickInt(key string, def int, values ...string) int {
	v, ok := firstSet(values...)
	if !ok {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		warnInvalid(key, v, def)
		return def
	}
	return n
}

func pickPositiveInt(key string, def int, values ...string) int {
	n := pickInt(key, def, values...)
	if n <= 0 {
		warnInvalid(key, strconv.Itoa(n), def)
		return def
	}
	return n
}

func pickBool(key string, def bool, values ...string) bool {
	v, ok := firstSet(values...)
	if !ok {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		warnInvalid(key, v, def)
		return def
	}
	return b
}

func pickReference(values ...string) catalog.ReferenceField {
	v, ok := firstSet(values...)
	if !ok {
		return catalog.ReferencePrice
	}

	switch field := catalog.ReferenceField(strings.ToLower(v)); field {
	case catalog.ReferencePrice, catalog.ReferencePvpBigbuy:
		return field
	default:
		warnInvalid("PRICE_REFERENCE", v, catalog.ReferencePrice)
		return catalog.ReferencePrice
	}
}
