package config

import "strings"

func (l *RuleLists) normalize() {
	l.AllowCategories = compact(l.AllowCategories)
	l.DenyKeywords = compact(l.DenyKeywords)
	l.AllowBrands = compact(l.AllowBrands)
}

// compact trims entries and drops the empty ones.
func compact(values []string) []string {
	var result []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
