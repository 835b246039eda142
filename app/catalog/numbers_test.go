package catalog

import (
	"math"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	cases := map[string]string{
		"12.50":  "12.5",
		"12,50":  "12.5",
		" 7 ":    "7",
		"":       "0",
		"n/a":    "0",
		"1.2.3":  "0",
		"-0,75":  "-0.75",
		"2.5e2":  "250",
	}

	for input, want := range cases {
		if got := ParseDecimal(input); !got.Equal(dec(want)) {
			t.Errorf("ParseDecimal(%q): expected %s, got %s", input, want, got)
		}
	}
}

func TestParseInt(t *testing.T) {
	cases := map[string]int64{
		"3":      3,
		"3.7":    3,
		"-2.9":   -2,
		"12,9":   12,
		"":       0,
		"lots":   0,
		"1e30":   math.MaxInt64,
		"-1e30":  math.MinInt64,
		"9.3e18": math.MaxInt64,
	}

	for input, want := range cases {
		if got := ParseInt(input); got != want {
			t.Errorf("ParseInt(%q): expected %d, got %d", input, want, got)
		}
	}
}
