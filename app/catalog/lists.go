package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/cases"
)

type StringSet map[string]struct{}

func NewStringSet(values ...string) StringSet {
	set := make(StringSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// NewRuleSet builds an immutable rule set. Duplicate and empty keywords are dropped.
func NewRuleSet(thresholds Thresholds, categories, keywords, brands []string) RuleSet {
	fold := cases.Fold()

	seen := make(StringSet, len(keywords))
	folded := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = fold.String(strings.TrimSpace(kw))
		if kw == "" || seen.Has(kw) {
			continue
		}
		seen[kw] = struct{}{}
		folded = append(folded, kw)
	}

	return RuleSet{
		Thresholds:      thresholds,
		AllowCategories: NewStringSet(categories...),
		AllowBrands:     NewStringSet(brands...),
		DenyKeywords:    folded,
	}
}

// ReadList reads one token per line, skipping blank lines and # comments.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list: %w", err)
	}
	defer f.Close()

	values, err := parseList(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read list %s: %w", path, err)
	}
	return values, nil
}

// LoadOptionalList is ReadList for rule files: a missing file means no restriction.
func LoadOptionalList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := ReadList(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return values, err
}

func parseList(r io.Reader) ([]string, error) {
	var values []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		values = append(values, line)
	}
	return values, scanner.Err()
}
