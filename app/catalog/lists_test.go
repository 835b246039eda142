package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadList(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "products_list.txt")

	content := "\ufeff# BigBuy export files\nproduct_2662_en.xml\n\n  product_2609_en.xml  \n   # disabled\n#product_1000_en.xml\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	values, err := ReadList(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(values) != 2 {
		t.Fatalf("Expected 2 entries, got %d: %v", len(values), values)
	}
	if values[0] != "product_2662_en.xml" || values[1] != "product_2609_en.xml" {
		t.Errorf("Unexpected entries: %v", values)
	}
}

func TestReadListMissingFile(t *testing.T) {
	if _, err := ReadList(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing source list")
	}
}

func TestLoadOptionalList(t *testing.T) {
	tempDir := t.TempDir()

	values, err := LoadOptionalList(filepath.Join(tempDir, "allow_brands.txt"))
	if err != nil {
		t.Fatalf("Expected missing rule file to be accepted, got: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("Expected no values, got %v", values)
	}

	values, err = LoadOptionalList("")
	if err != nil || values != nil {
		t.Errorf("Expected empty path to yield nothing, got %v, %v", values, err)
	}

	path := filepath.Join(tempDir, "deny_keywords.txt")
	if err := os.WriteFile(path, []byte("Vibrator\nreplica\n"), 0644); err != nil {
		t.Fatal(err)
	}
	values, err = LoadOptionalList(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 2 {
		t.Errorf("Expected 2 keywords, got %v", values)
	}
}

func TestNewRuleSet(t *testing.T) {
	rules := NewRuleSet(Thresholds{MinStock: 2}, []string{"2662"}, []string{"Vibrator", " vibrator ", "", "STRASSE"}, []string{"Lumo"})

	if rules.MinStock != 2 {
		t.Errorf("Expected thresholds to be embedded, got min stock %d", rules.MinStock)
	}
	if !rules.AllowCategories.Has("2662") || rules.AllowCategories.Has("2609") {
		t.Error("Unexpected category allow list")
	}
	if !rules.AllowBrands.Has("Lumo") {
		t.Error("Expected brand allow list to contain Lumo")
	}
	if len(rules.DenyKeywords) != 2 {
		t.Fatalf("Expected 2 distinct keywords, got %v", rules.DenyKeywords)
	}
	if rules.DenyKeywords[0] != "vibrator" || rules.DenyKeywords[1] != "strasse" {
		t.Errorf("Expected case folded keywords, got %v", rules.DenyKeywords)
	}
}
