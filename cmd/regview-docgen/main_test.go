package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/regview/regview-go/internal/viewer"
)

func writeDataset(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, p := range testDataset().Peripherals() {
		data, err := json.Marshal(p)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, p.Name+".json"), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestEndToEnd_AllPages(t *testing.T) {
	site := t.TempDir()
	docs := filepath.Join(site, "docs")

	if err := run(viewer.Config{DataPath: writeDataset(t)}, docs, "Test Device"); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, rel := range []string{
		"index.md",
		"groups/gpio.md",
		"groups/lpuart.md",
		"groups/odd.md",
		"peripherals/gpio1.md",
		"peripherals/gpio2.md",
		"peripherals/lpuart1.md",
		"peripherals/odd.md",
	} {
		if _, err := os.Stat(filepath.Join(docs, rel)); os.IsNotExist(err) {
			t.Errorf("expected page %s not created", rel)
		}
	}

	data, err := os.ReadFile(filepath.Join(site, "mkdocs.yml"))
	if err != nil {
		t.Fatalf("mkdocs.yml not written: %v", err)
	}
	if !strings.Contains(string(data), "docs_dir: docs") {
		t.Errorf("mkdocs.yml has wrong docs_dir:\n%s", data)
	}

	page, err := os.ReadFile(filepath.Join(docs, "peripherals", "gpio1.md"))
	if err != nil {
		t.Fatal(err)
	}
	mustContain(t, string(page), "### DR {#reg-dr}")
}

func TestEndToEnd_MissingData(t *testing.T) {
	err := run(viewer.Config{DataPath: filepath.Join(t.TempDir(), "missing")}, t.TempDir(), "x")
	if err == nil {
		t.Fatal("expected error for missing dataset")
	}
}

func TestEndToEnd_BadCategories(t *testing.T) {
	cats := filepath.Join(t.TempDir(), "cats.yaml")
	if err := os.WriteFile(cats, []byte("not: [a list"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := run(viewer.Config{DataPath: writeDataset(t), CategoriesPath: cats}, t.TempDir(), "x")
	if err == nil {
		t.Fatal("expected error for malformed category table")
	}
}
