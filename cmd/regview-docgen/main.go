package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/regview/regview-go/internal/viewer"
)

func main() {
	dataPath := flag.String("data", os.Getenv("REGVIEW_DATA"), "Dataset directory or bundle file")
	outputDir := flag.String("output", "", "Output directory for generated Markdown")
	categories := flag.String("categories", "", "Category table (YAML); empty uses the built-in table")
	title := flag.String("title", "Peripheral Registers", "Site title")
	flag.Parse()

	if *dataPath == "" || *outputDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: regview-docgen -data <path> -output <dir> [-categories <file>] [-title <title>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := viewer.Config{DataPath: *dataPath, CategoriesPath: *categories}
	if err := run(cfg, *outputDir, *title); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg viewer.Config, outputDir, title string) error {
	model, err := BuildDocModel(cfg, title)
	if err != nil {
		return fmt.Errorf("building doc model: %w", err)
	}
	for _, fe := range model.Failed {
		fmt.Fprintf(os.Stderr, "warning: skipped %s: %v\n", fe.Path, fe.Err)
	}

	if err := generateAll(model, outputDir); err != nil {
		return err
	}

	// mkdocs.yml goes next to the docs directory.
	return writeMkDocsConfig(model, filepath.Dir(filepath.Clean(outputDir)), filepath.Base(filepath.Clean(outputDir)))
}
