// Package viewer loads a dataset and category table into the objects every
// front-end shares.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"github.com/regview/regview-go/pkg/browse"
	"github.com/regview/regview-go/pkg/classify"
	"github.com/regview/regview-go/pkg/inspect"
	"github.com/regview/regview-go/pkg/log"
	"github.com/regview/regview-go/pkg/periph"
)

// Config selects what to load.
type Config struct {
	// DataPath is a dataset directory or bundle file.
	DataPath string

	// CategoriesPath is an optional YAML category table. Empty selects the
	// built-in table.
	CategoriesPath string
}

// Viewer is one loaded dataset ready for browsing.
type Viewer struct {
	Browser  *browse.Browser
	Resolver *inspect.Resolver

	Source   string
	LoadedAt time.Time
	Duration time.Duration

	// Failed lists dataset files skipped during a directory load.
	Failed []periph.FileError
}

// Open loads the dataset and classifies it. Files that fail to parse in a
// dataset directory are reported in Failed rather than as an error, unless
// nothing loaded at all.
func Open(cfg Config) (*Viewer, error) {
	cats := classify.DefaultCategories()
	if cfg.CategoriesPath != "" {
		var err error
		cats, err = classify.LoadCategories(cfg.CategoriesPath)
		if err != nil {
			return nil, err
		}
	}
	return open(periph.PathSource{Path: cfg.DataPath}, cfg.DataPath, cats)
}

// Reload builds a fresh Viewer from the same source and categories.
func (v *Viewer) Reload() (*Viewer, error) {
	return open(periph.PathSource{Path: v.Source}, v.Source, v.Browser.Categories())
}

func open(src periph.Source, name string, cats []classify.Category) (*Viewer, error) {
	start := time.Now()

	ds, err := src.Load()
	var loadErr *periph.LoadError
	switch {
	case errors.As(err, &loadErr) && ds != nil && ds.Len() > 0:
		// Partial load.
	case err != nil:
		return nil, err
	}
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", name, periph.ErrEmptyDataset)
	}

	b := browse.New(ds, cats)
	v := &Viewer{
		Browser:  b,
		Resolver: inspect.NewResolver(ds, b.Index()),
		Source:   name,
		LoadedAt: start,
		Duration: time.Since(start),
	}
	if loadErr != nil {
		v.Failed = loadErr.Files
	}
	return v, nil
}

// LoadData summarizes the load for a trace event.
func (v *Viewer) LoadData() log.LoadData {
	return log.LoadData{
		Source:      v.Source,
		Peripherals: v.Browser.Dataset().Len(),
		Groups:      v.Browser.Index().Result().GroupCount(),
		Failed:      len(v.Failed),
		Duration:    v.Duration,
	}
}
