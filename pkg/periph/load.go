package periph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrEmptyDataset      = errors.New("dataset contains no peripherals")
)

// jsWrapperPrefix is the assignment emitted by the browser bundler.
const jsWrapperPrefix = "window.MCU_DATA"

// FileError records a single file that could not be loaded.
type FileError struct {
	Path string
	Err  error
}

// LoadError aggregates per-file failures from LoadDir. The dataset returned
// alongside a LoadError still holds every file that did load.
type LoadError struct {
	Files []FileError
}

func (e *LoadError) Error() string {
	if len(e.Files) == 1 {
		return fmt.Sprintf("loading %s: %v", e.Files[0].Path, e.Files[0].Err)
	}
	return fmt.Sprintf("%d files failed to load (first: %s: %v)",
		len(e.Files), e.Files[0].Path, e.Files[0].Err)
}

// Unwrap exposes the individual file errors to errors.Is / errors.As.
func (e *LoadError) Unwrap() []error {
	errs := make([]error, len(e.Files))
	for i, f := range e.Files {
		errs[i] = f.Err
	}
	return errs
}

// Source provides a dataset on demand. The web server reloads through it.
type Source interface {
	Load() (*Dataset, error)
}

// PathSource loads a dataset from a file or directory path.
type PathSource struct {
	Path string
}

// Load implements Source.
func (s PathSource) Load() (*Dataset, error) {
	return Load(s.Path)
}

// Load reads a dataset from path, dispatching on whether it is a directory
// or on its file extension.
func Load(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".js":
		return LoadBundle(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".cbor":
		return LoadCBOR(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadDir reads one peripheral per *.json file in dir. A peripheral without
// a name is keyed by its file name. Files that fail to parse are collected
// into a *LoadError; the remaining peripherals are still returned.
func LoadDir(dir string) (*Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var peripherals []*Peripheral
	var failed []FileError

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if strings.ToLower(ext) != ".json" {
			continue
		}

		path := filepath.Join(dir, name)
		p, err := loadPeripheralFile(path)
		if err != nil {
			failed = append(failed, FileError{Path: path, Err: err})
			continue
		}
		if p.Name == "" {
			p.Name = strings.TrimSuffix(name, ext)
		}
		peripherals = append(peripherals, p)
	}

	ds := NewDataset(peripherals...)
	if len(failed) > 0 {
		sort.Slice(failed, func(i, j int) bool { return failed[i].Path < failed[j].Path })
		return ds, &LoadError{Files: failed}
	}
	return ds, nil
}

func loadPeripheralFile(path string) (*Peripheral, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Peripheral
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing peripheral: %w", err)
	}
	return &p, nil
}

// LoadBundle reads a JSON bundle keyed by peripheral name.
func LoadBundle(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseBundle(data)
}

// ParseBundle parses a JSON bundle. The "window.MCU_DATA = {...};" wrapper is
// accepted and stripped.
func ParseBundle(data []byte) (*Dataset, error) {
	data = stripJSWrapper(data)

	var bundle map[string]*Peripheral
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing bundle: %w", err)
	}
	return fromBundle(bundle)
}

func stripJSWrapper(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if !bytes.HasPrefix(trimmed, []byte(jsWrapperPrefix)) {
		return trimmed
	}
	if i := bytes.IndexByte(trimmed, '='); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	trimmed = bytes.TrimSpace(trimmed)
	return bytes.TrimSuffix(trimmed, []byte(";"))
}

// LoadYAML reads a YAML bundle keyed by peripheral name.
func LoadYAML(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseYAML(data)
}

// ParseYAML parses a YAML bundle keyed by peripheral name.
func ParseYAML(data []byte) (*Dataset, error) {
	var bundle map[string]*Peripheral
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing yaml bundle: %w", err)
	}
	return fromBundle(bundle)
}

func fromBundle(bundle map[string]*Peripheral) (*Dataset, error) {
	if len(bundle) == 0 {
		return nil, ErrEmptyDataset
	}
	peripherals := make([]*Peripheral, 0, len(bundle))
	for key, p := range bundle {
		if p == nil {
			continue
		}
		if p.Name == "" {
			p.Name = key
		}
		peripherals = append(peripherals, p)
	}
	return NewDataset(peripherals...), nil
}

// WriteJSON writes the dataset as a JSON bundle keyed by peripheral name.
func WriteJSON(w io.Writer, ds *Dataset) error {
	enc := json.NewEncoder(w)
	return enc.Encode(ds.byName)
}
