package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileExt is the extension of trace files.
const FileExt = ".rtrace"

// ErrNotTraceFile is returned when a trace path has a foreign extension.
var ErrNotTraceFile = errors.New("not a " + FileExt + " file")

// FileLogger appends CBOR-encoded events to a trace file.
// It is safe for concurrent use from multiple goroutines.
type FileLogger struct {
	path    string
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
}

// TracePath normalizes a trace file path: FileExt is appended when path has
// no extension, and any other extension is rejected so a typo cannot append
// CBOR to an unrelated file.
func TracePath(path string) (string, error) {
	switch ext := filepath.Ext(path); {
	case ext == "":
		return path + FileExt, nil
	case strings.EqualFold(ext, FileExt):
		return path, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrNotTraceFile, path)
	}
}

// NewFileLogger opens the trace file at TracePath(path) for appending,
// creating it with mode 0644 if needed.
func NewFileLogger(path string) (*FileLogger, error) {
	path, err := TracePath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{
		path:    path,
		file:    f,
		encoder: NewEncoder(f),
	}, nil
}

// Path returns the file the logger appends to.
func (l *FileLogger) Path() string {
	return l.path
}

// Log writes an event to the trace file.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	// Tracing must not disrupt the front-end.
	_ = l.encoder.Encode(event)
}

// Close closes the trace file. Further Log calls are ignored.
// It is safe to call Close multiple times.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}

	l.closed = true
	return l.file.Close()
}

// Compile-time interface satisfaction check.
var _ Logger = (*FileLogger)(nil)
