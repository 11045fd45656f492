package log

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test"+FileExt)

	for i := 0; i < 2; i++ {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), SessionID: "s", Kind: KindNavigate, Path: "GPIO"})
		if err := logger.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test"+FileExt)
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Logging after close is ignored.
	logger.Log(Event{Kind: KindLoad})
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("file size = %d after closed Log, want 0", info.Size())
	}
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test"+FileExt)
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.Log(Event{Timestamp: time.Now(), SessionID: "s", Kind: KindRender})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 100 {
		t.Errorf("got %d events, want 100", len(events))
	}
}

func TestNewFileLoggerBadPath(t *testing.T) {
	if _, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "x"+FileExt)); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestTracePath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"session", "session" + FileExt, false},
		{"dir/session.rtrace", "dir/session.rtrace", false},
		{"session.RTRACE", "session.RTRACE", false},
		{"notes.txt", "", true},
		{"mcu_data.json", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := TracePath(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrNotTraceFile) {
					t.Errorf("TracePath(%q) error = %v, want ErrNotTraceFile", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("TracePath(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("TracePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFileLoggerAddsExtension(t *testing.T) {
	base := filepath.Join(t.TempDir(), "browse")
	logger, err := NewFileLogger(base)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if logger.Path() != base+FileExt {
		t.Errorf("Path = %q, want %q", logger.Path(), base+FileExt)
	}
	if _, err := os.Stat(base + FileExt); err != nil {
		t.Errorf("trace file not created: %v", err)
	}
}

func TestNewFileLoggerRejectsForeignExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if _, err := NewFileLogger(path); !errors.Is(err, ErrNotTraceFile) {
		t.Fatalf("NewFileLogger error = %v, want ErrNotTraceFile", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("foreign file was created")
	}
}
