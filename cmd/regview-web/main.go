// Command regview-web serves the register viewer as a single-page web
// application with a JSON API.
//
// Usage:
//
//	regview-web [flags]
//
// Flags:
//
//	-addr string        Listen address (default "127.0.0.1:8080")
//	-data string        Dataset directory or bundle file (default ".")
//	-categories string  Category table YAML (default: built-in table)
//	-trace string       Append navigation trace events to this .rtrace file
//	-log-level string   Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Serve a directory of per-peripheral JSON files
//	regview-web -data ./peripherals
//
//	# Serve a browser bundle and record a trace
//	regview-web -data mcu_data.js -trace web.rtrace
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/regview/regview-go/pkg/log"
)

// Version information - set at build time via ldflags
var (
	Version   = "0.1.0"
	BuildDate = "dev"
	GitCommit = "unknown"
)

var (
	addr        = flag.String("addr", "127.0.0.1:8080", "Listen address")
	dataPath    = flag.String("data", ".", "Dataset directory or bundle file (.json, .js, .yaml, .cbor)")
	catPath     = flag.String("categories", "", "Category table YAML (default: built-in table)")
	tracePath   = flag.String("trace", "", "Append navigation trace events to this .rtrace file")
	logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showVersion {
		fmt.Printf("regview-web %s (built %s, commit %s)\n", Version, BuildDate, GitCommit)
		return 0
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", *logLevel)
		return 1
	}

	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)
	if level == slog.LevelDebug {
		stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime | stdlog.Lmicroseconds | stdlog.Lshortfile)
	}

	// Trace events go to the console at debug level and to the trace file.
	console := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	loggers := []log.Logger{log.NewSlogAdapter(console)}
	if *tracePath != "" {
		fl, err := log.NewFileLogger(*tracePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open trace: %v\n", err)
			return 1
		}
		defer fl.Close()
		loggers = append(loggers, fl)
	}

	srv, err := NewServer(ServerConfig{
		Addr:           *addr,
		DataPath:       *dataPath,
		CategoriesPath: *catPath,
		Version:        Version,
		Trace:          log.NewMultiLogger(loggers...),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create server: %v\n", err)
		return 1
	}

	info := srv.viewsAPI.Viewer()
	stdlog.Printf("Starting regview-web on http://%s", *addr)
	stdlog.Printf("Dataset: %s (%d peripherals)", *dataPath, info.Browser.Dataset().Len())
	for _, f := range info.Failed {
		stdlog.Printf("Skipped %s: %v", f.Path, f.Err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
			return 1
		}
	case <-ctx.Done():
		stdlog.Printf("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: shutdown: %v\n", err)
			return 1
		}
	}
	return 0
}
