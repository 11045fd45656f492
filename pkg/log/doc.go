// Package log records navigation traces for the register viewer.
//
// A trace is a machine-readable sequence of events emitted by a front-end
// (CLI, REPL or web server) as it loads a dataset, moves between views and
// renders registers. It is separate from operational logging (slog): the
// core packages never log, only front-ends emit trace events.
//
// # Basic Usage
//
// Front-ends pick a Logger and wrap it in a Session:
//
//	// Console only
//	trace := log.NewSession(log.NewSlogAdapter(slog.Default()))
//
//	// File and console
//	fl, _ := log.NewFileLogger("browse.rtrace")
//	trace := log.NewSession(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fl,
//	))
//
// # Event Kinds
//
//   - Load: a dataset was (re)loaded (LoadData)
//   - Navigate: the navigation state changed
//   - Render: a view was rendered, with segment and field counts
//   - Error: a lookup or layout failed (ErrorData)
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events with integer keys and use
// the .rtrace extension. The regview trace command prints and filters them.
package log
