package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/regview/regview-go/pkg/log"
)

// TraceOptions selects trace events and the output mode.
type TraceOptions struct {
	Kind      string // LOAD, NAVIGATE, RENDER, ERROR (case-insensitive)
	SessionID string
	Path      string // path prefix
	Format    string // text (default), jsonl, stats
}

// ParseKindFlag converts a -kind flag value to a log.Kind.
func ParseKindFlag(s string) (log.Kind, error) {
	if k, ok := log.ParseKind(strings.ToUpper(s)); ok {
		return k, nil
	}
	return 0, fmt.Errorf("invalid kind: %s (use load, navigate, render, error)", s)
}

func (o TraceOptions) filter() (log.Filter, error) {
	f := log.Filter{SessionID: o.SessionID, PathPrefix: o.Path}
	if o.Kind != "" {
		k, err := ParseKindFlag(o.Kind)
		if err != nil {
			return f, err
		}
		f.Kind = &k
	}
	return f, nil
}

// RunTrace prints the events of a trace file.
func RunTrace(path string, opts TraceOptions, w io.Writer) error {
	filter, err := opts.filter()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}

	switch opts.Format {
	case "", "text":
		for _, e := range events {
			formatEvent(w, e)
		}
	case "jsonl":
		enc := json.NewEncoder(w)
		for _, e := range events {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
	case "stats":
		printTraceStats(w, collectStats(events))
	default:
		return fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return nil
}

// formatEvent writes one event as a header line plus indented details.
func formatEvent(w io.Writer, e log.Event) {
	ts := e.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z")
	fmt.Fprintf(w, "%s [%s] %-8s", ts, shortenID(e.SessionID), e.Kind)
	if e.Frontend != "" {
		fmt.Fprintf(w, " %s", e.Frontend)
	}
	if e.View != "" {
		fmt.Fprintf(w, " %s", e.View)
	}
	if e.Path != "" {
		fmt.Fprintf(w, " %s", e.Path)
	}
	fmt.Fprintln(w)

	switch {
	case e.Load != nil:
		fmt.Fprintf(w, "  source: %s (%d peripherals, %d groups, %s)\n",
			e.Load.Source, e.Load.Peripherals, e.Load.Groups, e.Load.Duration.Round(time.Microsecond))
		if e.Load.Failed > 0 {
			fmt.Fprintf(w, "  failed files: %d\n", e.Load.Failed)
		}
	case e.Navigate != nil:
		from := e.Navigate.From
		if from == "" {
			from = "/"
		}
		fmt.Fprintf(w, "  %s from %s\n", e.Navigate.Action, from)
	case e.Error != nil:
		fmt.Fprintf(w, "  error: %s\n", e.Error.Message)
		if e.Error.LayoutKind != "" {
			fmt.Fprintf(w, "  layout: %s (field %s)\n", e.Error.LayoutKind, e.Error.Field)
		}
	case e.Kind == log.KindRender && (e.Segments > 0 || e.Fields > 0):
		fmt.Fprintf(w, "  %d segments, %d fields\n", e.Segments, e.Fields)
	}
}

func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// TraceStats holds aggregate statistics about a trace.
type TraceStats struct {
	TotalEvents int
	ByKind      map[log.Kind]int
	Sessions    map[string]int
	TopPaths    []PathCount
	Errors      int
	Start, End  time.Time
}

// PathCount is a rendered path and how often it was rendered.
type PathCount struct {
	Path  string
	Count int
}

func collectStats(events []log.Event) *TraceStats {
	s := &TraceStats{
		ByKind:   make(map[log.Kind]int),
		Sessions: make(map[string]int),
	}
	paths := make(map[string]int)

	for _, e := range events {
		s.TotalEvents++
		s.ByKind[e.Kind]++
		s.Sessions[e.SessionID]++
		if s.Start.IsZero() || e.Timestamp.Before(s.Start) {
			s.Start = e.Timestamp
		}
		if e.Timestamp.After(s.End) {
			s.End = e.Timestamp
		}
		if e.Kind == log.KindRender && e.Path != "" {
			paths[e.Path]++
		}
		if e.Error != nil {
			s.Errors++
		}
	}

	for p, c := range paths {
		s.TopPaths = append(s.TopPaths, PathCount{Path: p, Count: c})
	}
	sort.Slice(s.TopPaths, func(i, j int) bool {
		if s.TopPaths[i].Count != s.TopPaths[j].Count {
			return s.TopPaths[i].Count > s.TopPaths[j].Count
		}
		return s.TopPaths[i].Path < s.TopPaths[j].Path
	})
	if len(s.TopPaths) > 10 {
		s.TopPaths = s.TopPaths[:10]
	}
	return s
}

func printTraceStats(w io.Writer, s *TraceStats) {
	fmt.Fprintln(w, "=== Navigation Trace Statistics ===")
	fmt.Fprintln(w)

	if s.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n", s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", s.TotalEvents)
	fmt.Fprintf(w, "Sessions:     %d\n", len(s.Sessions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Kind:")
	for _, k := range []log.Kind{log.KindLoad, log.KindNavigate, log.KindRender, log.KindError} {
		if count := s.ByKind[k]; count > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", k.String()+":", count)
		}
	}

	if len(s.TopPaths) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Most Rendered:")
		for _, p := range s.TopPaths {
			fmt.Fprintf(w, "  %4d  %s\n", p.Count, p.Path)
		}
	}

	if s.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", s.Errors)
	}
}
