package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("kind", event.Kind.String()),
	}
	if event.Frontend != "" {
		attrs = append(attrs, slog.String("frontend", event.Frontend))
	}
	if event.View != "" {
		attrs = append(attrs, slog.String("view", event.View))
	}
	if event.Path != "" {
		attrs = append(attrs, slog.String("path", event.Path))
	}
	if event.Kind == KindRender {
		attrs = append(attrs,
			slog.Int("segments", event.Segments),
			slog.Int("fields", event.Fields),
		)
	}

	switch {
	case event.Navigate != nil:
		attrs = append(attrs, slog.String("action", event.Navigate.Action))
		if event.Navigate.From != "" {
			attrs = append(attrs, slog.String("from", event.Navigate.From))
		}
	case event.Load != nil:
		attrs = append(attrs,
			slog.String("source", event.Load.Source),
			slog.Int("peripherals", event.Load.Peripherals),
			slog.Int("groups", event.Load.Groups),
			slog.Duration("duration", event.Load.Duration),
		)
		if event.Load.Failed > 0 {
			attrs = append(attrs, slog.Int("failed", event.Load.Failed))
		}
	case event.Error != nil:
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.LayoutKind != "" {
			attrs = append(attrs,
				slog.String("layout_kind", event.Error.LayoutKind),
				slog.String("field", event.Error.Field),
			)
		}
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
