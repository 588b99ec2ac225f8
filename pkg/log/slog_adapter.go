package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see protocol events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote", event.RemoteAddr))
	}
	if event.DeviceUUID != "" {
		attrs = append(attrs, slog.String("uuid", event.DeviceUUID))
	}

	// Add type-specific attributes
	switch {
	case event.Discovery != nil:
		attrs = append(attrs, slog.String("kind", event.Discovery.Kind))
		if event.Discovery.NT != "" {
			attrs = append(attrs, slog.String("nt", event.Discovery.NT))
		}
		if event.Discovery.NTS != "" {
			attrs = append(attrs, slog.String("nts", event.Discovery.NTS))
		}
		if event.Discovery.Size > 0 {
			attrs = append(attrs, slog.Int("size", event.Discovery.Size))
		}
	case event.Request != nil:
		attrs = append(attrs,
			slog.String("method", event.Request.Method),
			slog.String("path", event.Request.Path),
			slog.Int("status", event.Request.Status),
		)
		for _, h := range event.Request.Highlights {
			attrs = append(attrs, slog.String("highlight", h))
		}
	case event.Action != nil:
		attrs = append(attrs, slog.String("service", event.Action.Service))
		if event.Action.Action != "" {
			attrs = append(attrs, slog.String("action", event.Action.Action))
		}
		if event.Action.Status != 0 {
			attrs = append(attrs, slog.Int("status", event.Action.Status))
		}
		if event.Action.ParseFailure != "" {
			attrs = append(attrs, slog.String("parse_failure", event.Action.ParseFailure))
		}
	case event.State != nil:
		attrs = append(attrs,
			slog.String("entity", event.State.Entity),
			slog.String("old_state", event.State.OldState),
			slog.String("new_state", event.State.NewState),
		)
		if event.State.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.State.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "protocol", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
