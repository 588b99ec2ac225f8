// Package commands implements the dmr-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/upnpav/dmr-go/pkg/log"
)

// ParseLayerFlag converts a -layer flag value to a log.Layer.
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "discovery":
		return log.LayerDiscovery, nil
	case "control":
		return log.LayerControl, nil
	case "codec":
		return log.LayerCodec, nil
	case "service":
		return log.LayerService, nil
	default:
		return 0, fmt.Errorf("unknown layer %q (discovery, control, codec, service)", s)
	}
}

// ParseDirectionFlag converts a -direction flag value to a log.Direction.
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (in, out)", s)
	}
}

// ParseCategoryFlag converts a -category flag value to a log.Category.
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category %q (message, state, error)", s)
	}
}

// RunView prints matching events in human-readable form.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")

	var typeLabel string
	switch {
	case event.Discovery != nil:
		typeLabel = event.Discovery.Kind
	case event.Request != nil:
		typeLabel = "Request"
	case event.Action != nil:
		typeLabel = "Action"
	case event.State != nil:
		typeLabel = "State"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s %-3s %-9s %s", ts, event.Direction.String(), event.Layer.String(), typeLabel)
	if event.RemoteAddr != "" {
		fmt.Fprintf(w, " [%s]", event.RemoteAddr)
	}
	fmt.Fprintln(w)

	switch {
	case event.Discovery != nil:
		formatDiscoveryDetails(w, event.Discovery)
	case event.Request != nil:
		formatRequestDetails(w, event.Request)
	case event.Action != nil:
		formatActionDetails(w, event.Action)
	case event.State != nil:
		formatStateDetails(w, event.State)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

func formatDiscoveryDetails(w io.Writer, d *log.DiscoveryEvent) {
	if d.NT != "" {
		fmt.Fprintf(w, "  NT:  %s\n", d.NT)
	}
	if d.NTS != "" {
		fmt.Fprintf(w, "  NTS: %s\n", d.NTS)
	}
	if d.USN != "" {
		fmt.Fprintf(w, "  USN: %s\n", d.USN)
	}
	if d.Size > 0 {
		fmt.Fprintf(w, "  Size: %d bytes\n", d.Size)
	}
}

func formatRequestDetails(w io.Writer, r *log.RequestEvent) {
	fmt.Fprintf(w, "  %s %s -> %d\n", r.Method, r.Path, r.Status)
	if r.BodySize > 0 {
		fmt.Fprintf(w, "  Body: %d bytes\n", r.BodySize)
	}
	for _, h := range r.Highlights {
		fmt.Fprintf(w, "  %s\n", h)
	}
}

func formatActionDetails(w io.Writer, a *log.ActionEvent) {
	if a.Action != "" {
		fmt.Fprintf(w, "  %s#%s -> %d\n", a.Service, a.Action, a.Status)
	} else {
		fmt.Fprintf(w, "  %s -> %d\n", a.Service, a.Status)
	}
	if a.ParseFailure != "" {
		fmt.Fprintf(w, "  ParseFailure: %s\n", a.ParseFailure)
	}
}

func formatStateDetails(w io.Writer, s *log.StateChangeEvent) {
	fmt.Fprintf(w, "  %s: %s -> %s", s.Entity, s.OldState, s.NewState)
	if s.Reason != "" {
		fmt.Fprintf(w, " (%s)", s.Reason)
	}
	fmt.Fprintln(w)
}

func formatErrorDetails(w io.Writer, e *log.ErrorEventData) {
	fmt.Fprintf(w, "  Error: %s\n", e.Message)
	if e.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", e.Context)
	}
}
