package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/upnpav/dmr-go/pkg/log"
)

// RunExport writes matching events to w in the given format.
func RunExport(path, format string, filter log.Filter, w io.Writer) error {
	switch format {
	case "jsonl":
		return exportJSONL(path, filter, w)
	case "csv":
		return exportCSV(path, filter, w)
	default:
		return fmt.Errorf("unknown format %q (jsonl, csv)", format)
	}
}

func exportJSONL(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return err
		}
	}
}

func exportCSV(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "direction", "layer", "category", "remote", "detail"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := cw.Write(csvRow(event)); err != nil {
			return err
		}
	}
}

// csvRow flattens an event to one summary line per row.
func csvRow(event log.Event) []string {
	var detail string
	switch {
	case event.Discovery != nil:
		detail = event.Discovery.Kind
		if event.Discovery.NT != "" {
			detail += " " + event.Discovery.NT
		}
	case event.Request != nil:
		detail = event.Request.Method + " " + event.Request.Path +
			" " + strconv.Itoa(event.Request.Status)
	case event.Action != nil:
		detail = event.Action.Service + "#" + event.Action.Action
	case event.State != nil:
		detail = event.State.Entity + " " + event.State.OldState + "->" + event.State.NewState
	case event.Error != nil:
		detail = event.Error.Message
	}

	return []string{
		event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		event.Direction.String(),
		event.Layer.String(),
		event.Category.String(),
		event.RemoteAddr,
		detail,
	}
}
