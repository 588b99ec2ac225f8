package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/upnpav/dmr-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByDirection map[log.Direction]int
	Peers             map[string]int
	Searches          int
	Notifies          int
	Actions           map[string]int
	ParseFailures     int
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByDirection: make(map[log.Direction]int),
		Peers:             make(map[string]int),
		Actions:           make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByLayer[event.Layer]++
		stats.EventsByDirection[event.Direction]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		if event.RemoteAddr != "" {
			stats.Peers[event.RemoteAddr]++
		}

		if event.Discovery != nil {
			switch event.Discovery.Kind {
			case "M-SEARCH":
				stats.Searches++
			case "NOTIFY":
				stats.Notifies++
			}
		}
		if event.Action != nil {
			if event.Action.Action != "" {
				stats.Actions[event.Action.Service+"#"+event.Action.Action]++
			}
			if event.Action.ParseFailure != "" {
				stats.ParseFailures++
			}
		}
		if event.Error != nil {
			stats.Errors++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Renderer Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration: %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
	}
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerDiscovery, log.LayerControl, log.LayerCodec, log.LayerService} {
		if n := stats.EventsByLayer[layer]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", layer.String(), n)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Discovery: %d searches, %d notifies\n", stats.Searches, stats.Notifies)
	fmt.Fprintln(w)

	if len(stats.Actions) > 0 {
		fmt.Fprintln(w, "Actions:")
		names := make([]string, 0, len(stats.Actions))
		for name := range stats.Actions {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %-50s %d\n", name, stats.Actions[name])
		}
		fmt.Fprintln(w)
	}

	if len(stats.Peers) > 0 {
		fmt.Fprintf(w, "Peers: %d\n", len(stats.Peers))
	}
	fmt.Fprintf(w, "Parse Failures: %d\n", stats.ParseFailures)
	fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
}
