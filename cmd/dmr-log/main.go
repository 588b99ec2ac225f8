// Command dmr-log is a tool for viewing and analyzing renderer protocol
// log files.
//
// Log files are created by running dmr-device with the -protocol-log
// flag.
//
// Usage:
//
//	dmr-log <command> [flags] <file.dlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSONL or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	dmr-log view renderer.dlog
//
//	# View only the discovery layer
//	dmr-log view -layer discovery renderer.dlog
//
//	# Export to JSONL
//	dmr-log export -format jsonl renderer.dlog
//
//	# Keep only one control point's events
//	dmr-log filter -remote 192.168.1.30:49152 -o filtered.dlog renderer.dlog
//
//	# Show statistics
//	dmr-log stats renderer.dlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/upnpav/dmr-go/cmd/dmr-log/commands"
	"github.com/upnpav/dmr-go/pkg/log"
)

const usage = `dmr-log - Renderer Protocol Log Analyzer

Usage:
  dmr-log <command> [flags] <file.dlog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSONL or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "dmr-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// parseFilterFlags registers the shared filter flags on fs and returns a
// builder that assembles the log.Filter after parsing.
func parseFilterFlags(fs *flag.FlagSet) func() (log.Filter, error) {
	layer := fs.String("layer", "", "Filter by layer (discovery, control, codec, service)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (message, state, error)")
	remote := fs.String("remote", "", "Filter by peer address (ip:port)")

	return func() (log.Filter, error) {
		var filter log.Filter
		if *layer != "" {
			l, err := commands.ParseLayerFlag(*layer)
			if err != nil {
				return log.Filter{}, err
			}
			filter.Layer = &l
		}
		if *direction != "" {
			d, err := commands.ParseDirectionFlag(*direction)
			if err != nil {
				return log.Filter{}, err
			}
			filter.Direction = &d
		}
		if *category != "" {
			c, err := commands.ParseCategoryFlag(*category)
			if err != nil {
				return log.Filter{}, err
			}
			filter.Category = &c
		}
		filter.RemoteAddr = *remote
		return filter, nil
	}
}

func logFileArg(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	buildFilter := parseFilterFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := logFileArg(fs)

	filter, err := buildFilter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "jsonl", "Export format (jsonl, csv)")
	buildFilter := parseFilterFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := logFileArg(fs)

	filter, err := buildFilter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := commands.RunExport(path, *format, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	output := fs.String("o", "", "Output file path (required)")
	buildFilter := parseFilterFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := logFileArg(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: -o output file required")
		os.Exit(1)
	}

	filter, err := buildFilter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, *output, filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := logFileArg(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
