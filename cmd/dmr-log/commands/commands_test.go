package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/upnpav/dmr-go/pkg/log"
)

// createTestLogFile writes events to a temp log file and returns its path.
func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.dlog")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, event := range events {
		logger.Log(event)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func sampleEvents() []log.Event {
	ts := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	return []log.Event{
		{
			Timestamp: ts,
			Direction: log.DirectionOut,
			Layer:     log.LayerDiscovery,
			Category:  log.CategoryMessage,
			Discovery: &log.DiscoveryEvent{
				Kind: "NOTIFY",
				NT:   "upnp:rootdevice",
				NTS:  "ssdp:alive",
				USN:  "uuid:abc::upnp:rootdevice",
				Size: 250,
			},
		},
		{
			Timestamp:  ts.Add(time.Second),
			Direction:  log.DirectionIn,
			Layer:      log.LayerDiscovery,
			Category:   log.CategoryMessage,
			RemoteAddr: "192.168.1.30:49152",
			Discovery:  &log.DiscoveryEvent{Kind: "M-SEARCH", Size: 120},
		},
		{
			Timestamp:  ts.Add(2 * time.Second),
			Direction:  log.DirectionIn,
			Layer:      log.LayerCodec,
			Category:   log.CategoryMessage,
			RemoteAddr: "192.168.1.30:49152",
			Action: &log.ActionEvent{
				Service: "AVTransport",
				Action:  "Play",
				Status:  405,
			},
		},
		{
			Timestamp:  ts.Add(3 * time.Second),
			Direction:  log.DirectionIn,
			Layer:      log.LayerControl,
			Category:   log.CategoryMessage,
			RemoteAddr: "192.168.1.30:49152",
			Request: &log.RequestEvent{
				Method:     "POST",
				Path:       "/AVTransport",
				Status:     405,
				BodySize:   300,
				Highlights: []string{"Current URI: http://example.com/a.mp3"},
			},
		},
		{
			Timestamp: ts.Add(4 * time.Second),
			Direction: log.DirectionOut,
			Layer:     log.LayerService,
			Category:  log.CategoryState,
			State: &log.StateChangeEvent{
				Entity:   "renderer",
				OldState: "STARTING",
				NewState: "RUNNING",
			},
		},
	}
}

func TestViewShowsAllEvents(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunView(path, log.Filter{}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"NOTIFY", "upnp:rootdevice", "M-SEARCH",
		"AVTransport#Play -> 405",
		"POST /AVTransport -> 405",
		"Current URI: http://example.com/a.mp3",
		"renderer: STARTING -> RUNNING",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in view output", want)
		}
	}
}

func TestViewFiltersByLayer(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	layer := log.LayerCodec
	var buf bytes.Buffer
	if err := RunView(path, log.Filter{Layer: &layer}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "AVTransport#Play") {
		t.Error("expected codec event in output")
	}
	if strings.Contains(output, "NOTIFY") {
		t.Error("discovery event should be filtered out")
	}
}

func TestStatsOutput(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Total Events: 5") {
		t.Errorf("expected total of 5 events, got:\n%s", output)
	}
	if !strings.Contains(output, "1 searches, 1 notifies") {
		t.Errorf("expected discovery counts, got:\n%s", output)
	}
	if !strings.Contains(output, "AVTransport#Play") {
		t.Error("expected action breakdown in output")
	}
	if !strings.Contains(output, "Peers: 1") {
		t.Error("expected one peer in output")
	}
}

func TestExportJSONL(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunExport(path, "jsonl", log.Filter{}, &buf); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 JSONL lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"NOTIFY"`) {
		t.Errorf("expected NOTIFY in first line, got: %s", lines[0])
	}
}

func TestExportCSV(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunExport(path, "csv", log.Filter{}, &buf); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 { // header + 5 events
		t.Fatalf("expected 6 CSV lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "timestamp,direction,layer") {
		t.Errorf("unexpected CSV header: %s", lines[0])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	if err := RunExport(path, "xml", log.Filter{}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestFilterWritesNewFile(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	output := filepath.Join(t.TempDir(), "filtered.dlog")

	layer := log.LayerDiscovery
	n, err := RunFilter(path, output, log.Filter{Layer: &layer})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 events written, got %d", n)
	}

	reader, err := log.NewReader(output)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err != nil {
			break
		}
		if event.Layer != log.LayerDiscovery {
			t.Errorf("unexpected layer %s in filtered file", event.Layer)
		}
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 events in filtered file, got %d", count)
	}
}

func TestParseFlagHelpers(t *testing.T) {
	if l, err := ParseLayerFlag("codec"); err != nil || l != log.LayerCodec {
		t.Errorf("ParseLayerFlag(codec) = %v, %v", l, err)
	}
	if _, err := ParseLayerFlag("wire"); err == nil {
		t.Error("expected error for unknown layer")
	}
	if d, err := ParseDirectionFlag("out"); err != nil || d != log.DirectionOut {
		t.Errorf("ParseDirectionFlag(out) = %v, %v", d, err)
	}
	if c, err := ParseCategoryFlag("error"); err != nil || c != log.CategoryError {
		t.Errorf("ParseCategoryFlag(error) = %v, %v", c, err)
	}
}
