// Package log provides structured protocol logging for the renderer.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at the renderer's layers (discovery, control,
// codec). It is separate from operational logging (slog) - protocol
// capture provides a complete machine-readable event trace for debugging
// and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/dmr/renderer.dlog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Discovery: SSDP datagrams sent and received (DiscoveryEvent)
//   - Control: HTTP requests and their outcomes (RequestEvent)
//   - Codec: decoded actions and handler results (ActionEvent)
//
// State changes and errors have dedicated event types.
//
// # File Format
//
// Log files use CBOR encoding with .dlog extension. The dmr-log CLI tool
// provides viewing, filtering, and statistics.
package log
