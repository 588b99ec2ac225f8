// Command dmr-device runs a dummy DLNA media renderer.
//
// The renderer announces itself over SSDP, answers control-point searches,
// serves its device description over HTTP, and decodes every AVTransport
// and RenderingControl action POSTed to it. Decoded actions are printed
// and declined; nothing is actually played.
//
// Usage:
//
//	dmr-device [flags]
//
// Flags:
//
//	-config string        YAML configuration file path
//	-uuid string          Device UUID (auto-generated if empty)
//	-ip string            IPv4 address to announce (auto-detected if empty)
//	-name string          Friendly name shown by control points
//	-http-port int        Control transport port (default 8080)
//	-ssdp-port int        SSDP port (default 1900)
//	-alive-interval duration  SSDP keep-alive period (default 20m)
//	-mdns                 Additionally advertise over mDNS
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-protocol-log string  Write protocol events to a CBOR log file
//
// Examples:
//
//	# Start with auto-detected identity
//	dmr-device
//
//	# Start with a config file and protocol logging
//	dmr-device -config renderer.yaml -protocol-log renderer.dlog
//
//	# Debug a flaky control point
//	dmr-device -log-level debug -name "Test Corner TV"
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/upnpav/dmr-go/pkg/control"
	"github.com/upnpav/dmr-go/pkg/device"
	"github.com/upnpav/dmr-go/pkg/log"
	"github.com/upnpav/dmr-go/pkg/renderer"
	"github.com/upnpav/dmr-go/pkg/soap"
)

// cliConfig holds flag values before they are merged into device options.
type cliConfig struct {
	ConfigFile    string
	UUID          string
	IP            string
	Name          string
	HTTPPort      int
	SSDPPort      int
	AliveInterval time.Duration
	EnableMDNS    bool
	LogLevel      string
	ProtocolLog   string
}

var config cliConfig

func init() {
	flag.StringVar(&config.ConfigFile, "config", "", "YAML configuration file path")
	flag.StringVar(&config.UUID, "uuid", "", "Device UUID (auto-generated if empty)")
	flag.StringVar(&config.IP, "ip", "", "IPv4 address to announce (auto-detected if empty)")
	flag.StringVar(&config.Name, "name", "", "Friendly name shown by control points")
	flag.IntVar(&config.HTTPPort, "http-port", 0, "Control transport port (default 8080)")
	flag.IntVar(&config.SSDPPort, "ssdp-port", 0, "SSDP port (default 1900)")
	flag.DurationVar(&config.AliveInterval, "alive-interval", 0, "SSDP keep-alive period (default 20m)")
	flag.BoolVar(&config.EnableMDNS, "mdns", false, "Additionally advertise over mDNS")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&config.ProtocolLog, "protocol-log", "", "Write protocol events to a CBOR log file")
}

func main() {
	flag.Parse()

	logger := setupLogging(config.LogLevel)

	opts, err := buildOptions()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	protocolLogger, closeLog, err := buildProtocolLogger(logger)
	if err != nil {
		logger.Error("failed to open protocol log", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	svc, err := renderer.NewService(renderer.Config{
		Options:       opts,
		Handler:       &printingHandler{logger: logger},
		AliveInterval: config.AliveInterval,
		EnableMDNS:    config.EnableMDNS,
		Logger:        protocolLogger,
		DebugLogger:   debugLogger(logger),
	})
	if err != nil {
		logger.Error("failed to create renderer", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := svc.Start(ctx); err != nil {
		logger.Error("failed to start renderer", "error", err)
		os.Exit(1)
	}

	logger.Info("renderer started",
		"name", opts.FriendlyName,
		"uuid", opts.UUID,
		"descriptor", opts.Identity().DescriptorURL())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("shutting down", "signal", sig.String())
	if err := svc.Stop(); err != nil {
		logger.Error("error stopping renderer", "error", err)
	}
}

// buildOptions merges defaults, config file, and flags, in that order.
func buildOptions() (device.Options, error) {
	opts, err := device.DefaultOptions()
	if err != nil {
		return device.Options{}, err
	}

	if config.ConfigFile != "" {
		data, err := os.ReadFile(config.ConfigFile)
		if err != nil {
			return device.Options{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return device.Options{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if config.UUID != "" {
		opts.UUID = config.UUID
	}
	if config.IP != "" {
		ip := net.ParseIP(config.IP)
		if ip == nil {
			return device.Options{}, fmt.Errorf("invalid IP address %q", config.IP)
		}
		opts.IP = ip
	}
	if config.Name != "" {
		opts.FriendlyName = config.Name
	}
	if config.HTTPPort != 0 {
		opts.HTTPPort = uint16(config.HTTPPort)
	}
	if config.SSDPPort != 0 {
		opts.SSDPPort = uint16(config.SSDPPort)
	}

	return opts, opts.Validate()
}

func setupLogging(level string) *slog.Logger {
	var lv slog.Level
	switch level {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// debugLogger returns the slog logger only when debug level is active, so
// services skip building debug attributes otherwise.
func debugLogger(logger *slog.Logger) *slog.Logger {
	if config.LogLevel == "debug" {
		return logger
	}
	return nil
}

// buildProtocolLogger assembles the protocol event sink: an optional CBOR
// file log, plus slog mirroring at debug level.
func buildProtocolLogger(logger *slog.Logger) (log.Logger, func(), error) {
	var loggers []log.Logger

	closeLog := func() {}
	if config.ProtocolLog != "" {
		fileLogger, err := log.NewFileLogger(config.ProtocolLog)
		if err != nil {
			return nil, nil, err
		}
		loggers = append(loggers, fileLogger)
		closeLog = func() { _ = fileLogger.Close() }
	}
	if config.LogLevel == "debug" {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}

	switch len(loggers) {
	case 0:
		return log.NoopLogger{}, closeLog, nil
	case 1:
		return loggers[0], closeLog, nil
	default:
		return log.NewMultiLogger(loggers...), closeLog, nil
	}
}

// printingHandler prints every decoded action and declines it, the
// behavior expected of a dummy renderer.
type printingHandler struct {
	logger *slog.Logger
}

func (h *printingHandler) HandleAVTransport(action soap.AVTransportAction, parseErr error) int {
	if parseErr != nil {
		h.logger.Warn("undecodable AVTransport request", "error", parseErr)
		return http.StatusMethodNotAllowed
	}

	switch a := action.(type) {
	case soap.SetAVTransportURI:
		h.logger.Info("action", "name", "SetAVTransportURI", "uri", a.CurrentURI)
	case soap.SetNextAVTransportURI:
		h.logger.Info("action", "name", "SetNextAVTransportURI", "uri", a.NextURI)
	case soap.Play:
		h.logger.Info("action", "name", "Play", "speed", a.Speed.String())
	case soap.Seek:
		h.logger.Info("action", "name", "Seek", "unit", a.Unit.String(), "target", a.Target)
	default:
		h.logger.Info("action", "name", fmt.Sprintf("%T", action))
	}
	return http.StatusMethodNotAllowed
}

func (h *printingHandler) HandleRenderingControl(action soap.RenderingControlAction, parseErr error) int {
	if parseErr != nil {
		h.logger.Warn("undecodable RenderingControl request", "error", parseErr)
		return http.StatusMethodNotAllowed
	}

	switch a := action.(type) {
	case soap.SetVolume:
		h.logger.Info("action", "name", "SetVolume", "volume", a.DesiredVolume)
	case soap.SetMute:
		h.logger.Info("action", "name", "SetMute", "mute", a.DesiredMute)
	default:
		h.logger.Info("action", "name", fmt.Sprintf("%T", action))
	}
	return http.StatusMethodNotAllowed
}

var _ control.ActionHandler = (*printingHandler)(nil)
