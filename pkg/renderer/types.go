package renderer

import (
	"errors"
	"log/slog"
	"time"

	"github.com/upnpav/dmr-go/pkg/control"
	"github.com/upnpav/dmr-go/pkg/device"
	"github.com/upnpav/dmr-go/pkg/log"
)

// Service errors.
var (
	ErrAlreadyStarted = errors.New("renderer already started")
	ErrNotStarted     = errors.New("renderer not started")
)

// ServiceState represents the supervisor state.
type ServiceState uint8

const (
	// StateIdle - service created but not started.
	StateIdle ServiceState = iota

	// StateStarting - service is starting up.
	StateStarting

	// StateRunning - service is running normally.
	StateRunning

	// StateStopping - service is shutting down.
	StateStopping

	// StateStopped - service has stopped.
	StateStopped
)

// String returns the state name.
func (s ServiceState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateStarting:
		return "STARTING"
	case StateRunning:
		return "RUNNING"
	case StateStopping:
		return "STOPPING"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Config configures a renderer service.
type Config struct {
	// Options describe the device identity and presentation fields.
	Options device.Options

	// Handler receives decoded control actions. Defaults to
	// control.NopHandler, which declines everything.
	Handler control.ActionHandler

	// AliveInterval is the SSDP keep-alive period (default 20m).
	AliveInterval time.Duration

	// EnableMDNS additionally advertises the renderer over mDNS.
	// SSDP remains the normative discovery channel; mDNS failures are
	// never fatal.
	EnableMDNS bool

	// MDNSInterface restricts mDNS advertising to one network interface.
	// Empty means all interfaces.
	MDNSInterface string

	// Logger for protocol event capture (optional).
	Logger log.Logger

	// DebugLogger is the optional logger for debug output.
	DebugLogger *slog.Logger
}
