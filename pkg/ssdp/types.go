package ssdp

import (
	"errors"
	"time"
)

// Protocol constants.
const (
	// MulticastAddress is the well-known SSDP multicast group and port.
	MulticastAddress = "239.255.255.250:1900"

	// ServerName identifies this implementation in outbound messages.
	ServerName = "dmr-go/1.0 UPnP/1.0"

	// AliveCacheAge is the max-age advertised on presence messages, in seconds.
	AliveCacheAge = 1800

	// ReplyCacheAge is the max-age advertised on search replies, in seconds.
	ReplyCacheAge = 900
)

// Timing constants.
const (
	// DefaultAliveInterval is how often presence is re-announced. Control
	// points only learn about the renderer from these broadcasts; there is
	// no registration handshake to refresh their caches otherwise.
	DefaultAliveInterval = 20 * time.Minute

	// readPollInterval bounds how long the receive loop blocks before
	// re-checking for cancellation.
	readPollInterval = 500 * time.Millisecond

	// maxDatagramSize is the receive buffer size.
	maxDatagramSize = 4096
)

// Engine errors.
var (
	ErrNotBound       = errors.New("engine is not bound")
	ErrAlreadyBound   = errors.New("engine is already bound")
	ErrAlreadyRunning = errors.New("engine is already running")
	ErrNotRunning     = errors.New("engine is not running")
	ErrUnknownMessage = errors.New("unknown SSDP message")
)

// EngineState represents the discovery engine's lifecycle state.
type EngineState uint8

const (
	// StateCreated - engine constructed, socket not yet bound.
	StateCreated EngineState = iota

	// StateBound - socket bound and joined to the multicast group.
	StateBound

	// StateRunning - receive and keep-alive loops are active.
	StateRunning

	// StateStopped - withdrawal announced, socket closed.
	StateStopped
)

// String returns the state name.
func (s EngineState) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateBound:
		return "BOUND"
	case StateRunning:
		return "RUNNING"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// MessageKind classifies an inbound datagram by its leading token.
type MessageKind uint8

const (
	// KindSearch is an M-SEARCH request; it triggers exactly one reply.
	KindSearch MessageKind = iota

	// KindNotify is a peer announcement; accepted and ignored.
	KindNotify

	// KindUnknown is anything else; logged and discarded.
	KindUnknown
)

// String returns the kind's wire token.
func (k MessageKind) String() string {
	switch k {
	case KindSearch:
		return "M-SEARCH"
	case KindNotify:
		return "NOTIFY"
	default:
		return "UNKNOWN"
	}
}
