package log

import "time"

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"2,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// RemoteAddr is the peer address (IP:port), when known.
	RemoteAddr string `cbor:"5,keyasint,omitempty"`

	// DeviceUUID is this renderer's unique identifier.
	DeviceUUID string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Discovery *DiscoveryEvent   `cbor:"7,keyasint,omitempty"`  // SSDP datagrams
	Request   *RequestEvent     `cbor:"8,keyasint,omitempty"`  // Control requests
	Action    *ActionEvent      `cbor:"9,keyasint,omitempty"`  // Decoded actions
	State     *StateChangeEvent `cbor:"10,keyasint,omitempty"` // Component state
	Error     *ErrorEventData   `cbor:"11,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerDiscovery is the SSDP discovery layer (UDP datagrams).
	LayerDiscovery Layer = 0
	// LayerControl is the HTTP control transport layer.
	LayerControl Layer = 1
	// LayerCodec is the SOAP action codec layer (decoded actions).
	LayerCodec Layer = 2
	// LayerService is the supervising service layer.
	LayerService Layer = 3
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerDiscovery:
		return "DISCOVERY"
	case LayerControl:
		return "CONTROL"
	case LayerCodec:
		return "CODEC"
	case LayerService:
		return "SERVICE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a protocol message (datagram, request, action).
	CategoryMessage Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// DiscoveryEvent captures an SSDP datagram.
type DiscoveryEvent struct {
	// Kind is the message's leading token: NOTIFY, M-SEARCH, or RESPONSE
	// for outgoing search replies.
	Kind string `cbor:"1,keyasint"`

	// NT is the notification type (presence messages only).
	NT string `cbor:"2,keyasint,omitempty"`

	// NTS is the notification sub type, ssdp:alive or ssdp:byebye.
	NTS string `cbor:"3,keyasint,omitempty"`

	// USN is the unique service name carried by the message.
	USN string `cbor:"4,keyasint,omitempty"`

	// Size is the datagram size in bytes.
	Size int `cbor:"5,keyasint,omitempty"`
}

// RequestEvent captures an HTTP control request and its outcome.
type RequestEvent struct {
	// Method is the HTTP method.
	Method string `cbor:"1,keyasint"`

	// Path is the requested path.
	Path string `cbor:"2,keyasint"`

	// Status is the response status code.
	Status int `cbor:"3,keyasint"`

	// BodySize is the request body size in bytes.
	BodySize int `cbor:"4,keyasint,omitempty"`

	// Highlights are loggable details extracted from the body (e.g. media URIs).
	Highlights []string `cbor:"5,keyasint,omitempty"`
}

// ActionEvent captures a decoded control action.
type ActionEvent struct {
	// Service is the service the action was addressed to.
	Service string `cbor:"1,keyasint"`

	// Action is the body element's tag name. For bodies that failed to
	// decode this is empty and ParseFailure carries the diagnostic.
	Action string `cbor:"2,keyasint,omitempty"`

	// Status is the HTTP status the handler mapped the action to.
	Status int `cbor:"3,keyasint,omitempty"`

	// ParseFailure is the diagnostic for bodies that did not decode.
	ParseFailure string `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent captures a component state transition.
type StateChangeEvent struct {
	// Entity is the component that changed state (e.g. "ssdp", "renderer").
	Entity string `cbor:"1,keyasint"`

	// OldState is the state before the transition.
	OldState string `cbor:"2,keyasint"`

	// NewState is the state after the transition.
	NewState string `cbor:"3,keyasint"`

	// Reason optionally explains the transition.
	Reason string `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures an error at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error text.
	Message string `cbor:"2,keyasint"`

	// Context describes what was being attempted.
	Context string `cbor:"3,keyasint,omitempty"`
}
