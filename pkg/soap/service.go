package soap

import "fmt"

// Service identifies one of the two action-bearing UPnP services.
type Service uint8

const (
	// ServiceAVTransport is the transport-control service (play, stop, seek, URIs).
	ServiceAVTransport Service = iota

	// ServiceRenderingControl is the rendering-control service (volume, mute, presets).
	ServiceRenderingControl
)

// String returns the service name as it appears in service URNs.
func (s Service) String() string {
	switch s {
	case ServiceAVTransport:
		return "AVTransport"
	case ServiceRenderingControl:
		return "RenderingControl"
	default:
		return "UNKNOWN"
	}
}

// URN returns the full UPnP service type URN.
func (s Service) URN() string {
	return fmt.Sprintf("urn:schemas-upnp-org:service:%s:1", s)
}

// ParseError reports a control body that could not be decoded: malformed
// XML, a missing required argument, or an argument outside its enumerated
// domain. It is always a recoverable value; a ParseError still receives a
// syntactically valid HTTP response.
type ParseError struct {
	// Service the body was addressed to.
	Service Service

	// Cause is the human-readable diagnostic.
	Cause string

	// Err is the underlying decode error, if any.
	Err error
}

// Error returns the diagnostic string.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("soap: %s: %s: %v", e.Service, e.Cause, e.Err)
	}
	return fmt.Sprintf("soap: %s: %s", e.Service, e.Cause)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error { return e.Err }

// UnknownActionError reports a well-formed body whose action tag is not in
// the closed set this renderer implements. Control points may request any
// action defined by the service's full specification, so this is an
// expected outcome, distinguishable from a malformed body.
type UnknownActionError struct {
	Service Service
	Name    string
}

// Error returns the diagnostic string.
func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("soap: %s: action %q not recognized", e.Service, e.Name)
}
