package control

import (
	"errors"
	"net/http"

	"github.com/upnpav/dmr-go/pkg/soap"
)

// The four addressable endpoints. Matching is by exact path; anything
// else is not found.
const (
	// PathDeviceSpec serves the root device description.
	PathDeviceSpec = "/DeviceSpec"

	// PathAVTransport serves the AVTransport SCPD and accepts its actions.
	PathAVTransport = "/AVTransport"

	// PathRenderingControl serves the RenderingControl SCPD and accepts
	// its actions.
	PathRenderingControl = "/RenderingControl"

	// PathIgnore is the inert endpoint (ConnectionManager and event
	// subscriptions land here). Always succeeds with no content.
	PathIgnore = "/Ignore"
)

// StatusInvalidAction is the UPnP error status for a request that was
// understood but cannot be honored for its instance or arguments (error
// code 718, "Invalid InstanceID"). Handlers return it for actions they
// recognize but reject.
const StatusInvalidAction = 718

// maxBodySize caps control request bodies. Action envelopes are a few
// hundred bytes; anything near this limit is garbage.
const maxBodySize = 64 * 1024

// Dispatcher errors.
var (
	ErrAlreadyRunning = errors.New("dispatcher already running")
	ErrMissingHandler = errors.New("action handler is required")
)

// ActionHandler receives decoded control actions. The renderer's actual
// playback behavior is supplied through this interface; the dispatcher
// never interprets actions itself.
//
// Each method receives either a decoded action (parseErr nil) or the
// decode failure (action nil), and returns the HTTP status for the
// response. Returning zero falls back to http.StatusMethodNotAllowed.
type ActionHandler interface {
	// HandleAVTransport handles an action POSTed to the AVTransport endpoint.
	HandleAVTransport(action soap.AVTransportAction, parseErr error) int

	// HandleRenderingControl handles an action POSTed to the
	// RenderingControl endpoint.
	HandleRenderingControl(action soap.RenderingControlAction, parseErr error) int
}

// NopHandler declines every action with 405 Method Not Allowed. Embed it
// to implement only the actions a device cares about; the fixed 405
// convention keeps unhandled actions uniform across endpoints.
type NopHandler struct{}

// HandleAVTransport declines the action.
func (NopHandler) HandleAVTransport(soap.AVTransportAction, error) int {
	return http.StatusMethodNotAllowed
}

// HandleRenderingControl declines the action.
func (NopHandler) HandleRenderingControl(soap.RenderingControlAction, error) int {
	return http.StatusMethodNotAllowed
}

// Compile-time interface satisfaction check.
var _ ActionHandler = NopHandler{}
