package control

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/upnpav/dmr-go/pkg/description"
	"github.com/upnpav/dmr-go/pkg/device"
	"github.com/upnpav/dmr-go/pkg/log"
	"github.com/upnpav/dmr-go/pkg/soap"
)

// Config configures a control dispatcher.
type Config struct {
	// Address to listen on (e.g. ":8080" or "192.168.1.20:8080").
	Address string

	// Options describe the device; the descriptor document is rendered
	// from them once at construction.
	Options device.Options

	// Handler receives decoded actions. Required; use NopHandler for a
	// renderer that only logs.
	Handler ActionHandler

	// Logger for protocol event capture (optional).
	Logger log.Logger

	// DebugLogger is the optional logger for debug output.
	DebugLogger *slog.Logger
}

// Dispatcher is the renderer's control-transport endpoint. It owns the
// HTTP listener, routes requests to the four endpoints, and forwards
// decoded actions to the configured handler.
type Dispatcher struct {
	config  Config
	handler ActionHandler
	logger  log.Logger

	// descriptor is rendered once; the document is immutable.
	descriptor []byte

	server   *http.Server
	listener net.Listener
	running  atomic.Bool
}

// NewDispatcher creates a dispatcher. The device description is rendered
// eagerly so a bad configuration fails here rather than on first request.
func NewDispatcher(config Config) (*Dispatcher, error) {
	if config.Handler == nil {
		return nil, ErrMissingHandler
	}
	if err := config.Options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid device options: %w", err)
	}
	if config.Address == "" {
		config.Address = fmt.Sprintf(":%d", config.Options.HTTPPort)
	}
	logger := config.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}

	descriptor, err := description.Device(config.Options)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		config:     config,
		handler:    config.Handler,
		logger:     logger,
		descriptor: descriptor,
	}, nil
}

// Start begins accepting control requests. A listen failure is fatal and
// is returned synchronously; errors from individual requests never are.
func (d *Dispatcher) Start(ctx context.Context) error {
	if d.running.Load() {
		return ErrAlreadyRunning
	}

	listener, err := net.Listen("tcp", d.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	d.listener = listener

	d.server = &http.Server{
		Handler: d,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	d.running.Store(true)

	go func() {
		// ErrServerClosed is the normal Stop path.
		if err := d.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			d.debugLog("control server exited", "error", err)
		}
	}()

	return nil
}

// Stop shuts the server down, letting in-flight requests finish briefly.
func (d *Dispatcher) Stop() error {
	if !d.running.Load() {
		return nil
	}
	d.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.server.Shutdown(ctx)
}

// Addr returns the dispatcher's listen address.
func (d *Dispatcher) Addr() net.Addr {
	if d.listener != nil {
		return d.listener.Addr()
	}
	return nil
}

// ServeHTTP routes a control request: first by method, then by exact
// path. Unknown paths and wrong methods are expected traffic, answered
// with their rejection status and not logged as errors.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		d.handleGet(w, r)
	case http.MethodPost:
		d.handlePost(w, r)
	default:
		d.respond(w, r, http.StatusMethodNotAllowed, "", nil, nil)
	}
}

func (d *Dispatcher) handleGet(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case PathDeviceSpec:
		d.respond(w, r, http.StatusOK, description.ContentType, d.descriptor, nil)
	case PathAVTransport:
		d.respond(w, r, http.StatusOK, description.ContentType, []byte(description.AVTransportSCPD), nil)
	case PathRenderingControl:
		d.respond(w, r, http.StatusOK, description.ContentType, []byte(description.RenderingControlSCPD), nil)
	case PathIgnore:
		d.respond(w, r, http.StatusNoContent, "", nil, nil)
	default:
		d.respond(w, r, http.StatusNotFound, "", nil, nil)
	}
}

func (d *Dispatcher) handlePost(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case PathAVTransport:
		d.handleAction(w, r, soap.ServiceAVTransport)
	case PathRenderingControl:
		d.handleAction(w, r, soap.ServiceRenderingControl)
	case PathIgnore:
		d.respond(w, r, http.StatusNoContent, "", nil, nil)
	case PathDeviceSpec:
		d.respond(w, r, http.StatusMethodNotAllowed, "", nil, nil)
	default:
		d.respond(w, r, http.StatusNotFound, "", nil, nil)
	}
}

// handleAction decodes an action-bearing POST and forwards it to the
// handler. The handler's status becomes the response; parse failures are
// forwarded too, so a device can distinguish "garbled" from "declined".
func (d *Dispatcher) handleAction(w http.ResponseWriter, r *http.Request, svc soap.Service) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		d.respond(w, r, http.StatusBadRequest, "", nil, nil)
		return
	}

	// Observability only: a failed or empty extraction never affects the
	// response.
	highlights := soap.Highlights(svc, body)
	for _, h := range highlights {
		d.debugLog("control request", "service", svc.String(), "detail", h)
	}

	var status int
	var actionName string
	var parseErr error

	switch svc {
	case soap.ServiceAVTransport:
		action, err := soap.DecodeAVTransport(body)
		parseErr = err
		if err == nil {
			actionName = soapActionName(action)
		}
		status = d.handler.HandleAVTransport(action, err)
	case soap.ServiceRenderingControl:
		action, err := soap.DecodeRenderingControl(body)
		parseErr = err
		if err == nil {
			actionName = soapActionName(action)
		}
		status = d.handler.HandleRenderingControl(action, err)
	}
	if status == 0 {
		status = http.StatusMethodNotAllowed
	}

	d.logAction(r, svc, actionName, status, parseErr)
	d.respond(w, r, status, "", nil, &requestDetails{bodySize: len(body), highlights: highlights})
}

// requestDetails carries extra fields for the request log event.
type requestDetails struct {
	bodySize   int
	highlights []string
}

func (d *Dispatcher) respond(w http.ResponseWriter, r *http.Request, status int, contentType string, body []byte, details *requestDetails) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(status)
	if len(body) > 0 {
		_, _ = w.Write(body)
	}

	event := log.Event{
		Timestamp:  time.Now(),
		Direction:  log.DirectionIn,
		Layer:      log.LayerControl,
		Category:   log.CategoryMessage,
		RemoteAddr: r.RemoteAddr,
		DeviceUUID: d.config.Options.UUID,
		Request: &log.RequestEvent{
			Method: r.Method,
			Path:   r.URL.Path,
			Status: status,
		},
	}
	if details != nil {
		event.Request.BodySize = details.bodySize
		event.Request.Highlights = details.highlights
	}
	d.logger.Log(event)
}

func (d *Dispatcher) logAction(r *http.Request, svc soap.Service, action string, status int, parseErr error) {
	event := log.Event{
		Timestamp:  time.Now(),
		Direction:  log.DirectionIn,
		Layer:      log.LayerCodec,
		Category:   log.CategoryMessage,
		RemoteAddr: r.RemoteAddr,
		DeviceUUID: d.config.Options.UUID,
		Action: &log.ActionEvent{
			Service: svc.String(),
			Action:  action,
			Status:  status,
		},
	}
	if parseErr != nil {
		event.Category = log.CategoryError
		event.Action.ParseFailure = parseErr.Error()
	}
	d.logger.Log(event)
}

func (d *Dispatcher) debugLog(msg string, args ...any) {
	if d.config.DebugLogger != nil {
		d.config.DebugLogger.Debug(msg, args...)
	}
}

// soapActionName derives the wire tag of a decoded action from its Go
// type, e.g. soap.SetVolume -> "SetVolume".
func soapActionName(action any) string {
	name := fmt.Sprintf("%T", action)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
