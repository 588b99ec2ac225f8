// Package device holds the renderer's immutable identity and the options
// it is configured with at startup. Identity is created once, before the
// discovery and control servers start, and is shared by both without
// mutation.
package device

import (
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"
)

// Default ports.
const (
	// DefaultSSDPPort is the well-known SSDP port.
	DefaultSSDPPort = 1900

	// DefaultHTTPPort is the default control-transport port.
	DefaultHTTPPort = 8080
)

// Configuration errors.
var (
	ErrMissingUUID   = errors.New("device UUID is required")
	ErrMissingIP     = errors.New("device IP address is required")
	ErrNotIPv4       = errors.New("device IP address must be IPv4")
	ErrInvalidPort   = errors.New("port must be in range 1-65535")
	ErrMissingName   = errors.New("friendly name is required")
	ErrInvalidUUID   = errors.New("device UUID is not a valid UUID")
	ErrNoLocalRoutes = errors.New("no routable local IPv4 address found")
)

// Identity is the renderer's immutable network identity. It is read-only
// for the lifetime of the process and needs no synchronization.
type Identity struct {
	// UUID is the globally unique identifier of this device instance.
	UUID string

	// IP is the bound IPv4 address.
	IP net.IP

	// HTTPPort is the control-transport port.
	HTTPPort uint16
}

// USN returns the device's unique service name prefix ("uuid:<uuid>").
func (id Identity) USN() string {
	return "uuid:" + id.UUID
}

// DescriptorURL returns the URL control points fetch the device
// description from.
func (id Identity) DescriptorURL() string {
	return fmt.Sprintf("http://%s:%d/DeviceSpec", id.IP, id.HTTPPort)
}

// Options configures a renderer instance. All fields have usable defaults
// from DefaultOptions.
type Options struct {
	// UUID identifies this device instance. Generated when empty.
	UUID string `yaml:"uuid"`

	// IP is the IPv4 address the device is reachable on. Auto-detected
	// when nil.
	IP net.IP `yaml:"ip"`

	// SSDPPort is the discovery port (default 1900).
	SSDPPort uint16 `yaml:"ssdp_port"`

	// HTTPPort is the control-transport port (default 8080).
	HTTPPort uint16 `yaml:"http_port"`

	// FriendlyName is the name shown to users by control points.
	FriendlyName string `yaml:"friendly_name"`

	// ModelName is the device model name.
	ModelName string `yaml:"model_name"`

	// ModelDescription is a short model description.
	ModelDescription string `yaml:"model_description"`

	// ModelURL is the model's web page.
	ModelURL string `yaml:"model_url"`

	// Manufacturer is the manufacturer name.
	Manufacturer string `yaml:"manufacturer"`

	// ManufacturerURL is the manufacturer's web page.
	ManufacturerURL string `yaml:"manufacturer_url"`

	// SerialNumber is the device serial number.
	SerialNumber string `yaml:"serial_number"`
}

// DefaultOptions returns options for a dummy renderer with a fresh UUID
// and an auto-detected local IPv4 address.
func DefaultOptions() (Options, error) {
	ip, err := localIPv4()
	if err != nil {
		return Options{}, err
	}
	return Options{
		UUID:             uuid.NewString(),
		IP:               ip,
		SSDPPort:         DefaultSSDPPort,
		HTTPPort:         DefaultHTTPPort,
		FriendlyName:     "Dummy Renderer",
		ModelName:        "Dummy Model",
		ModelDescription: "A dummy DLNA media renderer",
		ModelURL:         "http://example.com/dummy_model",
		Manufacturer:     "Dummy Manufacturer",
		ManufacturerURL:  "http://example.com/manufacturer",
		SerialNumber:     "12345678-1234-5678-1234-567812345678",
	}, nil
}

// Validate checks the options for completeness.
func (o Options) Validate() error {
	if o.UUID == "" {
		return ErrMissingUUID
	}
	if _, err := uuid.Parse(o.UUID); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidUUID, o.UUID)
	}
	if o.IP == nil {
		return ErrMissingIP
	}
	if o.IP.To4() == nil {
		return ErrNotIPv4
	}
	if o.SSDPPort == 0 || o.HTTPPort == 0 {
		return ErrInvalidPort
	}
	if o.FriendlyName == "" {
		return ErrMissingName
	}
	return nil
}

// Identity derives the immutable device identity from the options.
func (o Options) Identity() Identity {
	return Identity{
		UUID:     o.UUID,
		IP:       o.IP.To4(),
		HTTPPort: o.HTTPPort,
	}
}

// localIPv4 probes the routing table for the outbound IPv4 address. No
// packets are sent; the dial only resolves a local source address.
func localIPv4() (net.IP, error) {
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoLocalRoutes, err)
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP.To4() == nil {
		return nil, ErrNoLocalRoutes
	}
	return addr.IP.To4(), nil
}
