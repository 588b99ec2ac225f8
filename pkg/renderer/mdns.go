package renderer

import (
	"fmt"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"

	"github.com/upnpav/dmr-go/pkg/device"
)

// mDNS service parameters.
const (
	mdnsServiceType = "_mediarenderer._tcp"
	mdnsDomain      = "local."
)

// MDNSAdvertiser supplements SSDP with an mDNS presence record so that
// Bonjour-style browsers can also find the renderer. TXT records carry
// the device UUID, model, and friendly name.
type MDNSAdvertiser struct {
	iface string

	mu     sync.Mutex
	server *zeroconf.Server
}

// NewMDNSAdvertiser creates an mDNS advertiser. iface restricts
// advertising to one interface; empty means all.
func NewMDNSAdvertiser(iface string) *MDNSAdvertiser {
	return &MDNSAdvertiser{iface: iface}
}

func (a *MDNSAdvertiser) interfaces() []net.Interface {
	if a.iface == "" {
		return nil
	}
	iface, err := net.InterfaceByName(a.iface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// Advertise starts advertising the renderer. A previous advertisement is
// replaced.
func (a *MDNSAdvertiser) Advertise(opts device.Options) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	txt := []string{
		"uuid=" + opts.UUID,
		"model=" + opts.ModelName,
		"name=" + opts.FriendlyName,
	}

	server, err := zeroconf.Register(
		opts.FriendlyName,
		mdnsServiceType,
		mdnsDomain,
		int(opts.HTTPPort),
		txt,
		a.interfaces(),
	)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}

	a.server = server
	return nil
}

// Stop withdraws the advertisement. Safe to call when not advertising.
func (a *MDNSAdvertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}
