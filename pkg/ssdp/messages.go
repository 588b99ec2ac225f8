package ssdp

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/upnpav/dmr-go/pkg/device"
)

// notifyTarget is one entry of the fixed presence sequence.
type notifyTarget struct {
	nt  string
	usn string
}

// notifyTargets returns the five presence sub-messages for a device, in
// their fixed order: root device, device UUID, then the three services.
func notifyTargets(id device.Identity) []notifyTarget {
	targets := []notifyTarget{
		{nt: "upnp:rootdevice", usn: id.USN() + "::upnp:rootdevice"},
		{nt: id.USN(), usn: id.USN()},
	}
	for _, svc := range []string{"RenderingControl", "AVTransport", "ConnectionManager"} {
		urn := fmt.Sprintf("urn:schemas-upnp-org:service:%s:1", svc)
		targets = append(targets, notifyTarget{nt: urn, usn: id.USN() + "::" + urn})
	}
	return targets
}

// notifyMessage formats a presence (NOTIFY) datagram.
func notifyMessage(id device.Identity, nt, nts, usn string) []byte {
	return []byte(fmt.Sprintf(
		"NOTIFY * HTTP/1.1\r\n"+
			"HOST: %s\r\n"+
			"NT: %s\r\n"+
			"NTS: %s\r\n"+
			"USN: %s\r\n"+
			"LOCATION: %s\r\n"+
			"CACHE-CONTROL: max-age=%d\r\n"+
			"SERVER: %s\r\n"+
			"\r\n",
		MulticastAddress, nt, nts, usn, id.DescriptorURL(), AliveCacheAge, ServerName))
}

// searchReply formats the unicast response to an M-SEARCH request.
func searchReply(id device.Identity, now time.Time) []byte {
	return []byte(fmt.Sprintf(
		"HTTP/1.1 200 OK\r\n"+
			"ST: upnp:rootdevice\r\n"+
			"USN: %s::upnp:rootdevice\r\n"+
			"LOCATION: %s\r\n"+
			"OPT: \"http://schemas.upnp.org/upnp/1/0/\"; ns=01\r\n"+
			"CACHE-CONTROL: max-age=%d\r\n"+
			"SERVER: %s\r\n"+
			"EXT:\r\n"+
			"DATE: %s\r\n"+
			"\r\n",
		id.USN(), id.DescriptorURL(), ReplyCacheAge, ServerName,
		now.UTC().Format(http.TimeFormat)))
}

// classify identifies an inbound datagram by its leading token.
func classify(msg []byte) MessageKind {
	switch {
	case bytes.HasPrefix(msg, []byte("M-SEARCH")):
		return KindSearch
	case bytes.HasPrefix(msg, []byte("NOTIFY")):
		return KindNotify
	default:
		return KindUnknown
	}
}
