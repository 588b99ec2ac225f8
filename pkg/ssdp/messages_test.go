package ssdp

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/upnpav/dmr-go/pkg/device"
)

func testIdentity() device.Identity {
	return device.Identity{
		UUID:     "f4f7681e-6a8d-4dfa-9bb4-9a6a36a5c8b2",
		IP:       net.IPv4(192, 168, 1, 20),
		HTTPPort: 8080,
	}
}

func TestNotifyTargets(t *testing.T) {
	targets := notifyTargets(testIdentity())

	if len(targets) != 5 {
		t.Fatalf("got %d targets, want 5", len(targets))
	}

	wantNT := []string{
		"upnp:rootdevice",
		"uuid:f4f7681e-6a8d-4dfa-9bb4-9a6a36a5c8b2",
		"urn:schemas-upnp-org:service:RenderingControl:1",
		"urn:schemas-upnp-org:service:AVTransport:1",
		"urn:schemas-upnp-org:service:ConnectionManager:1",
	}
	for i, want := range wantNT {
		if targets[i].nt != want {
			t.Errorf("target %d NT = %q, want %q", i, targets[i].nt, want)
		}
	}

	// Root device and service USNs carry the uuid prefix.
	if targets[0].usn != "uuid:f4f7681e-6a8d-4dfa-9bb4-9a6a36a5c8b2::upnp:rootdevice" {
		t.Errorf("root USN = %q", targets[0].usn)
	}
	if targets[1].usn != targets[1].nt {
		t.Errorf("device USN = %q, want bare UUID", targets[1].usn)
	}
}

func TestNotifyMessage(t *testing.T) {
	id := testIdentity()
	msg := string(notifyMessage(id, "upnp:rootdevice", "ssdp:alive", id.USN()+"::upnp:rootdevice"))

	for _, want := range []string{
		"NOTIFY * HTTP/1.1\r\n",
		"HOST: 239.255.255.250:1900\r\n",
		"NT: upnp:rootdevice\r\n",
		"NTS: ssdp:alive\r\n",
		"USN: uuid:f4f7681e-6a8d-4dfa-9bb4-9a6a36a5c8b2::upnp:rootdevice\r\n",
		"LOCATION: http://192.168.1.20:8080/DeviceSpec\r\n",
		"CACHE-CONTROL: max-age=1800\r\n",
		"SERVER: " + ServerName + "\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("notify message missing %q\n%s", want, msg)
		}
	}
	if !strings.HasSuffix(msg, "\r\n\r\n") {
		t.Error("notify message must end with an empty line")
	}
}

func TestSearchReply(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	reply := string(searchReply(testIdentity(), now))

	for _, want := range []string{
		"HTTP/1.1 200 OK\r\n",
		"ST: upnp:rootdevice\r\n",
		"USN: uuid:f4f7681e-6a8d-4dfa-9bb4-9a6a36a5c8b2::upnp:rootdevice\r\n",
		"LOCATION: http://192.168.1.20:8080/DeviceSpec\r\n",
		"CACHE-CONTROL: max-age=900\r\n",
		"EXT:\r\n",
		"DATE: Sat, 14 Mar 2026 10:30:00 GMT\r\n",
	} {
		if !strings.Contains(reply, want) {
			t.Errorf("search reply missing %q\n%s", want, reply)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want MessageKind
	}{
		{"search", "M-SEARCH * HTTP/1.1\r\nHOST: 239.255.255.250:1900\r\nMAN: \"ssdp:discover\"\r\nST: ssdp:all\r\n\r\n", KindSearch},
		{"notify", "NOTIFY * HTTP/1.1\r\nHOST: 239.255.255.250:1900\r\n\r\n", KindNotify},
		{"http response", "HTTP/1.1 200 OK\r\n\r\n", KindUnknown},
		{"garbage", "\x00\x01\x02", KindUnknown},
		{"empty", "", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify([]byte(tt.msg)); got != tt.want {
				t.Errorf("classify = %v, want %v", got, tt.want)
			}
		})
	}
}
