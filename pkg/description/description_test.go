package description

import (
	"encoding/xml"
	"net"
	"strings"
	"testing"

	"github.com/upnpav/dmr-go/pkg/device"
)

func testOptions() device.Options {
	return device.Options{
		UUID:             "f4f7681e-6a8d-4dfa-9bb4-9a6a36a5c8b2",
		IP:               net.IPv4(192, 168, 1, 20),
		SSDPPort:         1900,
		HTTPPort:         8080,
		FriendlyName:     "Living Room",
		ModelName:        "Test Model",
		ModelDescription: "test renderer",
		ModelURL:         "http://example.com/model",
		Manufacturer:     "Test Works",
		ManufacturerURL:  "http://example.com",
		SerialNumber:     "SN-1",
	}
}

func TestDeviceDescription(t *testing.T) {
	out, err := Device(testOptions())
	if err != nil {
		t.Fatalf("Device: %v", err)
	}

	doc := string(out)
	for _, want := range []string{
		"<friendlyName>Living Room</friendlyName>",
		"<UDN>uuid:f4f7681e-6a8d-4dfa-9bb4-9a6a36a5c8b2</UDN>",
		"<deviceType>" + DeviceType + "</deviceType>",
		"<URLBase>http://192.168.1.20:8080/</URLBase>",
		"<controlURL>/AVTransport</controlURL>",
		"<controlURL>/RenderingControl</controlURL>",
		"urn:schemas-upnp-org:service:ConnectionManager:1",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("device description missing %q", want)
		}
	}

	// Must stay well-formed XML.
	var anything struct{}
	if err := xml.Unmarshal(out, &anything); err != nil {
		t.Errorf("device description is not well-formed: %v", err)
	}
}

func TestSCPDsAreWellFormed(t *testing.T) {
	for name, doc := range map[string]string{
		"AVTransport":      AVTransportSCPD,
		"RenderingControl": RenderingControlSCPD,
	} {
		var anything struct{}
		if err := xml.Unmarshal([]byte(doc), &anything); err != nil {
			t.Errorf("%s SCPD is not well-formed: %v", name, err)
		}
		if !strings.Contains(doc, "<actionList>") {
			t.Errorf("%s SCPD has no action list", name)
		}
	}
}
