// Package description renders the static UPnP descriptor documents a
// control point fetches over the control transport: the root device
// description and the per-service capability documents (SCPDs).
package description

import (
	"encoding/xml"
	"fmt"

	"github.com/upnpav/dmr-go/pkg/device"
)

// DeviceType is the UPnP device type of a media renderer.
const DeviceType = "urn:schemas-upnp-org:device:MediaRenderer:1"

// ContentType is the content type of every descriptor document.
const ContentType = `text/xml; charset="utf-8"`

// service is one serviceList entry in the device description.
type service struct {
	ServiceType string `xml:"serviceType"`
	ServiceID   string `xml:"serviceId"`
	SCPDURL     string `xml:"SCPDURL"`
	ControlURL  string `xml:"controlURL"`
	EventSubURL string `xml:"eventSubURL"`
}

// deviceDesc mirrors the <device> element of the root description.
type deviceDesc struct {
	DeviceType       string    `xml:"deviceType"`
	FriendlyName     string    `xml:"friendlyName"`
	Manufacturer     string    `xml:"manufacturer"`
	ManufacturerURL  string    `xml:"manufacturerURL"`
	ModelDescription string    `xml:"modelDescription"`
	ModelName        string    `xml:"modelName"`
	ModelURL         string    `xml:"modelURL"`
	SerialNumber     string    `xml:"serialNumber"`
	UDN              string    `xml:"UDN"`
	Services         []service `xml:"serviceList>service"`
}

type rootDesc struct {
	XMLName   xml.Name   `xml:"urn:schemas-upnp-org:device-1-0 root"`
	SpecMajor int        `xml:"specVersion>major"`
	SpecMinor int        `xml:"specVersion>minor"`
	URLBase   string     `xml:"URLBase"`
	Device    deviceDesc `xml:"device"`
}

// Device renders the root device description for the given options.
func Device(opts device.Options) ([]byte, error) {
	id := opts.Identity()
	root := rootDesc{
		SpecMajor: 1,
		SpecMinor: 0,
		URLBase:   fmt.Sprintf("http://%s:%d/", id.IP, id.HTTPPort),
		Device: deviceDesc{
			DeviceType:       DeviceType,
			FriendlyName:     opts.FriendlyName,
			Manufacturer:     opts.Manufacturer,
			ManufacturerURL:  opts.ManufacturerURL,
			ModelDescription: opts.ModelDescription,
			ModelName:        opts.ModelName,
			ModelURL:         opts.ModelURL,
			SerialNumber:     opts.SerialNumber,
			UDN:              id.USN(),
			Services: []service{
				{
					ServiceType: "urn:schemas-upnp-org:service:AVTransport:1",
					ServiceID:   "urn:upnp-org:serviceId:AVTransport",
					SCPDURL:     "/AVTransport",
					ControlURL:  "/AVTransport",
					EventSubURL: "/Ignore",
				},
				{
					ServiceType: "urn:schemas-upnp-org:service:RenderingControl:1",
					ServiceID:   "urn:upnp-org:serviceId:RenderingControl",
					SCPDURL:     "/RenderingControl",
					ControlURL:  "/RenderingControl",
					EventSubURL: "/Ignore",
				},
				{
					ServiceType: "urn:schemas-upnp-org:service:ConnectionManager:1",
					ServiceID:   "urn:upnp-org:serviceId:ConnectionManager",
					SCPDURL:     "/Ignore",
					ControlURL:  "/Ignore",
					EventSubURL: "/Ignore",
				},
			},
		},
	}

	out, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render device description: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
