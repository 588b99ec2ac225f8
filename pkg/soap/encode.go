package soap

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// arg is a single named action argument on the wire.
type arg struct {
	name  string
	value string
}

// encodeEnvelope builds a SOAP request body invoking the named action.
func encodeEnvelope(svc Service, action string, args []arg) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	b.WriteString(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/"`)
	b.WriteString(` s:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">`)
	b.WriteString(`<s:Body>`)
	fmt.Fprintf(&b, `<u:%s xmlns:u="%s">`, action, svc.URN())
	for _, a := range args {
		fmt.Fprintf(&b, "<%s>", a.name)
		// Escape errors only occur on invalid UTF-8; drop the argument value
		// rather than producing a malformed document.
		_ = xml.EscapeText(&b, []byte(a.value))
		fmt.Fprintf(&b, "</%s>", a.name)
	}
	fmt.Fprintf(&b, "</u:%s>", action)
	b.WriteString(`</s:Body></s:Envelope>`)
	return []byte(b.String())
}

// soapActionHeader returns the SOAPACTION header value for an action.
func soapActionHeader(svc Service, action string) string {
	return fmt.Sprintf("%q", svc.URN()+"#"+action)
}

func instanceArg(id uint32) arg {
	return arg{"InstanceID", strconv.FormatUint(uint64(id), 10)}
}

// EncodeAVTransport builds the request body and SOAPACTION header value
// for an AVTransport action. Used by control points; the renderer itself
// only decodes.
func EncodeAVTransport(action AVTransportAction) (body []byte, soapAction string, err error) {
	var name string
	var args []arg

	switch a := action.(type) {
	case SetAVTransportURI:
		name = "SetAVTransportURI"
		args = []arg{instanceArg(a.InstanceID), {"CurrentURI", a.CurrentURI}, {"CurrentURIMetaData", a.CurrentURIMetaData}}
	case SetNextAVTransportURI:
		name = "SetNextAVTransportURI"
		args = []arg{instanceArg(a.InstanceID), {"NextURI", a.NextURI}, {"NextURIMetaData", a.NextURIMetaData}}
	case Play:
		name = "Play"
		args = []arg{instanceArg(a.InstanceID), {"Speed", a.Speed.String()}}
	case Seek:
		name = "Seek"
		args = []arg{instanceArg(a.InstanceID), {"Unit", a.Unit.String()}, {"Target", a.Target}}
	case Stop:
		name, args = "Stop", []arg{instanceArg(a.InstanceID)}
	case Pause:
		name, args = "Pause", []arg{instanceArg(a.InstanceID)}
	case Next:
		name, args = "Next", []arg{instanceArg(a.InstanceID)}
	case Previous:
		name, args = "Previous", []arg{instanceArg(a.InstanceID)}
	case GetMediaInfo:
		name, args = "GetMediaInfo", []arg{instanceArg(a.InstanceID)}
	case GetTransportInfo:
		name, args = "GetTransportInfo", []arg{instanceArg(a.InstanceID)}
	case GetPositionInfo:
		name, args = "GetPositionInfo", []arg{instanceArg(a.InstanceID)}
	case GetDeviceCapabilities:
		name, args = "GetDeviceCapabilities", []arg{instanceArg(a.InstanceID)}
	case GetTransportSettings:
		name, args = "GetTransportSettings", []arg{instanceArg(a.InstanceID)}
	case GetCurrentTransportActions:
		name, args = "GetCurrentTransportActions", []arg{instanceArg(a.InstanceID)}
	default:
		return nil, "", fmt.Errorf("soap: unsupported AVTransport action %T", action)
	}

	return encodeEnvelope(ServiceAVTransport, name, args), soapActionHeader(ServiceAVTransport, name), nil
}

// EncodeRenderingControl builds the request body and SOAPACTION header
// value for a RenderingControl action.
func EncodeRenderingControl(action RenderingControlAction) (body []byte, soapAction string, err error) {
	var name string
	var args []arg

	switch a := action.(type) {
	case ListPresets:
		name, args = "ListPresets", []arg{instanceArg(a.InstanceID)}
	case SelectPreset:
		name = "SelectPreset"
		args = []arg{instanceArg(a.InstanceID), {"PresetName", a.PresetName.String()}}
	case GetMute:
		name = "GetMute"
		args = []arg{instanceArg(a.InstanceID), {"Channel", a.Channel.String()}}
	case SetMute:
		name = "SetMute"
		mute := "0"
		if a.DesiredMute {
			mute = "1"
		}
		args = []arg{instanceArg(a.InstanceID), {"Channel", a.Channel.String()}, {"DesiredMute", mute}}
	case GetVolume:
		name = "GetVolume"
		args = []arg{instanceArg(a.InstanceID), {"Channel", a.Channel.String()}}
	case SetVolume:
		name = "SetVolume"
		args = []arg{instanceArg(a.InstanceID), {"Channel", a.Channel.String()}, {"DesiredVolume", strconv.FormatUint(uint64(a.DesiredVolume), 10)}}
	default:
		return nil, "", fmt.Errorf("soap: unsupported RenderingControl action %T", action)
	}

	return encodeEnvelope(ServiceRenderingControl, name, args), soapActionHeader(ServiceRenderingControl, name), nil
}
