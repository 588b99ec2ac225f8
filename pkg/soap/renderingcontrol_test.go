package soap

import (
	"errors"
	"fmt"
	"testing"
)

func rcsAction(name, inner string) string {
	return fmt.Sprintf(`<u:%s xmlns:u="urn:schemas-upnp-org:service:RenderingControl:1">%s</u:%s>`, name, inner, name)
}

func TestDecodeRenderingControl(t *testing.T) {
	tests := []struct {
		name string
		body string
		want RenderingControlAction
	}{
		{
			name: "list presets",
			body: rcsAction("ListPresets", `<InstanceID>0</InstanceID>`),
			want: ListPresets{InstanceID: 0},
		},
		{
			name: "select preset",
			body: rcsAction("SelectPreset", `<PresetName>FactoryDefaults</PresetName><InstanceID>0</InstanceID>`),
			want: SelectPreset{InstanceID: 0, PresetName: PresetFactoryDefaults},
		},
		{
			name: "get mute",
			body: rcsAction("GetMute", `<Channel>Master</Channel><InstanceID>0</InstanceID>`),
			want: GetMute{InstanceID: 0, Channel: ChannelMaster},
		},
		{
			name: "set mute true",
			body: rcsAction("SetMute", `<DesiredMute>1</DesiredMute><Channel>Master</Channel><InstanceID>0</InstanceID>`),
			want: SetMute{InstanceID: 0, Channel: ChannelMaster, DesiredMute: true},
		},
		{
			name: "set mute false spelled out",
			body: rcsAction("SetMute", `<DesiredMute>false</DesiredMute><Channel>Master</Channel><InstanceID>0</InstanceID>`),
			want: SetMute{InstanceID: 0, Channel: ChannelMaster, DesiredMute: false},
		},
		{
			name: "get volume",
			body: rcsAction("GetVolume", `<Channel>Master</Channel><InstanceID>0</InstanceID>`),
			want: GetVolume{InstanceID: 0, Channel: ChannelMaster},
		},
		{
			name: "set volume",
			body: rcsAction("SetVolume", `<DesiredVolume>50</DesiredVolume><Channel>Master</Channel><InstanceID>0</InstanceID>`),
			want: SetVolume{InstanceID: 0, Channel: ChannelMaster, DesiredVolume: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRenderingControl([]byte(envelope(tt.body)))
			if err != nil {
				t.Fatalf("DecodeRenderingControl: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeRenderingControlFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "unknown channel",
			body: rcsAction("SetVolume", `<DesiredVolume>50</DesiredVolume><Channel>LeftRear</Channel><InstanceID>0</InstanceID>`),
		},
		{
			name: "unknown preset",
			body: rcsAction("SelectPreset", `<PresetName>LoudnessBoost</PresetName><InstanceID>0</InstanceID>`),
		},
		{
			name: "mute flag not boolean",
			body: rcsAction("SetMute", `<DesiredMute>maybe</DesiredMute><Channel>Master</Channel><InstanceID>0</InstanceID>`),
		},
		{
			name: "volume not numeric",
			body: rcsAction("SetVolume", `<DesiredVolume>loud</DesiredVolume><Channel>Master</Channel><InstanceID>0</InstanceID>`),
		},
		{
			name: "volume exceeds uint16",
			body: rcsAction("SetVolume", `<DesiredVolume>70000</DesiredVolume><Channel>Master</Channel><InstanceID>0</InstanceID>`),
		},
		{
			name: "missing channel",
			body: rcsAction("GetVolume", `<InstanceID>0</InstanceID>`),
		},
		{
			name: "missing desired volume",
			body: rcsAction("SetVolume", `<Channel>Master</Channel><InstanceID>0</InstanceID>`),
		},
		{
			name: "missing desired mute",
			body: rcsAction("SetMute", `<Channel>Master</Channel><InstanceID>0</InstanceID>`),
		},
		{
			name: "instance id out of range",
			body: rcsAction("ListPresets", `<InstanceID>4294967296</InstanceID>`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRenderingControl([]byte(envelope(tt.body)))
			if err == nil {
				t.Fatalf("expected error, got %#v", got)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("expected *ParseError, got %T: %v", err, err)
			}
		})
	}
}

func TestDecodeRenderingControlUnknownAction(t *testing.T) {
	body := envelope(rcsAction("GetLoudness", `<Channel>Master</Channel><InstanceID>0</InstanceID>`))

	_, err := DecodeRenderingControl([]byte(body))
	var unknown *UnknownActionError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownActionError, got %T: %v", err, err)
	}
	if unknown.Name != "GetLoudness" {
		t.Errorf("unknown action name = %q, want GetLoudness", unknown.Name)
	}
}

func TestEncodeRenderingControlRoundTrip(t *testing.T) {
	actions := []RenderingControlAction{
		ListPresets{InstanceID: 0},
		SelectPreset{InstanceID: 0, PresetName: PresetFactoryDefaults},
		GetMute{InstanceID: 0, Channel: ChannelMaster},
		SetMute{InstanceID: 0, Channel: ChannelMaster, DesiredMute: true},
		GetVolume{InstanceID: 0, Channel: ChannelMaster},
		SetVolume{InstanceID: 0, Channel: ChannelMaster, DesiredVolume: 50},
	}

	for _, action := range actions {
		body, soapAction, err := EncodeRenderingControl(action)
		if err != nil {
			t.Fatalf("EncodeRenderingControl(%#v): %v", action, err)
		}
		if soapAction == "" {
			t.Errorf("empty SOAPACTION for %#v", action)
		}

		decoded, err := DecodeRenderingControl(body)
		if err != nil {
			t.Fatalf("decode of encoded %#v: %v\nbody: %s", action, err, body)
		}
		if decoded != action {
			t.Errorf("round trip mismatch: got %#v, want %#v", decoded, action)
		}
	}
}
