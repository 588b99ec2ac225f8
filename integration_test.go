package dmr_test

import (
	"bytes"
	"encoding/xml"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upnpav/dmr-go/pkg/control"
	"github.com/upnpav/dmr-go/pkg/device"
	"github.com/upnpav/dmr-go/pkg/soap"
)

// collectingHandler accepts transport actions and records them, standing
// in for a real playback backend.
type collectingHandler struct {
	actions []soap.AVTransportAction
}

func (h *collectingHandler) HandleAVTransport(action soap.AVTransportAction, parseErr error) int {
	if parseErr != nil {
		return http.StatusBadRequest
	}
	h.actions = append(h.actions, action)
	return http.StatusOK
}

func (h *collectingHandler) HandleRenderingControl(soap.RenderingControlAction, error) int {
	return http.StatusMethodNotAllowed
}

// TestE2E_ControlSession drives a renderer's control transport over
// loopback the way a control point would: fetch the description, then
// issue a play session's worth of actions.
func TestE2E_ControlSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	handler := &collectingHandler{}
	dispatcher, err := control.NewDispatcher(control.Config{
		Address: "127.0.0.1:0",
		Options: device.Options{
			UUID:         "7d33cd0f-9b6f-44b9-aa87-2b3f5c9e1a11",
			IP:           net.IPv4(127, 0, 0, 1),
			SSDPPort:     1900,
			HTTPPort:     8080,
			FriendlyName: "Loopback Renderer",
			ModelName:    "Loopback Model",
		},
		Handler: handler,
	})
	require.NoError(t, err)

	require.NoError(t, dispatcher.Start(t.Context()))
	defer dispatcher.Stop()

	base := "http://" + dispatcher.Addr().String()
	client := &http.Client{Timeout: 5 * time.Second}

	// Step 1: fetch and parse the device description.
	resp, err := client.Get(base + control.PathDeviceSpec)
	require.NoError(t, err)
	descriptor, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var desc struct {
		Device struct {
			FriendlyName string `xml:"friendlyName"`
			UDN          string `xml:"UDN"`
			Services     []struct {
				ServiceType string `xml:"serviceType"`
				ControlURL  string `xml:"controlURL"`
			} `xml:"serviceList>service"`
		} `xml:"device"`
	}
	require.NoError(t, xml.Unmarshal(descriptor, &desc))
	assert.Equal(t, "Loopback Renderer", desc.Device.FriendlyName)
	assert.Equal(t, "uuid:7d33cd0f-9b6f-44b9-aa87-2b3f5c9e1a11", desc.Device.UDN)
	require.Len(t, desc.Device.Services, 3)

	// Step 2: a typical session - set the URI, play, seek, stop.
	session := []soap.AVTransportAction{
		soap.SetAVTransportURI{InstanceID: 0, CurrentURI: "http://127.0.0.1/clip.mp4"},
		soap.Play{InstanceID: 0, Speed: soap.SpeedNormal},
		soap.Seek{InstanceID: 0, Unit: soap.UnitRelTime, Target: "00:01:30"},
		soap.Stop{Instance: soap.Instance{InstanceID: 0}},
	}
	for _, action := range session {
		body, soapAction, err := soap.EncodeAVTransport(action)
		require.NoError(t, err)

		req, err := http.NewRequest(http.MethodPost, base+control.PathAVTransport, bytes.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("SOAPACTION", soapAction)

		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, soapAction)
	}

	require.Len(t, handler.actions, 4)
	set, ok := handler.actions[0].(soap.SetAVTransportURI)
	require.True(t, ok)
	assert.Equal(t, "http://127.0.0.1/clip.mp4", set.CurrentURI)
	seek, ok := handler.actions[2].(soap.Seek)
	require.True(t, ok)
	assert.Equal(t, "00:01:30", seek.Target)

	// Step 3: declined service answers with the rejection convention.
	body, soapAction, err := soap.EncodeRenderingControl(soap.SetVolume{
		InstanceID: 0, Channel: soap.ChannelMaster, DesiredVolume: 30,
	})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, base+control.PathRenderingControl, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("SOAPACTION", soapAction)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
