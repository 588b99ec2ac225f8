package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/upnpav/dmr-go/pkg/control"
	"github.com/upnpav/dmr-go/pkg/soap"
)

// shell is the interactive command loop driving one renderer.
type shell struct {
	base   string
	client *http.Client
	rl     *readline.Instance
}

func newShell(base string) (*shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "dmr> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &shell{
		base:   base,
		client: &http.Client{Timeout: 10 * time.Second},
		rl:     rl,
	}, nil
}

func (s *shell) run() {
	defer s.rl.Close()

	fmt.Fprintf(s.rl.Stdout(), "Connected to %s\n", s.base)
	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "target":
			if len(args) != 1 {
				fmt.Fprintln(s.rl.Stdout(), "Usage: target <base-url>")
				continue
			}
			s.base = strings.TrimSuffix(args[0], "/")
			fmt.Fprintf(s.rl.Stdout(), "Now targeting %s\n", s.base)

		case "spec", "describe":
			s.cmdSpec()

		case "seturi":
			s.cmdSetURI(args)

		case "play":
			s.sendAVTransport(soap.Play{InstanceID: 0, Speed: soap.SpeedNormal})

		case "pause":
			s.sendAVTransport(soap.Pause{Instance: soap.Instance{InstanceID: 0}})

		case "stop":
			s.sendAVTransport(soap.Stop{Instance: soap.Instance{InstanceID: 0}})

		case "next":
			s.sendAVTransport(soap.Next{Instance: soap.Instance{InstanceID: 0}})

		case "prev", "previous":
			s.sendAVTransport(soap.Previous{Instance: soap.Instance{InstanceID: 0}})

		case "seek":
			s.cmdSeek(args)

		case "status":
			s.sendAVTransport(soap.GetTransportInfo{Instance: soap.Instance{InstanceID: 0}})

		case "position":
			s.sendAVTransport(soap.GetPositionInfo{Instance: soap.Instance{InstanceID: 0}})

		case "volume", "vol":
			s.cmdVolume(args)

		case "mute":
			s.cmdMute(args)

		case "presets":
			s.sendRenderingControl(soap.ListPresets{InstanceID: 0})

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Renderer commands:
  Transport:
    seturi <uri>        - Set the media URI to play
    play / pause / stop - Transport control
    next / prev         - Track navigation
    seek <hh:mm:ss>     - Seek to a position
    status              - Query transport state
    position            - Query playback position

  Rendering:
    volume <0-100>      - Set volume (no argument: query)
    mute <on|off>       - Set mute (no argument: query)
    presets             - List presets

  Session:
    spec                - Fetch the device description
    target <url>        - Switch to another renderer
    quit                - Exit`)
}

func (s *shell) cmdSpec() {
	doc, err := fetchDescription(s.base)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), doc)
}

func (s *shell) cmdSetURI(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: seturi <uri>")
		return
	}
	s.sendAVTransport(soap.SetAVTransportURI{InstanceID: 0, CurrentURI: args[0]})
}

func (s *shell) cmdSeek(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: seek <hh:mm:ss>")
		return
	}
	s.sendAVTransport(soap.Seek{InstanceID: 0, Unit: soap.UnitRelTime, Target: args[0]})
}

func (s *shell) cmdVolume(args []string) {
	if len(args) == 0 {
		s.sendRenderingControl(soap.GetVolume{InstanceID: 0, Channel: soap.ChannelMaster})
		return
	}
	vol, err := strconv.ParseUint(args[0], 10, 16)
	if err != nil || vol > 100 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: volume <0-100>")
		return
	}
	s.sendRenderingControl(soap.SetVolume{
		InstanceID:    0,
		Channel:       soap.ChannelMaster,
		DesiredVolume: uint16(vol),
	})
}

func (s *shell) cmdMute(args []string) {
	if len(args) == 0 {
		s.sendRenderingControl(soap.GetMute{InstanceID: 0, Channel: soap.ChannelMaster})
		return
	}
	var mute bool
	switch strings.ToLower(args[0]) {
	case "on", "1", "true":
		mute = true
	case "off", "0", "false":
		mute = false
	default:
		fmt.Fprintln(s.rl.Stdout(), "Usage: mute <on|off>")
		return
	}
	s.sendRenderingControl(soap.SetMute{
		InstanceID:  0,
		Channel:     soap.ChannelMaster,
		DesiredMute: mute,
	})
}

func (s *shell) sendAVTransport(action soap.AVTransportAction) {
	body, soapAction, err := soap.EncodeAVTransport(action)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	s.post(control.PathAVTransport, body, soapAction)
}

func (s *shell) sendRenderingControl(action soap.RenderingControlAction) {
	body, soapAction, err := soap.EncodeRenderingControl(action)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	s.post(control.PathRenderingControl, body, soapAction)
}

// post sends one SOAP request and prints the response status. Dummy
// renderers decline actions with 405; that is the expected answer.
func (s *shell) post(path string, body []byte, soapAction string) {
	req, err := http.NewRequest(http.MethodPost, s.base+path, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	req.Header.Set("SOAPACTION", soapAction)

	resp, err := s.client.Do(req)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	fmt.Fprintf(s.rl.Stdout(), "%s -> %s\n", soapAction, resp.Status)
}
