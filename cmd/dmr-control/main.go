// Command dmr-control is an interactive control point for testing
// renderers on the local network.
//
// It discovers renderers with an SSDP search, then opens a shell that
// issues AVTransport and RenderingControl actions against the selected
// device and prints each response status.
//
// Usage:
//
//	dmr-control [flags]
//
// Flags:
//
//	-target string   Renderer base URL (skips discovery), e.g. http://192.168.1.20:8080
//	-timeout duration  SSDP search window (default 3s)
//
// Examples:
//
//	# Discover renderers and pick one interactively
//	dmr-control
//
//	# Talk to a known renderer directly
//	dmr-control -target http://192.168.1.20:8080
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	ssdpMulticastAddress = "239.255.255.250:1900"
	searchTarget         = "urn:schemas-upnp-org:device:MediaRenderer:1"
)

var (
	target  = flag.String("target", "", "Renderer base URL (skips discovery)")
	timeout = flag.Duration("timeout", 3*time.Second, "SSDP search window")
)

func main() {
	flag.Parse()

	base := *target
	if base == "" {
		found, err := discover(*timeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Discovery failed: %v\n", err)
			os.Exit(1)
		}
		if len(found) == 0 {
			fmt.Fprintln(os.Stderr, "No renderers found. Use -target to connect directly.")
			os.Exit(1)
		}

		fmt.Println("Discovered renderers:")
		for i, loc := range found {
			fmt.Printf("  [%d] %s\n", i, loc)
		}
		base = baseURL(found[0])
		if len(found) > 1 {
			fmt.Printf("Using [0]; switch with 'target <url>'.\n")
		}
	}

	shell, err := newShell(base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start shell: %v\n", err)
		os.Exit(1)
	}
	shell.run()
}

// discover sends one M-SEARCH for media renderers and collects unique
// LOCATION headers until the timeout expires.
func discover(window time.Duration) ([]string, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	group, err := net.ResolveUDPAddr("udp4", ssdpMulticastAddress)
	if err != nil {
		return nil, err
	}

	search := "M-SEARCH * HTTP/1.1\r\n" +
		"HOST: " + ssdpMulticastAddress + "\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"MX: 2\r\n" +
		"ST: " + searchTarget + "\r\n" +
		"\r\n"
	if _, err := conn.WriteToUDP([]byte(search), group); err != nil {
		return nil, err
	}

	_ = conn.SetReadDeadline(time.Now().Add(window))

	seen := make(map[string]bool)
	var locations []string
	buf := make([]byte, 4096)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			break // deadline reached
		}
		loc := parseLocation(string(buf[:n]))
		if loc != "" && !seen[loc] {
			seen[loc] = true
			locations = append(locations, loc)
		}
	}
	return locations, nil
}

// parseLocation extracts the LOCATION header from a search reply.
func parseLocation(reply string) string {
	scanner := bufio.NewScanner(strings.NewReader(reply))
	for scanner.Scan() {
		line := scanner.Text()
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "location") {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// baseURL strips the descriptor path from a LOCATION URL.
func baseURL(location string) string {
	if i := strings.Index(location, "/DeviceSpec"); i >= 0 {
		return location[:i]
	}
	return strings.TrimSuffix(location, "/")
}

// fetchDescription retrieves the device description document.
func fetchDescription(base string) (string, error) {
	resp, err := http.Get(base + "/DeviceSpec")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
