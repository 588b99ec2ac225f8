// Package ssdp implements the renderer's discovery engine: SSDP presence
// announcements, withdrawal, keep-alive, and search responses on the
// well-known multicast group 239.255.255.250:1900.
//
// The engine owns one multicast-joined UDP socket. It announces the root
// device, the device UUID, and the three advertised services as a fixed
// five-message sequence, answers M-SEARCH requests with a unicast reply,
// and ignores announcements from peers. It tracks no peer state.
package ssdp
