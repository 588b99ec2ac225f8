package ssdp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"syscall"
	"time"

	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"

	"github.com/upnpav/dmr-go/pkg/device"
	"github.com/upnpav/dmr-go/pkg/log"
)

// Config configures a discovery engine.
type Config struct {
	// Identity is the renderer's immutable network identity.
	Identity device.Identity

	// Port is the local SSDP port (default 1900).
	Port uint16

	// AliveInterval is the keep-alive re-announcement period
	// (default DefaultAliveInterval).
	AliveInterval time.Duration

	// Logger for protocol event capture (optional).
	Logger log.Logger

	// DebugLogger is the optional logger for debug output.
	// If nil, debug logging is disabled.
	DebugLogger *slog.Logger
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Identity.UUID == "" {
		return fmt.Errorf("identity UUID is required")
	}
	if c.Identity.IP == nil {
		return fmt.Errorf("identity IP is required")
	}
	return nil
}

// Engine is the renderer's SSDP discovery engine. It owns one
// multicast-joined UDP socket and runs the receive and keep-alive loops.
//
// Lifecycle: NewEngine (CREATED) -> Bind (BOUND) -> Start (RUNNING) ->
// Stop (STOPPED). Bind failures are fatal; a bound engine is guaranteed a
// withdrawal attempt on Stop.
type Engine struct {
	config   Config
	identity device.Identity
	logger   log.Logger

	mu    sync.Mutex
	state EngineState

	conn  *net.UDPConn
	pconn *ipv4.PacketConn
	group *net.UDPAddr

	// send transmits one datagram. Replaced in tests.
	send func(payload []byte, dst *net.UDPAddr) error

	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	withdrawOnce sync.Once
}

// NewEngine creates a discovery engine. The socket is not created until
// Bind is called.
func NewEngine(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Port == 0 {
		config.Port = device.DefaultSSDPPort
	}
	if config.AliveInterval == 0 {
		config.AliveInterval = DefaultAliveInterval
	}
	logger := config.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}

	e := &Engine{
		config:   config,
		identity: config.Identity,
		logger:   logger,
		state:    StateCreated,
	}
	e.send = e.sendDatagram
	return e, nil
}

// State returns the current engine state.
func (e *Engine) State() EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Bind creates the discovery socket: reuse-address and broadcast enabled,
// bound to the wildcard address on the configured port, joined to the SSDP
// multicast group on the device's interface. Any failure is fatal to
// startup and is not retried.
func (e *Engine) Bind() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateCreated {
		return ErrAlreadyBound
	}

	group, err := net.ResolveUDPAddr("udp4", MulticastAddress)
	if err != nil {
		return fmt.Errorf("failed to resolve multicast group: %w", err)
	}

	lc := net.ListenConfig{Control: discoverySocketOptions}
	packetConn, err := lc.ListenPacket(context.Background(), "udp4", fmt.Sprintf(":%d", e.config.Port))
	if err != nil {
		return fmt.Errorf("failed to bind discovery socket: %w", err)
	}
	conn := packetConn.(*net.UDPConn)

	pconn := ipv4.NewPacketConn(conn)
	if err := pconn.JoinGroup(e.interfaceForIP(), &net.UDPAddr{IP: group.IP}); err != nil {
		conn.Close()
		return fmt.Errorf("failed to join multicast group: %w", err)
	}

	e.conn = conn
	e.pconn = pconn
	e.group = group
	e.setStateLocked(StateBound, "socket bound")
	return nil
}

// Start announces presence and begins the receive and keep-alive loops.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.state != StateBound {
		state := e.state
		e.mu.Unlock()
		if state == StateRunning {
			return ErrAlreadyRunning
		}
		return ErrNotBound
	}
	e.ctx, e.cancel = context.WithCancel(ctx)
	e.setStateLocked(StateRunning, "loops started")
	e.mu.Unlock()

	e.AnnouncePresence()

	e.wg.Add(2)
	go e.serve()
	go e.keepAlive()

	return nil
}

// Stop cancels the loops, waits for them to exit, announces withdrawal
// exactly once, and closes the socket.
func (e *Engine) Stop() error {
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()

	switch state {
	case StateRunning:
		e.cancel()
		e.wg.Wait()
	case StateBound:
		// Bound but never started; still withdraw so control points that
		// saw the bind-time state don't cache a ghost.
	default:
		return ErrNotRunning
	}

	e.withdrawOnce.Do(e.AnnounceWithdrawal)

	if e.pconn != nil {
		_ = e.pconn.LeaveGroup(e.interfaceForIP(), &net.UDPAddr{IP: e.group.IP})
	}
	if e.conn != nil {
		e.conn.Close()
	}

	e.mu.Lock()
	e.setStateLocked(StateStopped, "stopped")
	e.mu.Unlock()
	return nil
}

// AnnouncePresence sends the fixed alive sequence: root device, device
// UUID, and the three services, in that order. A failed send is logged
// and the remaining messages are still sent.
func (e *Engine) AnnouncePresence() {
	e.notifyAll("ssdp:alive")
}

// AnnounceWithdrawal sends the fixed byebye sequence, same order and
// partial-failure tolerance as AnnouncePresence.
func (e *Engine) AnnounceWithdrawal() {
	e.notifyAll("ssdp:byebye")
}

func (e *Engine) notifyAll(nts string) {
	for _, target := range notifyTargets(e.identity) {
		msg := notifyMessage(e.identity, target.nt, nts, target.usn)
		if err := e.send(msg, e.group); err != nil {
			e.debugLog("failed to send SSDP notify", "nt", target.nt, "error", err)
			e.logError("sending notify", err)
			continue
		}
		e.logger.Log(log.Event{
			Timestamp:  time.Now(),
			Direction:  log.DirectionOut,
			Layer:      log.LayerDiscovery,
			Category:   log.CategoryMessage,
			DeviceUUID: e.identity.UUID,
			Discovery: &log.DiscoveryEvent{
				Kind: "NOTIFY",
				NT:   target.nt,
				NTS:  nts,
				USN:  target.usn,
				Size: len(msg),
			},
		})
	}
}

// serve is the receive loop. Datagrams are classified by leading token:
// M-SEARCH gets one unicast reply, NOTIFY from peers is ignored, anything
// else is logged and dropped. Read deadlines are the cancellation poll.
func (e *Engine) serve() {
	defer e.wg.Done()

	buf := make([]byte, maxDatagramSize)
	for {
		select {
		case <-e.ctx.Done():
			return
		default:
		}

		_ = e.conn.SetReadDeadline(time.Now().Add(readPollInterval))
		n, addr, err := e.conn.ReadFromUDP(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				// Steady state: nothing arrived within the poll interval.
				continue
			}
			if e.ctx.Err() != nil {
				return
			}
			e.debugLog("SSDP receive error", "error", err)
			e.logError("receiving datagram", err)
			continue
		}

		e.handleDatagram(buf[:n], addr)
	}
}

func (e *Engine) handleDatagram(msg []byte, addr *net.UDPAddr) {
	kind := classify(msg)

	e.logger.Log(log.Event{
		Timestamp:  time.Now(),
		Direction:  log.DirectionIn,
		Layer:      log.LayerDiscovery,
		Category:   log.CategoryMessage,
		RemoteAddr: addr.String(),
		DeviceUUID: e.identity.UUID,
		Discovery:  &log.DiscoveryEvent{Kind: kind.String(), Size: len(msg)},
	})

	switch kind {
	case KindSearch:
		// No search-target matching: every M-SEARCH gets a reply. Strictly
		// UPnP wants the ST header checked first; replying unconditionally
		// is a known deviation, kept for compatibility with the devices
		// this was tested against.
		reply := searchReply(e.identity, time.Now())
		if err := e.send(reply, addr); err != nil {
			e.debugLog("failed to send search reply", "peer", addr, "error", err)
			e.logError("sending search reply", err)
			return
		}
		e.debugLog("answered M-SEARCH", "peer", addr)
		e.logger.Log(log.Event{
			Timestamp:  time.Now(),
			Direction:  log.DirectionOut,
			Layer:      log.LayerDiscovery,
			Category:   log.CategoryMessage,
			RemoteAddr: addr.String(),
			DeviceUUID: e.identity.UUID,
			Discovery:  &log.DiscoveryEvent{Kind: "RESPONSE", USN: e.identity.USN() + "::upnp:rootdevice", Size: len(reply)},
		})

	case KindNotify:
		// Peer announcement; this renderer tracks no peers.

	default:
		e.debugLog("unrecognized SSDP message", "peer", addr)
		e.logError("classifying datagram", ErrUnknownMessage)
	}
}

// keepAlive re-announces presence on a fixed interval for as long as the
// engine runs.
func (e *Engine) keepAlive() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.config.AliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			e.AnnouncePresence()
		}
	}
}

// sendDatagram is the default send function.
func (e *Engine) sendDatagram(payload []byte, dst *net.UDPAddr) error {
	_, err := e.conn.WriteToUDP(payload, dst)
	return err
}

// interfaceForIP finds the network interface owning the device's address.
// Returns nil (system default) when no interface matches.
func (e *Engine) interfaceForIP() *net.Interface {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}
	for i := range ifaces {
		addrs, err := ifaces[i].Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if ok && ipNet.IP.Equal(e.identity.IP) {
				return &ifaces[i]
			}
		}
	}
	return nil
}

func (e *Engine) setStateLocked(next EngineState, reason string) {
	old := e.state
	e.state = next
	if old == next {
		return
	}
	e.logger.Log(log.Event{
		Timestamp:  time.Now(),
		Layer:      log.LayerDiscovery,
		Category:   log.CategoryState,
		DeviceUUID: e.identity.UUID,
		State: &log.StateChangeEvent{
			Entity:   "ssdp",
			OldState: old.String(),
			NewState: next.String(),
			Reason:   reason,
		},
	})
}

func (e *Engine) logError(context string, err error) {
	e.logger.Log(log.Event{
		Timestamp:  time.Now(),
		Layer:      log.LayerDiscovery,
		Category:   log.CategoryError,
		DeviceUUID: e.identity.UUID,
		Error: &log.ErrorEventData{
			Layer:   log.LayerDiscovery,
			Message: err.Error(),
			Context: context,
		},
	})
}

func (e *Engine) debugLog(msg string, args ...any) {
	if e.config.DebugLogger != nil {
		e.config.DebugLogger.Debug(msg, args...)
	}
}

// discoverySocketOptions enables address reuse and broadcast before bind.
// Reuse matters because other UPnP stacks on the host may already hold
// port 1900.
func discoverySocketOptions(network, address string, c syscall.RawConn) error {
	var optErr error
	err := c.Control(func(fd uintptr) {
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
			optErr = err
			return
		}
		optErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	})
	if err != nil {
		return err
	}
	return optErr
}
