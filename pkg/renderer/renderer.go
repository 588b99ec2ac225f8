package renderer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/upnpav/dmr-go/pkg/control"
	"github.com/upnpav/dmr-go/pkg/device"
	"github.com/upnpav/dmr-go/pkg/log"
	"github.com/upnpav/dmr-go/pkg/ssdp"
)

// discoveryEngine is the supervisor's view of the SSDP engine.
type discoveryEngine interface {
	Bind() error
	Start(ctx context.Context) error
	Stop() error
}

// controlServer is the supervisor's view of the control dispatcher.
type controlServer interface {
	Start(ctx context.Context) error
	Stop() error
}

// presenceAdvertiser is the supervisor's view of the mDNS advertiser.
type presenceAdvertiser interface {
	Advertise(opts device.Options) error
	Stop()
}

// Service runs a complete media renderer. It wires the discovery engine
// and control dispatcher to one device identity and drives their
// lifecycles in order: control transport first (so the descriptor URL
// answers before the first announcement), discovery second.
type Service struct {
	mu sync.RWMutex

	config Config
	state  ServiceState
	logger log.Logger

	engine     discoveryEngine
	dispatcher controlServer
	advertiser presenceAdvertiser

	ctx    context.Context
	cancel context.CancelFunc
}

// NewService creates a renderer service and its components. Nothing binds
// until Start.
func NewService(config Config) (*Service, error) {
	if err := config.Options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid device options: %w", err)
	}
	if config.Handler == nil {
		config.Handler = control.NopHandler{}
	}
	logger := config.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}

	engine, err := ssdp.NewEngine(ssdp.Config{
		Identity:      config.Options.Identity(),
		Port:          config.Options.SSDPPort,
		AliveInterval: config.AliveInterval,
		Logger:        config.Logger,
		DebugLogger:   config.DebugLogger,
	})
	if err != nil {
		return nil, err
	}

	dispatcher, err := control.NewDispatcher(control.Config{
		Options:     config.Options,
		Handler:     config.Handler,
		Logger:      config.Logger,
		DebugLogger: config.DebugLogger,
	})
	if err != nil {
		return nil, err
	}

	svc := &Service{
		config:     config,
		state:      StateIdle,
		logger:     logger,
		engine:     engine,
		dispatcher: dispatcher,
	}
	if config.EnableMDNS {
		svc.advertiser = NewMDNSAdvertiser(config.MDNSInterface)
	}
	return svc, nil
}

// State returns the current supervisor state.
func (s *Service) State() ServiceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Start brings the renderer up. The SSDP socket bind and the control
// listener are fatal; the mDNS advertisement is not. A Service is
// single-use: once stopped it cannot be started again, build a new one.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.setStateLocked(StateStarting, "")
	s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(ctx)

	// Bind discovery before starting anything: a renderer that cannot
	// announce itself should fail outright rather than run half-visible.
	if err := s.engine.Bind(); err != nil {
		s.failStart()
		return fmt.Errorf("discovery bind failed: %w", err)
	}

	if err := s.dispatcher.Start(s.ctx); err != nil {
		_ = s.engine.Stop()
		s.failStart()
		return fmt.Errorf("control transport failed: %w", err)
	}

	if err := s.engine.Start(s.ctx); err != nil {
		_ = s.dispatcher.Stop()
		s.failStart()
		return err
	}

	if s.advertiser != nil {
		if err := s.advertiser.Advertise(s.config.Options); err != nil {
			s.debugLog("mDNS advertisement failed", "error", err)
		}
	}

	s.mu.Lock()
	s.setStateLocked(StateRunning, "")
	s.mu.Unlock()
	return nil
}

// Stop shuts the renderer down in reverse order: presence withdrawal
// first (the engine's Stop sends the byebye sequence), control transport
// last. Safe to call more than once.
func (s *Service) Stop() error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.setStateLocked(StateStopping, "")
	s.mu.Unlock()

	if s.advertiser != nil {
		s.advertiser.Stop()
	}

	engineErr := s.engine.Stop()
	dispatcherErr := s.dispatcher.Stop()

	if s.cancel != nil {
		s.cancel()
	}

	s.mu.Lock()
	s.setStateLocked(StateStopped, "")
	s.mu.Unlock()

	if engineErr != nil {
		return engineErr
	}
	return dispatcherErr
}

// failStart rolls the state back after a failed Start.
func (s *Service) failStart() {
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Lock()
	s.setStateLocked(StateIdle, "start failed")
	s.mu.Unlock()
}

// setStateLocked transitions the state and logs the change. Caller holds mu.
func (s *Service) setStateLocked(next ServiceState, reason string) {
	prev := s.state
	s.state = next
	s.debugLog("renderer state change", "old", prev.String(), "new", next.String())
	s.logger.Log(log.Event{
		Timestamp:  time.Now(),
		Direction:  log.DirectionOut,
		Layer:      log.LayerService,
		Category:   log.CategoryState,
		DeviceUUID: s.config.Options.UUID,
		State: &log.StateChangeEvent{
			Entity:   "renderer",
			OldState: prev.String(),
			NewState: next.String(),
			Reason:   reason,
		},
	})
}

func (s *Service) debugLog(msg string, args ...any) {
	if s.config.DebugLogger != nil {
		s.config.DebugLogger.Debug(msg, args...)
	}
}
