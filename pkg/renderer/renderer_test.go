package renderer

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upnpav/dmr-go/pkg/device"
	"github.com/upnpav/dmr-go/pkg/log"
)

// fakeEngine records lifecycle calls and can fail on demand.
type fakeEngine struct {
	mu      sync.Mutex
	bindErr error
	started bool
	stopped bool
}

func (f *fakeEngine) Bind() error {
	return f.bindErr
}

func (f *fakeEngine) Start(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = true
	return nil
}

func (f *fakeEngine) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

type fakeDispatcher struct {
	mu       sync.Mutex
	startErr error
	started  bool
	stopped  bool
}

func (f *fakeDispatcher) Start(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.started = true
	return nil
}

func (f *fakeDispatcher) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

type fakeAdvertiser struct {
	advertised bool
	stopped    bool
	err        error
}

func (f *fakeAdvertiser) Advertise(device.Options) error {
	if f.err != nil {
		return f.err
	}
	f.advertised = true
	return nil
}

func (f *fakeAdvertiser) Stop() {
	f.stopped = true
}

type stateRecorder struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *stateRecorder) Log(event log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *stateRecorder) transitions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		if e.State != nil {
			out = append(out, e.State.NewState)
		}
	}
	return out
}

func testServiceOptions() device.Options {
	return device.Options{
		UUID:         "0ba4b7e2-89a2-41f6-a6c8-58f4be971a02",
		IP:           net.IPv4(192, 168, 1, 20),
		SSDPPort:     1900,
		HTTPPort:     8080,
		FriendlyName: "Test Renderer",
	}
}

// newFakeService builds a service with fake components swapped in.
func newFakeService(t *testing.T, recorder *stateRecorder) (*Service, *fakeEngine, *fakeDispatcher) {
	t.Helper()
	var logger log.Logger = log.NoopLogger{}
	if recorder != nil {
		logger = recorder
	}
	svc, err := NewService(Config{
		Options: testServiceOptions(),
		Logger:  logger,
	})
	require.NoError(t, err)

	engine := &fakeEngine{}
	dispatcher := &fakeDispatcher{}
	svc.engine = engine
	svc.dispatcher = dispatcher
	return svc, engine, dispatcher
}

func TestNewServiceRejectsInvalidOptions(t *testing.T) {
	_, err := NewService(Config{Options: device.Options{}})
	assert.Error(t, err)
}

func TestServiceLifecycle(t *testing.T) {
	recorder := &stateRecorder{}
	svc, engine, dispatcher := newFakeService(t, recorder)

	assert.Equal(t, StateIdle, svc.State())

	require.NoError(t, svc.Start(t.Context()))
	assert.Equal(t, StateRunning, svc.State())
	assert.True(t, engine.started)
	assert.True(t, dispatcher.started)

	require.NoError(t, svc.Stop())
	assert.Equal(t, StateStopped, svc.State())
	assert.True(t, engine.stopped)
	assert.True(t, dispatcher.stopped)

	assert.Equal(t, []string{"STARTING", "RUNNING", "STOPPING", "STOPPED"},
		recorder.transitions())
}

func TestStartTwiceFails(t *testing.T) {
	svc, _, _ := newFakeService(t, nil)

	require.NoError(t, svc.Start(t.Context()))
	assert.ErrorIs(t, svc.Start(t.Context()), ErrAlreadyStarted)
	require.NoError(t, svc.Stop())
}

func TestStopBeforeStartFails(t *testing.T) {
	svc, _, _ := newFakeService(t, nil)
	assert.ErrorIs(t, svc.Stop(), ErrNotStarted)
}

func TestStartAfterStopFails(t *testing.T) {
	svc, _, _ := newFakeService(t, nil)

	require.NoError(t, svc.Start(t.Context()))
	require.NoError(t, svc.Stop())
	assert.ErrorIs(t, svc.Start(t.Context()), ErrAlreadyStarted)
	assert.Equal(t, StateStopped, svc.State())
}

func TestBindFailureIsFatal(t *testing.T) {
	svc, engine, dispatcher := newFakeService(t, nil)
	engine.bindErr = errors.New("address in use")

	err := svc.Start(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discovery bind failed")
	assert.Equal(t, StateIdle, svc.State())
	assert.False(t, dispatcher.started)
}

func TestDispatcherFailureRollsBack(t *testing.T) {
	svc, engine, dispatcher := newFakeService(t, nil)
	dispatcher.startErr = errors.New("listen failed")

	err := svc.Start(t.Context())
	require.Error(t, err)
	assert.Equal(t, StateIdle, svc.State())
	assert.True(t, engine.stopped)
	assert.False(t, engine.started)
}

func TestAdvertiserFailureIsNotFatal(t *testing.T) {
	svc, _, _ := newFakeService(t, nil)
	adv := &fakeAdvertiser{err: errors.New("no multicast route")}
	svc.advertiser = adv

	require.NoError(t, svc.Start(t.Context()))
	assert.Equal(t, StateRunning, svc.State())
	require.NoError(t, svc.Stop())
	assert.True(t, adv.stopped)
}

func TestAdvertiserRunsWhenEnabled(t *testing.T) {
	svc, _, _ := newFakeService(t, nil)
	adv := &fakeAdvertiser{}
	svc.advertiser = adv

	require.NoError(t, svc.Start(t.Context()))
	assert.True(t, adv.advertised)
	require.NoError(t, svc.Stop())
	assert.True(t, adv.stopped)
}
