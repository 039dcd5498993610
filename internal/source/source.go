package source

import (
	"sync"

	"github.com/dshills/sceneinput/internal/raw"
)

// Sink receives normalized raw events. The manager implements Sink; tests
// substitute recorders.
type Sink interface {
	HandleInput(ev raw.Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev raw.Event)

// HandleInput implements Sink.
func (f SinkFunc) HandleInput(ev raw.Event) {
	f(ev)
}

// Source is a registered device adapter. A disabled source discards its
// device signals before they reach the manager.
type Source interface {
	// Name returns the source's registered name.
	Name() string

	// Enabled returns true if the source is forwarding events.
	Enabled() bool

	// SetEnabled turns forwarding on or off.
	SetEnabled(enabled bool)
}

// device is the shared base for the adapters in this package.
type device struct {
	name string
	sink Sink

	mu      sync.Mutex
	enabled bool
}

func newDevice(name string, sink Sink) device {
	return device{name: name, sink: sink, enabled: true}
}

// Name returns the source's registered name.
func (d *device) Name() string {
	return d.name
}

// Enabled returns true if the source is forwarding events.
func (d *device) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// SetEnabled turns forwarding on or off.
func (d *device) SetEnabled(enabled bool) {
	d.mu.Lock()
	d.enabled = enabled
	d.mu.Unlock()
}

// forward hands one event to the sink unless the source is disabled.
func (d *device) forward(ev raw.Event) {
	if !d.Enabled() || d.sink == nil {
		return
	}
	d.sink.HandleInput(ev)
}
