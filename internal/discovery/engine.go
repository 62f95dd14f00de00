package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"lancast/internal/logging"
)

// Default timing for the discovery engine.
const (
	DefaultStaleTimeout  = 300 * time.Second
	DefaultSweepInterval = 30 * time.Second
	DefaultPollInterval  = 60 * time.Second
	DefaultSearchTimeout = 5 * time.Second
)

// Options tunes the discovery engine. The zero value means defaults.
type Options struct {
	// StaleTimeout is the maximum allowed gap since a device's last
	// advertisement before the reaper evicts it.
	StaleTimeout time.Duration

	// SweepInterval is how often the reaper checks for stale devices.
	SweepInterval time.Duration

	// PollInterval is how often the SSDP poller runs a sweep.
	PollInterval time.Duration

	// SearchTimeout bounds each individual SSDP search.
	SearchTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.StaleTimeout <= 0 {
		o.StaleTimeout = DefaultStaleTimeout
	}
	if o.SweepInterval <= 0 {
		o.SweepInterval = DefaultSweepInterval
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.SearchTimeout <= 0 {
		o.SearchTimeout = DefaultSearchTimeout
	}
	return o
}

// Engine coordinates device discovery: it owns the mDNS resolver, spawns
// one watcher goroutine per requested device type plus a single SSDP poller
// and a single reaper, and exposes the registry read API. Start and Stop
// are idempotent; the registry is not cleared by Stop, so previously
// discovered devices stay queryable until reaped.
type Engine struct {
	opts     Options
	registry *Registry

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	resolver *zeroconf.Resolver
	wg       sync.WaitGroup
}

// NewEngine creates a stopped engine with an empty registry.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:     opts.withDefaults(),
		registry: NewRegistry(),
	}
}

// Start begins discovery for the given device types. Calling Start on a
// running engine is a no-op. Every requested type gets an mDNS watcher; if
// UPnP or DLNA is requested one SSDP poller covers both. A single type
// whose browse fails to open is logged and skipped rather than aborting the
// whole call; Start fails only when the resolver cannot be created or no
// watcher at all could be started.
func (e *Engine) Start(types []DeviceType) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return nil
	}

	resolver, err := newResolver()
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	started := 0
	needsSSDP := false
	for _, dt := range types {
		if dt == UPnP || dt == DLNA {
			needsSSDP = true
		}

		service, domain := dt.browseArgs()
		entries := make(chan *zeroconf.ServiceEntry, 16)
		if err := browseService(ctx, resolver, service, domain, entries); err != nil {
			logging.Warn("Failed to open browse subscription",
				zap.String("service", dt.Service()),
				zap.Error(err),
			)
			continue
		}

		e.wg.Add(1)
		go e.watchMDNS(ctx, dt, entries)
		started++

		logging.Info("Browsing for devices", zap.String("service", dt.Service()))
	}

	if needsSSDP {
		e.wg.Add(1)
		go e.pollSSDP(ctx)
		started++
	}

	if started == 0 && len(types) > 0 {
		cancel()
		e.wg.Wait()
		return fmt.Errorf("discovery start failed: no protocol watcher could be started")
	}

	e.wg.Add(1)
	go e.reapLoop(ctx)

	e.resolver = resolver
	e.cancel = cancel
	e.running = true

	logging.Info("Device discovery started",
		zap.Int("watchers", started),
		zap.Int("requested_types", len(types)),
	)
	return nil
}

// Stop cancels every watcher, the SSDP poller and the reaper, and waits for
// them to exit; no registry mutation happens after Stop returns. Calling
// Stop on a stopped engine is a no-op. Discovered devices remain queryable.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return nil
	}

	e.cancel()
	e.wg.Wait()

	// The resolver's listen sockets close with the browse contexts.
	e.resolver = nil
	e.cancel = nil
	e.running = false

	logging.Info("Device discovery stopped")
	return nil
}

// IsRunning reports whether discovery is active.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// GetAll returns a snapshot of every discovered device. Valid in any state.
func (e *Engine) GetAll() []Device {
	return e.registry.GetAll()
}

// GetByType returns a snapshot of the discovered devices of one type.
func (e *Engine) GetByType(t DeviceType) []Device {
	return e.registry.GetByType(t)
}

// GetByID returns a snapshot of one device.
func (e *Engine) GetByID(id string) (Device, bool) {
	return e.registry.GetByID(id)
}
