package discovery

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/koron/go-ssdp"
	"go.uber.org/zap"

	"lancast/internal/logging"
)

const (
	// searchTargetRoot matches every UPnP root device on the network.
	searchTargetRoot = "upnp:rootdevice"

	// searchTargetRenderer matches DLNA media renderers specifically.
	searchTargetRenderer = "urn:schemas-upnp-org:device:MediaRenderer:1"
)

// searchSSDP is a seam for hermetic engine tests.
var searchSSDP = func(target string, waitSec int) ([]ssdp.Service, error) {
	return ssdp.Search(target, waitSec, "")
}

// pollSSDP runs the periodic UPnP/DLNA sweep. Each sweep performs a
// root-device search and a MediaRenderer search; one poller covers both
// requested types. The first sweep runs immediately so UPnP/DLNA devices
// are discoverable right after Start; the ticker only paces the follow-ups.
// UPnP liveness has no goodbye signal, so a vanished device lingers for up
// to staleTimeout plus one poll interval before the reaper drops it.
func (e *Engine) pollSSDP(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.opts.PollInterval)
	defer ticker.Stop()

	e.sweepSSDP(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.sweepSSDP(ctx)
		}
	}
}

func (e *Engine) sweepSSDP(ctx context.Context) {
	e.searchOnce(ctx, searchTargetRoot, UPnP)
	e.searchOnce(ctx, searchTargetRenderer, DLNA)
}

// searchOnce performs one bounded-duration search and upserts the results.
// The blocking network wait runs in a helper goroutine that never touches
// the registry, so cancellation takes effect immediately and no mutation
// can happen after Stop returns.
func (e *Engine) searchOnce(ctx context.Context, target string, dt DeviceType) {
	results := make(chan []ssdp.Service, 1)
	go func() {
		services, err := searchSSDP(target, int(e.opts.SearchTimeout/time.Second))
		if err != nil {
			// No responses for a tick is normal on quiet networks
			logging.Warn("SSDP search failed",
				zap.String("target", target),
				zap.Error(err),
			)
			results <- nil
			return
		}
		results <- services
	}()

	select {
	case <-ctx.Done():
	case services := <-results:
		for _, svc := range services {
			e.recordSSDP(dt, svc)
		}
	}
}

// recordSSDP translates one SSDP response into a registry upsert. A
// response with an unparseable location or a non-IP host is skipped.
func (e *Engine) recordSSDP(dt DeviceType, svc ssdp.Service) {
	ip, port, ok := parseLocation(svc.Location)
	if !ok {
		logging.Warn("Skipping SSDP response with unusable location",
			zap.String("location", svc.Location),
			zap.String("usn", svc.USN),
		)
		return
	}

	prefix, name := "upnp", fmt.Sprintf("UPnP Device at %s", ip)
	if dt == DLNA {
		prefix, name = "dlna", fmt.Sprintf("DLNA Renderer at %s", ip)
	}
	id := fmt.Sprintf("%s:%s:%d", prefix, ip, port)

	metadata := map[string]string{
		"location":      svc.Location,
		"server":        svc.Server,
		"search_target": svc.Type,
		"usn":           svc.USN,
	}

	_, created := e.registry.Upsert(id, func() *Device {
		return NewDevice(id, name, dt, ip, port, metadata)
	})
	if created {
		logging.Info("Added new device",
			zap.String("device_id", id),
			zap.String("name", name),
			zap.String("location", svc.Location),
		)
	}
}

// parseLocation extracts the host IP and port from an SSDP location URL.
// Ports default to 80/443 by scheme. Hostnames that are not IP literals are
// rejected; discovery records only directly reachable addresses.
func parseLocation(location string) (net.IP, int, bool) {
	u, err := url.Parse(location)
	if err != nil || u.Host == "" {
		return nil, 0, false
	}

	ip := net.ParseIP(u.Hostname())
	if ip == nil {
		return nil, 0, false
	}

	port := 80
	if u.Scheme == "https" {
		port = 443
	}
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, 0, false
		}
		port = n
	}

	return ip, port, true
}
