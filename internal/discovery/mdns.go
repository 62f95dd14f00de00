package discovery

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"lancast/internal/logging"
)

// Seams for hermetic engine tests; production code always goes through the
// real zeroconf resolver.
var (
	newResolver = func() (*zeroconf.Resolver, error) {
		return zeroconf.NewResolver(nil)
	}

	browseService = func(ctx context.Context, r *zeroconf.Resolver, service, domain string, entries chan *zeroconf.ServiceEntry) error {
		return r.Browse(ctx, service, domain, entries)
	}
)

// watchMDNS consumes resolved advertisements for one device type until the
// entry channel closes or the engine is stopped. Service withdrawal is
// deliberately not acted on: devices routinely vanish without a goodbye
// packet and withdrawals get lost, so removal is left entirely to the
// reaper's last-seen sweep.
func (e *Engine) watchMDNS(ctx context.Context, dt DeviceType, entries <-chan *zeroconf.ServiceEntry) {
	defer e.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-entries:
			if !ok {
				return
			}
			if entry == nil {
				continue
			}
			e.recordEntry(dt, entry)
		}
	}
}

// recordEntry translates one resolved advertisement into a registry upsert.
// A malformed entry is skipped, never fatal to the watcher.
func (e *Engine) recordEntry(dt DeviceType, entry *zeroconf.ServiceEntry) {
	ip := firstAddr(entry)
	if ip == nil {
		logging.Warn("No IP address for resolved service",
			zap.String("instance", entry.Instance),
			zap.String("service", entry.Service),
		)
		return
	}

	name := strings.TrimSuffix(entry.ServiceInstanceName(), ".")
	host := strings.TrimSuffix(entry.HostName, ".")
	port := entry.Port
	id := fmt.Sprintf("%s:%s:%d", dt.Service(), host, port)

	_, created := e.registry.Upsert(id, func() *Device {
		return NewDevice(id, name, dt, ip, port, parseTXT(entry.Text))
	})

	if created {
		logging.Info("Added new device",
			zap.String("device_id", id),
			zap.String("name", name),
			zap.String("ip", ip.String()),
			zap.Int("port", port),
		)
	} else {
		logging.Debug("Updated device",
			zap.String("device_id", id),
			zap.String("name", name),
		)
	}
}

// firstAddr picks the first resolved address, preferring IPv4.
func firstAddr(entry *zeroconf.ServiceEntry) net.IP {
	if len(entry.AddrIPv4) > 0 {
		return entry.AddrIPv4[0]
	}
	if len(entry.AddrIPv6) > 0 {
		return entry.AddrIPv6[0]
	}
	return nil
}

// parseTXT converts TXT records ("key=value", or bare "key") into a
// metadata map.
func parseTXT(records []string) map[string]string {
	metadata := make(map[string]string, len(records))
	for _, txt := range records {
		if txt == "" {
			continue
		}
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}
	return metadata
}
