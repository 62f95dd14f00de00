package discovery

import (
	"fmt"
	"net"
	"time"
)

// Device represents a cast-capable receiver discovered on the network.
type Device struct {
	// ID is the composite key derived from (service type, host, port).
	// Re-advertisement of the same physical device produces the same ID.
	ID string

	// Name is the advertised instance name (e.g. "Living Room TV").
	Name string

	// Type is the receiver family this device was discovered under.
	Type DeviceType

	// IP is the first resolved address, IPv4 preferred.
	IP net.IP

	// Port is the advertised service port.
	Port int

	// Capabilities is resolved from Type at first sight and never changes.
	Capabilities Capabilities

	// DiscoveredAt is when the device was first sighted. Immutable.
	DiscoveredAt time.Time

	// LastSeen is bumped on every re-advertisement. It is the sole
	// liveness signal; a device with no recent advertisements is reaped.
	LastSeen time.Time

	// Metadata holds protocol-specific advertisement data (mDNS TXT
	// records, SSDP headers). Diagnostic only.
	Metadata map[string]string
}

// NewDevice creates a device record at first sight. Capabilities are
// resolved from the device type here and nowhere else.
func NewDevice(id, name string, t DeviceType, ip net.IP, port int, metadata map[string]string) *Device {
	now := time.Now()
	if metadata == nil {
		metadata = make(map[string]string)
	}
	return &Device{
		ID:           id,
		Name:         name,
		Type:         t,
		IP:           ip,
		Port:         port,
		Capabilities: ResolveCapabilities(t),
		DiscoveredAt: now,
		LastSeen:     now,
		Metadata:     metadata,
	}
}

// UpdateLastSeen marks the device as alive now.
func (d *Device) UpdateLastSeen() {
	d.LastSeen = time.Now()
}

// IsStale reports whether the device has not advertised within timeout.
func (d *Device) IsStale(timeout time.Duration) bool {
	return time.Since(d.LastSeen) > timeout
}

// Addr returns the device's "ip:port" address string.
func (d *Device) Addr() string {
	return net.JoinHostPort(d.IP.String(), fmt.Sprintf("%d", d.Port))
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("%s device %q at %s:%d", d.Type, d.Name, d.IP, d.Port)
}

// clone returns a deep copy for registry snapshots. Readers must never
// observe live mutable state.
func (d *Device) clone() Device {
	out := *d
	out.Capabilities = d.Capabilities.clone()
	out.Metadata = make(map[string]string, len(d.Metadata))
	for k, v := range d.Metadata {
		out.Metadata[k] = v
	}
	return out
}
