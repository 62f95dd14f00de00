package discovery

import "sync"

// Registry is the shared store of discovered devices. It is the only
// mutable state shared between the protocol watchers, the reaper, and API
// readers, so every operation is safe under arbitrary concurrent callers.
// Reads return deep-copied snapshots; callers never observe a record while
// it is being constructed or updated.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]*Device
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		devices: make(map[string]*Device),
	}
}

// Upsert records an advertisement for id. If the id is unknown the record
// is constructed via factory and inserted; if it is already present only
// LastSeen is bumped and every other field is left untouched, which is what
// pins capabilities to their first-sight values. Returns a snapshot of the
// record and whether it was newly created.
func (r *Registry) Upsert(id string, factory func() *Device) (Device, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.devices[id]; ok {
		existing.UpdateLastSeen()
		return existing.clone(), false
	}

	device := factory()
	if device == nil {
		return Device{}, false
	}
	r.devices[id] = device
	return device.clone(), true
}

// GetAll returns a snapshot of every device, in no particular order.
func (r *Registry) GetAll() []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Device, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, d.clone())
	}
	return out
}

// GetByType returns a snapshot of the devices of the given type.
func (r *Registry) GetByType(t DeviceType) []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Device, 0)
	for _, d := range r.devices {
		if d.Type == t {
			out = append(out, d.clone())
		}
	}
	return out
}

// GetByID returns a snapshot of one device.
func (r *Registry) GetByID(id string) (Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[id]
	if !ok {
		return Device{}, false
	}
	return d.clone(), true
}

// Remove deletes a device. Removing an absent id is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.devices, id)
}

// Len returns the number of devices currently registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}
