package discovery

import (
	"fmt"
	"net"
	"sync"
	"testing"
	"time"
)

func testDevice(id string, dt DeviceType) *Device {
	return NewDevice(id, "name-"+id, dt, net.ParseIP("192.168.1.10"), 8009,
		map[string]string{"origin": "test"})
}

func TestRegistry_Upsert_CreatesOnFirstSight(t *testing.T) {
	r := NewRegistry()

	device, created := r.Upsert("a", func() *Device { return testDevice("a", Chromecast) })
	if !created {
		t.Fatal("first Upsert should report creation")
	}
	if device.ID != "a" {
		t.Errorf("device.ID = %q, want a", device.ID)
	}
	if r.Len() != 1 {
		t.Errorf("registry has %d devices, want 1", r.Len())
	}
}

func TestRegistry_Upsert_DedupsOnReadvertisement(t *testing.T) {
	r := NewRegistry()

	first, _ := r.Upsert("a", func() *Device { return testDevice("a", Chromecast) })

	// Backdate LastSeen so the bump is observable.
	r.mu.Lock()
	r.devices["a"].LastSeen = time.Now().Add(-time.Minute)
	r.mu.Unlock()

	second, created := r.Upsert("a", func() *Device {
		t.Fatal("factory must not run for a known id")
		return nil
	})

	if created {
		t.Error("second Upsert of the same id reported creation")
	}
	if r.Len() != 1 {
		t.Errorf("registry has %d devices after re-advertisement, want 1", r.Len())
	}
	if !second.DiscoveredAt.Equal(first.DiscoveredAt) {
		t.Error("re-advertisement changed DiscoveredAt")
	}
	if time.Since(second.LastSeen) > time.Second {
		t.Errorf("re-advertisement did not advance LastSeen: %v", second.LastSeen)
	}
}

func TestRegistry_Upsert_CapabilitiesFixedAtFirstSight(t *testing.T) {
	r := NewRegistry()

	first, _ := r.Upsert("a", func() *Device { return testDevice("a", Chromecast) })

	// A later advertisement carrying a different profile must not win.
	r.Upsert("a", func() *Device { return testDevice("a", UPnP) })

	got, ok := r.GetByID("a")
	if !ok {
		t.Fatal("device disappeared")
	}
	if got.Type != Chromecast {
		t.Errorf("device type changed to %v on re-advertisement", got.Type)
	}
	if !got.Capabilities.CanMirror {
		t.Error("capabilities changed on re-advertisement")
	}
	if fmt.Sprint(got.Capabilities.SupportedCodecs) != fmt.Sprint(first.Capabilities.SupportedCodecs) {
		t.Errorf("codec list changed on re-advertisement: %v", got.Capabilities.SupportedCodecs)
	}
}

func TestRegistry_GetByType(t *testing.T) {
	r := NewRegistry()
	r.Upsert("c1", func() *Device { return testDevice("c1", Chromecast) })
	r.Upsert("c2", func() *Device { return testDevice("c2", Chromecast) })
	r.Upsert("a1", func() *Device { return testDevice("a1", AirPlay) })
	r.Upsert("x1", func() *Device { return testDevice("x1", CustomType("_hap._tcp.local.")) })

	tests := []struct {
		name string
		dt   DeviceType
		want int
	}{
		{"chromecast subset", Chromecast, 2},
		{"airplay subset", AirPlay, 1},
		{"custom subset", CustomType("_hap._tcp.local."), 1},
		{"absent type is empty not error", Miracast, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.GetByType(tt.dt)
			if len(got) != tt.want {
				t.Fatalf("GetByType(%v) returned %d devices, want %d", tt.dt, len(got), tt.want)
			}
			for _, d := range got {
				if d.Type != tt.dt {
					t.Errorf("GetByType(%v) returned device of type %v", tt.dt, d.Type)
				}
			}
		})
	}

	// The filtered view must be exactly the matching subset of GetAll.
	all := r.GetAll()
	matching := 0
	for _, d := range all {
		if d.Type == Chromecast {
			matching++
		}
	}
	if matching != len(r.GetByType(Chromecast)) {
		t.Error("GetByType(Chromecast) disagrees with the GetAll subset")
	}
}

func TestRegistry_GetByID(t *testing.T) {
	r := NewRegistry()
	r.Upsert("a", func() *Device { return testDevice("a", DLNA) })

	if _, ok := r.GetByID("a"); !ok {
		t.Error("GetByID(a) not found")
	}
	if _, ok := r.GetByID("missing"); ok {
		t.Error("GetByID(missing) unexpectedly found")
	}
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()
	r.Upsert("a", func() *Device { return testDevice("a", DLNA) })

	r.Remove("a")
	if _, ok := r.GetByID("a"); ok {
		t.Error("device still present after Remove")
	}

	// Removing an absent id is a no-op.
	r.Remove("a")
	if r.Len() != 0 {
		t.Errorf("registry has %d devices, want 0", r.Len())
	}
}

func TestRegistry_SnapshotIsolation(t *testing.T) {
	r := NewRegistry()
	r.Upsert("a", func() *Device { return testDevice("a", Chromecast) })

	snapshot := r.GetAll()
	snapshot[0].Metadata["origin"] = "tampered"
	snapshot[0].Capabilities.Protocols[0] = "tampered"

	fresh, _ := r.GetByID("a")
	if fresh.Metadata["origin"] != "test" {
		t.Error("snapshot shares metadata with stored record")
	}
	if fresh.Capabilities.Protocols[0] != "cast" {
		t.Error("snapshot shares capability slices with stored record")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := fmt.Sprintf("dev-%d", j%10)
				r.Upsert(id, func() *Device { return testDevice(id, Chromecast) })
				r.GetAll()
				r.GetByType(Chromecast)
				r.GetByID(id)
				if n == 0 && j%25 == 0 {
					r.Remove(id)
				}
			}
		}(i)
	}
	wg.Wait()

	if r.Len() > 10 {
		t.Errorf("registry has %d devices, want at most 10 distinct ids", r.Len())
	}
}
