package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lancast/internal/discovery"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Version != 1 {
		t.Errorf("Version = %d, want 1", s.Version)
	}
	if len(s.Discovery.DeviceTypes) == 0 {
		t.Error("default device type list is empty")
	}
	if s.Discovery.StaleTimeoutSeconds != 300 {
		t.Errorf("StaleTimeoutSeconds = %d, want 300", s.Discovery.StaleTimeoutSeconds)
	}
	if s.Cache.MaxSizeMB != 500 {
		t.Errorf("Cache.MaxSizeMB = %d, want 500", s.Cache.MaxSizeMB)
	}
}

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if s.Discovery.StaleTimeoutSeconds != 300 {
		t.Errorf("missing file did not yield defaults: %+v", s)
	}
}

func TestSettings_SaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	s := DefaultSettings()
	s.LogLevel = "debug"
	s.Discovery.DeviceTypes = []string{"chromecast", "_hap._tcp.local."}
	s.Discovery.StaleTimeoutSeconds = 120
	s.Cache.MaxSizeMB = 64

	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if loaded.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", loaded.LogLevel)
	}
	if loaded.Discovery.StaleTimeoutSeconds != 120 {
		t.Errorf("StaleTimeoutSeconds = %d, want 120", loaded.Discovery.StaleTimeoutSeconds)
	}
	if loaded.Cache.MaxSizeMB != 64 {
		t.Errorf("Cache.MaxSizeMB = %d, want 64", loaded.Cache.MaxSizeMB)
	}
	if len(loaded.Discovery.DeviceTypes) != 2 {
		t.Fatalf("DeviceTypes = %v", loaded.Discovery.DeviceTypes)
	}
}

func TestLoadFrom_MissingVersionDefaultsToOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() rejected a file without a version field: %v", err)
	}
	if s.Version != 1 {
		t.Errorf("Version = %d, want 1", s.Version)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
}

func TestLoadFrom_RejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 9\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() accepted an unsupported version")
	}
}

func TestLoadFrom_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: [not closed\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() accepted malformed YAML")
	}
}

func TestSettings_DiscoveryOptions(t *testing.T) {
	s := DefaultSettings()
	opts := s.DiscoveryOptions()

	if opts.StaleTimeout != 300*time.Second {
		t.Errorf("StaleTimeout = %v, want 300s", opts.StaleTimeout)
	}
	if opts.SweepInterval != 30*time.Second {
		t.Errorf("SweepInterval = %v, want 30s", opts.SweepInterval)
	}
	if opts.PollInterval != 60*time.Second {
		t.Errorf("PollInterval = %v, want 60s", opts.PollInterval)
	}
	if opts.SearchTimeout != 5*time.Second {
		t.Errorf("SearchTimeout = %v, want 5s", opts.SearchTimeout)
	}
}

func TestSettings_DeviceTypeList(t *testing.T) {
	s := DefaultSettings()
	s.Discovery.DeviceTypes = []string{"chromecast", "airplay", "_hap._tcp.local."}

	types := s.DeviceTypeList()
	want := []discovery.DeviceType{
		discovery.Chromecast,
		discovery.AirPlay,
		discovery.CustomType("_hap._tcp.local."),
	}

	if len(types) != len(want) {
		t.Fatalf("DeviceTypeList() returned %d types, want %d", len(types), len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("types[%d] = %v, want %v", i, types[i], want[i])
		}
	}
}
