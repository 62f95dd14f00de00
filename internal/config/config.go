package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"lancast/internal/discovery"
)

const (
	appName    = "lancast"
	configFile = "config.yaml"
)

// Serializes file writes so concurrent saves cannot interleave.
var fileMutex sync.Mutex

// Settings is the persisted lancast configuration.
type Settings struct {
	Version int `yaml:"version"`

	// LogLevel overrides LANCAST_LOG_LEVEL when set.
	LogLevel string `yaml:"log_level,omitempty"`

	Discovery DiscoverySettings `yaml:"discovery"`
	Cache     CacheSettings     `yaml:"cache"`
}

// DiscoverySettings tunes the discovery engine.
type DiscoverySettings struct {
	// DeviceTypes lists the receiver families to discover by default.
	// Names: chromecast, firetv, airplay, dlna, upnp, miracast, or a raw
	// mDNS service name for custom types.
	DeviceTypes []string `yaml:"device_types"`

	StaleTimeoutSeconds  int `yaml:"stale_timeout_seconds"`
	SweepIntervalSeconds int `yaml:"sweep_interval_seconds"`
	PollIntervalSeconds  int `yaml:"poll_interval_seconds"`
	SearchTimeoutSeconds int `yaml:"search_timeout_seconds"`
}

// CacheSettings tunes the content cache.
type CacheSettings struct {
	// Dir overrides the default cache directory when set.
	Dir string `yaml:"dir,omitempty"`

	MaxSizeMB   int `yaml:"max_size_mb"`
	MemoryItems int `yaml:"memory_items"`
}

// DefaultSettings returns the configuration used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Version: 1,
		Discovery: DiscoverySettings{
			DeviceTypes:          []string{"chromecast", "airplay", "dlna", "upnp"},
			StaleTimeoutSeconds:  300,
			SweepIntervalSeconds: 30,
			PollIntervalSeconds:  60,
			SearchTimeoutSeconds: 5,
		},
		Cache: CacheSettings{
			MaxSizeMB:   500,
			MemoryItems: 100,
		},
	}
}

// DiscoveryOptions converts the persisted tunables into engine options.
// Zero or negative values fall back to the engine defaults.
func (s *Settings) DiscoveryOptions() discovery.Options {
	return discovery.Options{
		StaleTimeout:  time.Duration(s.Discovery.StaleTimeoutSeconds) * time.Second,
		SweepInterval: time.Duration(s.Discovery.SweepIntervalSeconds) * time.Second,
		PollInterval:  time.Duration(s.Discovery.PollIntervalSeconds) * time.Second,
		SearchTimeout: time.Duration(s.Discovery.SearchTimeoutSeconds) * time.Second,
	}
}

// DeviceTypeList converts the configured type names into device types.
func (s *Settings) DeviceTypeList() []discovery.DeviceType {
	types := make([]discovery.DeviceType, 0, len(s.Discovery.DeviceTypes))
	for _, name := range s.Discovery.DeviceTypes {
		types = append(types, discovery.TypeFromName(name))
	}
	return types
}

// GetConfigDir returns the per-user configuration directory:
// $XDG_CONFIG_HOME/lancast (or ~/.config/lancast) on Unix-likes including
// macOS, %LOCALAPPDATA%\lancast on Windows.
func GetConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, appName), nil
		}
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine config directory: %w", err)
		}
		return filepath.Join(dir, appName), nil
	}

	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// GetConfigPath returns the full path of the settings file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

func ensureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// Load reads the settings file from the default location. A missing file is
// not an error; defaults are returned.
func Load() (*Settings, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom reads a settings file from an explicit path.
func LoadFrom(path string) (*Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// A hand-written file may omit the version field entirely.
	if settings.Version == 0 {
		settings.Version = 1
	}
	if settings.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d (expected 1)", settings.Version)
	}

	// Absent sections fall back to defaults field by field.
	defaults := DefaultSettings()
	if settings.Discovery.DeviceTypes == nil {
		settings.Discovery.DeviceTypes = defaults.Discovery.DeviceTypes
	}
	if settings.Cache.MaxSizeMB == 0 {
		settings.Cache.MaxSizeMB = defaults.Cache.MaxSizeMB
	}
	if settings.Cache.MemoryItems == 0 {
		settings.Cache.MemoryItems = defaults.Cache.MemoryItems
	}

	return &settings, nil
}

// Save writes the settings to the default location, creating the config
// directory if needed.
func (s *Settings) Save() error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := ensureConfigDir(); err != nil {
		return err
	}
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return s.saveTo(path)
}

// SaveTo writes the settings to an explicit path atomically.
func (s *Settings) SaveTo(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()
	return s.saveTo(path)
}

func (s *Settings) saveTo(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# lancast configuration file
# Tunes device discovery and the content cache.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	// Temp file plus rename keeps a crash from corrupting the settings.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}
