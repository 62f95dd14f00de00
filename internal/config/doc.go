// Package config provides user configuration for lancast.
//
// This package manages a YAML settings file that tunes the discovery engine
// (device types, stale timeout, sweep and poll intervals) and the content
// cache (directory, size budget). The file follows OS-specific conventions
// for its storage location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/lancast/config.yaml or $HOME/.config/lancast/config.yaml
//   - macOS: $HOME/.config/lancast/config.yaml
//   - Windows: %LOCALAPPDATA%\lancast\config.yaml
//
// A missing file is not an error: Load returns the defaults, which match
// the discovery engine's built-in timing (300s stale timeout, 30s sweep,
// 60s SSDP poll, 5s search window).
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	engine := discovery.NewEngine(settings.DiscoveryOptions())
//	if err := engine.Start(settings.DeviceTypeList()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// File operations are protected by a mutex to ensure atomic writes.
package config
