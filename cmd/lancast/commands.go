package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lancast/internal/cache"
	"lancast/internal/config"
	"lancast/internal/discovery"
	"lancast/internal/ui"
)

var (
	scanTimeout int
	scanTypes   []string
)

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan duration in seconds")
	scanCmd.Flags().StringSliceVar(&scanTypes, "types", nil,
		"Device types to discover (chromecast, firetv, airplay, dlna, upnp, miracast, or a raw mDNS service name)")
	watchCmd.Flags().StringSliceVar(&scanTypes, "types", nil,
		"Device types to discover (defaults to the configured list)")
}

// newEngine builds a discovery engine and type list from the settings file
// plus any --types override.
func newEngine() (*discovery.Engine, []discovery.DeviceType, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	types := settings.DeviceTypeList()
	if len(scanTypes) > 0 {
		types = types[:0]
		for _, name := range scanTypes {
			types = append(types, discovery.TypeFromName(name))
		}
	}

	return discovery.NewEngine(settings.DiscoveryOptions()), types, nil
}

// scanCmd discovers devices for a bounded window and prints them
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for cast-capable devices on the network",
	Long: `Scan for cast-capable devices using mDNS and SSDP discovery.

The scan listens for the given duration and then prints every device heard
from, with its type, address, and capability profile.`,
	Example: `  # Scan for 10 seconds (default)
  lancast scan

  # Quick 3-second scan
  lancast scan --timeout 3

  # Chromecast and AirPlay only
  lancast scan --types chromecast,airplay`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	engine, types, err := newEngine()
	if err != nil {
		return err
	}

	fmt.Printf("Scanning for devices (%ds)...\n\n", scanTimeout)

	if err := engine.Start(types); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	time.Sleep(time.Duration(scanTimeout) * time.Second)
	if err := engine.Stop(); err != nil {
		return fmt.Errorf("failed to stop discovery: %w", err)
	}

	devices := engine.GetAll()
	if len(devices) == 0 {
		fmt.Println("No devices found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure receivers are powered on and on the same network segment")
		fmt.Println("  - Check that multicast traffic (mDNS UDP 5353, SSDP UDP 1900) is allowed")
		fmt.Println("  - Try increasing --timeout for slower networks")
		return nil
	}

	sort.Slice(devices, func(i, j int) bool { return devices[i].Name < devices[j].Name })

	fmt.Printf("Found %d device(s):\n\n", len(devices))
	for i, d := range devices {
		fmt.Printf("%d. %s\n", i+1, d.Name)
		fmt.Printf("   Type:     %s\n", d.Type)
		fmt.Printf("   Address:  %s\n", d.Addr())
		fmt.Printf("   Codecs:   %s\n", strings.Join(d.Capabilities.SupportedCodecs, ", "))
		if d.Capabilities.MaxResolution != "" {
			fmt.Printf("   Max res:  %s\n", d.Capabilities.MaxResolution)
		}
		if len(d.Capabilities.Protocols) > 0 {
			fmt.Printf("   Protocols: %s\n", strings.Join(d.Capabilities.Protocols, ", "))
		}
		if len(d.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", d.Metadata)
		}
		fmt.Println()
	}

	fmt.Println("Use 'lancast watch' for a live view")
	return nil
}

// watchCmd shows a live device table until the user quits
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch devices appear and disappear live",
	Long: `Run continuous discovery and show a live table of devices.

The table refreshes every second; devices that stop advertising age out of
the registry after the configured stale timeout.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	engine, types, err := newEngine()
	if err != nil {
		return err
	}

	if err := engine.Start(types); err != nil {
		return fmt.Errorf("failed to start discovery: %w", err)
	}
	defer engine.Stop()

	return ui.RunWatch(engine)
}

// cacheCmd groups content cache maintenance commands
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the content cache",
}

func openCache() (*cache.Cache, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if settings.Cache.Dir != "" {
		return cache.NewWithConfig(settings.Cache.Dir, settings.Cache.MaxSizeMB, settings.Cache.MemoryItems)
	}
	return cache.New()
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show content cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache()
		if err != nil {
			return err
		}

		stats := c.Stats()
		fmt.Printf("Memory items: %d\n", stats.MemoryItems)
		fmt.Printf("Disk items:   %d\n", stats.DiskItems)
		fmt.Printf("Size:         %d / %d bytes\n", stats.TotalSizeBytes, stats.MaxSizeBytes)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached content",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache()
		if err != nil {
			return err
		}
		if err := c.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("Cache cleared.")
		return nil
	},
}
