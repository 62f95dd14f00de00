// Lancast is a local-network media-casting control plane.
//
// It discovers cast-capable receivers (Chromecast, AirPlay, FireTV/DIAL,
// DLNA/UPnP, Miracast) advertised on the LAN, tracks their liveness, and
// exposes them to casting clients.
//
// Usage:
//
//	lancast [command] [flags]
//
// See 'lancast --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lancast/internal/config"
	"lancast/internal/logging"
	"lancast/internal/version"
)

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lancast",
	Short: "LAN casting device discovery",
	Long: `Lancast discovers cast-capable receivers on the local network.

It browses mDNS for Chromecast, AirPlay, FireTV and friends, sweeps the
network for UPnP/DLNA renderers over SSDP, and keeps a live registry of
everything it hears, evicting devices that stop advertising.`,
	Version: version.Full(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Silent unless the config file or LANCAST_LOG_LEVEL say otherwise
		settings, err := config.Load()
		if err != nil {
			return err
		}
		return logging.Initialize(settings.LogLevel)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
