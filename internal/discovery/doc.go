// Package discovery locates cast-capable receivers on the local network and
// tracks their liveness.
//
// The engine runs one mDNS browse watcher per requested device type
// (Chromecast, AirPlay, FireTV/DIAL, and so on) plus a single periodic
// SSDP/UPnP poller when UPnP or DLNA discovery is requested. Every watcher
// translates protocol advertisements into upserts against one shared
// registry; a periodic reaper evicts devices whose last advertisement is
// older than the stale timeout.
//
// # Liveness Model
//
// There is no reliable "device left" signal on real networks: withdrawal
// packets get lost and many receivers disappear silently. Liveness is
// therefore inferred purely from advertisement recency. A device is created
// on its first resolution, has LastSeen bumped on every re-advertisement,
// and is removed by the reaper once now - LastSeen exceeds the stale
// timeout (default 300s, swept every 30s). SSDP devices re-advertise only
// when polled, so their worst-case removal latency is the stale timeout
// plus one poll interval.
//
// # Identity and Capabilities
//
// Devices deduplicate on a composite id derived from (service type, host,
// port). Capabilities are resolved from the device type exactly once, at
// first sight, and never merged from later advertisements.
//
// # Usage Example
//
//	engine := discovery.NewEngine(discovery.Options{})
//	if err := engine.Start([]discovery.DeviceType{
//	    discovery.Chromecast,
//	    discovery.AirPlay,
//	    discovery.DLNA,
//	}); err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Stop()
//
//	for _, d := range engine.GetAll() {
//	    fmt.Printf("%s (%s) at %s\n", d.Name, d.Type, d.Addr())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Receivers must be on the same local network segment
// - Firewall must allow mDNS (UDP 5353) and SSDP (UDP 1900)
//
// # Thread Safety
//
// The registry read API (GetAll, GetByType, GetByID) is safe to call from
// any goroutine, in any engine state, concurrently with the watchers and
// the reaper. Reads return deep-copied snapshots.
package discovery
