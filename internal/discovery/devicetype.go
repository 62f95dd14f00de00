package discovery

import "strings"

// deviceKind enumerates the known receiver families.
type deviceKind int

const (
	kindChromecast deviceKind = iota
	kindFireTV
	kindAirPlay
	kindDLNA
	kindUPnP
	kindMiracast
	kindCustom
)

// DeviceType identifies the family of a cast-capable receiver. Known
// families are the package-level values below; advertisements under an
// unrecognized service name map to a custom type that carries the raw
// service identifier. DeviceType values are comparable with ==.
type DeviceType struct {
	kind deviceKind

	// service holds the wire service name for custom types only. Known
	// kinds derive their service name from the kind so that equality
	// stays a plain struct comparison.
	service string
}

var (
	Chromecast = DeviceType{kind: kindChromecast}
	FireTV     = DeviceType{kind: kindFireTV}
	AirPlay    = DeviceType{kind: kindAirPlay}
	DLNA       = DeviceType{kind: kindDLNA}
	UPnP       = DeviceType{kind: kindUPnP}
	Miracast   = DeviceType{kind: kindMiracast}
)

// CustomType returns a device type for an unrecognized advertisement
// service name. The raw service identifier is preserved for id derivation.
func CustomType(service string) DeviceType {
	return DeviceType{kind: kindCustom, service: service}
}

// TypeFromService maps a wire-level service identifier to its device type.
// Trailing dots and the "local." domain are ignored for matching, so
// "_googlecast._tcp", "_googlecast._tcp.local" and "_googlecast._tcp.local."
// all resolve to Chromecast. Unknown service names yield a custom type
// carrying the original string.
func TypeFromService(service string) DeviceType {
	base := strings.TrimSuffix(service, ".")
	base = strings.TrimSuffix(base, ".local")

	switch base {
	case "_googlecast._tcp":
		return Chromecast
	case "_dial._tcp": // FireTV advertises via the DIAL protocol
		return FireTV
	case "_airplay._tcp":
		return AirPlay
	case "_dlna._tcp":
		return DLNA
	case "_upnp._tcp":
		return UPnP
	case "_miracast._tcp":
		return Miracast
	default:
		return CustomType(service)
	}
}

// TypeFromName maps a human-facing type name (as used in config files and
// CLI flags) to a device type. Unknown names yield a custom type.
func TypeFromName(name string) DeviceType {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "chromecast":
		return Chromecast
	case "firetv", "fire_tv":
		return FireTV
	case "airplay":
		return AirPlay
	case "dlna":
		return DLNA
	case "upnp":
		return UPnP
	case "miracast":
		return Miracast
	default:
		return CustomType(name)
	}
}

// Service returns the full wire service identifier this type is discovered
// under, including the mDNS domain (e.g. "_googlecast._tcp.local.").
func (t DeviceType) Service() string {
	switch t.kind {
	case kindChromecast:
		return "_googlecast._tcp.local."
	case kindFireTV:
		return "_dial._tcp.local."
	case kindAirPlay:
		return "_airplay._tcp.local."
	case kindDLNA:
		return "_dlna._tcp.local."
	case kindUPnP:
		return "_upnp._tcp.local."
	case kindMiracast:
		return "_miracast._tcp.local."
	default:
		return t.service
	}
}

// IsCustom reports whether this type was synthesized from an unrecognized
// service name.
func (t DeviceType) IsCustom() bool {
	return t.kind == kindCustom
}

// String returns the human-facing type name.
func (t DeviceType) String() string {
	switch t.kind {
	case kindChromecast:
		return "chromecast"
	case kindFireTV:
		return "firetv"
	case kindAirPlay:
		return "airplay"
	case kindDLNA:
		return "dlna"
	case kindUPnP:
		return "upnp"
	case kindMiracast:
		return "miracast"
	default:
		return t.service
	}
}

// browseArgs splits the service identifier into the service and domain
// arguments expected by the mDNS resolver ("_googlecast._tcp", "local.").
func (t DeviceType) browseArgs() (service, domain string) {
	base := strings.TrimSuffix(t.Service(), ".")
	base = strings.TrimSuffix(base, ".local")
	return base, "local."
}
