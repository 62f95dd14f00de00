package discovery

// Capabilities describes the media capabilities assumed for a receiver.
// A device's capabilities are resolved from its type exactly once, when the
// device is first sighted, and never change afterwards.
type Capabilities struct {
	CanVideo  bool
	CanAudio  bool
	CanImage  bool
	CanMirror bool

	// SupportedCodecs lists codec names in preference order.
	SupportedCodecs []string

	// MaxResolution is a label such as "1080p" or "4K"; empty when unknown.
	MaxResolution string

	// Protocols lists the casting protocols the receiver speaks.
	Protocols []string
}

// DefaultCapabilities returns the conservative profile assumed for device
// types without a canonical override.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		CanVideo:        true,
		CanAudio:        true,
		CanImage:        true,
		CanMirror:       false,
		SupportedCodecs: []string{"h264", "aac"},
		MaxResolution:   "1080p",
		Protocols:       []string{},
	}
}

// ResolveCapabilities maps a device type to its canonical capability
// profile. Pure lookup, no I/O. Each call returns a fresh value so callers
// can never mutate the canonical profiles.
func ResolveCapabilities(t DeviceType) Capabilities {
	switch t {
	case Chromecast:
		return Capabilities{
			CanVideo:        true,
			CanAudio:        true,
			CanImage:        true,
			CanMirror:       true,
			SupportedCodecs: []string{"h264", "vp8", "vp9", "aac", "opus"},
			MaxResolution:   "4K",
			Protocols:       []string{"cast"},
		}
	case FireTV:
		return Capabilities{
			CanVideo:        true,
			CanAudio:        true,
			CanImage:        true,
			CanMirror:       true,
			SupportedCodecs: []string{"h264", "h265", "aac"},
			MaxResolution:   "4K",
			Protocols:       []string{"dial", "miracast"},
		}
	case AirPlay:
		return Capabilities{
			CanVideo:        true,
			CanAudio:        true,
			CanImage:        true,
			CanMirror:       true,
			SupportedCodecs: []string{"h264", "aac"},
			MaxResolution:   "1080p",
			Protocols:       []string{"airplay"},
		}
	case DLNA:
		caps := DefaultCapabilities()
		caps.Protocols = []string{"dlna"}
		return caps
	case Miracast:
		caps := DefaultCapabilities()
		caps.CanMirror = true
		caps.Protocols = []string{"miracast"}
		return caps
	default:
		// UPnP and custom types get the default profile
		return DefaultCapabilities()
	}
}

// clone returns a deep copy so registry snapshots never alias live state.
func (c Capabilities) clone() Capabilities {
	out := c
	out.SupportedCodecs = append([]string(nil), c.SupportedCodecs...)
	out.Protocols = append([]string(nil), c.Protocols...)
	return out
}
