package soap

import (
	"fmt"
	"strconv"
)

// Enumerated argument domains. Zero values are deliberately invalid so
// that a missing element is distinguishable from a legal value after
// decoding; UnmarshalText rejects any spelling outside the domain instead
// of substituting a default.

// Channel is an audio output channel. The renderer implements the single
// logical Master channel.
type Channel uint8

const (
	// ChannelMaster is the logical master channel with no spatial position.
	ChannelMaster Channel = 1
)

// String returns the wire spelling of the channel.
func (c Channel) String() string {
	switch c {
	case ChannelMaster:
		return "Master"
	default:
		return "UNKNOWN"
	}
}

// UnmarshalText parses the wire spelling of a channel.
func (c *Channel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Master":
		*c = ChannelMaster
		return nil
	default:
		return fmt.Errorf("unknown channel %q", text)
	}
}

// MarshalText returns the wire spelling of the channel.
func (c Channel) MarshalText() ([]byte, error) {
	if c != ChannelMaster {
		return nil, fmt.Errorf("unknown channel value %d", c)
	}
	return []byte(c.String()), nil
}

// PresetName names a device preset.
type PresetName uint8

const (
	// PresetFactoryDefaults restores the manufacturer's factory settings.
	PresetFactoryDefaults PresetName = 1
)

// String returns the wire spelling of the preset name.
func (p PresetName) String() string {
	switch p {
	case PresetFactoryDefaults:
		return "FactoryDefaults"
	default:
		return "UNKNOWN"
	}
}

// UnmarshalText parses the wire spelling of a preset name.
func (p *PresetName) UnmarshalText(text []byte) error {
	switch string(text) {
	case "FactoryDefaults":
		*p = PresetFactoryDefaults
		return nil
	default:
		return fmt.Errorf("unknown preset %q", text)
	}
}

// MarshalText returns the wire spelling of the preset name.
func (p PresetName) MarshalText() ([]byte, error) {
	if p != PresetFactoryDefaults {
		return nil, fmt.Errorf("unknown preset value %d", p)
	}
	return []byte(p.String()), nil
}

// SeekUnit is the unit of a Seek target.
type SeekUnit uint8

const (
	// UnitRelTime seeks to a position relative to track start (REL_TIME).
	UnitRelTime SeekUnit = 1

	// UnitTrackNr seeks to a track number (TRACK_NR).
	UnitTrackNr SeekUnit = 2

	// UnitAbsTime seeks to an absolute media position (ABS_TIME).
	UnitAbsTime SeekUnit = 3
)

// String returns the wire spelling of the seek unit.
func (u SeekUnit) String() string {
	switch u {
	case UnitRelTime:
		return "REL_TIME"
	case UnitTrackNr:
		return "TRACK_NR"
	case UnitAbsTime:
		return "ABS_TIME"
	default:
		return "UNKNOWN"
	}
}

// UnmarshalText parses the wire spelling of a seek unit.
func (u *SeekUnit) UnmarshalText(text []byte) error {
	switch string(text) {
	case "REL_TIME":
		*u = UnitRelTime
	case "TRACK_NR":
		*u = UnitTrackNr
	case "ABS_TIME":
		*u = UnitAbsTime
	default:
		return fmt.Errorf("unknown seek unit %q", text)
	}
	return nil
}

// MarshalText returns the wire spelling of the seek unit.
func (u SeekUnit) MarshalText() ([]byte, error) {
	if s := u.String(); s != "UNKNOWN" {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown seek unit value %d", u)
}

// PlaySpeed is the transport play speed. Only normal speed is legal.
type PlaySpeed uint8

const (
	// SpeedNormal is normal playback speed ("1").
	SpeedNormal PlaySpeed = 1
)

// String returns the wire spelling of the play speed.
func (s PlaySpeed) String() string {
	switch s {
	case SpeedNormal:
		return "1"
	default:
		return "UNKNOWN"
	}
}

// UnmarshalText parses the wire spelling of a play speed.
func (s *PlaySpeed) UnmarshalText(text []byte) error {
	switch string(text) {
	case "1":
		*s = SpeedNormal
		return nil
	default:
		return fmt.Errorf("unknown play speed %q", text)
	}
}

// MarshalText returns the wire spelling of the play speed.
func (s PlaySpeed) MarshalText() ([]byte, error) {
	if s != SpeedNormal {
		return nil, fmt.Errorf("unknown play speed value %d", s)
	}
	return []byte(s.String()), nil
}

// instanceID decodes an InstanceID argument, rejecting anything that is
// not a base-10 non-negative integer in uint32 range.
type instanceID uint32

func (id *instanceID) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 10, 32)
	if err != nil {
		return fmt.Errorf("InstanceID %q is not a non-negative integer", text)
	}
	*id = instanceID(v)
	return nil
}

// muteFlag decodes a UPnP boolean argument. Legal spellings are 0/1,
// true/false and yes/no.
type muteFlag bool

func (m *muteFlag) UnmarshalText(text []byte) error {
	switch string(text) {
	case "1", "true", "yes":
		*m = true
	case "0", "false", "no":
		*m = false
	default:
		return fmt.Errorf("%q is not a boolean", text)
	}
	return nil
}

// volume decodes a DesiredVolume argument (uint16, per the service's
// state-variable type).
type volume uint16

func (v *volume) UnmarshalText(text []byte) error {
	n, err := strconv.ParseUint(string(text), 10, 16)
	if err != nil {
		return fmt.Errorf("volume %q is not a non-negative integer", text)
	}
	*v = volume(n)
	return nil
}
