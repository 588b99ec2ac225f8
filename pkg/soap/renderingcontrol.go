package soap

import "encoding/xml"

// RenderingControlAction is the closed set of rendering-control actions
// this renderer understands. Concrete types: ListPresets, SelectPreset,
// GetMute, SetMute, GetVolume, SetVolume.
type RenderingControlAction interface {
	isRenderingControlAction()
}

// ListPresets returns the currently defined presets.
type ListPresets struct {
	InstanceID uint32
}

// SelectPreset restores the state variables associated with a preset.
type SelectPreset struct {
	InstanceID uint32
	PresetName PresetName
}

// GetMute queries the mute state of a channel.
type GetMute struct {
	InstanceID uint32
	Channel    Channel
}

// SetMute sets the mute state of a channel.
type SetMute struct {
	InstanceID  uint32
	Channel     Channel
	DesiredMute bool
}

// GetVolume queries the volume of a channel.
type GetVolume struct {
	InstanceID uint32
	Channel    Channel
}

// SetVolume sets the volume of a channel.
type SetVolume struct {
	InstanceID    uint32
	Channel       Channel
	DesiredVolume uint16
}

func (ListPresets) isRenderingControlAction()  {}
func (SelectPreset) isRenderingControlAction() {}
func (GetMute) isRenderingControlAction()      {}
func (SetMute) isRenderingControlAction()      {}
func (GetVolume) isRenderingControlAction()    {}
func (SetVolume) isRenderingControlAction()    {}

type selectPresetArgs struct {
	InstanceID *instanceID `xml:"InstanceID"`
	PresetName PresetName  `xml:"PresetName"`
}

type channelArgs struct {
	InstanceID *instanceID `xml:"InstanceID"`
	Channel    Channel     `xml:"Channel"`
}

type setMuteArgs struct {
	InstanceID *instanceID `xml:"InstanceID"`
	Channel    Channel     `xml:"Channel"`
	Mute       *muteFlag   `xml:"DesiredMute"`
}

type setVolumeArgs struct {
	InstanceID *instanceID `xml:"InstanceID"`
	Channel    Channel     `xml:"Channel"`
	Volume     *volume     `xml:"DesiredVolume"`
}

type rcsBody struct {
	ListPresets  *instanceArgs     `xml:"ListPresets"`
	SelectPreset *selectPresetArgs `xml:"SelectPreset"`
	GetMute      *channelArgs      `xml:"GetMute"`
	SetMute      *setMuteArgs      `xml:"SetMute"`
	GetVolume    *channelArgs      `xml:"GetVolume"`
	SetVolume    *setVolumeArgs    `xml:"SetVolume"`
	Unknown      *unknownElement   `xml:",any"`
}

type rcsEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    rcsBody  `xml:"Body"`
}

// DecodeRenderingControl decodes a control body addressed to the
// RenderingControl service into exactly one action value, a *ParseError,
// or an *UnknownActionError.
func DecodeRenderingControl(body []byte) (RenderingControlAction, error) {
	const svc = ServiceRenderingControl

	var env rcsEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, parseError(svc, err)
	}

	b := env.Body
	switch {
	case b.ListPresets != nil:
		id, err := requireInstance(svc, "ListPresets", b.ListPresets.InstanceID)
		if err != nil {
			return nil, err
		}
		return ListPresets{InstanceID: id}, nil

	case b.SelectPreset != nil:
		id, err := requireInstance(svc, "SelectPreset", b.SelectPreset.InstanceID)
		if err != nil {
			return nil, err
		}
		if b.SelectPreset.PresetName == 0 {
			return nil, &ParseError{Service: svc, Cause: "SelectPreset is missing PresetName"}
		}
		return SelectPreset{InstanceID: id, PresetName: b.SelectPreset.PresetName}, nil

	case b.GetMute != nil:
		id, ch, err := decodeChannelArgs(b.GetMute, "GetMute")
		if err != nil {
			return nil, err
		}
		return GetMute{InstanceID: id, Channel: ch}, nil

	case b.SetMute != nil:
		id, err := requireInstance(svc, "SetMute", b.SetMute.InstanceID)
		if err != nil {
			return nil, err
		}
		if b.SetMute.Channel == 0 {
			return nil, &ParseError{Service: svc, Cause: "SetMute is missing Channel"}
		}
		if b.SetMute.Mute == nil {
			return nil, &ParseError{Service: svc, Cause: "SetMute is missing DesiredMute"}
		}
		return SetMute{InstanceID: id, Channel: b.SetMute.Channel, DesiredMute: bool(*b.SetMute.Mute)}, nil

	case b.GetVolume != nil:
		id, ch, err := decodeChannelArgs(b.GetVolume, "GetVolume")
		if err != nil {
			return nil, err
		}
		return GetVolume{InstanceID: id, Channel: ch}, nil

	case b.SetVolume != nil:
		id, err := requireInstance(svc, "SetVolume", b.SetVolume.InstanceID)
		if err != nil {
			return nil, err
		}
		if b.SetVolume.Channel == 0 {
			return nil, &ParseError{Service: svc, Cause: "SetVolume is missing Channel"}
		}
		if b.SetVolume.Volume == nil {
			return nil, &ParseError{Service: svc, Cause: "SetVolume is missing DesiredVolume"}
		}
		return SetVolume{InstanceID: id, Channel: b.SetVolume.Channel, DesiredVolume: uint16(*b.SetVolume.Volume)}, nil

	case b.Unknown != nil:
		return nil, &UnknownActionError{Service: svc, Name: b.Unknown.XMLName.Local}

	default:
		return nil, &ParseError{Service: svc, Cause: "empty SOAP body"}
	}
}

func decodeChannelArgs(args *channelArgs, action string) (uint32, Channel, error) {
	const svc = ServiceRenderingControl
	id, err := requireInstance(svc, action, args.InstanceID)
	if err != nil {
		return 0, 0, err
	}
	if args.Channel == 0 {
		return 0, 0, &ParseError{Service: svc, Cause: action + " is missing Channel"}
	}
	return id, args.Channel, nil
}
