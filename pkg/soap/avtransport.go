package soap

import "encoding/xml"

// AVTransportAction is the closed set of transport-control actions this
// renderer understands. Concrete types: SetAVTransportURI,
// SetNextAVTransportURI, Play, Seek, and the Instance-only actions (Stop,
// Pause, Next, Previous and the GetXxx queries).
type AVTransportAction interface {
	isAVTransportAction()
}

// Instance carries the lone InstanceID argument shared by the simple
// transport actions and queries.
type Instance struct {
	InstanceID uint32
}

// SetAVTransportURI sets the URI of the media to play.
type SetAVTransportURI struct {
	InstanceID         uint32
	CurrentURI         string
	CurrentURIMetaData string
}

// SetNextAVTransportURI sets the URI of the media to play after the
// current one finishes.
type SetNextAVTransportURI struct {
	InstanceID      uint32
	NextURI         string
	NextURIMetaData string
}

// Play starts playback at the given speed.
type Play struct {
	InstanceID uint32
	Speed      PlaySpeed
}

// Seek repositions the transport to Target, interpreted per Unit.
type Seek struct {
	InstanceID uint32
	Unit       SeekUnit
	Target     string
}

// Simple transport commands and state queries. Each carries only an
// instance identifier; the queries have no side effects.
type (
	Stop                       struct{ Instance }
	Pause                      struct{ Instance }
	Next                       struct{ Instance }
	Previous                   struct{ Instance }
	GetMediaInfo               struct{ Instance }
	GetTransportInfo           struct{ Instance }
	GetPositionInfo            struct{ Instance }
	GetDeviceCapabilities      struct{ Instance }
	GetTransportSettings       struct{ Instance }
	GetCurrentTransportActions struct{ Instance }
)

func (SetAVTransportURI) isAVTransportAction()          {}
func (SetNextAVTransportURI) isAVTransportAction()      {}
func (Play) isAVTransportAction()                       {}
func (Seek) isAVTransportAction()                       {}
func (Stop) isAVTransportAction()                       {}
func (Pause) isAVTransportAction()                      {}
func (Next) isAVTransportAction()                       {}
func (Previous) isAVTransportAction()                   {}
func (GetMediaInfo) isAVTransportAction()               {}
func (GetTransportInfo) isAVTransportAction()           {}
func (GetPositionInfo) isAVTransportAction()            {}
func (GetDeviceCapabilities) isAVTransportAction()      {}
func (GetTransportSettings) isAVTransportAction()       {}
func (GetCurrentTransportActions) isAVTransportAction() {}

// Decode mirror structs. Required arguments are pointers (or zero-invalid
// enums) so that an absent element is detected rather than defaulted.

type setURIArgs struct {
	InstanceID *instanceID `xml:"InstanceID"`
	URI        *string     `xml:"CurrentURI"`
	MetaData   *string     `xml:"CurrentURIMetaData"`
}

type setNextURIArgs struct {
	InstanceID *instanceID `xml:"InstanceID"`
	URI        *string     `xml:"NextURI"`
	MetaData   *string     `xml:"NextURIMetaData"`
}

type playArgs struct {
	InstanceID *instanceID `xml:"InstanceID"`
	Speed      PlaySpeed   `xml:"Speed"`
}

type seekArgs struct {
	InstanceID *instanceID `xml:"InstanceID"`
	Unit       SeekUnit    `xml:"Unit"`
	Target     *string     `xml:"Target"`
}

type instanceArgs struct {
	InstanceID *instanceID `xml:"InstanceID"`
}

type avtBody struct {
	SetURI     *setURIArgs     `xml:"SetAVTransportURI"`
	SetNextURI *setNextURIArgs `xml:"SetNextAVTransportURI"`
	Play       *playArgs       `xml:"Play"`
	Seek       *seekArgs       `xml:"Seek"`
	Stop       *instanceArgs   `xml:"Stop"`
	Pause      *instanceArgs   `xml:"Pause"`
	Next       *instanceArgs   `xml:"Next"`
	Previous   *instanceArgs   `xml:"Previous"`
	MediaInfo  *instanceArgs   `xml:"GetMediaInfo"`
	TransInfo  *instanceArgs   `xml:"GetTransportInfo"`
	PosInfo    *instanceArgs   `xml:"GetPositionInfo"`
	DevCaps    *instanceArgs   `xml:"GetDeviceCapabilities"`
	TransSet   *instanceArgs   `xml:"GetTransportSettings"`
	CurActions *instanceArgs   `xml:"GetCurrentTransportActions"`
	Unknown    *unknownElement `xml:",any"`
}

type avtEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    avtBody  `xml:"Body"`
}

// DecodeAVTransport decodes a control body addressed to the AVTransport
// service into exactly one action value, a *ParseError, or an
// *UnknownActionError.
func DecodeAVTransport(body []byte) (AVTransportAction, error) {
	const svc = ServiceAVTransport

	var env avtEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, parseError(svc, err)
	}

	b := env.Body
	switch {
	case b.SetURI != nil:
		return decodeSetURI(b.SetURI)
	case b.SetNextURI != nil:
		return decodeSetNextURI(b.SetNextURI)
	case b.Play != nil:
		return decodePlay(b.Play)
	case b.Seek != nil:
		return decodeSeek(b.Seek)
	case b.Stop != nil:
		return decodeInstance(b.Stop, "Stop", func(i Instance) AVTransportAction { return Stop{i} })
	case b.Pause != nil:
		return decodeInstance(b.Pause, "Pause", func(i Instance) AVTransportAction { return Pause{i} })
	case b.Next != nil:
		return decodeInstance(b.Next, "Next", func(i Instance) AVTransportAction { return Next{i} })
	case b.Previous != nil:
		return decodeInstance(b.Previous, "Previous", func(i Instance) AVTransportAction { return Previous{i} })
	case b.MediaInfo != nil:
		return decodeInstance(b.MediaInfo, "GetMediaInfo", func(i Instance) AVTransportAction { return GetMediaInfo{i} })
	case b.TransInfo != nil:
		return decodeInstance(b.TransInfo, "GetTransportInfo", func(i Instance) AVTransportAction { return GetTransportInfo{i} })
	case b.PosInfo != nil:
		return decodeInstance(b.PosInfo, "GetPositionInfo", func(i Instance) AVTransportAction { return GetPositionInfo{i} })
	case b.DevCaps != nil:
		return decodeInstance(b.DevCaps, "GetDeviceCapabilities", func(i Instance) AVTransportAction { return GetDeviceCapabilities{i} })
	case b.TransSet != nil:
		return decodeInstance(b.TransSet, "GetTransportSettings", func(i Instance) AVTransportAction { return GetTransportSettings{i} })
	case b.CurActions != nil:
		return decodeInstance(b.CurActions, "GetCurrentTransportActions", func(i Instance) AVTransportAction { return GetCurrentTransportActions{i} })
	case b.Unknown != nil:
		return nil, &UnknownActionError{Service: svc, Name: b.Unknown.XMLName.Local}
	default:
		return nil, &ParseError{Service: svc, Cause: "empty SOAP body"}
	}
}

func decodeSetURI(args *setURIArgs) (AVTransportAction, error) {
	const svc = ServiceAVTransport
	id, err := requireInstance(svc, "SetAVTransportURI", args.InstanceID)
	if err != nil {
		return nil, err
	}
	uri, err := requireArg(svc, "SetAVTransportURI", "CurrentURI", args.URI)
	if err != nil {
		return nil, err
	}
	meta, err := requireArg(svc, "SetAVTransportURI", "CurrentURIMetaData", args.MetaData)
	if err != nil {
		return nil, err
	}
	return SetAVTransportURI{InstanceID: id, CurrentURI: uri, CurrentURIMetaData: meta}, nil
}

func decodeSetNextURI(args *setNextURIArgs) (AVTransportAction, error) {
	const svc = ServiceAVTransport
	id, err := requireInstance(svc, "SetNextAVTransportURI", args.InstanceID)
	if err != nil {
		return nil, err
	}
	uri, err := requireArg(svc, "SetNextAVTransportURI", "NextURI", args.URI)
	if err != nil {
		return nil, err
	}
	meta, err := requireArg(svc, "SetNextAVTransportURI", "NextURIMetaData", args.MetaData)
	if err != nil {
		return nil, err
	}
	return SetNextAVTransportURI{InstanceID: id, NextURI: uri, NextURIMetaData: meta}, nil
}

func decodePlay(args *playArgs) (AVTransportAction, error) {
	const svc = ServiceAVTransport
	id, err := requireInstance(svc, "Play", args.InstanceID)
	if err != nil {
		return nil, err
	}
	if args.Speed == 0 {
		return nil, &ParseError{Service: svc, Cause: "Play is missing Speed"}
	}
	return Play{InstanceID: id, Speed: args.Speed}, nil
}

func decodeSeek(args *seekArgs) (AVTransportAction, error) {
	const svc = ServiceAVTransport
	id, err := requireInstance(svc, "Seek", args.InstanceID)
	if err != nil {
		return nil, err
	}
	if args.Unit == 0 {
		return nil, &ParseError{Service: svc, Cause: "Seek is missing Unit"}
	}
	target, err := requireArg(svc, "Seek", "Target", args.Target)
	if err != nil {
		return nil, err
	}
	return Seek{InstanceID: id, Unit: args.Unit, Target: target}, nil
}

func decodeInstance(args *instanceArgs, action string, wrap func(Instance) AVTransportAction) (AVTransportAction, error) {
	id, err := requireInstance(ServiceAVTransport, action, args.InstanceID)
	if err != nil {
		return nil, err
	}
	return wrap(Instance{InstanceID: id}), nil
}
