// Package soap implements the control-message codec for the renderer's
// two action-bearing UPnP services: AVTransport and RenderingControl.
//
// A control message is a SOAP envelope whose single body element names the
// action (e.g. "Play", "SetVolume"). DecodeAVTransport and
// DecodeRenderingControl turn a raw body into exactly one value of the
// corresponding closed action set, or an error value:
//
//   - *ParseError for malformed XML, missing required arguments, or
//     arguments outside their enumerated domain
//   - *UnknownActionError for a well-formed body whose action tag is not
//     in the set this renderer understands
//
// The codec is pure and stateless: it performs no I/O and never panics on
// input. Encode functions build the matching request bodies for control
// points.
package soap
