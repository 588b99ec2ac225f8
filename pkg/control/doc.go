// Package control implements the renderer's HTTP control transport: the
// four fixed endpoints a control point talks to, routing by exact path and
// method, body decoding through the soap codec, and dispatch of decoded
// actions to a caller-supplied handler.
//
// The dispatcher holds no device state. Action semantics live entirely in
// the ActionHandler the caller provides; a malformed or unhandled request
// always receives a syntactically valid HTTP response and changes nothing.
package control
