package soap

import (
	"regexp"
	"strings"
)

// Highlight extraction: POST bodies to the AVTransport endpoint usually
// carry the URI the control point wants played. Surfacing it in logs makes
// traffic legible without decoding the body a second time. Extraction is
// observational only and never affects request handling.

var (
	currentURIRegexp = regexp.MustCompile(`<CurrentURI>([^<]+)</CurrentURI>`)
	nextURIRegexp    = regexp.MustCompile(`<NextURI>([^<]+)</NextURI>`)
)

// Highlights scans a raw control body for loggable details. The result is
// empty for services and bodies with nothing of interest.
func Highlights(svc Service, body []byte) []string {
	if svc != ServiceAVTransport {
		return nil
	}

	var out []string
	if m := currentURIRegexp.FindSubmatch(body); m != nil {
		out = append(out, "Current URI: "+strings.TrimSpace(string(m[1])))
	}
	if m := nextURIRegexp.FindSubmatch(body); m != nil {
		out = append(out, "Next URI: "+strings.TrimSpace(string(m[1])))
	}
	return out
}
