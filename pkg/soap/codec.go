package soap

import "encoding/xml"

// unknownElement captures a body element whose tag is not in the service's
// known action set. Only the tag name is retained.
type unknownElement struct {
	XMLName xml.Name
}

// requireInstance extracts a required InstanceID argument.
func requireInstance(svc Service, action string, id *instanceID) (uint32, error) {
	if id == nil {
		return 0, &ParseError{Service: svc, Cause: action + " is missing InstanceID"}
	}
	return uint32(*id), nil
}

// requireArg extracts a required string argument. An empty element is
// legal (URI metadata is routinely empty); an absent one is not.
func requireArg(svc Service, action, name string, v *string) (string, error) {
	if v == nil {
		return "", &ParseError{Service: svc, Cause: action + " is missing " + name}
	}
	return *v, nil
}

// parseError wraps a decode failure from encoding/xml.
func parseError(svc Service, err error) *ParseError {
	return &ParseError{Service: svc, Cause: "malformed control body", Err: err}
}
