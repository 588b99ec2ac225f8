package device

import (
	"errors"
	"net"
	"testing"
)

func validOptions() Options {
	return Options{
		UUID:         "f4f7681e-6a8d-4dfa-9bb4-9a6a36a5c8b2",
		IP:           net.IPv4(192, 168, 1, 20),
		SSDPPort:     1900,
		HTTPPort:     8080,
		FriendlyName: "Living Room",
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(*Options) {},
		},
		{
			name:    "missing uuid",
			mutate:  func(o *Options) { o.UUID = "" },
			wantErr: ErrMissingUUID,
		},
		{
			name:    "malformed uuid",
			mutate:  func(o *Options) { o.UUID = "not-a-uuid" },
			wantErr: ErrInvalidUUID,
		},
		{
			name:    "missing ip",
			mutate:  func(o *Options) { o.IP = nil },
			wantErr: ErrMissingIP,
		},
		{
			name:    "ipv6 rejected",
			mutate:  func(o *Options) { o.IP = net.ParseIP("fe80::1") },
			wantErr: ErrNotIPv4,
		},
		{
			name:    "zero http port",
			mutate:  func(o *Options) { o.HTTPPort = 0 },
			wantErr: ErrInvalidPort,
		},
		{
			name:    "missing friendly name",
			mutate:  func(o *Options) { o.FriendlyName = "" },
			wantErr: ErrMissingName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)

			err := opts.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	id := validOptions().Identity()

	if got, want := id.USN(), "uuid:f4f7681e-6a8d-4dfa-9bb4-9a6a36a5c8b2"; got != want {
		t.Errorf("USN = %q, want %q", got, want)
	}
	if got, want := id.DescriptorURL(), "http://192.168.1.20:8080/DeviceSpec"; got != want {
		t.Errorf("DescriptorURL = %q, want %q", got, want)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts, err := DefaultOptions()
	if err != nil {
		t.Skipf("no local IPv4 route: %v", err)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("default options do not validate: %v", err)
	}
	if opts.SSDPPort != DefaultSSDPPort || opts.HTTPPort != DefaultHTTPPort {
		t.Errorf("unexpected default ports: %d, %d", opts.SSDPPort, opts.HTTPPort)
	}
}
