package soap

import (
	"reflect"
	"testing"
)

func TestHighlights(t *testing.T) {
	tests := []struct {
		name string
		svc  Service
		body string
		want []string
	}{
		{
			name: "current uri",
			svc:  ServiceAVTransport,
			body: `<CurrentURI>https://media.example.com/track.flac</CurrentURI>`,
			want: []string{"Current URI: https://media.example.com/track.flac"},
		},
		{
			name: "current and next uri",
			svc:  ServiceAVTransport,
			body: `<CurrentURI>http://a/1.mp4</CurrentURI><NextURI> http://a/2.mp4 </NextURI>`,
			want: []string{"Current URI: http://a/1.mp4", "Next URI: http://a/2.mp4"},
		},
		{
			name: "nothing of interest",
			svc:  ServiceAVTransport,
			body: `<InstanceID>0</InstanceID>`,
			want: nil,
		},
		{
			name: "rendering control is never scanned",
			svc:  ServiceRenderingControl,
			body: `<CurrentURI>http://a/1.mp4</CurrentURI>`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlights(tt.svc, []byte(tt.body))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Highlights() = %v, want %v", got, tt.want)
			}
		})
	}
}
