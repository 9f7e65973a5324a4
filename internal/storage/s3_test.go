package storage

import "testing"

func TestEventPrefix(t *testing.T) {
	tests := []struct {
		name  string
		event string
		want  string
	}{
		{name: "milton", event: "milton", want: "events/HurricaneMilton-Oct24/"},
		{name: "helene", event: "helene", want: "events/Hurricane-Helene-Sept2024/"},
		{name: "uppercase", event: "Helene", want: "events/Hurricane-Helene-Sept2024/"},
		{name: "unknown falls back to milton", event: "ian", want: "events/HurricaneMilton-Oct24/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EventPrefix(tt.event); got != tt.want {
				t.Errorf("EventPrefix(%q) = %q, want %q", tt.event, got, tt.want)
			}
		})
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "runs/abc/gulfport_debris.geojson", want: "application/geo+json"},
		{path: "gulfport_debris.csv", want: "text/csv"},
		{path: "gulfport_debris.shp", want: "application/octet-stream"},
		{path: "gulfport_debris.prj", want: "text/plain"},
		{path: "gulfport.tif", want: "image/tiff"},
	}
	for _, tt := range tests {
		if got := contentTypeFor(tt.path); got != tt.want {
			t.Errorf("contentTypeFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
