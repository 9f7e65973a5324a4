package geojson

import (
	"encoding/json"
	"strings"
	"testing"

	"debris/geo"
)

func TestEmptyCollectionMarshalsFeaturesArray(t *testing.T) {
	data, err := json.Marshal(NewFeatureCollection())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"features":[]`) {
		t.Errorf("empty collection marshaled as %s, want features []", data)
	}
}

func TestFromRingsCloses(t *testing.T) {
	ring := geo.Ring{
		{Lon: -82.71, Lat: 27.74},
		{Lon: -82.70, Lat: 27.74},
		{Lon: -82.70, Lat: 27.75},
	}
	g := FromRings([]geo.Ring{ring})

	if g.Type != TypePolygon {
		t.Errorf("geometry type = %q, want %q", g.Type, TypePolygon)
	}
	coords := g.Coordinates[0]
	if len(coords) != 4 {
		t.Fatalf("closed ring has %d positions, want 4", len(coords))
	}
	first, last := coords[0], coords[len(coords)-1]
	if first[0] != last[0] || first[1] != last[1] {
		t.Errorf("ring not closed: first %v, last %v", first, last)
	}
	if first[0] != -82.71 || first[1] != 27.74 {
		t.Errorf("positions are %v, want lon,lat order", first)
	}
}

func TestRingsRoundTrip(t *testing.T) {
	ring := geo.Ring{
		{Lon: -82.71, Lat: 27.74},
		{Lon: -82.70, Lat: 27.74},
		{Lon: -82.70, Lat: 27.75},
		{Lon: -82.71, Lat: 27.75},
	}
	got := FromRings([]geo.Ring{ring}).Rings()

	if len(got) != 1 {
		t.Fatalf("got %d rings, want 1", len(got))
	}
	if len(got[0]) != len(ring) {
		t.Fatalf("round-tripped ring has %d vertices, want %d", len(got[0]), len(ring))
	}
	for i := range ring {
		if got[0][i] != ring[i] {
			t.Errorf("vertex %d = %v, want %v", i, got[0][i], ring[i])
		}
	}
}

func TestNewPolygonFeature(t *testing.T) {
	ring := geo.Ring{
		{Lon: 0, Lat: 0},
		{Lon: 1, Lat: 0},
		{Lon: 1, Lat: 1},
	}
	f := NewPolygonFeature([]geo.Ring{ring}, map[string]interface{}{"id": 1, "score": 0.9})

	if f.Type != TypeFeature {
		t.Errorf("feature type = %q, want %q", f.Type, TypeFeature)
	}
	if f.Properties["id"] != 1 {
		t.Errorf("properties id = %v, want 1", f.Properties["id"])
	}

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back Feature
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.Geometry.Type != TypePolygon {
		t.Errorf("geometry type = %q after round trip", back.Geometry.Type)
	}
}
