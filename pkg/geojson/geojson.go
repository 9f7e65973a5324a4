// Package geojson implements the subset of RFC 7946 needed to exchange
// polygon detections with GIS tools.
package geojson

import "debris/geo"

const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
	TypePolygon           = "Polygon"
)

// FeatureCollection is the top-level GeoJSON document.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single geographic feature with geometry and properties.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry is a polygon geometry. Coordinates holds rings of [lon, lat]
// positions; the first ring is the exterior and every ring is closed.
type Geometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// NewFeatureCollection returns an empty collection that marshals its
// features as [] rather than null.
func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{
		Type:     TypeFeatureCollection,
		Features: []Feature{},
	}
}

func (fc *FeatureCollection) Append(f Feature) {
	fc.Features = append(fc.Features, f)
}

// NewPolygonFeature wraps rings and properties into a feature.
func NewPolygonFeature(rings []geo.Ring, props map[string]interface{}) Feature {
	return Feature{
		Type:       TypeFeature,
		Geometry:   FromRings(rings),
		Properties: props,
	}
}

// FromRings converts open rings to polygon coordinates, closing each ring
// as RFC 7946 requires.
func FromRings(rings []geo.Ring) Geometry {
	coords := make([][][]float64, 0, len(rings))
	for _, ring := range rings {
		closed := make([][]float64, 0, len(ring)+1)
		for _, p := range ring {
			closed = append(closed, []float64{p.Lon, p.Lat})
		}
		if len(ring) > 0 {
			closed = append(closed, []float64{ring[0].Lon, ring[0].Lat})
		}
		coords = append(coords, closed)
	}
	return Geometry{Type: TypePolygon, Coordinates: coords}
}

// Rings converts polygon coordinates back to open rings, dropping each
// ring's closing position.
func (g Geometry) Rings() []geo.Ring {
	rings := make([]geo.Ring, 0, len(g.Coordinates))
	for _, coords := range g.Coordinates {
		ring := make(geo.Ring, 0, len(coords))
		for _, pos := range coords {
			if len(pos) < 2 {
				continue
			}
			ring = append(ring, geo.Point{Lon: pos[0], Lat: pos[1]})
		}
		if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		rings = append(rings, ring)
	}
	return rings
}
