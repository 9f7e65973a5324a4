package geo

import "math"

// earthRadius is the WGS84 semi-major axis in meters.
const earthRadius = 6378137.0

// Point is a WGS84 coordinate. GeoJSON serializes coordinates in
// lon,lat order; keep that in mind when building coordinate arrays.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Ring is an open sequence of polygon vertices: the closing vertex is
// implied, not repeated. Writers that need closed rings (GeoJSON) append
// the first vertex themselves.
type Ring []Point

// signedAreaDeg is the shoelace sum in degree space. Positive means the
// ring winds counterclockwise.
func (r Ring) signedAreaDeg() float64 {
	if len(r) < 3 {
		return 0
	}
	var sum float64
	for i, p := range r {
		q := r[(i+1)%len(r)]
		sum += p.Lon*q.Lat - q.Lon*p.Lat
	}
	return sum / 2
}

// IsCCW reports whether the ring winds counterclockwise, the GeoJSON
// convention for exterior rings.
func (r Ring) IsCCW() bool {
	return r.signedAreaDeg() > 0
}

// Reversed returns a copy of the ring with the opposite winding.
func (r Ring) Reversed() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Centroid returns the area-weighted centroid of the ring. Degenerate
// rings (fewer than 3 vertices or zero area) fall back to the vertex mean.
func (r Ring) Centroid() Point {
	if len(r) == 0 {
		return Point{}
	}
	a := r.signedAreaDeg()
	if len(r) < 3 || a == 0 {
		var c Point
		for _, p := range r {
			c.Lon += p.Lon
			c.Lat += p.Lat
		}
		c.Lon /= float64(len(r))
		c.Lat /= float64(len(r))
		return c
	}
	var cx, cy float64
	for i, p := range r {
		q := r[(i+1)%len(r)]
		cross := p.Lon*q.Lat - q.Lon*p.Lat
		cx += (p.Lon + q.Lon) * cross
		cy += (p.Lat + q.Lat) * cross
	}
	return Point{Lon: cx / (6 * a), Lat: cy / (6 * a)}
}

// AreaSqm approximates the ring's area in square meters using an
// equirectangular projection about the ring's mean latitude. Good to well
// under a percent for the house-sized polygons this pipeline deals in.
func (r Ring) AreaSqm() float64 {
	if len(r) < 3 {
		return 0
	}
	var meanLat float64
	for _, p := range r {
		meanLat += p.Lat
	}
	meanLat /= float64(len(r))

	// meters per degree at the reference latitude
	mLat := earthRadius * math.Pi / 180
	mLon := mLat * math.Cos(meanLat*math.Pi/180)

	var sum float64
	for i, p := range r {
		q := r[(i+1)%len(r)]
		x1, y1 := p.Lon*mLon, p.Lat*mLat
		x2, y2 := q.Lon*mLon, q.Lat*mLat
		sum += x1*y2 - x2*y1
	}
	return math.Abs(sum / 2)
}
