package geo

import (
	"errors"
	"fmt"
)

// ErrInvalidBBox reports a bounding box whose edges are out of order.
var ErrInvalidBBox = errors.New("invalid bounding box")

// BBox is a rectangular geographic extent in WGS84 decimal degrees,
// ordered west, south, east, north.
type BBox struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// Validate checks the edge ordering invariant: west < east and south < north.
func (b BBox) Validate() error {
	if b.West >= b.East || b.South >= b.North {
		return fmt.Errorf("%w: [%g, %g, %g, %g]", ErrInvalidBBox, b.West, b.South, b.East, b.North)
	}
	return nil
}

// Contains reports whether p lies inside the box, edges included.
func (b BBox) Contains(p Point) bool {
	return p.Lon >= b.West && p.Lon <= b.East && p.Lat >= b.South && p.Lat <= b.North
}

// Center returns the midpoint of the box.
func (b BBox) Center() Point {
	return Point{Lon: (b.West + b.East) / 2, Lat: (b.South + b.North) / 2}
}

func (b BBox) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", b.West, b.South, b.East, b.North)
}
