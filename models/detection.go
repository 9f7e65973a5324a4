package models

import "debris/geo"

// Detection is a single debris pile returned by the segmentation model,
// already georeferenced to WGS84. IDs are assigned per area, starting at 1,
// in the order detections were produced.
type Detection struct {
	ID       int
	Rings    []geo.Ring
	Centroid geo.Point
	AreaSqm  float64
	Score    float64
	Prompt   string
}

// Exterior returns the outer boundary of the detection, or nil when the
// detection carries no rings.
func (d Detection) Exterior() geo.Ring {
	if len(d.Rings) == 0 {
		return nil
	}
	return d.Rings[0]
}
