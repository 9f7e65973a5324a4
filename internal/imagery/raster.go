package imagery

import "debris/geo"

// Raster is a stitched image on local disk together with everything needed
// to map its pixels back to WGS84. OriginX/OriginY are the global pixel
// coordinates of the image's top-left corner at Zoom.
type Raster struct {
	Path    string
	Zoom    int
	OriginX float64
	OriginY float64
	Width   int
	Height  int
	Bounds  geo.BBox
}

// LonLat converts image pixel coordinates to a WGS84 point.
func (r Raster) LonLat(px, py float64) geo.Point {
	return geo.PixelLonLat(r.OriginX+px, r.OriginY+py, r.Zoom)
}
