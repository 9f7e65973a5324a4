package geo

import "math"

// Web-Mercator math for the standard XYZ tile scheme: 256px tiles,
// 2^zoom tiles per axis, origin at the northwest corner of the world.

// TileSize is the edge length of one slippy-map tile in pixels.
const TileSize = 256

// maxMercatorLat is where the Web-Mercator projection cuts off.
const maxMercatorLat = 85.05112878

// mapSize returns the world size in pixels at the given zoom.
func mapSize(zoom int) float64 {
	return float64(TileSize) * math.Exp2(float64(zoom))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// GlobalPixel projects p to absolute pixel coordinates at zoom, x growing
// east and y growing south.
func GlobalPixel(p Point, zoom int) (px, py float64) {
	size := mapSize(zoom)
	lat := clamp(p.Lat, -maxMercatorLat, maxMercatorLat)
	lon := clamp(p.Lon, -180, 180)

	px = (lon + 180) / 360 * size
	sinLat := math.Sin(lat * math.Pi / 180)
	py = (0.5 - math.Log((1+sinLat)/(1-sinLat))/(4*math.Pi)) * size
	return px, py
}

// PixelLonLat is the inverse of GlobalPixel.
func PixelLonLat(px, py float64, zoom int) Point {
	size := mapSize(zoom)
	lon := px/size*360 - 180
	y := 0.5 - py/size
	lat := 90 - 360*math.Atan(math.Exp(-y*2*math.Pi))/math.Pi
	return Point{Lon: lon, Lat: lat}
}

// TileXY returns the tile column and row containing p at zoom.
func TileXY(p Point, zoom int) (x, y int) {
	px, py := GlobalPixel(p, zoom)
	n := int(math.Exp2(float64(zoom)))
	x = int(math.Floor(px / TileSize))
	y = int(math.Floor(py / TileSize))
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > n-1 {
		x = n - 1
	}
	if y > n-1 {
		y = n - 1
	}
	return x, y
}

// MercatorMeters projects p to EPSG:3857 meters, the coordinate system
// world files for stitched tile mosaics are written in.
func MercatorMeters(p Point) (x, y float64) {
	lat := clamp(p.Lat, -maxMercatorLat, maxMercatorLat)
	x = p.Lon * math.Pi / 180 * earthRadius
	y = math.Log(math.Tan((90+lat)*math.Pi/360)) * earthRadius
	return x, y
}

// MercatorResolution returns meters per pixel at the given zoom (at the
// equator).
func MercatorResolution(zoom int) float64 {
	return 2 * math.Pi * earthRadius / mapSize(zoom)
}
