package geo

import (
	"math"
	"testing"
)

func TestGlobalPixelRoundTrip(t *testing.T) {
	points := []Point{
		{Lon: 0, Lat: 0},
		{Lon: -82.705, Lat: 27.750},
		{Lon: -82.835, Lat: 27.985},
		{Lon: 179.9, Lat: -84.9},
	}
	zooms := []int{1, 10, 18}

	for _, p := range points {
		for _, z := range zooms {
			px, py := GlobalPixel(p, z)
			back := PixelLonLat(px, py, z)
			if math.Abs(back.Lon-p.Lon) > 1e-9 || math.Abs(back.Lat-p.Lat) > 1e-9 {
				t.Fatalf("round trip %v at zoom %d: got %v", p, z, back)
			}
		}
	}
}

func TestTileXY(t *testing.T) {
	cases := []struct {
		name   string
		p      Point
		zoom   int
		wantX  int
		wantY  int
	}{
		{"origin at zoom 1", Point{Lon: 0.0001, Lat: -0.0001}, 1, 1, 1},
		{"northwest corner", Point{Lon: -179.999, Lat: 85.0}, 2, 0, 0},
		{"zoom zero single tile", Point{Lon: 120, Lat: -45}, 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := TileXY(tc.p, tc.zoom)
			if x != tc.wantX || y != tc.wantY {
				t.Fatalf("TileXY(%v, %d) = (%d, %d); want (%d, %d)", tc.p, tc.zoom, x, y, tc.wantX, tc.wantY)
			}
		})
	}

	// tile index always matches the pixel the point projects into
	p := Point{Lon: -82.705, Lat: 27.75}
	for _, z := range []int{5, 12, 18} {
		px, py := GlobalPixel(p, z)
		x, y := TileXY(p, z)
		if x != int(px)/TileSize || y != int(py)/TileSize {
			t.Fatalf("zoom %d: tile (%d,%d) disagrees with pixel (%f,%f)", z, x, y, px, py)
		}
	}
}

func TestMercatorMeters(t *testing.T) {
	x, y := MercatorMeters(Point{Lon: 180, Lat: 0})
	if math.Abs(x-20037508.342789244) > 1 {
		t.Fatalf("x at lon 180 = %f; want ~20037508", x)
	}
	if math.Abs(y) > 1e-6 {
		t.Fatalf("y at equator = %f; want 0", y)
	}

	_, yn := MercatorMeters(Point{Lon: 0, Lat: 45})
	_, ys := MercatorMeters(Point{Lon: 0, Lat: -45})
	if math.Abs(yn+ys) > 1e-6 {
		t.Fatalf("mercator y not symmetric: %f vs %f", yn, ys)
	}
}

func TestMercatorResolution(t *testing.T) {
	r0 := MercatorResolution(0)
	if math.Abs(r0-156543.03392804097) > 0.001 {
		t.Fatalf("resolution at zoom 0 = %f", r0)
	}
	if math.Abs(MercatorResolution(1)-r0/2) > 1e-9 {
		t.Fatal("resolution should halve per zoom level")
	}
}
