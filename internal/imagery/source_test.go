package imagery

import "testing"

func TestTileURL(t *testing.T) {
	src := NewSource("test", "https://tiles.example.com/{z}/{y}/{x}")
	want := "https://tiles.example.com/18/112233/70911"
	if got := src.TileURL(18, 70911, 112233); got != want {
		t.Errorf("TileURL() = %q, want %q", got, want)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "milton", in: "milton", want: SourceMilton},
		{name: "helene uppercase", in: "HELENE", want: SourceHelene},
		{name: "esri", in: "esri", want: SourceEsri},
		{name: "unknown falls back to esri", in: "noaa", want: SourceEsri},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.in); got.Name() != tt.want {
				t.Errorf("Resolve(%q).Name() = %q, want %q", tt.in, got.Name(), tt.want)
			}
		})
	}
}
