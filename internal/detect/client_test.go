package detect

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeTempImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "area.tif")
	if err := os.WriteFile(path, []byte("not really a tiff"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClientPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/segment" {
			t.Errorf("request path = %q, want /segment", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		if got := r.FormValue("prompt"); got != "debris pile" {
			t.Errorf("prompt = %q, want %q", got, "debris pile")
		}
		if got := r.FormValue("box_threshold"); got != "0.24" {
			t.Errorf("box_threshold = %q, want 0.24", got)
		}
		if got := r.FormValue("text_threshold"); got != "0.3" {
			t.Errorf("text_threshold = %q, want 0.3", got)
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if string(data) != "not really a tiff" {
			t.Errorf("file part = %q, want raster content", data)
		}

		json.NewEncoder(w).Encode(segmentResponse{Masks: []Mask{
			{Polygon: [][][]float64{{{1, 2}, {3, 2}, {3, 4}}}, Score: 0.87},
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	masks, err := c.Predict(context.Background(), writeTempImage(t), "debris pile", 0.24, 0.3)
	if err != nil {
		t.Fatalf("Predict() failed: %v", err)
	}
	if len(masks) != 1 || masks[0].Score != 0.87 {
		t.Fatalf("masks = %+v, want one mask with score 0.87", masks)
	}
	if len(masks[0].Polygon[0]) != 3 {
		t.Errorf("polygon has %d vertices, want 3", len(masks[0].Polygon[0]))
	}
}

func TestClientPredictServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "cuda out of memory", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Predict(context.Background(), writeTempImage(t), "debris pile", 0.24, 0.24); err == nil {
		t.Fatal("Predict() succeeded against a failing service")
	}
}

func TestClientPredictMissingFile(t *testing.T) {
	c := NewClient("http://localhost:1")
	if _, err := c.Predict(context.Background(), "/nonexistent/area.tif", "debris pile", 0.24, 0.24); err == nil {
		t.Fatal("Predict() succeeded with a missing raster")
	}
}

func TestClientCheckHealth(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			t.Errorf("request path = %q, want /healthz", r.URL.Path)
		}
		if !healthy {
			http.Error(w, "loading weights", http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.CheckHealth(context.Background()); err != nil {
		t.Errorf("CheckHealth() = %v, want nil", err)
	}

	healthy = false
	if err := c.CheckHealth(context.Background()); err == nil {
		t.Error("CheckHealth() = nil, want error while unhealthy")
	}
}
