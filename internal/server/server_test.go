package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stratakeys/stratakeys/pkg/cache"
)

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, New(), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestLayoutJSON(t *testing.T) {
	rec := get(t, New(), "/v1/layout?octaves=1&width=1200&height=300")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", rec.Header().Get("X-Cache"))
	}

	var body struct {
		Width float64 `json:"width"`
		Keys  []struct {
			Pitch string `json:"pitch"`
			Tier  string `json:"tier"`
		} `json:"keys"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Width != 1200 {
		t.Errorf("width = %v, want 1200", body.Width)
	}
	if len(body.Keys) != 13 {
		t.Errorf("keys = %d, want 13", len(body.Keys))
	}
	if body.Keys[0].Pitch != "C4" || body.Keys[0].Tier != "triad" {
		t.Errorf("first key = %+v, want triad C4", body.Keys[0])
	}
}

func TestLayoutSVG(t *testing.T) {
	rec := get(t, New(), "/v1/layout?format=svg&labels=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	out := rec.Body.String()
	if !strings.HasPrefix(out, "<svg") {
		t.Error("body is not an SVG document")
	}
	if !strings.Contains(out, "<text") {
		t.Error("labels requested but not rendered")
	}
}

func TestLayoutCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	srv := New(WithCache(fc))

	const path = "/v1/layout?octaves=2&key=G&chord=G7"
	first := get(t, srv, path)
	if first.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first X-Cache = %q, want MISS", first.Header().Get("X-Cache"))
	}
	second := get(t, srv, path)
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second X-Cache = %q, want HIT", second.Header().Get("X-Cache"))
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached body differs from computed body")
	}

	// A different harmonic context misses.
	other := get(t, srv, "/v1/layout?octaves=2&key=G&chord=D7")
	if other.Header().Get("X-Cache") != "MISS" {
		t.Errorf("different chord X-Cache = %q, want MISS", other.Header().Get("X-Cache"))
	}
}

func TestLayoutBadParams(t *testing.T) {
	tests := []struct {
		name string
		path string
		code string
	}{
		{"junk width", "/v1/layout?width=abc", "INVALID_INPUT"},
		{"junk octaves", "/v1/layout?octaves=two", "INVALID_INPUT"},
		{"unknown key", "/v1/layout?key=H", "INVALID_KEY"},
		{"unknown mode", "/v1/layout?mode=dorian", "INVALID_KEY"},
		{"unknown chord", "/v1/layout?chord=Csus4", "INVALID_CHORD"},
		{"unknown format", "/v1/layout?format=png", "INVALID_FORMAT"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, New(), tc.path)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body["code"] != tc.code {
				t.Errorf("code = %q, want %q", body["code"], tc.code)
			}
		})
	}
}

func TestLayoutClampsInsteadOfRejecting(t *testing.T) {
	// Out-of-range octave counts clamp to the supported envelope.
	rec := get(t, New(), "/v1/layout?octaves=9")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var body struct {
		Keys []json.RawMessage `json:"keys"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Keys) != 37 {
		t.Errorf("keys = %d, want 37 (three clamped octaves)", len(body.Keys))
	}
}

func TestResolveHit(t *testing.T) {
	rec := get(t, New(), "/v1/resolve?x=200")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var body resolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !body.Hit || body.Key == nil {
		t.Fatalf("body = %+v, want a hit", body)
	}
	// x = 200 lands on the D#4 chromatic sliver layered over the E4
	// triad and the D4 pentatonic key.
	if body.Key.Pitch != "D#4" || body.Key.Tier != "chromatic" {
		t.Errorf("key = %+v, want chromatic D#4", body.Key)
	}
}

func TestResolveMiss(t *testing.T) {
	rec := get(t, New(), "/v1/resolve?x=5000")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (a miss is not an error): %s", rec.Code, rec.Body)
	}
	var body resolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Hit || body.Key != nil {
		t.Errorf("body = %+v, want a miss", body)
	}
}

func TestResolveVerticalBand(t *testing.T) {
	// The D#4 sliver only reaches 40% down the container; below it the
	// hit falls through to the E4 triad.
	rec := get(t, New(), "/v1/resolve?x=200&y=250")
	var body resolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !body.Hit || body.Key == nil || body.Key.Pitch != "E4" {
		t.Errorf("body key = %+v, want E4", body.Key)
	}
}

func TestResolveRequiresX(t *testing.T) {
	rec := get(t, New(), "/v1/resolve")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
