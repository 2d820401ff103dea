package server

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/observability"
	"github.com/matzehuels/drawkit/pkg/pipeline"
	"github.com/matzehuels/drawkit/pkg/store"
)

const blink = `
width = 120
height = 90
frames = 4
fps = 2

[tweens.on]
kind = "fade-in"
start = 1
duration = 0.5

[[figure]]
kind = "dot"
points = [[60, 45]]
fade = "on"
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "blink.toml"), []byte(blink), 0o644); err != nil {
		t.Fatal(err)
	}
	st, err := store.NewDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	return New(st, pipeline.NewRunner(nil, nil, nil), nil)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) errors.Code {
	t.Helper()
	var body struct {
		Error errorBody `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body %q: %v", rec.Body.String(), err)
	}
	return body.Error.Code
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id")
	}
	var body struct {
		Status string `json:"status"`
	}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Status != "ok" {
		t.Errorf("status field = %q", body.Status)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestListScenes(t *testing.T) {
	rec := get(t, newTestServer(t), "/scenes")
	var body struct {
		Scenes []string `json:"scenes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(body.Scenes, []string{"blink"}) {
		t.Errorf("scenes = %v", body.Scenes)
	}
}

func TestRenderScene(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/scenes/blink.png?scale=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 240 || b.Dy() != 180 {
		t.Errorf("size = %v, want 240x180", b)
	}
	if rec.Header().Get("X-Cache") != "miss" || rec.Header().Get("X-Scene-Hash") == "" {
		t.Errorf("cache headers = %v", rec.Header())
	}

	rec = get(t, s, "/scenes/blink.toml")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/toml" {
		t.Errorf("toml: %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestRenderFrame(t *testing.T) {
	rec := get(t, newTestServer(t), "/scenes/blink/frames/3.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if _, err := png.Decode(rec.Body); err != nil {
		t.Error(err)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		path   string
		status int
		code   errors.Code
	}{
		{"/scenes/missing.png", http.StatusNotFound, errors.ErrCodeNotFound},
		{"/scenes/blink.gif", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"/scenes/blink", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"/scenes/blink.png?scale=abc", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/scenes/blink.png?scale=100", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/scenes/blink.dot", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/scenes/blink/frames/4.png", http.StatusBadRequest, errors.ErrCodeOutOfRange},
		{"/scenes/blink/frames/x.png", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/scenes/blink/frames/1.jpeg", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"/nowhere", http.StatusNotFound, errors.ErrCodeNotFound},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, s, tt.path)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body)
			}
			if got := errorCode(t, rec); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeDegenerateGeometry, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeExternalTool, "x"), http.StatusBadGateway},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusUnsupportedMediaType},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type routeRecorder struct {
	observability.NoopHTTPHooks
	routes []string
}

func (h *routeRecorder) OnResponse(_ context.Context, _, route string, _ int, _ time.Duration) {
	h.routes = append(h.routes, route)
}

func TestHTTPHooksSeeRoutePattern(t *testing.T) {
	hooks := &routeRecorder{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	get(t, newTestServer(t), "/scenes/blink.json")
	if !slices.Equal(hooks.routes, []string{"/scenes/{file}"}) {
		t.Errorf("routes = %v", hooks.routes)
	}
}
