package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/drawkit/pkg/buildinfo"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenes": names})
}

// handleScene serves /scenes/{name}.{format}. Scene names may contain dots,
// so the format is whatever follows the last one.
func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	i := strings.LastIndexByte(file, '.')
	if i <= 0 || i == len(file)-1 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "missing format in %q (want name.format)", file))
		return
	}
	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, file[:i], file[i+1:], opts)
}

// handleFrame serves /scenes/{name}/frames/{frame}.png.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	num, ok := strings.CutSuffix(chi.URLParam(r, "file"), "."+pipeline.FormatPNG)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "frames are served as png"))
		return
	}
	frame, err := strconv.Atoi(num)
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid frame %q", num))
		return
	}
	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Frame = frame
	s.render(w, r, chi.URLParam(r, "name"), pipeline.FormatPNG, opts)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name, format string, opts pipeline.Options) {
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	sc, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Scene = sc
	opts.Formats = []string{format}
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cache := "miss"
	if result.CacheInfo.RenderHit {
		cache = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Scene-Hash", result.SceneHash)
	w.Header().Set("X-Cache", cache)
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// renderOptions reads the render query parameters of r.
func renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	var opts pipeline.Options
	var err error

	if v := q.Get("frame"); v != "" {
		if opts.Frame, err = strconv.Atoi(v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid frame %q", v)
		}
	}
	if v := q.Get("graph"); v != "" {
		if opts.Graph, err = strconv.Atoi(v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid graph %q", v)
		}
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v)
		}
	}
	if v := q.Get("sketch"); v != "" {
		if opts.Sketch, err = strconv.ParseFloat(v, 64); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid sketch %q", v)
		}
	}
	if v := q.Get("refresh"); v != "" {
		if opts.Refresh, err = strconv.ParseBool(v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid refresh %q", v)
		}
	}
	opts.Engine = q.Get("engine")
	return opts, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
