// Package pipeline provides the load, build and render pipeline shared by
// the drawkit CLI and preview server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a scene document from a file or take one supplied inline
//  2. Build: resolve styles, connectors, layouts and formulas ([scene.Build])
//  3. Render: draw a frame and encode it in the requested formats
//
// Each stage can be run on its own through the [Runner], which adds
// artifact caching keyed by the scene's content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "adder.toml",
//	    Formats: []string{"png", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	png := result.Artifacts["png"]
//
// Animations are rendered with [Runner.RenderFrames], which builds the scene
// once and hands each frame to a callback.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/drawkit/pkg/cache"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/layout"
	"github.com/matzehuels/drawkit/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale is the raster scale factor.
	DefaultScale = 1.0

	// MaxScale bounds the raster scale so a request cannot allocate an
	// arbitrarily large image.
	MaxScale = 8.0

	// DefaultJPEGQuality is the quality used for jpeg output.
	DefaultJPEGQuality = 90
)

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = FormatPNG

// Format constants for output formats.
const (
	FormatPNG      = "png"
	FormatJPEG     = "jpeg"
	FormatJSON     = "json"
	FormatTOML     = "toml"
	FormatDOT      = "dot"
	FormatSVG      = "svg"
	FormatPDF      = "pdf"
	FormatCommands = "commands"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:      true,
	FormatJPEG:     true,
	FormatJSON:     true,
	FormatTOML:     true,
	FormatDOT:      true,
	FormatSVG:      true,
	FormatPDF:      true,
	FormatCommands: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatPNG:      "image/png",
	FormatJPEG:     "image/jpeg",
	FormatJSON:     "application/json",
	FormatTOML:     "application/toml",
	FormatDOT:      "text/vnd.graphviz",
	FormatSVG:      "image/svg+xml",
	FormatPDF:      "application/pdf",
	FormatCommands: "application/json",
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Load options; Scene takes precedence over Path.
	Path  string       `json:"path,omitempty"`
	Scene *scene.Scene `json:"scene,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Frame   int      `json:"frame,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	// Sketch overrides the scene's hand-drawn amplitude when positive.
	Sketch float64 `json:"sketch,omitempty"`
	// Graph selects which scene graph the dot, svg and pdf formats export.
	Graph int `json:"graph,omitempty"`
	// Engine is the Graphviz engine for the dot, svg and pdf formats.
	// Empty means the scene's layout engine.
	Engine  string `json:"engine,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateForRender has succeeded.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the loaded document.
	Scene *scene.Scene

	// SceneHash is the content hash of the scene.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Frames     int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateScale checks that a raster scale is usable.
func ValidateScale(scale float64) error {
	if scale <= 0 || scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "invalid scale: %g (must be in (0, %g])", scale, MaxScale)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForLoad checks that a scene source is given.
func (o *Options) ValidateForLoad() error {
	if o.Scene == nil && o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "scene or path is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
// This method is idempotent.
func (o *Options) ValidateForRender() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.Frame < 0 {
		return errors.New(errors.ErrCodeOutOfRange, "frame %d is negative", o.Frame)
	}
	if o.Engine != "" {
		if err := layout.ValidateEngine(o.Engine); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// NeedsBuild reports whether any requested format needs the built scene.
// The json and toml formats only re-encode the document.
func (o *Options) NeedsBuild() bool {
	for _, f := range o.Formats {
		if f != FormatJSON && f != FormatTOML {
			return true
		}
	}
	return false
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Frame:  o.Frame,
		Scale:  o.Scale,
		Sketch: o.Sketch,
		Graph:  o.Graph,
		Engine: o.Engine,
	}
}
