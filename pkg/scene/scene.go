package scene

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/errors"
)

// Scene defaults.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultFPS    = 24.0
)

// Point is an (x, y) pair, written as a two-element array in documents.
type Point [2]float64

// Pt converts p to a gg.Point.
func (p Point) Pt() gg.Point { return gg.Pt(p[0], p[1]) }

// Scene is a drawing document. The zero value of every optional field
// selects a default.
type Scene struct {
	Name       string  `toml:"name" json:"name"`
	Width      int     `toml:"width,omitempty" json:"width,omitempty"`
	Height     int     `toml:"height,omitempty" json:"height,omitempty"`
	Background string  `toml:"background,omitempty" json:"background,omitempty"`
	Frames     int     `toml:"frames,omitempty" json:"frames,omitempty"`
	FPS        float64 `toml:"fps,omitempty" json:"fps,omitempty"`
	// Layout names the Graphviz engine for unpositioned vertices.
	Layout string      `toml:"layout,omitempty" json:"layout,omitempty"`
	Sketch *SketchSpec `toml:"sketch,omitempty" json:"sketch,omitempty"`

	Tweens  map[string]TweenSpec  `toml:"tweens,omitempty" json:"tweens,omitempty"`
	Motions map[string]MotionSpec `toml:"motions,omitempty" json:"motions,omitempty"`

	Graphs   []GraphSpec   `toml:"graph,omitempty" json:"graphs,omitempty"`
	Gates    []GateSpec    `toml:"gate,omitempty" json:"gates,omitempty"`
	Boxes    []BoxSpec     `toml:"box,omitempty" json:"boxes,omitempty"`
	Wires    []WireSpec    `toml:"wire,omitempty" json:"wires,omitempty"`
	Texts    []TextSpec    `toml:"text,omitempty" json:"texts,omitempty"`
	Formulas []FormulaSpec `toml:"formula,omitempty" json:"formulas,omitempty"`
	Figures  []FigureSpec  `toml:"figure,omitempty" json:"figures,omitempty"`
}

// SketchSpec turns on the hand-drawn look.
type SketchSpec struct {
	Seed      int64   `toml:"seed" json:"seed"`
	Amplitude float64 `toml:"amplitude" json:"amplitude"`
}

// Anim binds an element to named tweens.
type Anim struct {
	// Fade names a tween in Scene.Tweens giving the element's opacity.
	Fade string `toml:"fade,omitempty" json:"fade,omitempty"`
	// Move names a motion in Scene.Motions giving the element's offset.
	Move string `toml:"move,omitempty" json:"move,omitempty"`
	// Zoom names a tween in Scene.Tweens giving the element's scale about
	// ZoomAt. Formulas default ZoomAt to their centre.
	Zoom   string `toml:"zoom,omitempty" json:"zoom,omitempty"`
	ZoomAt *Point `toml:"zoom_at,omitempty" json:"zoom_at,omitempty"`
}

// TweenSpec describes a scalar tween, either as explicit steps or as one of
// the helpers selected by Kind: "fade-in", "fade-out", "fade-in-out",
// "alpha-on", "alpha-off" or "zoom-in". A zoom-in grows from Initial
// (default 0.7) to 1 over Duration (default 1s) starting at Start.
type TweenSpec struct {
	Kind     string     `toml:"kind,omitempty" json:"kind,omitempty"`
	Initial  float64    `toml:"initial,omitempty" json:"initial,omitempty"`
	Start    float64    `toml:"start,omitempty" json:"start,omitempty"`
	Duration float64    `toml:"duration,omitempty" json:"duration,omitempty"`
	Hold     float64    `toml:"hold,omitempty" json:"hold,omitempty"`
	Times    []float64  `toml:"times,omitempty" json:"times,omitempty"`
	Steps    []StepSpec `toml:"steps,omitempty" json:"steps,omitempty"`
}

// StepSpec is one builder call on a tween: "set", "wait", "wait-d", "to",
// "to-d" or "ease". T is an absolute time for wait and to, a duration for
// wait-d and to-d.
type StepSpec struct {
	Op    string  `toml:"op" json:"op"`
	Value float64 `toml:"value,omitempty" json:"value,omitempty"`
	T     float64 `toml:"t,omitempty" json:"t,omitempty"`
	Ease  string  `toml:"ease,omitempty" json:"ease,omitempty"`
}

// MotionSpec describes a point tween. The motion is an offset, so From is
// usually the origin.
type MotionSpec struct {
	From  Point        `toml:"from" json:"from"`
	Steps []MotionStep `toml:"steps,omitempty" json:"steps,omitempty"`
}

// MotionStep is one builder call on a point tween: "wait", "to", "to-d" or
// "ease".
type MotionStep struct {
	Op   string  `toml:"op" json:"op"`
	To   Point   `toml:"to,omitempty" json:"to,omitempty"`
	T    float64 `toml:"t,omitempty" json:"t,omitempty"`
	Ease string  `toml:"ease,omitempty" json:"ease,omitempty"`
}

// GraphSpec is a vertex/edge diagram.
type GraphSpec struct {
	Name       string       `toml:"name,omitempty" json:"name,omitempty"`
	Vertices   []VertexSpec `toml:"vertices" json:"vertices"`
	Edges      []EdgeSpec   `toml:"edges,omitempty" json:"edges,omitempty"`
	Foreground string       `toml:"foreground,omitempty" json:"foreground,omitempty"`
	Background string       `toml:"background,omitempty" json:"background,omitempty"`
	LineWidth  float64      `toml:"line_width,omitempty" json:"line_width,omitempty"`
	Radius     float64      `toml:"radius,omitempty" json:"radius,omitempty"`
	Font       string       `toml:"font,omitempty" json:"font,omitempty"`
	TextSize   float64      `toml:"text_size,omitempty" json:"text_size,omitempty"`
	LabelSide  int          `toml:"label_side,omitempty" json:"label_side,omitempty"`
	Anim
}

// VertexSpec is a graph vertex. A vertex without At is placed by the layout
// engine.
type VertexSpec struct {
	At         *Point  `toml:"at,omitempty" json:"at,omitempty"`
	Label      string  `toml:"label,omitempty" json:"label,omitempty"`
	Foreground string  `toml:"foreground,omitempty" json:"foreground,omitempty"`
	Background string  `toml:"background,omitempty" json:"background,omitempty"`
	LineWidth  float64 `toml:"line_width,omitempty" json:"line_width,omitempty"`
	Radius     float64 `toml:"radius,omitempty" json:"radius,omitempty"`
	Font       string  `toml:"font,omitempty" json:"font,omitempty"`
	TextSize   float64 `toml:"text_size,omitempty" json:"text_size,omitempty"`
}

// EdgeSpec is a graph edge between vertex indices.
type EdgeSpec struct {
	From     int    `toml:"from" json:"from"`
	To       int    `toml:"to" json:"to"`
	Directed bool   `toml:"directed,omitempty" json:"directed,omitempty"`
	Curved   bool   `toml:"curved,omitempty" json:"curved,omitempty"`
	Weight   string `toml:"weight,omitempty" json:"weight,omitempty"`
	// Curvature implies Curved when non-zero.
	Curvature float64 `toml:"curvature,omitempty" json:"curvature,omitempty"`
	Offset    *Point  `toml:"offset,omitempty" json:"offset,omitempty"`
	// LoopAngle is in degrees.
	LoopRadius float64 `toml:"loop_radius,omitempty" json:"loop_radius,omitempty"`
	LoopAngle  float64 `toml:"loop_angle,omitempty" json:"loop_angle,omitempty"`
	Color      string  `toml:"color,omitempty" json:"color,omitempty"`
	LineWidth  float64 `toml:"line_width,omitempty" json:"line_width,omitempty"`
	Font       string  `toml:"font,omitempty" json:"font,omitempty"`
	TextSize   float64 `toml:"text_size,omitempty" json:"text_size,omitempty"`
}

// SymbolSpec holds the fields gates and boxes share.
type SymbolSpec struct {
	Name      string  `toml:"name" json:"name"`
	At        Point   `toml:"at" json:"at"`
	Width     float64 `toml:"width,omitempty" json:"width,omitempty"`
	Height    float64 `toml:"height,omitempty" json:"height,omitempty"`
	Label     string  `toml:"label,omitempty" json:"label,omitempty"`
	Fill      string  `toml:"fill,omitempty" json:"fill,omitempty"`
	Stroke    string  `toml:"stroke,omitempty" json:"stroke,omitempty"`
	LineWidth float64 `toml:"line_width,omitempty" json:"line_width,omitempty"`
	TextSize  float64 `toml:"text_size,omitempty" json:"text_size,omitempty"`
	Anim
}

// GateSpec is a logic gate.
type GateSpec struct {
	SymbolSpec
	Kind   string `toml:"kind" json:"kind"`
	Inputs int    `toml:"inputs,omitempty" json:"inputs,omitempty"`
}

// BoxSpec is a labelled rectangle with connectors on each side.
type BoxSpec struct {
	SymbolSpec
	Left   int `toml:"left,omitempty" json:"left,omitempty"`
	Right  int `toml:"right,omitempty" json:"right,omitempty"`
	Top    int `toml:"top,omitempty" json:"top,omitempty"`
	Bottom int `toml:"bottom,omitempty" json:"bottom,omitempty"`
}

// WireSpec joins two pins or points. A pin is written "symbol:side:index",
// where side is a number or one of in, out, left, right, top and bottom.
type WireSpec struct {
	From       string  `toml:"from,omitempty" json:"from,omitempty"`
	To         string  `toml:"to,omitempty" json:"to,omitempty"`
	FromAt     *Point  `toml:"from_at,omitempty" json:"from_at,omitempty"`
	ToAt       *Point  `toml:"to_at,omitempty" json:"to_at,omitempty"`
	Orthogonal bool    `toml:"orthogonal,omitempty" json:"orthogonal,omitempty"`
	StartDot   bool    `toml:"start_dot,omitempty" json:"start_dot,omitempty"`
	EndDot     bool    `toml:"end_dot,omitempty" json:"end_dot,omitempty"`
	Arrow      bool    `toml:"arrow,omitempty" json:"arrow,omitempty"`
	Color      string  `toml:"color,omitempty" json:"color,omitempty"`
	LineWidth  float64 `toml:"line_width,omitempty" json:"line_width,omitempty"`
	Cap        string  `toml:"cap,omitempty" json:"cap,omitempty"`
	Anim
}

// TextSpec is a free-standing label.
type TextSpec struct {
	At    Point   `toml:"at" json:"at"`
	Text  string  `toml:"text" json:"text"`
	Size  float64 `toml:"size,omitempty" json:"size,omitempty"`
	Font  string  `toml:"font,omitempty" json:"font,omitempty"`
	Color string  `toml:"color,omitempty" json:"color,omitempty"`
	// Anchor places the text relative to At; nil centres it.
	Anchor *Point `toml:"anchor,omitempty" json:"anchor,omitempty"`
	Anim
}

// FormulaSpec is a stack of LaTeX lines rendered to one image with its
// top-left corner at At.
type FormulaSpec struct {
	At       Point    `toml:"at" json:"at"`
	Lines    []string `toml:"lines" json:"lines"`
	DPI      int      `toml:"dpi,omitempty" json:"dpi,omitempty"`
	Color    string   `toml:"color,omitempty" json:"color,omitempty"`
	Scale    float64  `toml:"scale,omitempty" json:"scale,omitempty"`
	Packages []string `toml:"packages,omitempty" json:"packages,omitempty"`
	Anim
}

// FigureSpec is a geometric construction. Kind selects how Points are read:
//
//	line                    two or more points, open polyline (Closed closes it)
//	extended-line           a, b; extended by Extend at both ends
//	arrow-line              a, b; shortened by Inset with a midpoint marker
//	polygon                 three or more points, filled with Fill
//	angle                   a, vertex, b; Count arcs of Radius, or Right
//	ticks                   a, b; Count marks of Length spaced by Gap
//	bisector                a, vertex, b; ray of Length from vertex
//	perpendicular-bisector  a, b; line of Length through the midpoint
//	intersection            p0, p1, q0, q1; dot of Radius where lines meet
//	dot                     any points; dots of Radius
//	axes                    top-left, bottom-right; graph axes in AxesStyle
//	complex-plane           top-left, bottom-right; colour map of Function
//	                        between Low and High, with a key bar on the right
//
// Axes and complex planes cover the graph rectangle from Start (default
// the origin) across Extent (default 10 by 10), with division lines every
// Divisions (default 1 by 1). AxesStyle is "plain", "argand", "blank" or
// "overlay"; complex planes default to "overlay".
type FigureSpec struct {
	Kind      string    `toml:"kind" json:"kind"`
	Points    []Point   `toml:"points" json:"points"`
	Color     string    `toml:"color,omitempty" json:"color,omitempty"`
	Fill      string    `toml:"fill,omitempty" json:"fill,omitempty"`
	LineWidth float64   `toml:"line_width,omitempty" json:"line_width,omitempty"`
	Dash      []float64 `toml:"dash,omitempty" json:"dash,omitempty"`
	Closed    bool      `toml:"closed,omitempty" json:"closed,omitempty"`
	Extend    float64   `toml:"extend,omitempty" json:"extend,omitempty"`
	Inset     float64   `toml:"inset,omitempty" json:"inset,omitempty"`
	Tick      float64   `toml:"tick,omitempty" json:"tick,omitempty"`
	Count     int       `toml:"count,omitempty" json:"count,omitempty"`
	Radius    float64   `toml:"radius,omitempty" json:"radius,omitempty"`
	Right     bool      `toml:"right,omitempty" json:"right,omitempty"`
	Length    float64   `toml:"length,omitempty" json:"length,omitempty"`
	Gap       float64   `toml:"gap,omitempty" json:"gap,omitempty"`

	AxesStyle    string    `toml:"axes_style,omitempty" json:"axes_style,omitempty"`
	Start        *Point    `toml:"start,omitempty" json:"start,omitempty"`
	Extent       *Point    `toml:"extent,omitempty" json:"extent,omitempty"`
	Divisions    *Point    `toml:"divisions,omitempty" json:"divisions,omitempty"`
	Subdivisions int       `toml:"subdivisions,omitempty" json:"subdivisions,omitempty"`
	Function     string    `toml:"function,omitempty" json:"function,omitempty"`
	Low          float64   `toml:"low,omitempty" json:"low,omitempty"`
	High         float64   `toml:"high,omitempty" json:"high,omitempty"`
	Steps        []float64 `toml:"steps,omitempty" json:"steps,omitempty"`
	Colors       []string  `toml:"colors,omitempty" json:"colors,omitempty"`
	Anim
}

// Size returns the canvas size, applying defaults.
func (s *Scene) Size() (int, int) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// FrameCount returns the number of frames; a still scene has one.
func (s *Scene) FrameCount() int { return max(1, s.Frames) }

// Rate returns the frame rate, applying the default.
func (s *Scene) Rate() float64 {
	if s.FPS > 0 {
		return s.FPS
	}
	return DefaultFPS
}

// Time returns the time in seconds at which frame is drawn.
func (s *Scene) Time(frame int) float64 { return float64(frame) / s.Rate() }

// Decode parses a TOML scene from r.
func Decode(r io.Reader) (*Scene, error) {
	var s Scene
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "parse scene")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown scene key %q", keys[0].String())
	}
	return &s, nil
}

// Load reads a TOML scene file. A scene without a name takes none; callers
// that need one should validate with [errors.ValidateSceneName].
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Encode writes s as TOML.
func Encode(w io.Writer, s *Scene) error {
	return toml.NewEncoder(w).Encode(s)
}

// MarshalTOML returns s encoded as TOML.
func MarshalTOML(s *Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
