package layout

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"
	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/cache"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/graph"
	"github.com/matzehuels/drawkit/pkg/observability"
)

// Layouter assigns positions to the Auto vertices of a graph, fitting them
// into the rectangle lo-hi.
type Layouter interface {
	Layout(ctx context.Context, g *graph.Graph, lo, hi gg.Point) error
}

// NeedsLayout reports whether any vertex of g is marked Auto.
func NeedsLayout(g *graph.Graph) bool {
	for _, v := range g.Vertices {
		if v.Auto {
			return true
		}
	}
	return false
}

// Graphviz lays graphs out with an in-process Graphviz engine.
type Graphviz struct {
	Engine string
}

// New returns a Graphviz layouter for engine; empty means DefaultEngine.
func New(engine string) *Graphviz {
	if engine == "" {
		engine = DefaultEngine
	}
	return &Graphviz{Engine: engine}
}

// Layout positions the Auto vertices of g.
func (l *Graphviz) Layout(ctx context.Context, g *graph.Graph, lo, hi gg.Point) error {
	return Auto(ctx, g, lo, hi, l.Engine)
}

// Auto runs engine over g and moves every Auto vertex to its computed
// position, scaled uniformly to fit lo-hi inset by the graph's vertex
// radius. Graphviz's y axis points up; it is flipped to canvas
// orientation. A graph with no Auto vertex is left untouched.
func Auto(ctx context.Context, g *graph.Graph, lo, hi gg.Point, engine string) error {
	if !NeedsLayout(g) {
		return nil
	}
	pos, err := Positions(ctx, g, engine)
	if err != nil {
		return err
	}
	apply(g, pos, lo, hi)
	return nil
}

// Positions returns the raw Graphviz position of each vertex, in points
// with y up.
func Positions(ctx context.Context, g *graph.Graph, engine string) ([]gg.Point, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := render(ctx, ToDOT(g), engine, graphviz.XDOT)
	observability.Render().OnTool(ctx, "graphviz", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return parsePositions(out, len(g.Vertices))
}

// nodeStmtRe matches a node statement in Graphviz's DOT output, whose
// attribute list may span several lines:
//
//	v0	[height=0.6,
//		pos="27,18",
//		width=0.6];
var (
	nodeStmtRe = regexp.MustCompile(`(?m)(?:^|[;{])\s*"?(v\d+)"?\s*\[([^\]]*)\]`)
	posAttrRe  = regexp.MustCompile(`\bpos="(-?[0-9.e+-]+),(-?[0-9.e+-]+)"`)
)

func parsePositions(dot []byte, n int) ([]gg.Point, error) {
	pos := make([]gg.Point, n)
	seen := make([]bool, n)

	// Long attribute values are wrapped with a backslash-newline.
	text := strings.ReplaceAll(string(dot), "\\\n", "")
	for _, m := range nodeStmtRe.FindAllStringSubmatch(text, -1) {
		i, err := strconv.Atoi(m[1][1:])
		if err != nil || i < 0 || i >= n {
			continue
		}
		p := posAttrRe.FindStringSubmatch(m[2])
		if p == nil {
			continue
		}
		x, errX := strconv.ParseFloat(p[1], 64)
		y, errY := strconv.ParseFloat(p[2], 64)
		if errX != nil || errY != nil {
			continue
		}
		pos[i], seen[i] = gg.Pt(x, y), true
	}
	for i, ok := range seen {
		if !ok {
			return nil, errors.New(errors.ErrCodeExternalTool, "graphviz returned no position for vertex %d", i)
		}
	}
	return pos, nil
}

// apply fits pos into lo-hi and assigns it to the Auto vertices.
func apply(g *graph.Graph, pos []gg.Point, lo, hi gg.Point) {
	fitted := Fit(pos, lo, hi, g.Radius)
	for i, v := range g.Vertices {
		if v.Auto {
			v.Position = fitted[i]
			v.Auto = false
		}
	}
}

// Fit scales pts uniformly, flips y and centres them in lo-hi inset by
// margin. A single point, or points that coincide, land in the centre.
func Fit(pts []gg.Point, lo, hi gg.Point, margin float64) []gg.Point {
	out := make([]gg.Point, len(pts))
	if len(pts) == 0 {
		return out
	}
	lo = lo.Add(gg.Pt(margin, margin))
	hi = hi.Sub(gg.Pt(margin, margin))
	centre := gg.Pt((lo.X+hi.X)/2, (lo.Y+hi.Y)/2)

	minP := gg.Pt(math.Inf(1), math.Inf(1))
	maxP := gg.Pt(math.Inf(-1), math.Inf(-1))
	for _, p := range pts {
		minP = gg.Pt(min(minP.X, p.X), min(minP.Y, p.Y))
		maxP = gg.Pt(max(maxP.X, p.X), max(maxP.Y, p.Y))
	}
	w, h := maxP.X-minP.X, maxP.Y-minP.Y
	scale := 0.0
	switch {
	case w > 0 && h > 0:
		scale = min((hi.X-lo.X)/w, (hi.Y-lo.Y)/h)
	case w > 0:
		scale = (hi.X - lo.X) / w
	case h > 0:
		scale = (hi.Y - lo.Y) / h
	}
	scale = max(scale, 0)
	mid := gg.Pt((minP.X+maxP.X)/2, (minP.Y+maxP.Y)/2)
	for i, p := range pts {
		out[i] = gg.Pt(centre.X+(p.X-mid.X)*scale, centre.Y-(p.Y-mid.Y)*scale)
	}
	return out
}

// Cached wraps a Graphviz layouter with a cache of raw positions, keyed by
// the graph's DOT text and engine.
type Cached struct {
	Inner *Graphviz
	Cache cache.Cache
	Keyer cache.Keyer
}

// NewCached returns a caching layouter. Nil cache and keyer mean no
// caching and the default keyer.
func NewCached(inner *Graphviz, c cache.Cache, keyer cache.Keyer) *Cached {
	if inner == nil {
		inner = New("")
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Cached{Inner: inner, Cache: c, Keyer: keyer}
}

// Layout positions the Auto vertices of g, reusing cached positions.
func (l *Cached) Layout(ctx context.Context, g *graph.Graph, lo, hi gg.Point) error {
	if !NeedsLayout(g) {
		return nil
	}
	key := l.Keyer.LayoutKey(cache.Hash([]byte(ToDOT(g))), cache.LayoutKeyOpts{Engine: l.Inner.Engine})

	var pos []gg.Point
	if data, hit, err := l.Cache.Get(ctx, key); err == nil && hit {
		if json.NewDecoder(bytes.NewReader(data)).Decode(&pos) == nil && len(pos) == len(g.Vertices) {
			observability.Cache().OnCacheHit(ctx, "layout")
			apply(g, pos, lo, hi)
			return nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	pos, err := Positions(ctx, g, l.Inner.Engine)
	if err != nil {
		return err
	}
	if data, err := json.Marshal(pos); err == nil {
		if l.Cache.Set(ctx, key, data, cache.TTLLayout) == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	apply(g, pos, lo, hi)
	return nil
}

var (
	_ Layouter = (*Graphviz)(nil)
	_ Layouter = (*Cached)(nil)
)
