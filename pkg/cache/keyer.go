package cache

import "fmt"

// Keyer builds cache keys. Scoping and versioning are handled by wrapping
// one Keyer in another (see [ScopedKeyer]).
type Keyer interface {
	// ArtifactKey keys a rendered output of the scene with the given hash.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
	// FormulaKey keys a rasterized LaTeX formula.
	FormulaKey(tex string, opts FormulaKeyOpts) string
	// LayoutKey keys a Graphviz layout of the graph with the given hash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// ArtifactKeyOpts holds the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Frame  int     `json:"frame"`
	Scale  float64 `json:"scale"`
	// Sketch is the hand-drawn amplitude override, zero for none.
	Sketch float64 `json:"sketch"`
	// Graph and Engine select the Graphviz export of a scene graph.
	Graph  int    `json:"graph"`
	Engine string `json:"engine"`
}

// FormulaKeyOpts holds the rasterization options that change a formula
// image.
type FormulaKeyOpts struct {
	DPI      int      `json:"dpi"`
	Color    string   `json:"color"`
	Packages []string `json:"packages"`
}

// LayoutKeyOpts holds the layout options that change vertex positions.
type LayoutKeyOpts struct {
	Engine string  `json:"engine"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// keyVersion is bumped when the encoding of any cached value changes.
const keyVersion = "v1"

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:v1:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s:%s", keyVersion, opts.Format), sceneHash, opts)
}

// FormulaKey returns "formula:v1:<hash>".
func (DefaultKeyer) FormulaKey(tex string, opts FormulaKeyOpts) string {
	return hashKey("formula:"+keyVersion, tex, opts)
}

// LayoutKey returns "layout:v1:<engine>:<hash>".
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey(fmt.Sprintf("layout:%s:%s", keyVersion, opts.Engine), graphHash, opts)
}

var _ Keyer = DefaultKeyer{}
