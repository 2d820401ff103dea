package style

import (
	"strings"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/errors"
)

// namedColors holds the CSS colour keywords drawkit accepts.
var namedColors = map[string]string{
	"black":       "#000000",
	"white":       "#ffffff",
	"red":         "#ff0000",
	"green":       "#008000",
	"lime":        "#00ff00",
	"blue":        "#0000ff",
	"yellow":      "#ffff00",
	"cyan":        "#00ffff",
	"magenta":     "#ff00ff",
	"gray":        "#808080",
	"grey":        "#808080",
	"lightgray":   "#d3d3d3",
	"lightgrey":   "#d3d3d3",
	"darkgray":    "#a9a9a9",
	"darkgrey":    "#a9a9a9",
	"silver":      "#c0c0c0",
	"orange":      "#ffa500",
	"purple":      "#800080",
	"brown":       "#a52a2a",
	"pink":        "#ffc0cb",
	"navy":        "#000080",
	"teal":        "#008080",
	"olive":       "#808000",
	"maroon":      "#800000",
	"gold":        "#ffd700",
	"steelblue":   "#4682b4",
	"dodgerblue":  "#1e90ff",
	"crimson":     "#dc143c",
	"forestgreen": "#228b22",
	"darkorange":  "#ff8c00",
	"slategray":   "#708090",
	"slategrey":   "#708090",
	"transparent": "#00000000",
}

// ParseColor parses "#rgb", "#rgba", "#rrggbb", "#rrggbbaa" or a CSS colour
// keyword. Names are case-insensitive.
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.TrimSpace(s)
	if err := errors.ValidateColor(s); err != nil {
		return gg.RGBA{}, err
	}
	if strings.HasPrefix(s, "#") {
		return gg.Hex(s), nil
	}
	hex, ok := namedColors[strings.ToLower(s)]
	if !ok {
		return gg.RGBA{}, errors.New(errors.ErrCodeInvalidStyle, "unknown color name: %q", s)
	}
	return gg.Hex(hex), nil
}

// ParsePaint parses a colour into a Paint. The empty string and "none" give
// the zero Paint.
func ParsePaint(s string) (Paint, error) {
	if s == "" || strings.EqualFold(s, "none") {
		return Paint{}, nil
	}
	c, err := ParseColor(s)
	if err != nil {
		return Paint{}, err
	}
	return Color(c), nil
}

// ParseLineCap parses "butt", "round" or "square". Empty means square.
func ParseLineCap(s string) (gg.LineCap, error) {
	switch strings.ToLower(s) {
	case "", "square":
		return gg.LineCapSquare, nil
	case "butt":
		return gg.LineCapButt, nil
	case "round":
		return gg.LineCapRound, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidStyle, "unknown line cap: %q", s)
}

// ParseLineJoin parses "miter", "round" or "bevel". Empty means miter.
func ParseLineJoin(s string) (gg.LineJoin, error) {
	switch strings.ToLower(s) {
	case "", "miter", "mitre":
		return gg.LineJoinMiter, nil
	case "round":
		return gg.LineJoinRound, nil
	case "bevel":
		return gg.LineJoinBevel, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidStyle, "unknown line join: %q", s)
}

// ParseFillRule parses "nonzero" or "evenodd". Empty means nonzero.
func ParseFillRule(s string) (gg.FillRule, error) {
	switch strings.ToLower(s) {
	case "", "nonzero", "winding":
		return gg.FillRuleNonZero, nil
	case "evenodd", "even-odd":
		return gg.FillRuleEvenOdd, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidStyle, "unknown fill rule: %q", s)
}

// LinearGradient returns a Paint that blends from c0 at (x0, y0) to c1 at
// (x1, y1).
func LinearGradient(x0, y0, x1, y1 float64, c0, c1 gg.RGBA) Paint {
	return Brush(gg.NewLinearGradientBrush(x0, y0, x1, y1).
		AddColorStop(0, c0).
		AddColorStop(1, c1))
}
