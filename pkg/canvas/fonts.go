package canvas

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Font family names registered in [DefaultFonts].
const (
	FamilyRegular = "Go Regular"
	FamilyBold    = "Go Bold"
	FamilyMono    = "Go Mono"
)

// Fonts maps family names to parsed font sources. It is safe for concurrent
// use; parsed sources are shared between canvases.
type Fonts struct {
	mu       sync.RWMutex
	sources  map[string]*text.FontSource
	fallback string
}

// NewFonts returns an empty registry whose fallback family is fallback.
func NewFonts(fallback string) *Fonts {
	return &Fonts{sources: make(map[string]*text.FontSource), fallback: fallback}
}

// Register parses TrueType/OpenType data and stores it under family.
func (f *Fonts) Register(family string, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", family, err)
	}
	f.mu.Lock()
	f.sources[family] = src
	f.mu.Unlock()
	return nil
}

// Face returns a face of the given size for family, falling back to the
// registry's fallback family. It returns nil only if neither is registered.
func (f *Fonts) Face(family string, size float64) text.Face {
	f.mu.RLock()
	src, ok := f.sources[family]
	if !ok {
		src = f.sources[f.fallback]
	}
	f.mu.RUnlock()
	if src == nil {
		return nil
	}
	return src.Face(size)
}

// Families returns the number of registered families.
func (f *Fonts) Families() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sources)
}

var (
	defaultFonts     *Fonts
	defaultFontsOnce sync.Once
)

// DefaultFonts returns the shared registry holding the Go fonts.
func DefaultFonts() *Fonts {
	defaultFontsOnce.Do(func() {
		defaultFonts = NewFonts(FamilyRegular)
		for family, data := range map[string][]byte{
			FamilyRegular: goregular.TTF,
			FamilyBold:    gobold.TTF,
			FamilyMono:    gomono.TTF,
		} {
			// The embedded Go fonts always parse.
			_ = defaultFonts.Register(family, data)
		}
	})
	return defaultFonts
}
