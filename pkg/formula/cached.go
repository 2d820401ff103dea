package formula

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/matzehuels/drawkit/pkg/cache"
	"github.com/matzehuels/drawkit/pkg/observability"
)

// CachedRasterizer keeps rasterized formulas in a cache, keyed by the LaTeX
// source and every option that changes the image.
type CachedRasterizer struct {
	Inner Rasterizer
	Cache cache.Cache
	Keyer cache.Keyer
}

// NewCachedRasterizer wraps inner. A nil keyer means the default keyer.
func NewCachedRasterizer(inner Rasterizer, c cache.Cache, keyer cache.Keyer) *CachedRasterizer {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	return &CachedRasterizer{Inner: inner, Cache: c, Keyer: keyer}
}

// Rasterize returns the cached image for tex and opts, rasterizing and
// storing it on a miss. Cache failures fall through to the inner
// rasterizer.
func (r *CachedRasterizer) Rasterize(ctx context.Context, name, tex string, opts Options) (image.Image, error) {
	key := r.Keyer.FormulaKey(tex, cache.FormulaKeyOpts{
		DPI:      opts.dpi(),
		Color:    opts.colorKey(),
		Packages: opts.Packages,
	})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if img, err := png.Decode(bytes.NewReader(data)); err == nil {
			observability.Cache().OnCacheHit(ctx, "formula")
			return img, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "formula")

	img, err := r.Inner.Rasterize(ctx, name, tex, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.TTLFormula); err == nil {
			observability.Cache().OnCacheSet(ctx, "formula", buf.Len())
		}
	}
	return img, nil
}

var _ Rasterizer = (*CachedRasterizer)(nil)
