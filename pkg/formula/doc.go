// Package formula turns LaTeX formulas into images.
//
// Rasterization is delegated to the external latex and dvipng programs by
// [LatexRasterizer]. It is slow (typically a second or more per formula),
// so scenes rasterize each formula once, and [CachedRasterizer] keeps the
// results in a [cache.Cache] across runs.
//
// File names for the intermediate .tex/.dvi/.png files come from a
// [Namer], an explicit counter owned by the caller. Its random prefix keeps
// concurrent processes sharing a temp directory apart.
//
//	namer := formula.NewNamer()
//	r := formula.NewCachedRasterizer(formula.NewLatexRasterizer(), c, nil)
//	img, err := formula.Render(ctx, namer, r, []string{`E = mc^2`, `a^2 + b^2 = c^2`},
//	    formula.DefaultRenderOptions())
package formula
