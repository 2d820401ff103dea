package formula

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/observability"
)

const latexHint = "formula rendering requires latex and dvipng. Install with:\n" +
	"  macOS:  brew install --cask mactex-no-gui\n" +
	"  Linux:  apt install texlive-latex-base dvipng"

// LatexRasterizer runs latex then dvipng in a fresh temp directory per
// formula.
type LatexRasterizer struct {
	// TempDir is the parent of the per-formula work directories. Empty
	// means os.TempDir().
	TempDir string
	// Latex and Dvipng override the program names looked up on PATH.
	Latex, Dvipng string
	// Keep leaves the work directory in place, for debugging.
	Keep bool
}

// NewLatexRasterizer returns a rasterizer using latex and dvipng from PATH.
func NewLatexRasterizer() *LatexRasterizer {
	return &LatexRasterizer{Latex: "latex", Dvipng: "dvipng"}
}

// Available reports whether both programs are on PATH.
func (r *LatexRasterizer) Available() error {
	for _, tool := range []string{r.latex(), r.dvipng()} {
		if _, err := exec.LookPath(tool); err != nil {
			return errors.Wrap(errors.ErrCodeExternalTool, err, "%s not found; %s", tool, latexHint)
		}
	}
	return nil
}

// Rasterize renders tex in display math mode and returns the tightly
// cropped image with a transparent background.
func (r *LatexRasterizer) Rasterize(ctx context.Context, name, tex string, opts Options) (image.Image, error) {
	if err := r.Available(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(tex) == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "formula %s is empty", name)
	}

	dir, err := os.MkdirTemp(r.TempDir, name+"-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	if !r.Keep {
		defer os.RemoveAll(dir)
	}

	texPath := filepath.Join(dir, name+".tex")
	if err := os.WriteFile(texPath, []byte(document(tex, opts.Packages)), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", texPath, err)
	}

	if err := r.run(ctx, dir, r.latex(),
		"-interaction=nonstopmode", "-halt-on-error", "-output-directory", dir, texPath); err != nil {
		return nil, err
	}

	c := opts.Color
	pngPath := filepath.Join(dir, name+".png")
	if err := r.run(ctx, dir, r.dvipng(),
		"-T", "tight",
		"-D", fmt.Sprint(opts.dpi()),
		"-bg", "Transparent",
		"-fg", fmt.Sprintf("rgb %.3f %.3f %.3f", c.R, c.G, c.B),
		"-o", pngPath,
		filepath.Join(dir, name+".dvi")); err != nil {
		return nil, err
	}

	f, err := os.Open(pngPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExternalTool, err, "dvipng produced no image for %s", name)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", pngPath, err)
	}
	return img, nil
}

func (r *LatexRasterizer) run(ctx context.Context, dir, tool string, args ...string) error {
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	start := time.Now()
	err := cmd.Run()
	observability.Render().OnTool(ctx, filepath.Base(tool), time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExternalTool, err, "%s: %s", filepath.Base(tool), lastLines(out.String(), 8))
	}
	return nil
}

func (r *LatexRasterizer) latex() string {
	if r.Latex != "" {
		return r.Latex
	}
	return "latex"
}

func (r *LatexRasterizer) dvipng() string {
	if r.Dvipng != "" {
		return r.Dvipng
	}
	return "dvipng"
}

// document wraps tex in a minimal standalone LaTeX document.
func document(tex string, packages []string) string {
	var b strings.Builder
	b.WriteString("\\documentclass[12pt]{article}\n")
	b.WriteString("\\usepackage{amsmath}\n\\usepackage{amssymb}\n")
	for _, p := range packages {
		fmt.Fprintf(&b, "\\usepackage{%s}\n", p)
	}
	b.WriteString("\\pagestyle{empty}\n\\begin{document}\n")
	fmt.Fprintf(&b, "\\[\n%s\n\\]\n", tex)
	b.WriteString("\\end{document}\n")
	return b.String()
}

// lastLines keeps the tail of tool output, where latex reports the error.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

var _ Rasterizer = (*LatexRasterizer)(nil)
