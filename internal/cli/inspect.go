package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/matzehuels/drawkit/pkg/scene"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var connectors bool

	cmd := &cobra.Command{
		Use:   "inspect [scene]",
		Short: "Summarize a scene's elements and animation",
		Long: `Print a scene's canvas, timing, tweens and elements.

With --connectors the scene is built and every gate and box connector is
listed with its absolute position, in the pin syntax wires use
("name:side:index").`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := sceneArg(cmd.Context(), args)
			if err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), input, connectors)
		},
	}
	cmd.Flags().BoolVar(&connectors, "connectors", false, "build the scene and list symbol connectors")
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, connectors bool) error {
	s, err := scene.Open(input)
	if err != nil {
		return err
	}

	w, h := s.Size()
	fmt.Println(StyleTitle.Render(s.Name))
	printKeyValue("Canvas", fmt.Sprintf("%d×%d", w, h))
	frames := s.FrameCount()
	printKeyValue("Frames", fmt.Sprintf("%d at %g fps (%.2fs)", frames, s.Rate(), float64(frames)/s.Rate()))
	if s.Layout != "" {
		printKeyValue("Layout", s.Layout)
	}
	if s.Sketch != nil && s.Sketch.Amplitude > 0 {
		printKeyValue("Sketch", fmt.Sprintf("amplitude %g, seed %d", s.Sketch.Amplitude, s.Sketch.Seed))
	}
	printNewline()

	if len(s.Tweens)+len(s.Motions) > 0 {
		fmt.Println(renderTable([]string{"Animation", "Kind", "Steps"}, animationRows(s)))
		printNewline()
	}
	if rows := elementRows(s); len(rows) > 0 {
		fmt.Println(renderTable([]string{"Element", "Name", "At", "Fade", "Move", "Zoom"}, rows))
	}

	if !connectors {
		return nil
	}
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()
	d, err := runner.Build(ctx, s)
	if err != nil {
		return err
	}
	printNewline()
	fmt.Println(renderTable([]string{"Pin", "X", "Y"}, connectorRows(d)))
	return nil
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func animationRows(s *scene.Scene) [][]string {
	var rows [][]string
	for _, name := range sortedKeys(s.Tweens) {
		t := s.Tweens[name]
		kind := t.Kind
		if kind == "" {
			kind = "keyframes"
		}
		rows = append(rows, []string{name, kind, fmt.Sprint(len(t.Steps))})
	}
	for _, name := range sortedKeys(s.Motions) {
		rows = append(rows, []string{name, "motion", fmt.Sprint(len(s.Motions[name].Steps))})
	}
	return rows
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// elementRows lists the scene's elements in draw order.
func elementRows(s *scene.Scene) [][]string {
	var rows [][]string
	add := func(kind, name string, at *scene.Point, a scene.Anim) {
		pos := "—"
		if at != nil {
			pos = fmt.Sprintf("%g,%g", at[0], at[1])
		}
		rows = append(rows, []string{kind, dash(name), pos, dash(a.Fade), dash(a.Move), dash(a.Zoom)})
	}
	for _, f := range s.Figures {
		var at *scene.Point
		if len(f.Points) > 0 {
			at = &f.Points[0]
		}
		add("figure", f.Kind, at, f.Anim)
	}
	for _, g := range s.Graphs {
		add("graph", fmt.Sprintf("%s (%d vertices)", g.Name, len(g.Vertices)), nil, g.Anim)
	}
	for _, w := range s.Wires {
		add("wire", w.From+" → "+w.To, w.FromAt, w.Anim)
	}
	for _, g := range s.Gates {
		add("gate", strings.TrimSpace(g.Kind+" "+g.Name), &g.At, g.Anim)
	}
	for _, b := range s.Boxes {
		add("box", b.Name, &b.At, b.Anim)
	}
	for _, f := range s.Formulas {
		add("formula", strings.Join(f.Lines, " "), &f.At, f.Anim)
	}
	for _, t := range s.Texts {
		add("text", t.Text, &t.At, t.Anim)
	}
	return rows
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

// connectorRows lists every connector of every named symbol. Gates have
// input and output sides; boxes have left, right, top and bottom.
func connectorRows(d *scene.Drawing) [][]string {
	var rows [][]string
	for _, name := range d.SymbolNames() {
		sym, _ := d.Symbol(name)
		sides := sideLabels(sym.Sides())
		for side := range sym.Sides() {
			for i := 0; ; i++ {
				p, err := sym.Connector(side, i)
				if err != nil {
					break
				}
				rows = append(rows, pinRow(fmt.Sprintf("%s:%s:%d", name, sides[side], i), p))
			}
		}
	}
	return rows
}

func sideLabels(n int) []string {
	if n == 2 {
		return []string{"in", "out"}
	}
	labels := []string{"left", "right", "top", "bottom"}
	for len(labels) < n {
		labels = append(labels, fmt.Sprint(len(labels)))
	}
	return labels
}

func pinRow(pin string, p gg.Point) []string {
	return []string{pin, fmt.Sprintf("%.1f", p.X), fmt.Sprintf("%.1f", p.Y)}
}
