package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/drawkit/pkg/scene"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// errNoScene is returned when no scene was given and none could be picked.
var errNoScene = errors.New("no scene given (pass a .toml or .json file)")

// sceneEntry is one scene file found by findScenes.
type sceneEntry struct {
	Path  string
	Scene *scene.Scene // nil if the file does not parse
	Err   error
}

// findScenes loads every .toml and .json file in dir, sorted by name.
// Files that fail to parse are kept with their error.
func findScenes(dir string) ([]sceneEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var found []sceneEntry
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".toml" && ext != ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		s, err := scene.Open(path)
		found = append(found, sceneEntry{Path: path, Scene: s, Err: err})
	}
	slices.SortFunc(found, func(a, b sceneEntry) int { return strings.Compare(a.Path, b.Path) })
	return found, nil
}

// sceneArg returns the scene path from args, or runs the picker over the
// current directory when args is empty and the terminal is interactive.
func sceneArg(ctx context.Context, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return "", errNoScene
	}
	entries, err := findScenes(".")
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errNoScene
	}

	final, err := tea.NewProgram(NewSceneListModel(entries), tea.WithContext(ctx)).Run()
	if err != nil {
		return "", fmt.Errorf("scene picker: %w", err)
	}
	m := final.(SceneListModel)
	if m.Selected == nil {
		return "", errNoScene
	}
	return m.Selected.Path, nil
}

// =============================================================================
// SceneListModel - Interactive scene selection
// =============================================================================

// SceneListModel is the bubbletea model for interactive scene selection.
// Scenes that failed to parse are listed but cannot be selected.
type SceneListModel struct {
	Scenes   []sceneEntry
	Cursor   int
	Selected *sceneEntry
	Height   int
	Offset   int
}

// NewSceneListModel creates a new scene list model.
func NewSceneListModel(scenes []sceneEntry) SceneListModel {
	return SceneListModel{Scenes: scenes, Height: 15}
}

func (m SceneListModel) Init() tea.Cmd {
	return nil
}

func (m SceneListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Scenes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			entry := m.Scenes[m.Cursor]
			if entry.Scene == nil {
				return m, nil
			}
			m.Selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m SceneListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Scene"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Scenes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Scenes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		if e.Scene == nil {
			rows = append(rows, []string{cursor, filepath.Base(e.Path), "—", "—", "invalid"})
			continue
		}
		w, h := e.Scene.Size()
		rows = append(rows, []string{
			cursor,
			filepath.Base(e.Path),
			fmt.Sprintf("%d×%d", w, h),
			fmt.Sprintf("%d", e.Scene.FrameCount()),
			elementSummary(e.Scene),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Scene", "Size", "Frames", "Elements").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Scenes) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if m.Scenes[idx].Scene == nil {
				base = base.Foreground(colorDim)
			} else if col == 2 || col == 3 {
				base = base.Foreground(colorGray)
			}
			if idx == m.Cursor {
				if m.Scenes[idx].Scene != nil && col == 1 {
					base = base.Foreground(colorGreen)
				}
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Scenes))))

	return b.String()
}

// elementSummary lists the non-empty element kinds of s, e.g. "2 gates, 1 wire".
func elementSummary(s *scene.Scene) string {
	var parts []string
	for _, st := range sceneStats(s)[1:] {
		switch {
		case st.n == 1:
			parts = append(parts, "1 "+st.unit)
		case st.n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", st.n, plural(st.unit)))
		}
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, ", ")
}
