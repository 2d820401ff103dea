package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/drawkit/pkg/scene"
)

const latchTOML = `
name = "latch"
width = 320
height = 200

[[gate]]
name = "n1"
kind = "nand"
at = [10, 20]

[[gate]]
name = "n2"
kind = "nand"
at = [10, 120]

[[box]]
name = "q"
at = [200, 60]
`

func writeScenes(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"latch.toml":  latchTOML,
		"broken.toml": "name = [",
		"notes.txt":   "not a scene",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFindScenes(t *testing.T) {
	dir := writeScenes(t)

	entries, err := findScenes(dir)
	if err != nil {
		t.Fatalf("findScenes() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if filepath.Base(entries[0].Path) != "broken.toml" || entries[0].Err == nil {
		t.Errorf("entries[0] = %+v, want broken.toml with an error", entries[0])
	}
	if entries[1].Scene == nil || entries[1].Scene.Name != "latch" {
		t.Errorf("entries[1] = %+v, want latch scene", entries[1])
	}
}

func TestSceneListModel(t *testing.T) {
	entries, err := findScenes(writeScenes(t))
	if err != nil {
		t.Fatal(err)
	}
	var m tea.Model = NewSceneListModel(entries)

	// The broken scene is first and cannot be picked.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.(SceneListModel); got.Selected != nil || cmd != nil {
		t.Fatalf("enter on invalid scene selected %+v", got.Selected)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.(SceneListModel).Cursor; got != 1 {
		t.Errorf("cursor = %d, want 1 (clamped)", got)
	}

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := m.(SceneListModel)
	if got.Selected == nil || got.Selected.Scene.Name != "latch" {
		t.Fatalf("Selected = %+v, want latch", got.Selected)
	}
	if cmd == nil {
		t.Error("selecting a scene should quit")
	}

	view := got.View()
	for _, want := range []string{"latch.toml", "320×200", "invalid"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestElementSummary(t *testing.T) {
	s, err := scene.Decode(strings.NewReader(latchTOML))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := elementSummary(s), "2 gates, 1 box"; got != want {
		t.Errorf("elementSummary() = %q, want %q", got, want)
	}
	if got := elementSummary(&scene.Scene{Name: "blank"}); got != "empty" {
		t.Errorf("elementSummary(blank) = %q, want empty", got)
	}
}
