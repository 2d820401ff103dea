package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to png", "", []string{"png"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "png,toml,commands", []string{"png", "toml", "commands"}},
		{"spaces and case", " PNG , Jpeg", []string{"png", "jpeg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "scenes/adder.toml", "scenes/adder"},
		{"out/adder.png", "adder.toml", "out/adder"},
		{"out/adder", "adder.toml", "out/adder"},
		{"out/adder.v2", "adder.toml", "out/adder.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		format  string
		formats int
		want    string
	}{
		{"derived from input", "", "png", 1, "adder.png"},
		{"explicit single", "pic.jpg", "jpeg", 1, "pic.jpg"},
		{"explicit multiple", "out/pic.png", "svg", 2, "out/pic.svg"},
		{"commands dump", "", "commands", 2, "adder.commands.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, "adder.toml", tt.format, tt.formats); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "adder.toml")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"png": []byte("png"), "svg": []byte("<svg/>")},
		formats:   []string{"png", "svg"},
		input:     input,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	for _, name := range []string{"adder.png", "adder.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestWriteArtifactsRefusesInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "adder.toml")
	if err := os.WriteFile(input, []byte(`name = "adder"`), 0o644); err != nil {
		t.Fatal(err)
	}

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"toml": []byte("width = 1")},
		formats:   []string{"toml"},
		input:     input,
	})
	if err == nil {
		t.Fatal("expected error when output would overwrite input")
	}
	data, _ := os.ReadFile(input)
	if string(data) != `name = "adder"` {
		t.Errorf("input was modified: %q", data)
	}
}
