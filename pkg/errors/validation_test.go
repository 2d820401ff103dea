package errors

import (
	"strings"
	"testing"
)

func TestValidateSceneName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "graph", false},
		{"valid with dash", "logic-gates", false},
		{"valid with underscore", "fig_3", false},
		{"valid with dot", "v1.2", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"path traversal", "a..b", true},
		{"slash", "a/b", true},
		{"leading dot", ".hidden", true},
		{"null byte", "foo\x00bar", true},
		{"space", "foo bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSceneName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSceneName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidScene) {
				t.Errorf("ValidateSceneName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidScene)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "scene.toml", false},
		{"valid nested", "figures/graph.toml", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "figures/../../x", true},
		{"backslash", "figures\\x", true},
		{"control char", "foo\x01bar", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"short hex", "#fff", false},
		{"short hex alpha", "#fff8", false},
		{"long hex", "#1e90ff", false},
		{"long hex alpha", "#1e90ff80", false},
		{"name", "steelblue", false},

		{"empty", "", true},
		{"bad hex length", "#12345", true},
		{"bad hex digit", "#ggg", true},
		{"name with digits", "blue2", true},
		{"rgb function", "rgb(1,2,3)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
