package board

import "testing"

func TestToolValid(t *testing.T) {
	tests := []struct {
		tool Tool
		want bool
	}{
		{ToolDraw, true},
		{ToolErase, true},
		{"", false},
		{"spraycan", false},
		{"DRAW", false},
	}
	for _, tt := range tests {
		if got := tt.tool.Valid(); got != tt.want {
			t.Errorf("Tool(%q).Valid() = %v, want %v", tt.tool, got, tt.want)
		}
	}
}

func TestRandomColorStaysInPalette(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[RandomColor()] = true
	}
	for c := range seen {
		found := false
		for _, p := range Palette {
			if p == c {
				found = true
			}
		}
		if !found {
			t.Errorf("RandomColor returned %q, not in palette", c)
		}
	}
}
