package export

import (
	"bytes"
	"testing"

	"boardsync/internal/board"
)

func TestPDFWritesDocument(t *testing.T) {
	strokes := []board.Stroke{
		{
			ID:     "s1",
			UserID: "u1",
			Segments: []board.Segment{
				{Tool: board.ToolDraw, From: board.Point{X: 10, Y: 10}, To: board.Point{X: 90, Y: 40}, Color: "#ff0000", Width: 2},
				{Tool: board.ToolErase, From: board.Point{X: 20, Y: 20}, To: board.Point{X: 30, Y: 30}, Width: 20},
			},
		},
	}

	var buf bytes.Buffer
	if err := PDF(&buf, strokes); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestPDFEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, nil); err != nil {
		t.Fatalf("PDF on empty history: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty history produced no document")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
	}{
		{"#000000", 0, 0, 0},
		{"#ff0000", 255, 0, 0},
		{"#00aa00", 0, 170, 0},
		{"#ABCDEF", 171, 205, 239},
		{"red", 0, 0, 0},
		{"#12345", 0, 0, 0},
		{"", 0, 0, 0},
		{"#zzzzzz", 0, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := parseHex(tt.in)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("parseHex(%q) = (%d,%d,%d), want (%d,%d,%d)", tt.in, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}
