// Package export renders a room's committed history to PDF. It reads a
// history snapshot and never touches live room state.
package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"boardsync/internal/board"
)

// canvasScale maps canvas units to millimeters on the page.
const canvasScale = 3.0

// PDF replays strokes onto an A4 landscape page and writes the document
// to w. Erase segments are drawn in the background color, matching how
// clients composite them.
func PDF(w io.Writer, strokes []board.Stroke) error {
	doc := gofpdf.New("L", "mm", "A4", "")
	doc.AddPage()

	for _, stroke := range strokes {
		for _, seg := range stroke.Segments {
			r, g, b := segmentColor(seg)
			doc.SetDrawColor(r, g, b)
			doc.SetLineWidth(seg.Width / canvasScale)
			doc.Line(
				seg.From.X/canvasScale, seg.From.Y/canvasScale,
				seg.To.X/canvasScale, seg.To.Y/canvasScale,
			)
		}
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func segmentColor(seg board.Segment) (r, g, b int) {
	if seg.Tool == board.ToolErase {
		return 255, 255, 255
	}
	return parseHex(seg.Color)
}

// parseHex reads a #rrggbb color, defaulting to black on anything else.
func parseHex(s string) (r, g, b int) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0
	}
	var out [3]int
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(s[1+i*2])
		lo, ok2 := hexDigit(s[2+i*2])
		if !ok1 || !ok2 {
			return 0, 0, 0
		}
		out[i] = hi<<4 | lo
	}
	return out[0], out[1], out[2]
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}
