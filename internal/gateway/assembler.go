package gateway

import "boardsync/internal/board"

// assembler accumulates the segments of one in-flight stroke for a
// single connection. It moves Idle -> Assembling on begin and back on
// complete; the accumulated run is only ever handed over whole, so a
// stroke can never land in a room half-built.
type assembler struct {
	active   bool
	tool     board.Tool
	color    string
	width    float64
	segments []board.Segment
}

// begin opens a new stroke. A begin while already assembling discards
// the unfinished accumulator; there is no partial-stroke salvage.
func (a *assembler) begin(tool board.Tool, color string, width float64) {
	if !tool.Valid() {
		tool = board.ToolDraw
	}
	a.active = true
	a.tool = tool
	a.color = color
	a.width = width
	a.segments = nil
}

// append records one segment, filling unset fields from the parameters
// announced at begin. Segments arriving while idle are refused.
func (a *assembler) append(seg board.Segment) (board.Segment, bool) {
	if !a.active {
		return board.Segment{}, false
	}
	if !seg.Tool.Valid() {
		seg.Tool = a.tool
	}
	if seg.Color == "" {
		seg.Color = a.color
	}
	if seg.Width <= 0 {
		seg.Width = a.width
	}
	a.segments = append(a.segments, seg)
	return seg, true
}

// complete closes the stroke and returns the accumulated segments. An
// empty accumulator completes to nothing.
func (a *assembler) complete() ([]board.Segment, bool) {
	if !a.active {
		return nil, false
	}
	segs := a.segments
	a.active = false
	a.segments = nil
	if len(segs) == 0 {
		return nil, false
	}
	return segs, true
}

// discard drops whatever is in flight, e.g. on disconnect mid-stroke.
func (a *assembler) discard() {
	a.active = false
	a.segments = nil
}
