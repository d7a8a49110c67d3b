// Package board holds the value types that make up a drawing surface:
// points, segments, strokes and participants. It has no behavior beyond
// validation; rooms own the state built from these types.
package board

// Point is a position on the shared canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tool selects how a segment is applied to the surface.
type Tool string

const (
	ToolDraw  Tool = "draw"
	ToolErase Tool = "erase"
)

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool {
	return t == ToolDraw || t == ToolErase
}

// Segment is one incremental line or erase operation within a stroke.
// Segments are broadcast live while the stroke is still in flight.
type Segment struct {
	Tool  Tool    `json:"tool"`
	From  Point   `json:"from"`
	To    Point   `json:"to"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Stroke is the atomic undo/redo unit: every segment produced by one
// continuous gesture from press to release. A stroke is either entirely
// in a room's history, entirely on its redo stack, or still in flight.
type Stroke struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Segments []Segment `json:"segments"`
}

// Participant is one joined session in a room.
type Participant struct {
	ID    string `json:"userId"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
