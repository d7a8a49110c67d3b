// Package protocol defines the JSON wire format spoken between the
// gateway and clients. Every frame is an envelope carrying a type tag and
// a typed payload; DecodeClient turns inbound frames into one of the
// client message structs so command handling can switch exhaustively.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"boardsync/internal/board"
)

// Type tags a wire frame.
type Type string

// Client to server.
const (
	TypeJoin        Type = "join"
	TypeStartStroke Type = "start_stroke"
	TypeDraw        Type = "draw"
	TypeEndStroke   Type = "end_stroke"
	TypeCursor      Type = "cursor"
	TypeUndo        Type = "undo"
	TypeRedo        Type = "redo"
	TypeClear       Type = "clear"
)

// Server to client.
const (
	TypeJoined     Type = "joined"
	TypeUserJoined Type = "user_joined"
	TypeUserLeft   Type = "user_left"
	TypeCursorMove Type = "cursor_move"
	TypeHistory    Type = "history"
)

// ErrUnknownType is returned for frames whose type tag is not part of the
// client vocabulary. The gateway logs and skips such frames.
var ErrUnknownType = errors.New("protocol: unknown message type")

// Envelope is the outer frame shape.
type Envelope struct {
	Type Type            `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Message is implemented by every payload struct.
type Message interface {
	MessageType() Type
}

// Join requests membership in a room. An empty Room selects the server's
// default room; an empty UserID asks the server to assign one.
type Join struct {
	Room   string `json:"room,omitempty"`
	UserID string `json:"userId,omitempty"`
	Name   string `json:"name"`
}

// StartStroke opens a new in-flight stroke on the sending connection.
type StartStroke struct {
	Tool  board.Tool `json:"tool"`
	Color string     `json:"color"`
	Width float64    `json:"width"`
}

// Draw appends one segment to the in-flight stroke.
type Draw struct {
	Segment board.Segment `json:"segment"`
}

// EndStroke commits the in-flight stroke.
type EndStroke struct{}

// Cursor reports the sender's pointer position.
type Cursor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Undo, Redo and Clear operate on the room's shared history.
type (
	Undo  struct{}
	Redo  struct{}
	Clear struct{}
)

// Joined acknowledges a join with the full present-tense snapshot the
// client needs to reconstruct the surface.
type Joined struct {
	UserID  string              `json:"userId"`
	Color   string              `json:"color"`
	Roster  []board.Participant `json:"roster"`
	History []board.Stroke      `json:"history"`
}

// UserJoined announces a new participant to the rest of the room.
type UserJoined struct {
	Participant board.Participant `json:"participant"`
}

// UserLeft announces a departed participant.
type UserLeft struct {
	UserID string `json:"userId"`
}

// SegmentDrawn relays a live segment from another participant.
type SegmentDrawn struct {
	UserID  string        `json:"userId"`
	Segment board.Segment `json:"segment"`
}

// CursorMove relays another participant's pointer position. A newer
// position for the same user supersedes any older one still in flight.
type CursorMove struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// History is the full authoritative stroke sequence, broadcast after
// every history mutation as the sole resynchronization mechanism.
type History struct {
	Strokes []board.Stroke `json:"strokes"`
}

func (Join) MessageType() Type        { return TypeJoin }
func (StartStroke) MessageType() Type { return TypeStartStroke }
func (Draw) MessageType() Type        { return TypeDraw }
func (EndStroke) MessageType() Type   { return TypeEndStroke }
func (Cursor) MessageType() Type      { return TypeCursor }
func (Undo) MessageType() Type        { return TypeUndo }
func (Redo) MessageType() Type        { return TypeRedo }
func (Clear) MessageType() Type       { return TypeClear }

func (Joined) MessageType() Type       { return TypeJoined }
func (UserJoined) MessageType() Type   { return TypeUserJoined }
func (UserLeft) MessageType() Type     { return TypeUserLeft }
func (SegmentDrawn) MessageType() Type { return TypeDraw }
func (CursorMove) MessageType() Type   { return TypeCursorMove }
func (History) MessageType() Type      { return TypeHistory }

// Encode wraps msg in an envelope and marshals it.
func Encode(msg Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", msg.MessageType(), err)
	}
	return json.Marshal(Envelope{Type: msg.MessageType(), Data: data})
}

// DecodeClient parses an inbound frame into its typed client message.
// Unknown types and malformed payloads return an error; the connection
// is expected to survive either.
func DecodeClient(raw []byte) (Message, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	var msg Message
	switch env.Type {
	case TypeJoin:
		msg = &Join{}
	case TypeStartStroke:
		msg = &StartStroke{}
	case TypeDraw:
		msg = &Draw{}
	case TypeEndStroke:
		msg = &EndStroke{}
	case TypeCursor:
		msg = &Cursor{}
	case TypeUndo:
		msg = &Undo{}
	case TypeRedo:
		msg = &Redo{}
	case TypeClear:
		msg = &Clear{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}

	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, msg); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
		}
	}
	return msg, nil
}
