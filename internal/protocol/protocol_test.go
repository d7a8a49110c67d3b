package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"boardsync/internal/board"
)

func TestDecodeClientTypes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Type
	}{
		{"join", `{"type":"join","data":{"room":"alpha","name":"alice"}}`, TypeJoin},
		{"start_stroke", `{"type":"start_stroke","data":{"tool":"draw","color":"#000000","width":2}}`, TypeStartStroke},
		{"draw", `{"type":"draw","data":{"segment":{"tool":"draw","from":{"x":0,"y":0},"to":{"x":1,"y":1},"color":"#000000","width":2}}}`, TypeDraw},
		{"end_stroke", `{"type":"end_stroke"}`, TypeEndStroke},
		{"cursor", `{"type":"cursor","data":{"x":4,"y":5}}`, TypeCursor},
		{"undo", `{"type":"undo"}`, TypeUndo},
		{"redo", `{"type":"redo"}`, TypeRedo},
		{"clear", `{"type":"clear"}`, TypeClear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := DecodeClient([]byte(tt.raw))
			if err != nil {
				t.Fatalf("DecodeClient: %v", err)
			}
			if got := msg.MessageType(); got != tt.want {
				t.Errorf("type = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeClientPayloadFields(t *testing.T) {
	msg, err := DecodeClient([]byte(`{"type":"join","data":{"room":"alpha","userId":"u1","name":"alice"}}`))
	if err != nil {
		t.Fatal(err)
	}
	join, ok := msg.(*Join)
	if !ok {
		t.Fatalf("decoded %T, want *Join", msg)
	}
	if join.Room != "alpha" || join.UserID != "u1" || join.Name != "alice" {
		t.Errorf("join = %+v", join)
	}
}

func TestDecodeClientUnknownType(t *testing.T) {
	_, err := DecodeClient([]byte(`{"type":"teleport"}`))
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("err = %v, want ErrUnknownType", err)
	}
}

func TestDecodeClientMalformed(t *testing.T) {
	for _, raw := range []string{
		`{`,
		`not json at all`,
		`{"type":"draw","data":{"segment":"nope"}}`,
	} {
		if _, err := DecodeClient([]byte(raw)); err == nil {
			t.Errorf("DecodeClient(%q) accepted malformed input", raw)
		}
	}
}

func TestEncodeServerMessages(t *testing.T) {
	frame, err := Encode(History{Strokes: []board.Stroke{{
		ID:     "s1",
		UserID: "u1",
		Segments: []board.Segment{{
			Tool: board.ToolDraw, To: board.Point{X: 1, Y: 1}, Color: "#000000", Width: 2,
		}},
	}}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Type != TypeHistory {
		t.Errorf("type = %q, want %q", env.Type, TypeHistory)
	}

	var h History
	if err := json.Unmarshal(env.Data, &h); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(h.Strokes) != 1 || h.Strokes[0].ID != "s1" {
		t.Errorf("payload = %+v", h)
	}
}

func TestEncodeUsesOutboundDrawShape(t *testing.T) {
	frame, err := Encode(SegmentDrawn{UserID: "u1", Segment: board.Segment{Tool: board.ToolDraw}})
	if err != nil {
		t.Fatal(err)
	}
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatal(err)
	}
	if env.Type != TypeDraw {
		t.Errorf("type = %q, want %q", env.Type, TypeDraw)
	}
	var sd SegmentDrawn
	if err := json.Unmarshal(env.Data, &sd); err != nil {
		t.Fatal(err)
	}
	if sd.UserID != "u1" {
		t.Errorf("originating user missing from relayed draw: %+v", sd)
	}
}
