// Package room owns the authoritative state of each collaboration
// session: the participant roster, the committed stroke history, the redo
// stack and the subscriber set used for fan-out. All mutations of one
// room are serialized behind its mutex; separate rooms are independent.
package room

import (
	"log/slog"
	"sync"

	"boardsync/internal/board"
	"boardsync/internal/metrics"
	"boardsync/internal/protocol"
)

// Subscriber receives encoded server frames for a room. Deliver must not
// block; implementations drop the frame when the receiver cannot accept
// it, so one faulted connection never interrupts delivery to the rest.
type Subscriber interface {
	Deliver(frame []byte)
}

// Room is one collaboration session. Create rooms through a Registry.
type Room struct {
	ID string

	log *slog.Logger

	mu           sync.Mutex
	closed       bool
	participants map[string]board.Participant
	subscribers  map[Subscriber]string
	history      []board.Stroke
	redo         []board.Stroke
}

func newRoom(id string, log *slog.Logger) *Room {
	return &Room{
		ID:           id,
		log:          log.With("room", id),
		participants: make(map[string]board.Participant),
		subscribers:  make(map[Subscriber]string),
	}
}

// Welcome is the snapshot handed to a joining participant. Replaying
// History reconstructs the exact current surface, so late joiners skip
// straight to consistency.
type Welcome struct {
	Participant board.Participant
	Roster      []board.Participant
	History     []board.Stroke
}

// Join registers a participant and its subscriber, announces it to the
// rest of the room and returns the full state snapshot. It reports false
// if the room has been evicted; callers then re-fetch from the registry.
func (r *Room) Join(sub Subscriber, userID, name string) (Welcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return Welcome{}, false
	}

	p := board.Participant{ID: userID, Name: name, Color: board.RandomColor()}
	r.participants[userID] = p
	r.subscribers[sub] = userID
	metrics.Participants.Inc()

	// The joiner gets the roster inline with its ack, not this event.
	r.broadcast(sub, protocol.UserJoined{Participant: p})
	r.log.Info("participant joined", "user", userID, "name", name)

	return Welcome{
		Participant: p,
		Roster:      r.rosterLocked(),
		History:     r.historyLocked(),
	}, true
}

// Leave removes a participant and tells the rest of the room. It is
// idempotent: leaving twice, or leaving without having joined, is a no-op.
func (r *Room) Leave(sub Subscriber, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subscribers[sub]; ok {
		delete(r.subscribers, sub)
	}
	if _, ok := r.participants[userID]; !ok {
		return
	}
	delete(r.participants, userID)
	metrics.Participants.Dec()

	r.broadcast(nil, protocol.UserLeft{UserID: userID})
	r.log.Info("participant left", "user", userID)
}

// RelaySegment fans a live segment out to every subscriber except the
// originating one, which has already rendered it locally.
func (r *Room) RelaySegment(origin Subscriber, userID string, seg board.Segment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcast(origin, protocol.SegmentDrawn{UserID: userID, Segment: seg})
}

// RelayCursor fans a cursor position out to everyone but the originator.
func (r *Room) RelayCursor(origin Subscriber, p board.Participant, x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcast(origin, protocol.CursorMove{
		UserID: p.ID,
		Name:   p.Name,
		Color:  p.Color,
		X:      x,
		Y:      y,
	})
}

// History returns a copy of the committed stroke sequence.
func (r *Room) History() []board.Stroke {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.historyLocked()
}

// Roster returns a copy of the current participant set.
func (r *Room) Roster() []board.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rosterLocked()
}

func (r *Room) historyLocked() []board.Stroke {
	out := make([]board.Stroke, len(r.history))
	copy(out, r.history)
	return out
}

func (r *Room) rosterLocked() []board.Participant {
	out := make([]board.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, p)
	}
	return out
}

// broadcast encodes msg once and delivers it to every subscriber except
// the excluded one. Callers hold r.mu. Delivery is fire-and-forget.
func (r *Room) broadcast(except Subscriber, msg protocol.Message) {
	frame, err := protocol.Encode(msg)
	if err != nil {
		r.log.Error("encode broadcast", "type", msg.MessageType(), "error", err)
		return
	}
	for sub := range r.subscribers {
		if sub == except {
			continue
		}
		sub.Deliver(frame)
	}
}

func (r *Room) emptyLocked() bool {
	return len(r.subscribers) == 0 && len(r.participants) == 0
}
