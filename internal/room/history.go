package room

import (
	"github.com/google/uuid"

	"boardsync/internal/board"
	"boardsync/internal/metrics"
	"boardsync/internal/protocol"
)

// Commit appends a completed stroke to the history and unconditionally
// clears the redo stack: committing after an undo forfeits the redo
// branch. The authoritative history is then broadcast to every
// subscriber, the committer included, so all views converge on the same
// sequence. History order is commit arrival order, nothing else.
func (r *Room) Commit(userID string, segments []board.Segment) board.Stroke {
	stroke := board.Stroke{
		ID:       uuid.NewString(),
		UserID:   userID,
		Segments: segments,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, stroke)
	r.redo = nil
	metrics.StrokesCommitted.Inc()

	r.broadcastHistoryLocked()
	r.log.Debug("stroke committed", "user", userID, "stroke", stroke.ID, "segments", len(segments))
	return stroke
}

// Undo moves the most recent stroke from the history to the redo stack
// and broadcasts the new history. Undo with nothing to undo is a no-op.
func (r *Room) Undo() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.history) == 0 {
		return
	}
	last := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.redo = append(r.redo, last)

	r.broadcastHistoryLocked()
}

// Redo moves the most recently undone stroke back onto the history and
// broadcasts the new history. Redo with an empty stack is a no-op.
func (r *Room) Redo() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.redo) == 0 {
		return
	}
	last := r.redo[len(r.redo)-1]
	r.redo = r.redo[:len(r.redo)-1]
	r.history = append(r.history, last)

	r.broadcastHistoryLocked()
}

// Clear wipes both the history and the redo stack and broadcasts the
// empty state to every subscriber, the issuer included.
func (r *Room) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = nil
	r.redo = nil

	r.broadcastHistoryLocked()
}

// broadcastHistoryLocked sends the full history frame to every
// subscriber including the command issuer; the issuer's view is driven
// by the broadcast, never by local prediction. Callers hold r.mu.
func (r *Room) broadcastHistoryLocked() {
	r.broadcast(nil, protocol.History{Strokes: r.historyLocked()})
}
