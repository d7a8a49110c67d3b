package room

import (
	"log/slog"
	"sync"

	"boardsync/internal/metrics"
)

// Registry is the process-wide room index. Rooms are created lazily on
// first reference; concurrent lookups of an unseen id resolve to the
// same instance.
type Registry struct {
	log *slog.Logger

	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry creates an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		log:   log,
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room for id, creating it on first reference.
func (g *Registry) GetOrCreate(id string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()

	if r, ok := g.rooms[id]; ok {
		return r
	}
	r := newRoom(id, g.log)
	g.rooms[id] = r
	metrics.ActiveRooms.Inc()
	g.log.Info("room created", "room", id)
	return r
}

// Lookup returns the room for id without creating one.
func (g *Registry) Lookup(id string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[id]
	return r, ok
}

// Evict drops r from the registry if it has no remaining members. This
// is resource policy, not semantics: the room carries no durability
// guarantee and an equivalent empty room reappears on the next join.
// An evicted room refuses further joins so a racing joiner re-fetches.
func (g *Registry) Evict(r *Room) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.emptyLocked() || g.rooms[r.ID] != r {
		return
	}
	r.closed = true
	delete(g.rooms, r.ID)
	metrics.ActiveRooms.Dec()
	g.log.Info("room evicted", "room", r.ID)
}

// Len reports the number of live rooms.
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms)
}
