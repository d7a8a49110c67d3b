package gateway

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"boardsync/internal/board"
	"boardsync/internal/metrics"
	"boardsync/internal/protocol"
	"boardsync/internal/room"
)

const (
	// writeWait bounds a single frame write.
	writeWait = 10 * time.Second

	// pongWait is how long a connection may stay silent before the read
	// loop gives up on it; pings go out at a fraction of that.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// maxFrameSize bounds inbound frames. Segments arrive one frame at a
	// time, so legitimate frames stay small.
	maxFrameSize = 64 * 1024
)

// client is the per-connection session record: the websocket, the
// outbound queue, and the join/assembly state the connection carries.
// Everything except Deliver runs on the connection's read goroutine, so
// the session fields need no locking.
type client struct {
	h    *Handler
	conn *websocket.Conn
	log  *slog.Logger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once

	// Set by a successful join; nil room means commands are ignored.
	room *room.Room
	user board.Participant
	asm  assembler
}

func newClient(h *Handler, conn *websocket.Conn) *client {
	return &client{
		h:    h,
		conn: conn,
		log:  h.log.With("remote", conn.RemoteAddr().String()),
		send: make(chan []byte, h.sendBuffer),
		done: make(chan struct{}),
	}
}

// Deliver queues a frame for the write loop without blocking. Frames are
// dropped when the queue is full or the connection has closed; a slow or
// faulted client never stalls a broadcast.
func (c *client) Deliver(frame []byte) {
	select {
	case <-c.done:
		metrics.FramesDropped.Inc()
		return
	default:
	}
	select {
	case c.send <- frame:
		metrics.FramesSent.Inc()
	default:
		metrics.FramesDropped.Inc()
	}
}

// close shuts the transport down once; the read loop then unblocks with
// an error and runs teardown.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// teardown is the implicit leave: discard any stroke still assembling,
// detach from the room and let the registry evict it if now empty.
func (c *client) teardown() {
	c.close()
	c.asm.discard()
	if c.room != nil {
		c.room.Leave(c, c.user.ID)
		c.h.rooms.Evict(c.room)
		c.room = nil
	}
}

func (c *client) readLoop() {
	defer c.teardown()

	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				c.log.Debug("read error", "error", err)
			}
			return
		}
		metrics.MessagesReceived.Inc()

		msg, err := protocol.DecodeClient(data)
		if err != nil {
			// Malformed frames are discarded; the connection stays up.
			c.log.Debug("frame discarded", "error", err)
			continue
		}
		c.handle(msg)
	}
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.close()

	for {
		select {
		case <-c.done:
			return
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handle dispatches one decoded client message. Commands that need room
// context are ignored until this connection has joined somewhere.
func (c *client) handle(msg protocol.Message) {
	switch m := msg.(type) {
	case *protocol.Join:
		c.handleJoin(m)

	case *protocol.StartStroke:
		if c.room == nil {
			return
		}
		c.asm.begin(m.Tool, m.Color, m.Width)

	case *protocol.Draw:
		if c.room == nil {
			return
		}
		seg, ok := c.asm.append(m.Segment)
		if !ok {
			c.log.Debug("segment outside stroke discarded")
			return
		}
		c.room.RelaySegment(c, c.user.ID, seg)

	case *protocol.EndStroke:
		if c.room == nil {
			return
		}
		if segs, ok := c.asm.complete(); ok {
			c.room.Commit(c.user.ID, segs)
		}

	case *protocol.Cursor:
		if c.room == nil {
			return
		}
		c.room.RelayCursor(c, c.user, m.X, m.Y)

	case *protocol.Undo:
		if c.room != nil {
			c.room.Undo()
		}
	case *protocol.Redo:
		if c.room != nil {
			c.room.Redo()
		}
	case *protocol.Clear:
		if c.room != nil {
			c.room.Clear()
		}
	}
}

func (c *client) handleJoin(m *protocol.Join) {
	if c.room != nil {
		c.log.Debug("duplicate join ignored")
		return
	}

	roomID := m.Room
	if roomID == "" {
		roomID = c.h.defaultRoom
	}
	userID := m.UserID
	if userID == "" {
		userID = uuid.NewString()
	}
	name := m.Name
	if name == "" {
		name = "anonymous"
	}

	var welcome room.Welcome
	for {
		rm := c.h.rooms.GetOrCreate(roomID)
		w, ok := rm.Join(c, userID, name)
		if ok {
			c.room = rm
			welcome = w
			break
		}
		// Lost a race with eviction; the registry hands out a fresh room.
	}
	c.user = welcome.Participant

	frame, err := protocol.Encode(protocol.Joined{
		UserID:  welcome.Participant.ID,
		Color:   welcome.Participant.Color,
		Roster:  welcome.Roster,
		History: welcome.History,
	})
	if err != nil {
		c.log.Error("encode join ack", "error", err)
		return
	}
	c.Deliver(frame)
}
