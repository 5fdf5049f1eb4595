// Package gateway dispatches signaling events: it owns presence and room
// membership and fans protocol events out to live connections.
package gateway

import (
	"context"
	"errors"

	"github.com/dkeye/CallSignal/internal/app"
	"github.com/dkeye/CallSignal/internal/core"
	"github.com/dkeye/CallSignal/internal/domain"
	"github.com/dkeye/CallSignal/internal/protocol"
	"github.com/rs/zerolog/log"
)

var (
	ErrRoomRequired = errors.New("room id required")
	ErrNameRequired = errors.New("display name required")
	ErrRateLimited  = errors.New("too many join attempts")
	ErrNotConnected = errors.New("connection is not live")
)

// Gateway is the only writer of Presence and Rooms. Per-room and
// per-connection work is serialized with keyed locks; the lock order is
// connection first, then a single room.
type Gateway struct {
	Presence *app.PresenceRegistry
	Rooms    *app.RoomDirectory
	Sessions *app.SessionTable
	Policy   app.Policy
	// JoinLimiter may be nil.
	JoinLimiter *app.RateLimiter

	connLocks *app.KeyedMutex[domain.ConnID]
	roomLocks *app.KeyedMutex[domain.RoomID]
}

func New(presence *app.PresenceRegistry, rooms *app.RoomDirectory, sessions *app.SessionTable) *Gateway {
	return &Gateway{
		Presence:  presence,
		Rooms:     rooms,
		Sessions:  sessions,
		Policy:    app.DropPolicy{},
		connLocks: app.NewKeyedMutex[domain.ConnID](),
		roomLocks: app.NewKeyedMutex[domain.RoomID](),
	}
}

// Attach makes id a live connection and tells it its id.
func (g *Gateway) Attach(id domain.ConnID, sig core.SignalConnection, cancel context.CancelFunc) error {
	unlock := g.connLocks.Lock(id)
	defer unlock()
	if err := g.Sessions.Bind(id, sig, cancel); err != nil {
		return err
	}
	g.send(id, protocol.EventConnected, protocol.Connected{ConnectionID: id})
	return nil
}

// OnDisconnect leaves every room id belongs to and drops its presence.
// Only the first call per attached connection does any work.
func (g *Gateway) OnDisconnect(id domain.ConnID) {
	unlock := g.connLocks.Lock(id)
	defer unlock()
	if !g.Sessions.Unbind(id) {
		return
	}
	rooms := g.Rooms.RoomsOf(id)
	for _, room := range rooms {
		g.leaveRoom(id, room)
	}
	g.Presence.Remove(id)
	g.JoinLimiter.Forget(id)
	log.Info().Str("module", "gateway").Str("conn", string(id)).Int("rooms", len(rooms)).Msg("disconnect cleaned up")
}

func (g *Gateway) live(id domain.ConnID) bool {
	_, ok := g.Sessions.Get(id)
	return ok
}

// ListRooms returns every open room with its member count.
func (g *Gateway) ListRooms() []core.RoomInfo {
	return g.Rooms.List()
}

// Members returns a snapshot of room; ok is false when the room does not exist.
func (g *Gateway) Members(room domain.RoomID) ([]domain.Member, bool) {
	unlock := g.roomLocks.Lock(room)
	defer unlock()
	if !g.Rooms.Exists(room) {
		return nil, false
	}
	return g.snapshot(room), true
}

// snapshot must run under the room lock.
func (g *Gateway) snapshot(room domain.RoomID) []domain.Member {
	ids := g.Rooms.MembersOf(room)
	out := make([]domain.Member, 0, len(ids))
	for _, id := range ids {
		p, _ := g.Presence.Get(id)
		out = append(out, domain.Member{ConnID: id, Presence: p})
	}
	return out
}

func memberIDs(members []domain.Member) []domain.ConnID {
	out := make([]domain.ConnID, len(members))
	for i, m := range members {
		out[i] = m.ConnID
	}
	return out
}
