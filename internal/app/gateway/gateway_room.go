package gateway

import (
	"github.com/dkeye/CallSignal/internal/domain"
	"github.com/dkeye/CallSignal/internal/protocol"
	"github.com/rs/zerolog/log"
)

// CheckNameInUse answers whether a current member of room already uses name.
// The answer is advisory: it reserves nothing.
func (g *Gateway) CheckNameInUse(id domain.ConnID, room domain.RoomID, name string) bool {
	if !g.live(id) {
		return false
	}
	unlock := g.roomLocks.Lock(room)
	inUse := false
	for _, member := range g.Rooms.MembersOf(room) {
		if p, ok := g.Presence.Get(member); ok && p.DisplayName == name {
			inUse = true
			break
		}
	}
	unlock()

	g.send(id, protocol.EventNameInUse, protocol.NameInUse{RoomID: room, DisplayName: name, InUse: inUse})
	return inUse
}

// JoinRoom adds id to room, (re)sets its presence and tells the other members.
// A connection sits in one room at a time, so any previous room is left first.
// Failures are reported to the requester only.
func (g *Gateway) JoinRoom(id domain.ConnID, room domain.RoomID, name string) error {
	unlockConn := g.connLocks.Lock(id)
	defer unlockConn()

	if !g.live(id) {
		return ErrNotConnected
	}
	switch {
	case room == "":
		return g.rejectJoin(id, room, ErrRoomRequired)
	case name == "":
		return g.rejectJoin(id, room, ErrNameRequired)
	case !g.JoinLimiter.Allow(id):
		return g.rejectJoin(id, room, ErrRateLimited)
	}

	for _, prev := range g.Rooms.RoomsOf(id) {
		if prev != room {
			g.leaveRoom(id, prev)
		}
	}

	unlockRoom := g.roomLocks.Lock(room)
	defer unlockRoom()

	added := g.Rooms.Join(room, id)
	g.Presence.Set(id, name)
	members := g.snapshot(room)

	g.send(id, protocol.EventRoomState, protocol.RoomState{RoomID: room, Members: members})
	g.broadcast(memberIDs(members), id, protocol.EventUserJoined, protocol.UserJoined{
		RoomID:       room,
		ConnectionID: id,
		Members:      members,
	})
	log.Info().Str("module", "gateway").Str("conn", string(id)).Str("room", string(room)).Bool("rejoin", !added).Int("members", len(members)).Msg("joined")
	return nil
}

func (g *Gateway) rejectJoin(id domain.ConnID, room domain.RoomID, err error) error {
	log.Warn().Err(err).Str("module", "gateway").Str("conn", string(id)).Str("room", string(room)).Msg("join rejected")
	g.send(id, protocol.EventJoinRoomError, protocol.ErrorNotice{Error: true, Reason: err.Error()})
	return err
}

// LeaveRoom removes id from room. Leaving a room id is not in does nothing.
func (g *Gateway) LeaveRoom(id domain.ConnID, room domain.RoomID) bool {
	unlock := g.connLocks.Lock(id)
	defer unlock()
	if !g.live(id) {
		return false
	}
	return g.leaveRoom(id, room)
}

// leaveRoom must run under the connection lock of id.
func (g *Gateway) leaveRoom(id domain.ConnID, room domain.RoomID) bool {
	unlock := g.roomLocks.Lock(room)
	defer unlock()

	if !g.Rooms.IsMember(room, id) {
		return false
	}
	g.Presence.Remove(id)
	// recipients are resolved before the directory forgets id
	others := g.Rooms.MembersOf(room)
	g.broadcast(others, id, protocol.EventUserLeft, protocol.UserLeft{RoomID: room, ConnectionID: id})
	g.Rooms.Leave(room, id)
	log.Info().Str("module", "gateway").Str("conn", string(id)).Str("room", string(room)).Msg("left")
	return true
}
