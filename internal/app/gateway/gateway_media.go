package gateway

import (
	"github.com/dkeye/CallSignal/internal/domain"
	"github.com/dkeye/CallSignal/internal/protocol"
)

// ToggleMedia flips one media flag of id and tells the rest of room.
// Toggles from connections without presence in room are dropped.
func (g *Gateway) ToggleMedia(id domain.ConnID, room domain.RoomID, kind domain.MediaKind) (domain.Presence, bool) {
	unlockConn := g.connLocks.Lock(id)
	defer unlockConn()
	unlockRoom := g.roomLocks.Lock(room)
	defer unlockRoom()

	if !g.Rooms.IsMember(room, id) {
		return domain.Presence{}, false
	}
	p, ok := g.Presence.Toggle(id, kind)
	if !ok {
		return domain.Presence{}, false
	}
	g.broadcast(g.Rooms.MembersOf(room), id, protocol.EventMediaToggled, protocol.MediaToggled{
		RoomID:       room,
		ConnectionID: id,
		MediaKind:    kind,
	})
	return p, true
}
