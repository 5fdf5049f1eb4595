package gateway

import (
	"github.com/dkeye/CallSignal/internal/core"
	"github.com/dkeye/CallSignal/internal/domain"
	"github.com/dkeye/CallSignal/internal/protocol"
)

// SendRoomMessage echoes text to every member of room, the sender included.
func (g *Gateway) SendRoomMessage(id domain.ConnID, room domain.RoomID, text, senderLabel string) core.PublishResult {
	if !g.live(id) {
		return core.PublishResult{}
	}
	unlock := g.roomLocks.Lock(room)
	defer unlock()
	return g.broadcast(g.Rooms.MembersOf(room), "", protocol.EventRoomMessage, protocol.RoomMessage{
		RoomID:      room,
		Text:        text,
		SenderLabel: senderLabel,
	})
}
