package gateway

import (
	"github.com/dkeye/CallSignal/internal/domain"
	"github.com/dkeye/CallSignal/internal/protocol"
	"github.com/rs/zerolog/log"
)

// CallUser relays an offer to target. The sender's presence rides along when
// it has one. The origin is always the calling connection, whatever the client
// claims in claimedFrom. Returns false when nothing was delivered.
func (g *Gateway) CallUser(id, target, claimedFrom domain.ConnID, signal protocol.RawSignal) bool {
	if !g.live(id) {
		return false
	}
	if claimedFrom != "" && claimedFrom != id {
		log.Warn().Str("module", "gateway").Str("conn", string(id)).Str("claimed", string(claimedFrom)).Msg("call-user from mismatch, using origin")
	}
	msg := protocol.IncomingCall{Signal: signal, FromConnectionID: id}
	if p, ok := g.Presence.Get(id); ok {
		msg.FromPresence = &p
	}
	return g.send(target, protocol.EventIncomingCall, msg)
}

// AcceptCall relays an answer back to the caller.
func (g *Gateway) AcceptCall(id, to domain.ConnID, signal protocol.RawSignal) bool {
	if !g.live(id) {
		return false
	}
	return g.send(to, protocol.EventCallAccepted, protocol.CallAccepted{Signal: signal, AnswererConnectionID: id})
}
