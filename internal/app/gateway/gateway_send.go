package gateway

import (
	"github.com/dkeye/CallSignal/internal/app"
	"github.com/dkeye/CallSignal/internal/core"
	"github.com/dkeye/CallSignal/internal/domain"
	"github.com/dkeye/CallSignal/internal/protocol"
	"github.com/rs/zerolog/log"
)

// send is fire-and-forget: unknown recipients and full buffers are dropped.
func (g *Gateway) send(to domain.ConnID, event protocol.EventType, payload any) bool {
	frame, err := protocol.Encode(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "gateway").Str("event", string(event)).Msg("encode")
		return false
	}
	return g.deliver(to, frame)
}

func (g *Gateway) deliver(to domain.ConnID, frame core.Frame) bool {
	sig, ok := g.Sessions.Get(to)
	if !ok {
		log.Debug().Str("module", "gateway").Str("to", string(to)).Msg("recipient gone, dropped")
		return false
	}
	if err := sig.TrySend(frame); err != nil {
		g.onSendFailure(to, err)
		return false
	}
	return true
}

// broadcast sends to every id in members except skip; pass "" to include all.
// members must be a snapshot, never a live collection.
func (g *Gateway) broadcast(members []domain.ConnID, skip domain.ConnID, event protocol.EventType, payload any) core.PublishResult {
	res := core.PublishResult{}
	frame, err := protocol.Encode(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "gateway").Str("event", string(event)).Msg("encode")
		return res
	}
	for _, id := range members {
		if id == skip {
			continue
		}
		if !g.deliver(id, frame) {
			res.Dropped = append(res.Dropped, id)
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "gateway").Str("event", string(event)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (g *Gateway) onSendFailure(id domain.ConnID, err error) {
	if g.Policy == nil {
		return
	}
	switch g.Policy.OnBackPressure(id) {
	case app.KickMember:
		log.Warn().Err(err).Str("module", "gateway").Str("conn", string(id)).Msg("slow consumer, kicking")
		// The transport notices the cancel and reports the disconnect.
		g.Sessions.Cancel(id)
	case app.DropFrame, app.NoAction:
		log.Warn().Err(err).Str("module", "gateway").Str("conn", string(id)).Msg("frame dropped")
	}
}
