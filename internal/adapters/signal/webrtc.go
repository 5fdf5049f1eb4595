package signal

import (
	"github.com/dkeye/CallSignal/internal/domain"
	"github.com/dkeye/CallSignal/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Offers, answers and candidates are relayed untouched; delivery is not confirmed.

func (ctl *SignalWSController) handleCallUser(id domain.ConnID, conn *WsSignalConn, env protocol.Envelope) {
	var p protocol.CallUser
	if err := protocol.DecodePayload(env, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad call-user payload")
		ctl.sendError(conn, protocol.EventError, err)
		return
	}
	ctl.Gateway.CallUser(id, p.TargetConnectionID, p.FromConnectionID, p.Signal)
}

func (ctl *SignalWSController) handleAcceptCall(id domain.ConnID, conn *WsSignalConn, env protocol.Envelope) {
	var p protocol.AcceptCall
	if err := protocol.DecodePayload(env, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad accept-call payload")
		ctl.sendError(conn, protocol.EventError, err)
		return
	}
	ctl.Gateway.AcceptCall(id, p.ToConnectionID, p.Signal)
}
