package signal

import (
	"github.com/dkeye/CallSignal/internal/domain"
	"github.com/dkeye/CallSignal/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleCheckName(id domain.ConnID, conn *WsSignalConn, env protocol.Envelope) {
	var p protocol.CheckNameInUse
	if err := protocol.DecodePayload(env, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad check-name payload")
		ctl.sendError(conn, protocol.EventError, err)
		return
	}
	ctl.Gateway.CheckNameInUse(id, p.RoomID, p.DisplayName)
}

func (ctl *SignalWSController) handleJoin(id domain.ConnID, conn *WsSignalConn, env protocol.Envelope) {
	var p protocol.JoinRoom
	if err := protocol.DecodePayload(env, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(conn, protocol.EventJoinRoomError, err)
		return
	}
	if err := ctl.Gateway.JoinRoom(id, p.RoomID, p.DisplayName); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("join failed")
	}
}

// handleLeave exits the room; the connection itself stays open.
func (ctl *SignalWSController) handleLeave(id domain.ConnID, conn *WsSignalConn, env protocol.Envelope) {
	var p protocol.LeaveRoom
	if err := protocol.DecodePayload(env, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad leave payload")
		ctl.sendError(conn, protocol.EventError, err)
		return
	}
	ctl.Gateway.LeaveRoom(id, p.RoomID)
}

func (ctl *SignalWSController) handleRoomMessage(id domain.ConnID, conn *WsSignalConn, env protocol.Envelope) {
	var p protocol.SendRoomMessage
	if err := protocol.DecodePayload(env, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad room message payload")
		ctl.sendError(conn, protocol.EventError, err)
		return
	}
	ctl.Gateway.SendRoomMessage(id, p.RoomID, p.Text, p.SenderLabel)
}

func (ctl *SignalWSController) handleToggleMedia(id domain.ConnID, conn *WsSignalConn, env protocol.Envelope) {
	var p protocol.ToggleMedia
	if err := protocol.DecodePayload(env, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad toggle payload")
		ctl.sendError(conn, protocol.EventError, err)
		return
	}
	kind, err := domain.ParseMediaKind(p.MediaKind)
	if err != nil {
		ctl.sendError(conn, protocol.EventError, err)
		return
	}
	ctl.Gateway.ToggleMedia(id, p.RoomID, kind)
}
