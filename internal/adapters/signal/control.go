package signal

import "github.com/dkeye/CallSignal/internal/protocol"

func (ctl *SignalWSController) handlePing(conn *WsSignalConn) {
	ctl.sendJSON(conn, protocol.EventPong, nil)
}
