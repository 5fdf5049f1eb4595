package protocol

import (
	"github.com/dkeye/CallSignal/internal/domain"
	"github.com/goccy/go-json"
)

// RawSignal is an opaque WebRTC negotiation blob (offer, answer or ICE
// candidate). It is forwarded byte for byte and never decoded.
type RawSignal = json.RawMessage

type CheckNameInUse struct {
	RoomID      domain.RoomID `json:"roomId" validate:"required"`
	DisplayName string        `json:"displayName" validate:"required"`
}

type JoinRoom struct {
	RoomID      domain.RoomID `json:"roomId" validate:"required"`
	DisplayName string        `json:"displayName" validate:"required"`
}

type CallUser struct {
	TargetConnectionID domain.ConnID `json:"targetConnectionId" validate:"required"`
	// FromConnectionID is informational; the server stamps the real origin.
	FromConnectionID domain.ConnID `json:"fromConnectionId,omitempty"`
	Signal           RawSignal     `json:"signal,omitempty"`
}

type AcceptCall struct {
	ToConnectionID domain.ConnID `json:"toConnectionId" validate:"required"`
	Signal         RawSignal     `json:"signal,omitempty"`
}

type SendRoomMessage struct {
	RoomID      domain.RoomID `json:"roomId" validate:"required"`
	Text        string        `json:"text"`
	SenderLabel string        `json:"senderLabel"`
}

type LeaveRoom struct {
	RoomID domain.RoomID `json:"roomId" validate:"required"`
}

type ToggleMedia struct {
	RoomID    domain.RoomID `json:"roomId" validate:"required"`
	MediaKind string        `json:"mediaKind" validate:"required,oneof=video audio"`
}

type Connected struct {
	ConnectionID domain.ConnID `json:"connectionId"`
}

type NameInUse struct {
	RoomID      domain.RoomID `json:"roomId"`
	DisplayName string        `json:"displayName"`
	InUse       bool          `json:"inUse"`
}

type RoomState struct {
	RoomID  domain.RoomID   `json:"roomId"`
	Members []domain.Member `json:"members"`
}

type UserJoined struct {
	RoomID       domain.RoomID   `json:"roomId"`
	ConnectionID domain.ConnID   `json:"connectionId"`
	Members      []domain.Member `json:"members"`
}

// ErrorNotice goes to the requesting connection only.
type ErrorNotice struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

type IncomingCall struct {
	Signal           RawSignal        `json:"signal"`
	FromConnectionID domain.ConnID    `json:"fromConnectionId"`
	FromPresence     *domain.Presence `json:"fromPresence"`
}

type CallAccepted struct {
	Signal               RawSignal     `json:"signal"`
	AnswererConnectionID domain.ConnID `json:"answererConnectionId"`
}

type RoomMessage struct {
	RoomID      domain.RoomID `json:"roomId"`
	Text        string        `json:"text"`
	SenderLabel string        `json:"senderLabel"`
}

type UserLeft struct {
	RoomID       domain.RoomID `json:"roomId"`
	ConnectionID domain.ConnID `json:"connectionId"`
}

type MediaToggled struct {
	RoomID       domain.RoomID    `json:"roomId"`
	ConnectionID domain.ConnID    `json:"connectionId"`
	MediaKind    domain.MediaKind `json:"mediaKind"`
}
