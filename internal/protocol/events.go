// Package protocol defines the signaling wire format: a JSON envelope with a
// named event and an event-specific payload.
package protocol

type EventType string

// Inbound events.
const (
	EventCheckNameInUse  EventType = "check-name-in-use"
	EventJoinRoom        EventType = "join-room"
	EventCallUser        EventType = "call-user"
	EventAcceptCall      EventType = "accept-call"
	EventSendRoomMessage EventType = "send-room-message"
	EventLeaveRoom       EventType = "leave-room"
	EventToggleMedia     EventType = "toggle-media"
	EventPing            EventType = "ping"
)

// Outbound events.
const (
	EventConnected     EventType = "connected"
	EventNameInUse     EventType = "name-in-use"
	EventRoomState     EventType = "room-state"
	EventUserJoined    EventType = "user-joined"
	EventJoinRoomError EventType = "join-room-error"
	EventIncomingCall  EventType = "incoming-call"
	EventCallAccepted  EventType = "call-accepted"
	EventRoomMessage   EventType = "room-message"
	EventUserLeft      EventType = "user-left"
	EventMediaToggled  EventType = "media-toggled"
	EventError         EventType = "error"
	EventPong          EventType = "pong"
)
