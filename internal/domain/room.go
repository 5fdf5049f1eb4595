package domain

type (
	RoomID string
	ConnID string
)

// Member is a read-only row of a room snapshot.
type Member struct {
	ConnID   ConnID   `json:"connectionId"`
	Presence Presence `json:"presence"`
}
