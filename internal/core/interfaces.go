package core

import "github.com/dkeye/CallSignal/internal/domain"

// PublishResult reports delivery stats/backpressure to the gateway.
type PublishResult struct {
	SendTo  int
	Dropped []domain.ConnID
}

// RoomInfo is a read-only view for APIs.
type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"memberCount"`
}
