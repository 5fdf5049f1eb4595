// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownMediaKind = errors.New("unknown media kind")

type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

func ParseMediaKind(s string) (MediaKind, error) {
	switch k := MediaKind(s); k {
	case MediaVideo, MediaAudio:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMediaKind, s)
	}
}

// Presence is per-connection call metadata while the connection is joined.
type Presence struct {
	DisplayName  string `json:"displayName"`
	VideoEnabled bool   `json:"videoEnabled"`
	AudioEnabled bool   `json:"audioEnabled"`
}

// NewPresence avoids raw literals in adapters and keeps the defaults in one place.
func NewPresence(displayName string) Presence {
	return Presence{DisplayName: displayName, VideoEnabled: true, AudioEnabled: true}
}

func (p *Presence) Toggle(kind MediaKind) {
	switch kind {
	case MediaVideo:
		p.VideoEnabled = !p.VideoEnabled
	case MediaAudio:
		p.AudioEnabled = !p.AudioEnabled
	}
}
