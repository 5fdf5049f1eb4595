package app

import (
	"sync"

	"github.com/dkeye/CallSignal/internal/domain"
	"github.com/rs/zerolog/log"
)

// PresenceRegistry holds call metadata per connection.
// A missing entry is a legitimate state, never an error.
type PresenceRegistry struct {
	mu      sync.RWMutex
	entries map[domain.ConnID]*domain.Presence
}

func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{entries: make(map[domain.ConnID]*domain.Presence)}
}

// Set creates or replaces the presence with both media flags enabled.
func (r *PresenceRegistry) Set(id domain.ConnID, displayName string) domain.Presence {
	p := domain.NewPresence(displayName)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &p
	log.Debug().Str("module", "app.presence").Str("conn", string(id)).Str("name", displayName).Msg("presence set")
	return p
}

func (r *PresenceRegistry) Get(id domain.ConnID) (domain.Presence, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.entries[id]
	if !ok {
		return domain.Presence{}, false
	}
	return *p, true
}

func (r *PresenceRegistry) Remove(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return
	}
	delete(r.entries, id)
	log.Debug().Str("module", "app.presence").Str("conn", string(id)).Msg("presence removed")
}

func (r *PresenceRegistry) ToggleVideo(id domain.ConnID) (domain.Presence, bool) {
	return r.toggle(id, domain.MediaVideo)
}

func (r *PresenceRegistry) ToggleAudio(id domain.ConnID) (domain.Presence, bool) {
	return r.toggle(id, domain.MediaAudio)
}

// Toggle flips the flag for kind. Toggles for departed connections are dropped.
func (r *PresenceRegistry) Toggle(id domain.ConnID, kind domain.MediaKind) (domain.Presence, bool) {
	return r.toggle(id, kind)
}

func (r *PresenceRegistry) toggle(id domain.ConnID, kind domain.MediaKind) (domain.Presence, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.entries[id]
	if !ok {
		return domain.Presence{}, false
	}
	p.Toggle(kind)
	return *p, true
}

func (r *PresenceRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
