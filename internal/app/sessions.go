package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dkeye/CallSignal/internal/core"
	"github.com/dkeye/CallSignal/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrAlreadyBound = errors.New("connection already bound")

type sessionEntry struct {
	Signal core.SignalConnection
	Cancel context.CancelFunc
}

// SessionTable maps live connection ids to their transport endpoint.
// An id that is not bound is not a live connection.
type SessionTable struct {
	mu       sync.RWMutex
	sessions map[domain.ConnID]*sessionEntry
}

func NewSessionTable() *SessionTable {
	return &SessionTable{sessions: make(map[domain.ConnID]*sessionEntry)}
}

// Bind registers the endpoint for id. Ids are unique per live session, so a
// second bind for a bound id is refused.
func (t *SessionTable) Bind(id domain.ConnID, sig core.SignalConnection, cancel context.CancelFunc) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.sessions[id]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, id)
	}
	t.sessions[id] = &sessionEntry{Signal: sig, Cancel: cancel}
	log.Info().Str("module", "app.sessions").Str("conn", string(id)).Msg("bound session")
	return nil
}

func (t *SessionTable) Get(id domain.ConnID) (core.SignalConnection, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if e, ok := t.sessions[id]; ok {
		return e.Signal, true
	}
	return nil, false
}

// Unbind removes id. Only the first call for a binding returns true.
func (t *SessionTable) Unbind(id domain.ConnID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.sessions[id]; !ok {
		return false
	}
	delete(t.sessions, id)
	log.Info().Str("module", "app.sessions").Str("conn", string(id)).Msg("unbind session")
	return true
}

// Cancel stops the transport loops of id; the transport then reports the disconnect.
func (t *SessionTable) Cancel(id domain.ConnID) bool {
	t.mu.RLock()
	e, ok := t.sessions[id]
	t.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.sessions").Str("conn", string(id)).Msg("canceled session")
	return true
}

func (t *SessionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sessions)
}
