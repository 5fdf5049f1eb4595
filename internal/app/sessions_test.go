package app

import (
	"testing"

	"github.com/dkeye/CallSignal/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopConn struct{ closed bool }

func (c *nopConn) TrySend(core.Frame) error { return nil }
func (c *nopConn) Close()                   { c.closed = true }

func TestSessionTable(t *testing.T) {
	s := NewSessionTable()
	canceled := 0
	conn := &nopConn{}

	require.NoError(t, s.Bind("a", conn, func() { canceled++ }))
	require.ErrorIs(t, s.Bind("a", &nopConn{}, nil), ErrAlreadyBound)

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Same(t, conn, got)

	assert.True(t, s.Cancel("a"))
	assert.Equal(t, 1, canceled)

	assert.True(t, s.Unbind("a"))
	assert.False(t, s.Unbind("a"), "unbind succeeds once")
	assert.False(t, s.Cancel("a"))
	_, ok = s.Get("a")
	assert.False(t, ok)

	require.NoError(t, s.Bind("a", &nopConn{}, nil))
	assert.Equal(t, 1, s.Len())
}
