package gateway

import (
	"sync"
	"testing"

	"github.com/dkeye/CallSignal/internal/core"
	"github.com/dkeye/CallSignal/internal/protocol"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []protocol.Envelope
	full   bool
	closed bool
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return core.ErrConnClosed
	}
	if f.full {
		return core.ErrBackpressure
	}
	env, err := protocol.Decode(fr)
	if err != nil {
		return err
	}
	f.frames = append(f.frames, env)
	return nil
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *fakeConn) setFull(full bool) {
	f.mu.Lock()
	f.full = full
	f.mu.Unlock()
}

// received returns the envelopes of the given event, in arrival order.
func (f *fakeConn) received(event protocol.EventType) []protocol.Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []protocol.Envelope
	for _, env := range f.frames {
		if env.Type == event {
			out = append(out, env)
		}
	}
	return out
}

func payloadOf[T any](t *testing.T, env protocol.Envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Payload, &v))
	return v
}

func lastOf[T any](t *testing.T, c *fakeConn, event protocol.EventType) T {
	t.Helper()
	got := c.received(event)
	require.NotEmpty(t, got, "no %s received", event)
	return payloadOf[T](t, got[len(got)-1])
}
