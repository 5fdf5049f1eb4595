package signal

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/CallSignal/internal/app"
	"github.com/dkeye/CallSignal/internal/app/gateway"
	"github.com/dkeye/CallSignal/internal/domain"
	"github.com/dkeye/CallSignal/internal/protocol"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	t    *testing.T
	conn *websocket.Conn
	id   domain.ConnID
}

func newTestServer(t *testing.T) (*gateway.Gateway, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gw := gateway.New(app.NewPresenceRegistry(), app.NewRoomDirectory(), app.NewSessionTable())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ctrl := NewSignalWSController(gw, DefaultOptions())
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ctrl.HandleSignal(ctx, c) })
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return gw, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *testClient {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	c := &testClient{t: t, conn: conn}
	hello := payloadAs[protocol.Connected](t, c.expect(protocol.EventConnected))
	require.NotEmpty(t, hello.ConnectionID)
	c.id = hello.ConnectionID
	return c
}

func (c *testClient) emit(event protocol.EventType, payload any) {
	c.t.Helper()
	frame, err := protocol.Encode(event, payload)
	require.NoError(c.t, err)
	require.NoError(c.t, c.conn.WriteMessage(websocket.TextMessage, frame))
}

// expect reads frames until one of the given event arrives.
func (c *testClient) expect(event protocol.EventType) protocol.Envelope {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		_, data, err := c.conn.ReadMessage()
		require.NoError(c.t, err, "waiting for %s", event)
		env, err := protocol.Decode(data)
		require.NoError(c.t, err)
		if env.Type == event {
			return env
		}
	}
}

func payloadAs[T any](t *testing.T, env protocol.Envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Payload, &v))
	return v
}

func TestSignalRoundTrip(t *testing.T) {
	gw, url := newTestServer(t)
	a := dial(t, url)
	b := dial(t, url)
	require.NotEqual(t, a.id, b.id)

	a.emit(protocol.EventJoinRoom, protocol.JoinRoom{RoomID: "R1", DisplayName: "alice"})
	state := payloadAs[protocol.RoomState](t, a.expect(protocol.EventRoomState))
	require.Len(t, state.Members, 1)

	b.emit(protocol.EventCheckNameInUse, protocol.CheckNameInUse{RoomID: "R1", DisplayName: "alice"})
	assert.True(t, payloadAs[protocol.NameInUse](t, b.expect(protocol.EventNameInUse)).InUse)

	b.emit(protocol.EventJoinRoom, protocol.JoinRoom{RoomID: "R1", DisplayName: "bob"})
	joined := payloadAs[protocol.UserJoined](t, a.expect(protocol.EventUserJoined))
	assert.Equal(t, b.id, joined.ConnectionID)
	assert.Len(t, joined.Members, 2)

	offer := json.RawMessage(`{"type":"offer","sdp":"v=0"}`)
	a.emit(protocol.EventCallUser, protocol.CallUser{TargetConnectionID: b.id, FromConnectionID: a.id, Signal: offer})
	call := payloadAs[protocol.IncomingCall](t, b.expect(protocol.EventIncomingCall))
	assert.Equal(t, a.id, call.FromConnectionID)
	assert.JSONEq(t, string(offer), string(call.Signal))
	require.NotNil(t, call.FromPresence)
	assert.Equal(t, "alice", call.FromPresence.DisplayName)

	answer := json.RawMessage(`{"type":"answer","sdp":"v=0"}`)
	b.emit(protocol.EventAcceptCall, protocol.AcceptCall{ToConnectionID: a.id, Signal: answer})
	accepted := payloadAs[protocol.CallAccepted](t, a.expect(protocol.EventCallAccepted))
	assert.Equal(t, b.id, accepted.AnswererConnectionID)

	a.emit(protocol.EventToggleMedia, protocol.ToggleMedia{RoomID: "R1", MediaKind: "video"})
	toggled := payloadAs[protocol.MediaToggled](t, b.expect(protocol.EventMediaToggled))
	assert.Equal(t, protocol.MediaToggled{RoomID: "R1", ConnectionID: a.id, MediaKind: domain.MediaVideo}, toggled)

	a.emit(protocol.EventSendRoomMessage, protocol.SendRoomMessage{RoomID: "R1", Text: "hi", SenderLabel: "alice"})
	want := protocol.RoomMessage{RoomID: "R1", Text: "hi", SenderLabel: "alice"}
	assert.Equal(t, want, payloadAs[protocol.RoomMessage](t, a.expect(protocol.EventRoomMessage)))
	assert.Equal(t, want, payloadAs[protocol.RoomMessage](t, b.expect(protocol.EventRoomMessage)))

	a.emit(protocol.EventPing, nil)
	a.expect(protocol.EventPong)

	// abrupt disconnect of b is a leave for everybody else
	require.NoError(t, b.conn.Close())
	left := payloadAs[protocol.UserLeft](t, a.expect(protocol.EventUserLeft))
	assert.Equal(t, b.id, left.ConnectionID)

	require.Eventually(t, func() bool {
		_, ok := gw.Presence.Get(b.id)
		return !ok && gw.Sessions.Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []domain.ConnID{a.id}, gw.Rooms.MembersOf("R1"))
}

func TestSignalRejectsMalformedFrames(t *testing.T) {
	_, url := newTestServer(t)
	a := dial(t, url)

	require.NoError(t, a.conn.WriteMessage(websocket.TextMessage, []byte("garbage")))
	notice := payloadAs[protocol.ErrorNotice](t, a.expect(protocol.EventError))
	assert.True(t, notice.Error)

	a.emit("dance", nil)
	assert.Contains(t, payloadAs[protocol.ErrorNotice](t, a.expect(protocol.EventError)).Reason, "dance")

	a.emit(protocol.EventJoinRoom, map[string]string{"displayName": "alice"})
	assert.True(t, payloadAs[protocol.ErrorNotice](t, a.expect(protocol.EventJoinRoomError)).Error)

	a.emit(protocol.EventToggleMedia, map[string]string{"roomId": "R1", "mediaKind": "screen"})
	a.expect(protocol.EventError)
}

func TestSignalLeaveKeepsConnectionOpen(t *testing.T) {
	gw, url := newTestServer(t)
	a := dial(t, url)
	b := dial(t, url)

	a.emit(protocol.EventJoinRoom, protocol.JoinRoom{RoomID: "R1", DisplayName: "alice"})
	a.expect(protocol.EventRoomState)
	b.emit(protocol.EventJoinRoom, protocol.JoinRoom{RoomID: "R1", DisplayName: "bob"})
	b.expect(protocol.EventRoomState)

	a.emit(protocol.EventLeaveRoom, protocol.LeaveRoom{RoomID: "R1"})
	left := payloadAs[protocol.UserLeft](t, b.expect(protocol.EventUserLeft))
	assert.Equal(t, a.id, left.ConnectionID)

	a.emit(protocol.EventPing, nil)
	a.expect(protocol.EventPong)
	assert.Equal(t, 2, gw.Sessions.Len())
}

func TestCheckOrigin(t *testing.T) {
	ctl := NewSignalWSController(nil, Options{AllowedOrigins: []string{"https://tutor.example"}})

	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Origin", "https://tutor.example")
	assert.True(t, ctl.checkOrigin(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, ctl.checkOrigin(req))

	open := NewSignalWSController(nil, DefaultOptions())
	assert.True(t, open.checkOrigin(req))
}
