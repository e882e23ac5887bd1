package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newConnPair(t *testing.T) (server, peer *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		conns <- conn
	}))
	t.Cleanup(srv.Close)

	peer, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { peer.Close() })

	select {
	case server = <-conns:
	case <-time.After(2 * time.Second):
		t.Fatal("server side of the connection never arrived")
	}
	t.Cleanup(func() { server.Close() })
	return server, peer
}

func TestClientSend_StalledClientDisconnected(t *testing.T) {
	serverConn, peer := newConnPair(t)

	client := NewClient(nil, serverConn, uuid.New(), "stalled")

	event, err := NewEvent(EventTypeNewMessage, NewMessagePayload{Content: "x"})
	require.NoError(t, err)

	// No write pump is draining, so the buffer fills to capacity.
	for i := 0; i < cap(client.send); i++ {
		client.Send(event)
	}

	// The overflowing send must close the connection rather than let a
	// member silently miss fan-outs.
	client.Send(event)

	peer.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := peer.ReadMessage(); err != nil {
			return
		}
	}
}
