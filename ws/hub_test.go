package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cinemarathi_backend/internal/auth"
	"cinemarathi_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub()
	go hub.Run(ctx)
	return hub
}

func TestHub_SendToUserReachesEveryConnection(t *testing.T) {
	hub := startHub(t)

	a := newClient(hub, nil, 7)
	b := newClient(hub, nil, 7)
	other := newClient(hub, nil, 8)
	hub.register <- a
	hub.register <- b
	hub.register <- other

	require.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, 10*time.Millisecond)
	assert.True(t, hub.IsConnected(7))

	hub.SendToUser(7, "chat_message", map[string]any{"id": 1})

	for _, c := range []*Client{a, b} {
		select {
		case f := <-c.send:
			assert.Equal(t, "chat_message", f.Type)
		case <-time.After(time.Second):
			t.Fatal("frame not delivered")
		}
	}
	assert.Empty(t, other.send)
}

func TestHub_Unregister(t *testing.T) {
	hub := startHub(t)

	c := newClient(hub, nil, 3)
	hub.register <- c
	require.Eventually(t, func() bool { return hub.IsConnected(3) }, time.Second, 10*time.Millisecond)

	hub.unregister <- c
	require.Eventually(t, func() bool { return !hub.IsConnected(3) }, time.Second, 10*time.Millisecond)

	_, open := <-c.send
	assert.False(t, open)
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	c := newClient(hub, nil, 9)
	require.True(t, hub.Register(c))
	require.Eventually(t, func() bool { return hub.IsConnected(9) }, time.Second, 10*time.Millisecond)

	cancel()
	<-stopped

	_, open := <-c.send
	assert.False(t, open)

	returned := make(chan struct{})
	go func() {
		hub.Unregister(c)
		assert.False(t, hub.Register(newClient(hub, nil, 10)))
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("hub calls blocked after Run returned")
	}
	assert.Zero(t, hub.ClientCount())
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := startHub(t)

	c := newClient(hub, nil, 12)
	require.True(t, hub.Register(c))
	require.Eventually(t, func() bool { return hub.IsConnected(12) }, time.Second, 10*time.Millisecond)

	for i := 0; i < sendBuffer; i++ {
		hub.SendToUser(12, "notification", i)
	}
	hub.SendToUser(12, "notification", "overflow")

	require.Eventually(t, func() bool { return !hub.IsConnected(12) }, time.Second, 10*time.Millisecond)
}

func TestServeWS_DeliversFrames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth.Configure("ws-test-secret", time.Hour)
	tok, err := auth.GenerateToken(auth.Identity{UserID: 11, Role: auth.RoleActor})
	require.NoError(t, err)

	hub := startHub(t)
	r := gin.New()
	r.GET("/ws", middleware.AuthMiddleware(), NewHandler(hub).ServeWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + tok
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.Eventually(t, func() bool { return hub.IsConnected(11) }, time.Second, 10*time.Millisecond)
	hub.SendToUser(11, "chat_message", map[string]any{"message": "hello"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame struct {
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "chat_message", frame.Type)
	assert.Equal(t, "hello", frame.Data["message"])
}

func TestServeWS_RejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := startHub(t)
	r := gin.New()
	r.GET("/ws", middleware.AuthMiddleware(), NewHandler(hub).ServeWS)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
