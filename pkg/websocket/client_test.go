package websocket

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/creatorhub/cli/pkg/config"
)

var upgrader = websocket.Upgrader{}

// newServer starts a WebSocket test server and returns its ws:// URL
func newServer(t *testing.T, handle func(conn *websocket.Conn, r *http.Request)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		handle(conn, r)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// drain blocks until the peer goes away
func drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func testConfig(url string) Config {
	return Config{
		URL:                  url,
		ConnectTimeout:       time.Second,
		ReconnectBaseDelay:   10 * time.Millisecond,
		ReconnectMaxDelay:    50 * time.Millisecond,
		MaxReconnectAttempts: 3,
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "ws://localhost:8787/api/v1/ws", cfg.URL)
	assert.Equal(t, 30*time.Second, cfg.HeartbeatInterval)
	assert.Equal(t, -1, cfg.MaxReconnectAttempts, "reconnects should be unlimited by default")
}

func TestConfigFromSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "[realtime]\nurl = \"wss://rt.example.com/ws\"\nheartbeat_seconds = 5\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	require.NoError(t, config.Init(path))

	cfg := ConfigFromSettings()
	assert.Equal(t, "wss://rt.example.com/ws", cfg.URL)
	assert.Equal(t, 5*time.Second, cfg.HeartbeatInterval)
}

func TestConnectReceivesMessagesInOrder(t *testing.T) {
	url := newServer(t, func(conn *websocket.Conn, r *http.Request) {
		for _, n := range []string{"1", "2", "3"} {
			_ = conn.WriteMessage(websocket.TextMessage,
				[]byte(`{"type":"like_count_update","payload":{"post_id":"p`+n+`"}}`))
		}
		drain(conn)
	})

	c := NewClient(testConfig(url))
	got := make(chan string, 3)
	c.On(MessageTypeLikeCountUpdate, func(m Message) {
		got <- string(m.Payload)
	})

	require.NoError(t, c.Connect(""))
	defer c.Close()
	assert.True(t, c.IsConnected())

	for _, want := range []string{"p1", "p2", "p3"} {
		select {
		case payload := <-got:
			assert.Contains(t, payload, want)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
	assert.Equal(t, int64(3), c.GetStats().MessagesReceived)
}

func TestConnectSendsToken(t *testing.T) {
	tokens := make(chan string, 1)
	url := newServer(t, func(conn *websocket.Conn, r *http.Request) {
		tokens <- r.URL.Query().Get("token")
		drain(conn)
	})

	c := NewClient(testConfig(url))
	require.NoError(t, c.Connect("jwt-123"))
	defer c.Close()

	assert.Equal(t, "jwt-123", <-tokens)
}

func TestUnsubscribe(t *testing.T) {
	c := NewClient(DefaultConfig())
	var typed, all int32

	unsub := c.On(MessageTypePong, func(Message) { atomic.AddInt32(&typed, 1) })
	c.On(MessageTypeAny, func(Message) { atomic.AddInt32(&all, 1) })

	c.dispatch(Message{Type: MessageTypePong})
	unsub()
	unsub()
	c.dispatch(Message{Type: MessageTypePong})

	assert.Equal(t, int32(1), atomic.LoadInt32(&typed))
	assert.Equal(t, int32(2), atomic.LoadInt32(&all), "catch-all listeners see every message")
}

func TestHeartbeat(t *testing.T) {
	beats := make(chan Message, 1)
	url := newServer(t, func(conn *websocket.Conn, r *http.Request) {
		var msg Message
		if err := conn.ReadJSON(&msg); err == nil {
			beats <- msg
		}
		drain(conn)
	})

	cfg := testConfig(url)
	cfg.HeartbeatInterval = 10 * time.Millisecond
	c := NewClient(cfg)
	require.NoError(t, c.Connect(""))
	defer c.Close()

	select {
	case msg := <-beats:
		assert.Equal(t, MessageTypeHeartbeat, msg.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("no heartbeat received")
	}
}

func TestSendWhenDisconnected(t *testing.T) {
	c := NewClient(DefaultConfig())
	assert.ErrorIs(t, c.Send(MessageTypeHeartbeat, nil), ErrNotConnected)
}

func TestConnectFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	c := NewClient(testConfig(url))
	err := c.Connect("")
	require.Error(t, err)
	assert.Equal(t, StateError, c.State())
	assert.NotEmpty(t, c.GetStats().LastError)
}

func TestReconnectsAfterServerDrop(t *testing.T) {
	var connections int32
	url := newServer(t, func(conn *websocket.Conn, r *http.Request) {
		if atomic.AddInt32(&connections, 1) == 1 {
			return
		}
		drain(conn)
	})

	c := NewClient(testConfig(url))
	require.NoError(t, c.Connect(""))
	defer c.Close()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&connections) == 2 && c.IsConnected()
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, c.GetStats().ReconnectCount)
}

func TestCloseIsFinal(t *testing.T) {
	url := newServer(t, func(conn *websocket.Conn, r *http.Request) { drain(conn) })

	c := NewClient(testConfig(url))
	require.NoError(t, c.Connect(""))
	require.NoError(t, c.Close())

	assert.Equal(t, StateDisconnected, c.State())
	assert.Error(t, c.Connect(""))
}
