package websocket

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	json "github.com/json-iterator/go"
	"github.com/zfogg/creatorhub/cli/pkg/config"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeLikeCountUpdate     MessageType = "like_count_update"
	MessageTypeCommentCountUpdate  MessageType = "comment_count_update"
	MessageTypeFollowerCountUpdate MessageType = "follower_count_update"
	MessageTypeHeartbeat           MessageType = "heartbeat"
	MessageTypePong                MessageType = "pong"
	MessageTypeError               MessageType = "error"

	// MessageTypeAny subscribes to every message
	MessageTypeAny MessageType = ""
)

// ErrNotConnected is returned by Send while no connection is open
var ErrNotConnected = errors.New("websocket: not connected")

// Message is one frame exchanged with the server
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Handler receives messages on the read goroutine, in arrival order
type Handler func(Message)

// Config holds WebSocket client configuration
type Config struct {
	URL                  string
	ConnectTimeout       time.Duration
	HeartbeatInterval    time.Duration
	ReconnectBaseDelay   time.Duration
	ReconnectMaxDelay    time.Duration
	MaxReconnectAttempts int // negative means unlimited
}

// DefaultConfig returns a development configuration
func DefaultConfig() Config {
	return Config{
		URL:                  "ws://localhost:8787/api/v1/ws",
		ConnectTimeout:       15 * time.Second,
		HeartbeatInterval:    30 * time.Second,
		ReconnectBaseDelay:   2 * time.Second,
		ReconnectMaxDelay:    30 * time.Second,
		MaxReconnectAttempts: -1,
	}
}

// ConfigFromSettings builds the configuration from the realtime.* keys
func ConfigFromSettings() Config {
	cfg := DefaultConfig()
	if u := config.GetString("realtime.url"); u != "" {
		cfg.URL = u
	}
	if hb := config.Seconds("realtime.heartbeat_seconds"); hb > 0 {
		cfg.HeartbeatInterval = hb
	}
	if timeout := config.Seconds("api.timeout"); timeout > 0 {
		cfg.ConnectTimeout = timeout
	}
	return cfg
}

// ConnectionState represents the state of the WebSocket connection
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateError
)

// ConnectionStats holds connection statistics
type ConnectionStats struct {
	MessagesReceived int64
	MessagesSent     int64
	ReconnectCount   int
	LastError        string
	ConnectedAt      time.Time
	DisconnectedAt   time.Time
}

// Client keeps one WebSocket connection open, reconnecting with backoff until
// Close is called. A closed client cannot be reused.
type Client struct {
	config Config
	state  atomic.Value // ConnectionState

	mu    sync.RWMutex
	conn  *websocket.Conn
	token string

	writeMu sync.Mutex

	listenersMu  sync.RWMutex
	listeners    map[MessageType]map[int]Handler
	nextListener int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	statsLock sync.RWMutex
	stats     ConnectionStats
}

// NewClient creates a new WebSocket client
func NewClient(config Config) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		config:    config,
		listeners: make(map[MessageType]map[int]Handler),
		ctx:       ctx,
		cancel:    cancel,
	}
	c.state.Store(StateDisconnected)
	return c
}

// SetAuthToken sets the bearer token sent on the next dial
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Connect dials the server and starts reading in the background
func (c *Client) Connect(token string) error {
	if c.ctx.Err() != nil {
		return errors.New("websocket: client closed")
	}
	if st := c.State(); st == StateConnected || st == StateReconnecting {
		return nil
	}
	c.SetAuthToken(token)
	c.setState(StateConnecting)

	conn, err := c.dial()
	if err != nil {
		c.setState(StateError)
		c.recordError(err.Error())
		return fmt.Errorf("connect %s: %w", c.config.URL, err)
	}
	c.attach(conn)

	c.wg.Add(1)
	go c.run(conn)

	logger.Debug("WebSocket connected", "url", c.config.URL)
	return nil
}

// Close stops reconnecting, closes the connection and waits for the
// background goroutines to exit
func (c *Client) Close() error {
	c.cancel()

	c.mu.Lock()
	var err error
	if c.conn != nil {
		err = c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	c.wg.Wait()
	c.setState(StateDisconnected)
	c.recordDisconnected()

	logger.Debug("WebSocket closed")
	return err
}

// IsConnected returns true if the connection is established
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// State returns the current connection state
func (c *Client) State() ConnectionState {
	return c.state.Load().(ConnectionState)
}

// On subscribes to a message type and returns the function that unsubscribes
func (c *Client) On(msgType MessageType, handler Handler) func() {
	c.listenersMu.Lock()
	id := c.nextListener
	c.nextListener++
	if c.listeners[msgType] == nil {
		c.listeners[msgType] = make(map[int]Handler)
	}
	c.listeners[msgType][id] = handler
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		delete(c.listeners[msgType], id)
	}
}

// Send sends a message to the server
func (c *Client) Send(msgType MessageType, payload interface{}) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	msg := Message{Type: msgType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		msg.Payload = raw
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	c.writeMu.Unlock()
	if err != nil {
		return err
	}

	c.recordMessageSent()
	return nil
}

// GetStats returns connection statistics
func (c *Client) GetStats() ConnectionStats {
	c.statsLock.RLock()
	defer c.statsLock.RUnlock()
	return c.stats
}

func (c *Client) dial() (*websocket.Conn, error) {
	u, err := url.Parse(c.config.URL)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}

	dialer := websocket.Dialer{HandshakeTimeout: c.config.ConnectTimeout}
	conn, _, err := dialer.DialContext(c.ctx, u.String(), nil)
	return conn, err
}

func (c *Client) attach(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.setState(StateConnected)
	c.recordConnected()
}

// run serves one connection at a time until the client is closed or the
// reconnect budget runs out
func (c *Client) run(conn *websocket.Conn) {
	defer c.wg.Done()

	for conn != nil {
		c.serve(conn)
		if c.ctx.Err() != nil {
			return
		}
		conn = c.reconnect()
	}
}

func (c *Client) serve(conn *websocket.Conn) {
	connCtx, stop := context.WithCancel(c.ctx)
	defer stop()

	c.wg.Add(1)
	go c.heartbeatLoop(connCtx)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() == nil {
				c.recordError(err.Error())
				logger.Warn("WebSocket read error", "error", err)
			}
			c.detach(conn)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warn("Dropping malformed WebSocket message", "error", err)
			continue
		}

		c.recordMessageReceived()
		c.dispatch(msg)
	}
}

func (c *Client) detach(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()
	conn.Close()
	c.recordDisconnected()
}

// dispatch runs type listeners then catch-all listeners, each in subscription
// order
func (c *Client) dispatch(msg Message) {
	c.listenersMu.RLock()
	handlers := sortedHandlers(c.listeners[msg.Type])
	if msg.Type != MessageTypeAny {
		handlers = append(handlers, sortedHandlers(c.listeners[MessageTypeAny])...)
	}
	c.listenersMu.RUnlock()

	for _, h := range handlers {
		h(msg)
	}
}

func sortedHandlers(m map[int]Handler) []Handler {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Handler, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func (c *Client) heartbeatLoop(ctx context.Context) {
	defer c.wg.Done()
	if c.config.HeartbeatInterval <= 0 {
		return
	}

	ticker := time.NewTicker(c.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Send(MessageTypeHeartbeat, nil); err != nil {
				logger.Debug("Failed to send heartbeat", "error", err)
			}
		}
	}
}

// reconnect dials with exponential backoff and jitter. It returns nil when
// the client was closed or the attempt budget is spent.
func (c *Client) reconnect() *websocket.Conn {
	c.setState(StateReconnecting)
	delay := c.config.ReconnectBaseDelay

	for attempt := 0; c.config.MaxReconnectAttempts < 0 || attempt < c.config.MaxReconnectAttempts; attempt++ {
		wait := delay + jitter(delay)
		logger.Debug("Reconnecting WebSocket", "attempt", attempt+1, "wait_ms", wait.Milliseconds())

		select {
		case <-c.ctx.Done():
			return nil
		case <-time.After(wait):
		}

		conn, err := c.dial()
		if err != nil {
			c.recordError(err.Error())
			delay *= 2
			if delay > c.config.ReconnectMaxDelay {
				delay = c.config.ReconnectMaxDelay
			}
			continue
		}

		c.attach(conn)
		c.statsLock.Lock()
		c.stats.ReconnectCount++
		c.statsLock.Unlock()
		logger.Debug("WebSocket reconnected")
		return conn
	}

	c.setState(StateError)
	logger.Error("Max reconnection attempts reached", "url", c.config.URL)
	return nil
}

func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(d)/2 + 1))
}

func (c *Client) setState(state ConnectionState) {
	c.state.Store(state)
}

func (c *Client) recordMessageReceived() {
	c.statsLock.Lock()
	c.stats.MessagesReceived++
	c.statsLock.Unlock()
}

func (c *Client) recordMessageSent() {
	c.statsLock.Lock()
	c.stats.MessagesSent++
	c.statsLock.Unlock()
}

func (c *Client) recordError(errMsg string) {
	c.statsLock.Lock()
	c.stats.LastError = errMsg
	c.statsLock.Unlock()
}

func (c *Client) recordConnected() {
	c.statsLock.Lock()
	c.stats.ConnectedAt = time.Now()
	c.statsLock.Unlock()
}

func (c *Client) recordDisconnected() {
	c.statsLock.Lock()
	c.stats.DisconnectedAt = time.Now()
	c.statsLock.Unlock()
}
