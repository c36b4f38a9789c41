package websocket

import (
	json "github.com/json-iterator/go"
	"github.com/zfogg/creatorhub/cli/pkg/api"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
)

// countUpdate is the payload shared by the *_count_update messages
type countUpdate struct {
	PostID        string `json:"post_id"`
	CommentID     string `json:"comment_id"`
	Username      string `json:"username"`
	LikeCount     *int   `json:"like_count"`
	CommentCount  *int   `json:"comment_count"`
	FollowerCount *int   `json:"follower_count"`
}

// Bridge writes server-pushed counts into the entity store. Updates for
// entities the store does not hold are dropped.
type Bridge struct {
	store     *optimistic.Store
	onMessage func(MessageType)
}

// NewBridge creates a bridge into store. onMessage, when set, is told about
// every message the bridge sees.
func NewBridge(store *optimistic.Store, onMessage func(MessageType)) *Bridge {
	return &Bridge{store: store, onMessage: onMessage}
}

// Attach subscribes the bridge to c and returns the function that detaches it
func (b *Bridge) Attach(c *Client) func() {
	unsubs := []func(){
		c.On(MessageTypeLikeCountUpdate, func(m Message) { b.Apply(m) }),
		c.On(MessageTypeCommentCountUpdate, func(m Message) { b.Apply(m) }),
		c.On(MessageTypeFollowerCountUpdate, func(m Message) { b.Apply(m) }),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Apply patches the store from one message and reports whether an entity changed
func (b *Bridge) Apply(msg Message) bool {
	if b.onMessage != nil {
		b.onMessage(msg.Type)
	}

	var update countUpdate
	if err := json.Unmarshal(msg.Payload, &update); err != nil {
		logger.Debug("Ignoring malformed count update", "type", msg.Type, "error", err)
		return false
	}

	id, counter, value := target(msg.Type, update)
	if id == "" || value == nil {
		return false
	}

	_, ok := b.store.ApplyPatch(id, optimistic.Patch{Counters: map[string]int{counter: *value}})
	return ok
}

func target(t MessageType, u countUpdate) (id, counter string, value *int) {
	switch t {
	case MessageTypeLikeCountUpdate:
		id = u.PostID
		if u.CommentID != "" {
			id = u.CommentID
		}
		return id, optimistic.CounterLikes, u.LikeCount
	case MessageTypeCommentCountUpdate:
		return u.PostID, optimistic.CounterComments, u.CommentCount
	case MessageTypeFollowerCountUpdate:
		if u.Username == "" {
			return "", "", nil
		}
		return api.FollowEntityID(u.Username), optimistic.CounterFollowers, u.FollowerCount
	}
	return "", "", nil
}
