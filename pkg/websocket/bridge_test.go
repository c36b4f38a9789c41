package websocket

import (
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/creatorhub/cli/pkg/api"
	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
)

func seededStore() *optimistic.Store {
	store := optimistic.NewStore()
	store.Seed(
		api.PostEntity(api.Post{ID: "p1", LikeCount: 1, CommentCount: 1}),
		api.CommentEntity(api.Comment{ID: "c1", PostID: "p1"}),
		api.FollowEntity(api.User{Username: "alice", FollowerCount: 5}),
	)
	return store
}

func TestBridgeApply(t *testing.T) {
	testCases := []struct {
		name    string
		msg     Message
		id      string
		counter string
		want    int
	}{
		{"post likes", Message{Type: MessageTypeLikeCountUpdate, Payload: []byte(`{"post_id":"p1","like_count":9}`)}, "p1", optimistic.CounterLikes, 9},
		{"comment likes", Message{Type: MessageTypeLikeCountUpdate, Payload: []byte(`{"post_id":"p1","comment_id":"c1","like_count":4}`)}, "c1", optimistic.CounterLikes, 4},
		{"comments", Message{Type: MessageTypeCommentCountUpdate, Payload: []byte(`{"post_id":"p1","comment_count":12}`)}, "p1", optimistic.CounterComments, 12},
		{"followers", Message{Type: MessageTypeFollowerCountUpdate, Payload: []byte(`{"username":"alice","follower_count":6}`)}, api.FollowEntityID("alice"), optimistic.CounterFollowers, 6},
		{"negative clamps", Message{Type: MessageTypeLikeCountUpdate, Payload: []byte(`{"post_id":"p1","like_count":-3}`)}, "p1", optimistic.CounterLikes, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := seededStore()
			b := NewBridge(store, nil)

			require.True(t, b.Apply(tc.msg))
			e, ok := store.Get(tc.id)
			require.True(t, ok)
			assert.Equal(t, tc.want, e.Counter(tc.counter))
		})
	}
}

func TestBridgeIgnoresWhatItCannotPlace(t *testing.T) {
	store := seededStore()
	before, _ := store.Get("p1")
	var seen []MessageType
	b := NewBridge(store, func(t MessageType) { seen = append(seen, t) })

	msgs := []Message{
		{Type: MessageTypeLikeCountUpdate, Payload: []byte(`{"post_id":"unknown","like_count":3}`)},
		{Type: MessageTypeLikeCountUpdate, Payload: []byte(`{"post_id":"p1"}`)},
		{Type: MessageTypeCommentCountUpdate, Payload: []byte(`not json`)},
		{Type: MessageTypeFollowerCountUpdate, Payload: []byte(`{"follower_count":3}`)},
	}
	for _, m := range msgs {
		assert.False(t, b.Apply(m))
	}

	after, _ := store.Get("p1")
	assert.Equal(t, before, after)
	assert.Equal(t, 3, store.Len())
	assert.Len(t, seen, len(msgs))
}

func TestBridgeOverWebsocket(t *testing.T) {
	url := newServer(t, func(conn *websocket.Conn, r *http.Request) {
		_ = conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"type":"comment_count_update","payload":{"post_id":"p1","comment_count":7}}`))
		drain(conn)
	})

	store := seededStore()
	c := NewClient(testConfig(url))
	detach := NewBridge(store, nil).Attach(c)
	defer detach()

	require.NoError(t, c.Connect(""))
	defer c.Close()

	require.Eventually(t, func() bool {
		e, _ := store.Get("p1")
		return e.Counter(optimistic.CounterComments) == 7
	}, 2*time.Second, 10*time.Millisecond)
}
