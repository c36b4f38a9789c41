package service

import (
	"net/http"
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
	"github.com/zfogg/creatorhub/cli/pkg/output"
)

const feedPage = `{"posts":[
	{"id":"p1","author_username":"alice","title":"First beat","like_count":4,"save_count":1,"comment_count":2,"is_liked":true},
	{"id":"p2","author_username":"bob","title":"Second beat","like_count":0}
],"total_count":3,"page":1,"page_size":2,"has_more":true}`

func TestFeedListSeedsStore(t *testing.T) {
	f := newFixture(t, output.FormatText)
	var query seen
	f.mux.HandleFunc("GET /api/v1/feed/trending", func(w http.ResponseWriter, r *http.Request) {
		query.set(r.URL.RawQuery)
		_, _ = w.Write([]byte(feedPage))
	})

	require.NoError(t, NewFeedService(f.deps).List("trending", 1))

	assert.Contains(t, query.get(), "page_size=10")
	assert.ElementsMatch(t, []string{"p1", "p2"}, f.store.IDs(optimistic.KindPost))
	p1, _ := f.store.Get("p1")
	assert.True(t, p1.Flag(optimistic.FlagLiked))
	assert.Equal(t, 4, p1.Counter(optimistic.CounterLikes))

	assert.Contains(t, f.output(), "First beat")
	assert.Contains(t, f.output(), "--page 2")
	assert.False(t, f.session.Loading())
}

func TestFeedListJSON(t *testing.T) {
	f := newFixture(t, output.FormatJSON)
	f.handle("GET /api/v1/feed/latest", feedPage)

	require.NoError(t, NewFeedService(f.deps).List("latest", 1))

	var decoded struct {
		Posts []struct {
			ID string `json:"id"`
		} `json:"posts"`
	}
	require.NoError(t, json.Unmarshal([]byte(f.output()), &decoded))
	assert.Len(t, decoded.Posts, 2)
}

func TestFeedListRejectsUnknownFeed(t *testing.T) {
	f := newFixture(t, output.FormatText)

	err := NewFeedService(f.deps).List("for-you", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feed")
}

func TestFeedListServerError(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.handleStatus("GET /api/v1/feed/timeline", http.StatusInternalServerError, `{"code":"internal","message":"boom"}`)

	err := NewFeedService(f.deps).List("timeline", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch timeline feed")
	assert.Zero(t, f.store.Len())
	assert.False(t, f.session.Loading())
}

func TestFeedListEmpty(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.handle("GET /api/v1/feed/timeline", `{"posts":[]}`)

	require.NoError(t, NewFeedService(f.deps).List("timeline", 1))
	assert.Contains(t, f.output(), "No posts")
}
