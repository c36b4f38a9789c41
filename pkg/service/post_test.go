package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clierrors "github.com/zfogg/creatorhub/cli/pkg/errors"
	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
	"github.com/zfogg/creatorhub/cli/pkg/output"
)

func TestPostLikeLoadsUnknownPost(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.handle("GET /api/v1/posts/p1", `{"post":{"id":"p1","like_count":9}}`)
	f.handle("POST /api/v1/posts/p1/like", `{"is_liked":true,"like_count":12}`)

	require.NoError(t, NewPostService(f.deps).Like(context.Background(), "p1"))

	p1, ok := f.store.Get("p1")
	require.True(t, ok)
	assert.True(t, p1.Flag(optimistic.FlagLiked))
	assert.Equal(t, 12, p1.Counter(optimistic.CounterLikes), "server count wins over the prediction")
	assert.Contains(t, f.output(), "Liked post p1 (12 likes)")
}

func TestPostUnlikeUsesDelete(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.seedPost("p1", 3, 0, true)
	f.handle("DELETE /api/v1/posts/p1/like", `{}`)

	require.NoError(t, NewPostService(f.deps).Like(context.Background(), "p1"))

	p1, _ := f.store.Get("p1")
	assert.False(t, p1.Flag(optimistic.FlagLiked))
	assert.Equal(t, 2, p1.Counter(optimistic.CounterLikes))
	assert.Contains(t, f.output(), "Unliked post p1 (2 likes)")
}

func TestPostLikeRejectedRollsBack(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.seedPost("p1", 3, 0, false)
	f.handleStatus("POST /api/v1/posts/p1/like", http.StatusConflict, `{"code":"conflict","message":"already liked"}`)

	err := NewPostService(f.deps).Like(context.Background(), "p1")

	var cliErr *clierrors.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierrors.ErrorTypeConflict, cliErr.Type)
	assert.Contains(t, cliErr.Message, "already liked")
	assert.True(t, cliErr.HasSuggestion())

	p1, _ := f.store.Get("p1")
	assert.False(t, p1.Flag(optimistic.FlagLiked))
	assert.Equal(t, 3, p1.Counter(optimistic.CounterLikes))
}

func TestPostSaveForbiddenRollsBack(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.seedPost("p1", 3, 0, false)
	f.handleStatus("POST /api/v1/posts/p1/save", http.StatusForbidden, `{"code":"forbidden","message":"saving is disabled"}`)

	err := NewPostService(f.deps).Save(context.Background(), "p1")

	var cliErr *clierrors.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierrors.ErrorTypeRejected, cliErr.Type)
	assert.Contains(t, cliErr.Message, "saving is disabled")

	p1, _ := f.store.Get("p1")
	assert.False(t, p1.Flag(optimistic.FlagSaved))
}

func TestPostSaveJSON(t *testing.T) {
	f := newFixture(t, output.FormatJSON)
	f.seedPost("p1", 0, 0, false)
	f.handle("POST /api/v1/posts/p1/save", `{"is_saved":true,"save_count":1}`)

	require.NoError(t, NewPostService(f.deps).Save(context.Background(), "p1"))
	assert.JSONEq(t,
		`{"id":"p1","action":"save","flags":{"liked":false,"saved":true},"counters":{"likeCount":0,"commentCount":0,"saveCount":1}}`,
		f.output())
}

func TestPostUnhideRemovesFromStore(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.handle("GET /api/v1/posts/hidden", `{"posts":[{"id":"p7","title":"Hidden","is_hidden":true}],"total_count":1}`)
	var method seen
	f.mux.HandleFunc("/api/v1/posts/p7/hide", func(w http.ResponseWriter, r *http.Request) {
		method.set(r.Method)
		_, _ = w.Write([]byte(`{"is_hidden":false}`))
	})

	svc := NewPostService(f.deps)
	require.NoError(t, svc.Hidden(1))
	_, ok := f.store.Get("p7")
	require.True(t, ok)

	require.NoError(t, svc.Unhide(context.Background(), "p7"))
	assert.Equal(t, http.MethodDelete, method.get())
	_, ok = f.store.Get("p7")
	assert.False(t, ok, "unhidden post leaves the hidden list")
}

func TestPostUnhideFailureKeepsPostHidden(t *testing.T) {
	f := newFixture(t, output.FormatText)
	e := optimistic.NewEntity("p7", optimistic.KindPost)
	e.Flags[optimistic.FlagHidden] = true
	f.store.Seed(e)
	f.handleStatus("DELETE /api/v1/posts/p7/hide", http.StatusInternalServerError, `{}`)

	require.Error(t, NewPostService(f.deps).Unhide(context.Background(), "p7"))

	p7, ok := f.store.Get("p7")
	require.True(t, ok)
	assert.True(t, p7.Flag(optimistic.FlagHidden))
}

func TestPostViewNotFound(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.handleStatus("GET /api/v1/posts/missing", http.StatusNotFound, `{"code":"not_found","message":"post not found"}`)

	err := NewPostService(f.deps).View("missing")
	require.Error(t, err)
	assert.Zero(t, f.store.Len())
}

func TestPostView(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.handle("GET /api/v1/posts/p1", `{"post":{"id":"p1","title":"Loop","author_username":"alice","like_count":2,"is_premium":true}}`)

	require.NoError(t, NewPostService(f.deps).View("p1"))
	assert.Contains(t, f.output(), "Title: Loop")
	assert.Contains(t, f.output(), "Premium: true")
	assert.Equal(t, 1, f.store.Len())
}

func TestPostSavedEmpty(t *testing.T) {
	f := newFixture(t, output.FormatText)
	f.handle("GET /api/v1/posts/saved", `{"posts":[]}`)

	require.NoError(t, NewPostService(f.deps).Saved(1))
	assert.Equal(t, "No saved posts.", f.output())
}
