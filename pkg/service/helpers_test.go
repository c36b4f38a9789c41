package service

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/creatorhub/cli/pkg/api"
	"github.com/zfogg/creatorhub/cli/pkg/client"
	"github.com/zfogg/creatorhub/cli/pkg/config"
	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
	"github.com/zfogg/creatorhub/cli/pkg/output"
	"github.com/zfogg/creatorhub/cli/pkg/session"
)

// fixture wires services to a fake backend served by mux
type fixture struct {
	mux     *http.ServeMux
	store   *optimistic.Store
	session *session.State
	out     *bytes.Buffer
	deps    Deps
}

func newFixture(t *testing.T, format output.OutputFormat) *fixture {
	t.Helper()
	color.NoColor = true
	require.NoError(t, config.Init(filepath.Join(t.TempDir(), "config.toml")))

	f := &fixture{
		mux:     http.NewServeMux(),
		store:   optimistic.NewStore(),
		session: session.New(),
		out:     &bytes.Buffer{},
	}
	srv := httptest.NewServer(f.mux)
	t.Cleanup(srv.Close)
	client.Configure(srv.URL, 2*time.Second)
	t.Cleanup(client.ClearAuthToken)

	f.deps = Deps{
		Controller: optimistic.NewController(f.store, api.NewGateway()),
		Session:    f.session,
		Out:        output.New(f.out, format),
		PageSize:   10,
	}
	return f
}

func (f *fixture) handle(pattern, body string) {
	f.handleStatus(pattern, http.StatusOK, body)
}

func (f *fixture) handleStatus(pattern string, status int, body string) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func (f *fixture) seedPost(id string, likes, comments int, liked bool) {
	e := optimistic.NewEntity(id, optimistic.KindPost)
	e.Flags[optimistic.FlagLiked] = liked
	e.Counters[optimistic.CounterLikes] = likes
	e.Counters[optimistic.CounterComments] = comments
	f.store.Seed(e)
}

func (f *fixture) output() string {
	return strings.TrimSpace(f.out.String())
}

// seen records a value observed by a handler goroutine
type seen struct {
	mu sync.Mutex
	v  string
}

func (s *seen) set(v string) {
	s.mu.Lock()
	s.v = v
	s.mu.Unlock()
}

func (s *seen) get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v
}
