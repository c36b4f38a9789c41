package cmd

import (
	"context"
	"io"

	"github.com/zfogg/creatorhub/cli/pkg/api"
	"github.com/zfogg/creatorhub/cli/pkg/auth"
	"github.com/zfogg/creatorhub/cli/pkg/client"
	"github.com/zfogg/creatorhub/cli/pkg/config"
	"github.com/zfogg/creatorhub/cli/pkg/credentials"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
	"github.com/zfogg/creatorhub/cli/pkg/metrics"
	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
	"github.com/zfogg/creatorhub/cli/pkg/output"
	"github.com/zfogg/creatorhub/cli/pkg/prompter"
	"github.com/zfogg/creatorhub/cli/pkg/service"
	"github.com/zfogg/creatorhub/cli/pkg/session"
	"github.com/zfogg/creatorhub/cli/pkg/websocket"
)

// runtime wires the store, controller and session shared by one invocation
type runtime struct {
	store      *optimistic.Store
	controller *optimistic.Controller
	metrics    *metrics.Metrics
	session    *session.State
	out        *output.Printer
}

// newRuntime builds the runtime; user-facing output goes to w
func newRuntime(w io.Writer) (*runtime, error) {
	client.Init()

	r := &runtime{
		store:   optimistic.NewStore(),
		metrics: metrics.New(),
		session: session.New(),
		out:     output.New(w, output.GetOutputFormat()),
	}
	r.controller = optimistic.NewController(r.store, api.NewGateway(), optimistic.WithObserver(r.metrics))

	if _, err := auth.NewSessionRecovery().Restore(r.session); err != nil {
		logger.Warn("Could not restore session", "error", err)
	}
	return r, nil
}

func (r *runtime) deps() service.Deps {
	return service.Deps{
		Controller: r.controller,
		Session:    r.session,
		Out:        r.out,
		PageSize:   config.GetInt("feed.page_size"),
	}
}

func (r *runtime) prompter() *prompter.Prompter {
	return prompter.Default()
}

// startRealtime feeds pushed counts into the store until the returned
// function is called. It is a no-op when realtime is disabled or the user is
// logged out; connection failures only cost live updates.
func (r *runtime) startRealtime() func() {
	if !config.GetBool("realtime.enabled") || !r.session.LoggedIn() {
		return func() {}
	}
	creds, err := credentials.Load()
	if err != nil || creds == nil {
		return func() {}
	}

	ws := websocket.NewClient(websocket.ConfigFromSettings())
	bridge := websocket.NewBridge(r.store, func(t websocket.MessageType) {
		r.metrics.ObserveRealtime(string(t))
	})
	detach := bridge.Attach(ws)

	if err := ws.Connect(creds.AccessToken); err != nil {
		logger.Warn("Live updates unavailable", "error", err)
		detach()
		_ = ws.Close()
		return func() {}
	}
	return func() {
		detach()
		_ = ws.Close()
		stats := ws.GetStats()
		logger.Debug("Live updates stopped", "received", stats.MessagesReceived, "reconnects", stats.ReconnectCount)
	}
}

// serveMetrics exposes /metrics on metrics.addr while ctx is live
func (r *runtime) serveMetrics(ctx context.Context) func() {
	addr := config.GetString("metrics.addr")
	if addr == "" {
		return func() {}
	}

	untrack := r.metrics.TrackStore(r.store)
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := r.metrics.Serve(ctx, addr); err != nil {
			logger.Warn("Metrics server stopped", "addr", addr, "error", err)
		}
	}()
	return func() {
		cancel()
		<-done
		untrack()
	}
}
