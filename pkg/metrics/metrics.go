package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zfogg/creatorhub/cli/pkg/logger"
	"github.com/zfogg/creatorhub/cli/pkg/optimistic"
)

const namespace = "creatorhub"

// Metrics holds the client-side Prometheus metrics. Each instance owns its
// registry so several can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// Mutation metrics
	MutationsTotal   *prometheus.CounterVec
	MutationDuration *prometheus.HistogramVec

	// Realtime metrics
	RealtimeMessagesTotal *prometheus.CounterVec

	// Store metrics
	StoreEntities prometheus.Gauge
}

// New creates and registers all metrics on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		MutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mutations_total",
				Help:      "Optimistic mutations by action and final status",
			},
			[]string{"action", "status"},
		),
		MutationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "mutation_duration_seconds",
				Help:      "Time from optimistic apply to settle in seconds",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"action"},
		),
		RealtimeMessagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "realtime_messages_total",
				Help:      "Realtime messages received by type",
			},
			[]string{"type"},
		),
		StoreEntities: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_entities",
				Help:      "Entities currently tracked by the local store",
			},
		),
	}
}

// Registry exposes the registry for gathering
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveMutation implements optimistic.Observer
func (m *Metrics) ObserveMutation(action optimistic.Action, status optimistic.Status, elapsed time.Duration) {
	m.MutationsTotal.WithLabelValues(string(action), string(status)).Inc()
	m.MutationDuration.WithLabelValues(string(action)).Observe(elapsed.Seconds())
}

// ObserveRealtime counts one realtime message
func (m *Metrics) ObserveRealtime(msgType string) {
	m.RealtimeMessagesTotal.WithLabelValues(msgType).Inc()
}

// TrackStore keeps the entity gauge in step with the store until the returned
// function is called
func (m *Metrics) TrackStore(store *optimistic.Store) func() {
	m.StoreEntities.Set(float64(store.Len()))
	return store.Subscribe(func(optimistic.Change) {
		m.StoreEntities.Set(float64(store.Len()))
	})
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

var _ optimistic.Observer = (*Metrics)(nil)
