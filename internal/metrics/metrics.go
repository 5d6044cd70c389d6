// Package metrics — счётчики наблюдателя для Prometheus.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "support_watcher"

// причины пропуска
const (
	SkipNotGroup  = "not_group"
	SkipNoSender  = "no_sender"
	SkipBot       = "bot"
	SkipNoKeyword = "no_keyword"
	SkipAdmin     = "admin"
	SkipCooldown  = "cooldown"
)

// операции Telegram и кулдауна
const (
	OpAdmins   = "admins"
	OpForward  = "forward"
	OpSend     = "send"
	OpCooldown = "cooldown"
)

// Metrics общий для всех сессий; nil *Metrics ничего не пишет
type Metrics struct {
	registry *prometheus.Registry

	Messages      *prometheus.CounterVec
	Skipped       *prometheus.CounterVec
	Alerts        *prometheus.CounterVec
	RateLimited   *prometheus.CounterVec
	CollabErrors  *prometheus.CounterVec
	ActiveSession prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Incoming messages seen by the dispatcher",
		}, []string{"session"}),
		Skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_total",
			Help:      "Messages that did not produce an alert, by reason",
		}, []string{"reason"}),
		Alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_total",
			Help:      "Alerts delivered to the owner",
		}, []string{"priority"}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Flood-wait responses from Telegram",
		}, []string{"op"}),
		CollabErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collaborator_errors_total",
			Help:      "Failed Telegram or cooldown store calls other than rate limits",
		}, []string{"op"}),
		ActiveSession: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sessions currently handling events",
		}),
	}
	m.registry.MustRegister(m.Messages, m.Skipped, m.Alerts, m.RateLimited, m.CollabErrors, m.ActiveSession)
	return m
}

func (m *Metrics) Message(session string) {
	if m == nil {
		return
	}
	m.Messages.WithLabelValues(session).Inc()
}

func (m *Metrics) Skip(reason string) {
	if m == nil {
		return
	}
	m.Skipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) Alert(priority string) {
	if m == nil {
		return
	}
	m.Alerts.WithLabelValues(priority).Inc()
}

func (m *Metrics) RateLimit(op string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(op).Inc()
}

func (m *Metrics) Error(op string) {
	if m == nil {
		return
	}
	m.CollabErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) SessionUp() {
	if m == nil {
		return
	}
	m.ActiveSession.Inc()
}

func (m *Metrics) SessionDown() {
	if m == nil {
		return
	}
	m.ActiveSession.Dec()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve отдаёт /metrics на addr до отмены ctx.
func (m *Metrics) Serve(ctx context.Context, addr string, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics server failed", "error", err)
	}
}
