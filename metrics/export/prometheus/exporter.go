package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrEthical07/authgate"
)

// Source is the engine surface the exporter scrapes. *authgate.Engine
// satisfies it.
type Source interface {
	MetricsSnapshot() authgate.MetricsSnapshot
	AuditDropped() uint64
}

type counterDef struct {
	id   authgate.MetricID
	desc *prometheus.Desc
}

func newCounterDef(id authgate.MetricID, name, help string) counterDef {
	return counterDef{
		id:   id,
		desc: prometheus.NewDesc(name, help, nil, nil),
	}
}

var counterDefs = []counterDef{
	newCounterDef(authgate.MetricLoginSuccess, "authgate_login_success_total", "Successful credential logins."),
	newCounterDef(authgate.MetricLoginFailure, "authgate_login_failure_total", "Rejected credential logins."),
	newCounterDef(authgate.MetricRegisterSuccess, "authgate_register_success_total", "Created accounts."),
	newCounterDef(authgate.MetricRegisterDuplicate, "authgate_register_duplicate_total", "Registrations rejected as duplicate."),
	newCounterDef(authgate.MetricBasicAuthAccepted, "authgate_basic_auth_accepted_total", "Requests authenticated via Basic credentials."),
	newCounterDef(authgate.MetricBasicAuthRejected, "authgate_basic_auth_rejected_total", "Basic credentials that failed to authenticate."),
	newCounterDef(authgate.MetricSessionCreated, "authgate_session_created_total", "Issued sessions."),
	newCounterDef(authgate.MetricSessionDestroyed, "authgate_session_destroyed_total", "Explicitly destroyed sessions."),
	newCounterDef(authgate.MetricSessionExpired, "authgate_session_expired_total", "Session lookups past the configured lifetime."),
	newCounterDef(authgate.MetricResetRequested, "authgate_password_reset_request_total", "Issued password reset tokens."),
	newCounterDef(authgate.MetricResetConfirmed, "authgate_password_reset_confirm_total", "Completed password resets."),
	newCounterDef(authgate.MetricResetRejected, "authgate_password_reset_rejected_total", "Reset confirmations with an unknown or consumed token."),
}

var auditDroppedDesc = prometheus.NewDesc(
	"authgate_audit_dropped_total",
	"Audit events dropped due to dispatcher backpressure.",
	nil, nil,
)

// Exporter exposes an engine's counters as Prometheus metrics. It reads a
// fresh snapshot on every Collect call and holds no state of its own.
type Exporter struct {
	source Source
}

// NewExporter creates a collector reading from source.
func NewExporter(source Source) *Exporter {
	return &Exporter{source: source}
}

// Describe implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	for _, def := range counterDefs {
		ch <- def.desc
	}
	ch <- auditDroppedDesc
}

// Collect implements prometheus.Collector.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	if e == nil || e.source == nil {
		return
	}

	snapshot := e.source.MetricsSnapshot()
	for _, def := range counterDefs {
		ch <- prometheus.MustNewConstMetric(
			def.desc,
			prometheus.CounterValue,
			float64(snapshot.Counters[def.id]),
		)
	}

	ch <- prometheus.MustNewConstMetric(
		auditDroppedDesc,
		prometheus.CounterValue,
		float64(e.source.AuditDropped()),
	)
}

// Handler returns an http.Handler serving the exporter on a private
// registry, ready to mount on /metrics.
func (e *Exporter) Handler() http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(e)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
