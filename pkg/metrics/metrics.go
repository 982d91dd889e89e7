// Package metrics registra as métricas Prometheus expostas em /metrics
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RotationRuns conta as rodadas por grupo e resultado (ok, erro)
	RotationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_rotation_runs_total",
		Help: "Total de rodadas de rotação por grupo e resultado",
	}, []string{"group", "result"})

	// RotationAccounts conta as contas processadas por grupo e destino (rotacionada, sobra)
	RotationAccounts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_rotation_accounts_total",
		Help: "Total de contas processadas pela rotação por grupo e destino",
	}, []string{"group", "outcome"})

	RotationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_rotation_duration_seconds",
		Help:    "Duração da rodada de rotação em segundos",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"group"})

	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_reports_generated_total",
		Help: "Total de pacotes de relatório gerados por grupo",
	}, []string{"group"})

	RegistrySyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_registry_syncs_total",
		Help: "Total de sincronizações do cadastro de vendedores por resultado",
	}, []string{"result"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_http_requests_total",
		Help: "Total de requisições HTTP por método e status",
	}, []string{"method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_http_request_duration_seconds",
		Help:    "Duração das requisições HTTP em segundos",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

const (
	ResultOK    = "ok"
	ResultError = "erro"

	OutcomeRotated  = "rotacionada"
	OutcomeLeftover = "sobra"
)

// ObserveRun registra o resultado e a duração de uma rodada
func ObserveRun(group string, started time.Time, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}

	RotationRuns.WithLabelValues(group, result).Inc()
	RotationDuration.WithLabelValues(group).Observe(time.Since(started).Seconds())
}

// ObserveRequest registra uma requisição HTTP finalizada
func ObserveRequest(method string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method).Observe(duration.Seconds())
}
