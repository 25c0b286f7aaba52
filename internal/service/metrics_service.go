package service

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsServiceConfig struct {
	Namespace string
}

// MetricsService owns a private registry. A nil *MetricsService is valid and records nothing.
type MetricsService struct {
	config    MetricsServiceConfig
	registry  *prometheus.Registry
	grants    *prometheus.CounterVec
	exchanges *prometheus.CounterVec
	revokes   *prometheus.CounterVec
	data      *prometheus.CounterVec
	clients   *prometheus.CounterVec
}

func NewMetricsService(config MetricsServiceConfig) *MetricsService {
	return &MetricsService{
		config: config,
	}
}

func (m *MetricsService) Init() error {
	if m.config.Namespace == "" {
		m.config.Namespace = "tinyoauth"
	}

	m.registry = prometheus.NewRegistry()

	m.grants = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.config.Namespace,
		Name:      "authorization_grants_total",
		Help:      "Authorization requests by outcome.",
	}, []string{"result"})

	m.exchanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.config.Namespace,
		Name:      "token_exchanges_total",
		Help:      "Token endpoint exchanges by outcome.",
	}, []string{"result"})

	m.revokes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.config.Namespace,
		Name:      "revocations_total",
		Help:      "Token and authorization revocations by kind.",
	}, []string{"kind"})

	m.data = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.config.Namespace,
		Name:      "client_data_operations_total",
		Help:      "Scoped data store operations by operation.",
	}, []string{"operation"})

	m.clients = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.config.Namespace,
		Name:      "client_operations_total",
		Help:      "Client registry mutations by operation.",
	}, []string{"operation"})

	collectorsToRegister := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.grants,
		m.exchanges,
		m.revokes,
		m.data,
		m.clients,
	}

	for _, collector := range collectorsToRegister {
		if err := m.registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

func (m *MetricsService) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsService) ObserveGrant(result string) {
	if m == nil || m.grants == nil {
		return
	}
	m.grants.WithLabelValues(result).Inc()
}

func (m *MetricsService) ObserveExchange(result string) {
	if m == nil || m.exchanges == nil {
		return
	}
	m.exchanges.WithLabelValues(result).Inc()
}

func (m *MetricsService) ObserveRevocation(kind string) {
	if m == nil || m.revokes == nil {
		return
	}
	m.revokes.WithLabelValues(kind).Inc()
}

func (m *MetricsService) ObserveDataOperation(operation string) {
	if m == nil || m.data == nil {
		return
	}
	m.data.WithLabelValues(operation).Inc()
}

func (m *MetricsService) ObserveClientOperation(operation string) {
	if m == nil || m.clients == nil {
		return
	}
	m.clients.WithLabelValues(operation).Inc()
}
