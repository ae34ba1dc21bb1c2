package services

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const responseTimeWindow = 1000

// Prometheus collectors are process-global; guard registration so tests can
// construct multiple MetricsService instances.
var (
	promInit         sync.Once
	promChatTotal    *prometheus.CounterVec
	promChatLatency  prometheus.Histogram
	promCitations    *prometheus.CounterVec
	promActiveStream prometheus.Gauge
)

func initPromCollectors() {
	promInit.Do(func() {
		promChatTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shoplite_chat_requests_total",
			Help: "Total number of assistant chat turns by intent",
		}, []string{"intent"})

		promChatLatency = promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "shoplite_chat_request_duration_seconds",
			Help:    "Assistant chat turn latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		})

		promCitations = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shoplite_citations_total",
			Help: "Total citations produced by the assistant, by validity",
		}, []string{"validity"})

		promActiveStream = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "shoplite_stream_connections_active",
			Help: "Number of active SSE stream connections",
		})
	})
}

// MetricsService aggregates assistant and streaming metrics for the admin
// dashboard and mirrors them into Prometheus.
type MetricsService struct {
	mu                 sync.Mutex
	startedAt          time.Time
	totalChats         int64
	intentDistribution map[string]int64
	responseTimes      []int64 // sliding window, milliseconds
	citationsTotal     int64
	citationsValid     int64
	activeConnections  int64
}

// NewMetricsService creates a metrics service with an empty window.
func NewMetricsService() *MetricsService {
	initPromCollectors()
	return &MetricsService{
		startedAt:          time.Now(),
		intentDistribution: make(map[string]int64),
	}
}

// TrackChat records one completed assistant turn.
func (m *MetricsService) TrackChat(intent string, responseTime time.Duration, validCitations, totalCitations int) {
	ms := responseTime.Milliseconds()

	m.mu.Lock()
	m.totalChats++
	m.intentDistribution[intent]++
	m.responseTimes = append(m.responseTimes, ms)
	if len(m.responseTimes) > responseTimeWindow {
		m.responseTimes = m.responseTimes[len(m.responseTimes)-responseTimeWindow:]
	}
	m.citationsTotal += int64(totalCitations)
	m.citationsValid += int64(validCitations)
	m.mu.Unlock()

	promChatTotal.WithLabelValues(intent).Inc()
	promChatLatency.Observe(responseTime.Seconds())
	if totalCitations > 0 {
		promCitations.WithLabelValues("valid").Add(float64(validCitations))
		promCitations.WithLabelValues("invalid").Add(float64(totalCitations - validCitations))
	}
}

// StreamConnected records a new SSE connection.
func (m *MetricsService) StreamConnected() {
	m.mu.Lock()
	m.activeConnections++
	m.mu.Unlock()
	promActiveStream.Inc()
}

// StreamDisconnected records a closed SSE connection.
func (m *MetricsService) StreamDisconnected() {
	m.mu.Lock()
	decremented := m.activeConnections > 0
	if decremented {
		m.activeConnections--
	}
	m.mu.Unlock()

	if decremented {
		promActiveStream.Dec()
	}
}

// MetricsSnapshot is the dashboard view of the aggregated metrics.
type MetricsSnapshot struct {
	TotalChats         int64            `json:"totalChats"`
	IntentDistribution map[string]int64 `json:"intentDistribution"`
	AvgResponseTimeMs  int64            `json:"avgResponseTime"`
	CitationAccuracy   float64          `json:"citationAccuracy"`
	APILatencyMs       int64            `json:"apiLatency"`
	ActiveConnections  int64            `json:"activeConnections"`
	UptimeSeconds      int64            `json:"uptime"`
}

// Snapshot returns a consistent copy of the current metrics. Citation
// accuracy is 100 when no citations have been produced yet.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var avg int64
	if len(m.responseTimes) > 0 {
		var sum int64
		for _, rt := range m.responseTimes {
			sum += rt
		}
		avg = sum / int64(len(m.responseTimes))
	}

	accuracy := 100.0
	if m.citationsTotal > 0 {
		accuracy = float64(m.citationsValid) / float64(m.citationsTotal) * 100
	}

	dist := make(map[string]int64, len(m.intentDistribution))
	for intent, count := range m.intentDistribution {
		dist[intent] = count
	}

	return MetricsSnapshot{
		TotalChats:         m.totalChats,
		IntentDistribution: dist,
		AvgResponseTimeMs:  avg,
		CitationAccuracy:   accuracy,
		APILatencyMs:       avg / 10,
		ActiveConnections:  m.activeConnections,
		UptimeSeconds:      int64(time.Since(m.startedAt).Seconds()),
	}
}
