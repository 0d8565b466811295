package metrics

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// EndpointMetrics tracks metrics for a specific endpoint
type EndpointMetrics struct {
	Requests     int64
	Errors       int64
	TotalLatency int64
}

// UpstreamMetrics tracks calls to one 3C Plus action
type UpstreamMetrics struct {
	Calls        int64
	Failures     int64
	TotalLatency int64
}

// Metrics holds all application metrics
type Metrics struct {
	mu sync.RWMutex

	// Request metrics
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64

	// Request latency (in milliseconds)
	TotalLatency int64
	RequestCount int64

	// Gate metrics
	AuthRejections   int64
	MethodRejections int64

	// Report metrics
	ReportsGenerated int64
	ReportErrors     int64
	PagesFetched     int64
	CallsCounted     int64

	// Per-action upstream metrics
	Upstream map[string]*UpstreamMetrics

	// Endpoint-specific metrics
	EndpointMetrics map[string]*EndpointMetrics

	// Start time for uptime calculation
	StartTime time.Time
}

var globalMetrics *Metrics
var once sync.Once

// Init initializes the global metrics instance
func Init() {
	once.Do(func() {
		globalMetrics = New()
	})
}

// New creates an empty metrics instance
func New() *Metrics {
	return &Metrics{
		StartTime:       time.Now(),
		Upstream:        make(map[string]*UpstreamMetrics),
		EndpointMetrics: make(map[string]*EndpointMetrics),
	}
}

// Get returns the global metrics instance
func Get() *Metrics {
	Init()
	return globalMetrics
}

// IncrementRequests increments request counters
func (m *Metrics) IncrementRequests(success bool, latencyMs int64) {
	atomic.AddInt64(&m.TotalRequests, 1)
	atomic.AddInt64(&m.TotalLatency, latencyMs)
	atomic.AddInt64(&m.RequestCount, 1)

	if success {
		atomic.AddInt64(&m.SuccessfulRequests, 1)
	} else {
		atomic.AddInt64(&m.FailedRequests, 1)
	}
}

// IncrementAuthRejection counts requests refused for a bad api_token
func (m *Metrics) IncrementAuthRejection() {
	atomic.AddInt64(&m.AuthRejections, 1)
}

// IncrementMethodRejection counts requests refused for a non-GET method
func (m *Metrics) IncrementMethodRejection() {
	atomic.AddInt64(&m.MethodRejections, 1)
}

// IncrementReportGenerated increments report generation counters
func (m *Metrics) IncrementReportGenerated(success bool, totalCalls int) {
	if success {
		atomic.AddInt64(&m.ReportsGenerated, 1)
		atomic.AddInt64(&m.CallsCounted, int64(totalCalls))
	} else {
		atomic.AddInt64(&m.ReportErrors, 1)
	}
}

// IncrementPagesFetched counts listing pages received
func (m *Metrics) IncrementPagesFetched() {
	atomic.AddInt64(&m.PagesFetched, 1)
}

// TrackUpstream records one outbound call to the given action
func (m *Metrics) TrackUpstream(op string, success bool, latencyMs int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Upstream == nil {
		m.Upstream = make(map[string]*UpstreamMetrics)
	}

	um, exists := m.Upstream[op]
	if !exists {
		um = &UpstreamMetrics{}
		m.Upstream[op] = um
	}

	atomic.AddInt64(&um.Calls, 1)
	atomic.AddInt64(&um.TotalLatency, latencyMs)
	if !success {
		atomic.AddInt64(&um.Failures, 1)
	}
}

// TrackEndpoint tracks metrics for a specific endpoint
func (m *Metrics) TrackEndpoint(path, method string, statusCode int, latencyMs int64) {
	key := method + " " + path

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.EndpointMetrics == nil {
		m.EndpointMetrics = make(map[string]*EndpointMetrics)
	}

	em, exists := m.EndpointMetrics[key]
	if !exists {
		em = &EndpointMetrics{}
		m.EndpointMetrics[key] = em
	}

	atomic.AddInt64(&em.Requests, 1)
	atomic.AddInt64(&em.TotalLatency, latencyMs)
	if statusCode >= 400 {
		atomic.AddInt64(&em.Errors, 1)
	}
}

// GetAverageLatency returns average request latency in milliseconds
func (m *Metrics) GetAverageLatency() float64 {
	count := atomic.LoadInt64(&m.RequestCount)
	if count == 0 {
		return 0
	}
	total := atomic.LoadInt64(&m.TotalLatency)
	return float64(total) / float64(count)
}

// GetUptime returns the application uptime
func (m *Metrics) GetUptime() time.Duration {
	return time.Since(m.StartTime)
}

// CallMetricsSnapshot represents endpoint or upstream metrics in a snapshot
type CallMetricsSnapshot struct {
	Requests     int64   `json:"requests"`
	Errors       int64   `json:"errors"`
	ErrorRate    float64 `json:"error_rate"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

func newCallSnapshot(requests, errors, latency int64) CallMetricsSnapshot {
	s := CallMetricsSnapshot{Requests: requests, Errors: errors}
	if requests > 0 {
		s.ErrorRate = float64(errors) / float64(requests) * 100
		s.AvgLatencyMs = float64(latency) / float64(requests)
	}
	return s
}

// MetricsSnapshot represents a point-in-time snapshot of all metrics
type MetricsSnapshot struct {
	UptimeSeconds float64 `json:"uptime_seconds"`
	StartTime     string  `json:"start_time"`

	Requests struct {
		Total        int64   `json:"total"`
		Successful   int64   `json:"successful"`
		Failed       int64   `json:"failed"`
		AvgLatencyMs float64 `json:"avg_latency_ms"`
	} `json:"requests"`

	Gate struct {
		AuthRejections   int64 `json:"auth_rejections"`
		MethodRejections int64 `json:"method_rejections"`
	} `json:"gate"`

	Reports struct {
		Generated    int64 `json:"generated"`
		Errors       int64 `json:"errors"`
		PagesFetched int64 `json:"pages_fetched"`
		CallsCounted int64 `json:"calls_counted"`
	} `json:"reports"`

	System struct {
		Goroutines  int    `json:"goroutines"`
		HeapAllocMB uint64 `json:"heap_alloc_mb"`
		NumGC       uint32 `json:"num_gc"`
	} `json:"system"`

	Upstream  map[string]CallMetricsSnapshot `json:"upstream,omitempty"`
	Endpoints map[string]CallMetricsSnapshot `json:"endpoints,omitempty"`
}

// Snapshot returns a point-in-time snapshot of all metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	snapshot := MetricsSnapshot{}

	snapshot.UptimeSeconds = m.GetUptime().Seconds()
	snapshot.StartTime = m.StartTime.Format(time.RFC3339)

	snapshot.Requests.Total = atomic.LoadInt64(&m.TotalRequests)
	snapshot.Requests.Successful = atomic.LoadInt64(&m.SuccessfulRequests)
	snapshot.Requests.Failed = atomic.LoadInt64(&m.FailedRequests)
	snapshot.Requests.AvgLatencyMs = m.GetAverageLatency()

	snapshot.Gate.AuthRejections = atomic.LoadInt64(&m.AuthRejections)
	snapshot.Gate.MethodRejections = atomic.LoadInt64(&m.MethodRejections)

	snapshot.Reports.Generated = atomic.LoadInt64(&m.ReportsGenerated)
	snapshot.Reports.Errors = atomic.LoadInt64(&m.ReportErrors)
	snapshot.Reports.PagesFetched = atomic.LoadInt64(&m.PagesFetched)
	snapshot.Reports.CallsCounted = atomic.LoadInt64(&m.CallsCounted)

	snapshot.System.Goroutines = runtime.NumGoroutine()
	snapshot.System.HeapAllocMB = memStats.HeapAlloc / 1024 / 1024
	snapshot.System.NumGC = memStats.NumGC

	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.Upstream) > 0 {
		snapshot.Upstream = make(map[string]CallMetricsSnapshot, len(m.Upstream))
		for k, v := range m.Upstream {
			snapshot.Upstream[k] = newCallSnapshot(
				atomic.LoadInt64(&v.Calls),
				atomic.LoadInt64(&v.Failures),
				atomic.LoadInt64(&v.TotalLatency),
			)
		}
	}

	if len(m.EndpointMetrics) > 0 {
		snapshot.Endpoints = make(map[string]CallMetricsSnapshot, len(m.EndpointMetrics))
		for k, v := range m.EndpointMetrics {
			snapshot.Endpoints[k] = newCallSnapshot(
				atomic.LoadInt64(&v.Requests),
				atomic.LoadInt64(&v.Errors),
				atomic.LoadInt64(&v.TotalLatency),
			)
		}
	}

	return snapshot
}
