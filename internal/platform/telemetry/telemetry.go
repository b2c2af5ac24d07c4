// Package telemetry provides request metrics for the claim API using only
// standard library constructs: counters, gauges and Prometheus-style
// histograms, plus a text exposition endpoint. Request-level tracing is
// covered by the structured request log, so no tracing SDK is pulled in.
package telemetry

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

// Config holds telemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Enabled toggles metric collection; the /metrics endpoint stays up
	// either way so scrapers do not flap.
	Enabled *bool
}

func (c *Config) enabled() bool {
	if c.Enabled == nil {
		return true
	}
	return *c.Enabled
}

func (c *Config) applyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "claimlens-server"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.0.0"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
}

// BoolPtr is a helper to create a *bool for Config fields.
func BoolPtr(b bool) *bool {
	return &b
}

// durationBuckets are the histogram bucket boundaries (in seconds) for HTTP
// request duration.
var durationBuckets = []float64{
	0.010, 0.025, 0.050, 0.100, 0.250, 0.500, 1.0, 2.5, 5.0, 10.0,
}

// segmentBuckets are the histogram bucket boundaries for X12 segment counts
// per parsed transaction.
var segmentBuckets = []float64{
	10, 25, 50, 100, 250, 500, 1_000, 5_000, 10_000,
}

// histogram is a thread-safe histogram with configurable bucket boundaries.
// Bucket counts are non-cumulative in storage; cumulative counts are computed
// at export time.
type histogram struct {
	boundaries   []float64
	bucketCounts []int64
	count        int64
	sum          uint64     // math.Float64bits for atomic add
	mu           sync.Mutex // protects bucketCounts
}

func newHistogram(boundaries []float64) *histogram {
	return &histogram{
		boundaries:   boundaries,
		bucketCounts: make([]int64, len(boundaries)),
	}
}

// Observe records a single value.
func (h *histogram) Observe(v float64) {
	atomic.AddInt64(&h.count, 1)
	atomicAddFloat64(&h.sum, v)

	h.mu.Lock()
	for i, b := range h.boundaries {
		if v <= b {
			h.bucketCounts[i]++
			h.mu.Unlock()
			return
		}
	}
	// Value exceeds all boundaries — counted in +Inf at export.
	h.mu.Unlock()
}

// Count returns the total number of observations.
func (h *histogram) Count() int64 {
	return atomic.LoadInt64(&h.count)
}

// Sum returns the total sum of all observations.
func (h *histogram) Sum() float64 {
	return math.Float64frombits(atomic.LoadUint64(&h.sum))
}

func (h *histogram) cumulativeBuckets() []int64 {
	h.mu.Lock()
	raw := make([]int64, len(h.bucketCounts))
	copy(raw, h.bucketCounts)
	h.mu.Unlock()

	cum := make([]int64, len(raw))
	var running int64
	for i, c := range raw {
		running += c
		cum[i] = running
	}
	return cum
}

// atomicAddFloat64 performs an atomic add on a uint64 that stores a float64
// using CAS.
func atomicAddFloat64(addr *uint64, delta float64) {
	for {
		old := atomic.LoadUint64(addr)
		newVal := math.Float64frombits(old) + delta
		if atomic.CompareAndSwapUint64(addr, old, math.Float64bits(newVal)) {
			return
		}
	}
}

type counterStore struct {
	mu    sync.RWMutex
	items map[string]*int64
}

func newCounterStore() *counterStore {
	return &counterStore{items: make(map[string]*int64)}
}

func (s *counterStore) inc(key string) {
	s.mu.RLock()
	p, ok := s.items[key]
	s.mu.RUnlock()
	if ok {
		atomic.AddInt64(p, 1)
		return
	}
	s.mu.Lock()
	p, ok = s.items[key]
	if !ok {
		v := int64(1)
		s.items[key] = &v
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	atomic.AddInt64(p, 1)
}

func (s *counterStore) get(key string) int64 {
	s.mu.RLock()
	p, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return 0
	}
	return atomic.LoadInt64(p)
}

func (s *counterStore) snapshot() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make(map[string]int64, len(s.items))
	for k, p := range s.items {
		cp[k] = atomic.LoadInt64(p)
	}
	return cp
}

type gaugeStore struct {
	mu    sync.RWMutex
	items map[string]*int64
}

func newGaugeStore() *gaugeStore {
	return &gaugeStore{items: make(map[string]*int64)}
}

func (s *gaugeStore) add(name string, delta int64) {
	s.mu.RLock()
	p, ok := s.items[name]
	s.mu.RUnlock()
	if ok {
		atomic.AddInt64(p, delta)
		return
	}
	s.mu.Lock()
	p, ok = s.items[name]
	if !ok {
		v := delta
		s.items[name] = &v
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	atomic.AddInt64(p, delta)
}

func (s *gaugeStore) set(name string, val int64) {
	s.mu.RLock()
	p, ok := s.items[name]
	s.mu.RUnlock()
	if ok {
		atomic.StoreInt64(p, val)
		return
	}
	s.mu.Lock()
	p, ok = s.items[name]
	if !ok {
		v := val
		s.items[name] = &v
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	atomic.StoreInt64(p, val)
}

func (s *gaugeStore) get(name string) int64 {
	s.mu.RLock()
	p, ok := s.items[name]
	s.mu.RUnlock()
	if !ok {
		return 0
	}
	return atomic.LoadInt64(p)
}

// labeledHistogramStore keys histograms by (method, route, status_code).
type labeledHistogramStore struct {
	mu    sync.RWMutex
	items map[string]*histogram
}

func newLabeledHistogramStore() *labeledHistogramStore {
	return &labeledHistogramStore{items: make(map[string]*histogram)}
}

func (s *labeledHistogramStore) getOrCreate(key string, boundaries []float64) *histogram {
	s.mu.RLock()
	h, ok := s.items[key]
	s.mu.RUnlock()
	if ok {
		return h
	}
	s.mu.Lock()
	h, ok = s.items[key]
	if !ok {
		h = newHistogram(boundaries)
		s.items[key] = h
	}
	s.mu.Unlock()
	return h
}

func (s *labeledHistogramStore) snapshot() map[string]*histogram {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make(map[string]*histogram, len(s.items))
	for k, v := range s.items {
		cp[k] = v
	}
	return cp
}

// LabelsKey builds the map key for a labeled histogram. Exported so tests
// can construct the same key.
func LabelsKey(method, route, statusCode string) string {
	return method + "|" + route + "|" + statusCode
}

// Provider manages all metric state.
type Provider struct {
	cfg Config

	requestDuration *labeledHistogramStore
	segmentCounts   *histogram
	counters        *counterStore
	gauges          *gaugeStore
}

// NewProvider creates and initialises the telemetry provider.
func NewProvider(cfg Config) *Provider {
	cfg.applyDefaults()
	return &Provider{
		cfg:             cfg,
		requestDuration: newLabeledHistogramStore(),
		segmentCounts:   newHistogram(segmentBuckets),
		counters:        newCounterStore(),
		gauges:          newGaugeStore(),
	}
}

// OperationCounter increments the claims operation counter. Kind is the
// transaction kind ("837", "835" or "claim") and operation is one of parse,
// analyze or plan.
func (p *Provider) OperationCounter(kind, operation string) {
	if !p.cfg.enabled() {
		return
	}
	p.counters.inc("claims.operation.count|" + kind + "|" + operation)
}

// ObserveSegments records the segment count of a parsed transaction.
func (p *Provider) ObserveSegments(n int) {
	if !p.cfg.enabled() {
		return
	}
	p.segmentCounts.Observe(float64(n))
}

// SetDBPoolActive sets the db pool active connections gauge.
func (p *Provider) SetDBPoolActive(n int64) {
	p.gauges.set("db.pool.active_connections", n)
}

// SetDBPoolIdle sets the db pool idle connections gauge.
func (p *Provider) SetDBPoolIdle(n int64) {
	p.gauges.set("db.pool.idle_connections", n)
}

// GetCounter returns the current value of the claims operation counter for
// the given labels.
func (p *Provider) GetCounter(kind, operation string) int64 {
	return p.counters.get("claims.operation.count|" + kind + "|" + operation)
}

// GetRequestHistogram returns the labeled request duration histogram, or nil.
func (p *Provider) GetRequestHistogram(key string) *histogram {
	p.requestDuration.mu.RLock()
	defer p.requestDuration.mu.RUnlock()
	return p.requestDuration.items[key]
}

// GetGauge returns the current value of the named gauge.
func (p *Provider) GetGauge(name string) int64 {
	return p.gauges.get(name)
}

// Middleware returns an echo middleware that records HTTP server metrics.
func (p *Provider) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !p.cfg.enabled() {
				return next(c)
			}

			p.gauges.add("http.server.active_requests", 1)
			start := time.Now()
			req := c.Request()

			err := next(c)

			duration := time.Since(start).Seconds()
			p.gauges.add("http.server.active_requests", -1)

			// Route pattern, not the actual path, to bound cardinality.
			route := c.Path()
			if route == "" {
				route = req.URL.Path
			}
			key := LabelsKey(req.Method, route, fmt.Sprintf("%d", c.Response().Status))
			p.requestDuration.getOrCreate(key, durationBuckets).Observe(duration)

			return err
		}
	}
}

// PrometheusHandler returns an echo handler that serves metrics in Prometheus
// text exposition format.
func (p *Provider) PrometheusHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		var b strings.Builder

		b.WriteString("# HELP http_server_request_duration_seconds Duration of HTTP requests in seconds.\n")
		b.WriteString("# TYPE http_server_request_duration_seconds histogram\n")
		for key, h := range p.requestDuration.snapshot() {
			parts := strings.SplitN(key, "|", 3)
			if len(parts) != 3 {
				continue
			}
			labels := fmt.Sprintf("method=%q,route=%q,status_code=%q", parts[0], parts[1], parts[2])
			writeHistogram(&b, "http_server_request_duration_seconds", labels, h, durationBuckets)
		}
		b.WriteByte('\n')

		b.WriteString("# HELP http_server_active_requests Number of active HTTP requests.\n")
		b.WriteString("# TYPE http_server_active_requests gauge\n")
		fmt.Fprintf(&b, "http_server_active_requests %d\n", p.gauges.get("http.server.active_requests"))
		b.WriteByte('\n')

		b.WriteString("# HELP x12_transaction_segments Segment count per parsed X12 transaction.\n")
		b.WriteString("# TYPE x12_transaction_segments histogram\n")
		if p.segmentCounts.Count() > 0 {
			writeHistogram(&b, "x12_transaction_segments", "", p.segmentCounts, segmentBuckets)
		}
		b.WriteByte('\n')

		b.WriteString("# HELP claims_operation_count Total claim operations by transaction kind and operation.\n")
		b.WriteString("# TYPE claims_operation_count counter\n")
		for key, val := range p.counters.snapshot() {
			parts := strings.SplitN(key, "|", 3)
			if len(parts) == 3 && parts[0] == "claims.operation.count" {
				fmt.Fprintf(&b, "claims_operation_count{kind=%q,operation=%q} %d\n",
					parts[1], parts[2], val)
			}
		}
		b.WriteByte('\n')

		for _, g := range []struct {
			promName string
			name     string
			help     string
		}{
			{"db_pool_active_connections", "db.pool.active_connections", "Number of active database pool connections."},
			{"db_pool_idle_connections", "db.pool.idle_connections", "Number of idle database pool connections."},
		} {
			fmt.Fprintf(&b, "# HELP %s %s\n", g.promName, g.help)
			fmt.Fprintf(&b, "# TYPE %s gauge\n", g.promName)
			fmt.Fprintf(&b, "%s %d\n", g.promName, p.gauges.get(g.name))
			b.WriteByte('\n')
		}

		return c.String(http.StatusOK, b.String())
	}
}

func writeHistogram(b *strings.Builder, name, labels string, h *histogram, boundaries []float64) {
	cum := h.cumulativeBuckets()
	total := h.Count()

	labelsPrefix := ""
	labelsSuffix := ""
	if labels != "" {
		labelsPrefix = labels + ","
		labelsSuffix = "{" + labels + "}"
	}

	for i, boundary := range boundaries {
		if labels != "" {
			fmt.Fprintf(b, "%s_bucket{%sle=\"%g\"} %d\n", name, labelsPrefix, boundary, cum[i])
		} else {
			fmt.Fprintf(b, "%s_bucket{le=\"%g\"} %d\n", name, boundary, cum[i])
		}
	}

	// +Inf bucket.
	if labels != "" {
		fmt.Fprintf(b, "%s_bucket{%sle=\"+Inf\"} %d\n", name, labelsPrefix, total)
	} else {
		fmt.Fprintf(b, "%s_bucket{le=\"+Inf\"} %d\n", name, total)
	}

	fmt.Fprintf(b, "%s_sum%s %g\n", name, labelsSuffix, h.Sum())
	fmt.Fprintf(b, "%s_count%s %d\n", name, labelsSuffix, total)
}
