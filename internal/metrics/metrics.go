// Package metrics is a minimal Prometheus-text metrics registry. It renders
// the exposition format directly rather than pulling in client_golang for a
// handful of counters.
package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Counter is a monotonically increasing counter.
type Counter struct {
	name  string
	help  string
	value atomic.Int64
}

func (c *Counter) Inc()         { c.value.Add(1) }
func (c *Counter) Add(n int64)  { c.value.Add(n) }
func (c *Counter) Value() int64 { return c.value.Load() }

// Gauge is a value that can go up and down.
type Gauge struct {
	name  string
	help  string
	value atomic.Int64
}

func (g *Gauge) Set(v int64)  { g.value.Store(v) }
func (g *Gauge) Inc()         { g.value.Add(1) }
func (g *Gauge) Value() int64 { return g.value.Load() }

// Registry holds metrics in registration order.
type Registry struct {
	mu       sync.Mutex
	counters []*Counter
	gauges   []*Gauge
	started  time.Time
}

func NewRegistry() *Registry {
	return &Registry{started: time.Now()}
}

func (r *Registry) NewCounter(name, help string) *Counter {
	c := &Counter{name: name, help: help}
	r.mu.Lock()
	r.counters = append(r.counters, c)
	r.mu.Unlock()
	return c
}

func (r *Registry) NewGauge(name, help string) *Gauge {
	g := &Gauge{name: name, help: help}
	r.mu.Lock()
	r.gauges = append(r.gauges, g)
	r.mu.Unlock()
	return g
}

// Handler renders every registered metric in Prometheus text format.
func (r *Registry) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

		fmt.Fprintf(w, "# HELP relaybot_uptime_seconds Time since start in seconds\n")
		fmt.Fprintf(w, "# TYPE relaybot_uptime_seconds gauge\n")
		fmt.Fprintf(w, "relaybot_uptime_seconds %d\n", int64(time.Since(r.started).Seconds()))

		r.mu.Lock()
		counters := append([]*Counter(nil), r.counters...)
		gauges := append([]*Gauge(nil), r.gauges...)
		r.mu.Unlock()

		for _, c := range counters {
			fmt.Fprintf(w, "# HELP %s %s\n", c.name, c.help)
			fmt.Fprintf(w, "# TYPE %s counter\n", c.name)
			fmt.Fprintf(w, "%s %d\n", c.name, c.Value())
		}
		for _, g := range gauges {
			fmt.Fprintf(w, "# HELP %s %s\n", g.name, g.help)
			fmt.Fprintf(w, "# TYPE %s gauge\n", g.name)
			fmt.Fprintf(w, "%s %d\n", g.name, g.Value())
		}
	}
}

// Default is the process-wide registry.
var Default = NewRegistry()

// Metrics used across the application.
var (
	DispatchTotal    = Default.NewCounter("relaybot_dispatch_total", "Total successful send dispatches")
	DispatchFailures = Default.NewCounter("relaybot_dispatch_failures_total", "Total failed send dispatches")
	HTTPRequests     = Default.NewCounter("relaybot_http_requests_total", "Total HTTP API requests")
	AuditEntries     = Default.NewGauge("relaybot_audit_entries", "Audit log entries appended since start")
)
