package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCounter(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("test_total", "test counter")

	if c.Value() != 0 {
		t.Fatalf("fresh counter must be zero, got %d", c.Value())
	}
	c.Inc()
	c.Add(4)
	if c.Value() != 5 {
		t.Fatalf("expected 5, got %d", c.Value())
	}
}

func TestGauge(t *testing.T) {
	r := NewRegistry()
	g := r.NewGauge("test_gauge", "test gauge")

	g.Set(10)
	g.Inc()
	if g.Value() != 11 {
		t.Fatalf("expected 11, got %d", g.Value())
	}
	g.Set(3)
	if g.Value() != 3 {
		t.Fatalf("set must overwrite, got %d", g.Value())
	}
}

func TestHandlerOutput(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("relay_sends_total", "Total sends")
	g := r.NewGauge("relay_queue_depth", "Queue depth")
	c.Add(7)
	g.Set(2)

	rec := httptest.NewRecorder()
	r.Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		"# TYPE relaybot_uptime_seconds gauge",
		"# HELP relay_sends_total Total sends",
		"# TYPE relay_sends_total counter",
		"relay_sends_total 7",
		"# TYPE relay_queue_depth gauge",
		"relay_queue_depth 2",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q:\n%s", want, body)
		}
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected content type %q", ct)
	}
}
