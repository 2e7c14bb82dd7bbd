package obs

import (
	"testing"
	"time"
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("ListBuckets", 200, 5*time.Millisecond)
	m.ObserveRequest("ListBuckets", 200, 7*time.Millisecond)
	m.ObserveError("GetObject", "not_found")

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
		if mf.GetName() == "s3browse_requests_total" {
			if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 2 {
				t.Errorf("requests_total = %v, want 2", got)
			}
		}
	}
	for _, name := range []string{"s3browse_requests_total", "s3browse_request_duration_seconds", "s3browse_errors_total"} {
		if !found[name] {
			t.Errorf("metric %s not registered", name)
		}
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("ListBuckets", 200, time.Millisecond)
	m.ObserveError("ListBuckets", "transport")
}
