package metrics

import "testing"

func TestMemoryStatus(t *testing.T) {
	tests := []struct {
		heap, limit uint64
		want        string
	}{
		{10, 256, "healthy"},
		{220, 256, "degraded"},
		{300, 256, "unhealthy"},
	}
	for _, tt := range tests {
		if got := memoryStatus(tt.heap, tt.limit).Status; got != tt.want {
			t.Errorf("memoryStatus(%d, %d) = %s, want %s", tt.heap, tt.limit, got, tt.want)
		}
	}
}

func TestCheckUpstreamHealth(t *testing.T) {
	m := New()
	for i := 0; i < 10; i++ {
		m.TrackUpstream("impersonate", i < 2, 5)
	}
	if got := CheckUpstreamHealth(m.Snapshot()).Status; got != "degraded" {
		t.Errorf("status = %s, want degraded", got)
	}

	fresh := New()
	fresh.TrackUpstream("calls", false, 5)
	if got := CheckUpstreamHealth(fresh.Snapshot()).Status; got != "healthy" {
		t.Errorf("few samples should stay healthy, got %s", got)
	}
}

func TestDetermineOverallStatus(t *testing.T) {
	if got := DetermineOverallStatus(map[string]HealthStatus{"a": {Status: "healthy"}}); got != "healthy" {
		t.Errorf("got %s", got)
	}
	if got := DetermineOverallStatus(map[string]HealthStatus{"a": {Status: "healthy"}, "b": {Status: "degraded"}}); got != "degraded" {
		t.Errorf("got %s", got)
	}
	if got := DetermineOverallStatus(map[string]HealthStatus{"a": {Status: "degraded"}, "b": {Status: "unhealthy"}}); got != "unhealthy" {
		t.Errorf("got %s", got)
	}
}
