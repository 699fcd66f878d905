package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/login", "POST", 200, 10*time.Millisecond)
	m.RecordRequest("/login", "POST", 200, 30*time.Millisecond)
	m.RecordError("/login", "POST", "VALIDATION_FAILED")
	m.RecordFlowOutcome("login", "succeeded")
	m.RecordFlowOutcome("login", "succeeded")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/login|POST|200"])
	assert.Equal(t, int64(20), snap.AvgLatencyMilli["/login|POST|200"])
	assert.Equal(t, int64(1), snap.Errors["/login|POST|VALIDATION_FAILED"])
	assert.Equal(t, int64(2), snap.Flows["login|succeeded"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordFlowOutcome("login", "failed")
	assert.Empty(t, m.Snapshot().Requests)
}
