package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.IncLessonCommit("created")
	m.IncLessonCommit("created")
	m.IncLessonCommit("conflict")
	m.IncOutboxDispatch("sent")
	m.ObserveHTTP("POST", "/api/v1/lessons", "201", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LessonCommits.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LessonCommits.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OutboxDispatched.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/lessons", "201")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncLessonCommit("created")
		m.IncOutboxDispatch("failed")
		m.ObserveAvailability(time.Second)
		m.ObserveQuery("query", time.Second)
		m.SetConnections(1, 1, 0)
		m.ObserveHTTP("GET", "/", "200", time.Second)
	})
}
