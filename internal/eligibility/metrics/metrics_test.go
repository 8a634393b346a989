package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := NewWith(prometheus.NewRegistry())

	m.IncrementLoad("paste_json", "ok")
	m.IncrementLoad("paste_json", "ok")
	m.SetSchemesLoaded(7)
	m.AddDropped(1, 0)
	m.IncrementVerdict("eligible")
	m.ObserveCheckLatency(time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Loads.WithLabelValues("paste_json", "ok")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.SchemesLoaded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Dropped.WithLabelValues("scheme")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verdicts.WithLabelValues("eligible")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.CheckLatency))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementLoad("file", "failed")
		m.SetSchemesLoaded(1)
		m.AddDropped(1, 1)
		m.IncrementVerdict("needs_info")
		m.ObserveLoadLatency(time.Second)
		m.ObserveCheckLatency(time.Second)
	})
}
