package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabels(t *testing.T) {
	t.Parallel()

	labels, err := ParseLabels("chain", "eth", "rpc", "local")
	require.NoError(t, err)
	assert.Equal(t, prometheus.Labels{"chain": "eth", "rpc": "local"}, labels)

	_, err = ParseLabels("chain")
	assert.Error(t, err)
}

func TestNilSafeHelpers(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		CounterInc(nil)
		CounterVecInc(nil, prometheus.Labels{"method": "eth_call"})
		HistogramObserve(nil, 1)
	})
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "eql",
		Name:      "test_total",
		Help:      MetricName2Help("test_total"),
	})
	registry.MustRegister(counter)
	CounterInc(counter)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, WriteTextfile(path, registry))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "eql_test_total 1")

	assert.NoError(t, WriteTextfile("", registry))
}
