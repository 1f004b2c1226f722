package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseLabels turns a flat key/value list into prometheus const labels
func ParseLabels(labelsWithValues ...string) (prometheus.Labels, error) {
	if len(labelsWithValues)%2 != 0 {
		return nil, fmt.Errorf("invalid labels %v: odd number of elements", labelsWithValues)
	}

	constLabels := prometheus.Labels{}

	for i := 1; i < len(labelsWithValues); i += 2 {
		constLabels[labelsWithValues[i-1]] = labelsWithValues[i]
	}

	return constLabels, nil
}

func CounterInc(counter prometheus.Counter) {
	if counter == nil {
		return
	}

	counter.Inc()
}

func CounterVecInc(counter *prometheus.CounterVec, labels prometheus.Labels) {
	if counter == nil {
		return
	}

	counter.With(labels).Inc()
}

func HistogramObserve(histogram prometheus.Histogram, v float64) {
	if histogram == nil {
		return
	}

	histogram.Observe(v)
}

func MetricName2Help(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// WriteTextfile dumps every metric gathered by g to filename in the text exposition format
func WriteTextfile(filename string, g prometheus.Gatherer) error {
	if filename == "" || g == nil {
		return nil
	}

	return prometheus.WriteToTextfile(filename, g)
}
