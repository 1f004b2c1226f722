package provider

import (
	"github.com/iankressin/eql-sub000/helper/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type EthAPILabels prometheus.Labels

var (
	EthBlockNumberLabel           = EthAPILabels{"method": "eth_blockNumber"}
	EthCallLabel                  = EthAPILabels{"method": "eth_call"}
	EthGetBalanceLabel            = EthAPILabels{"method": "eth_getBalance"}
	EthGetBlockByNumberLabel      = EthAPILabels{"method": "eth_getBlockByNumber"}
	EthGetCodeLabel               = EthAPILabels{"method": "eth_getCode"}
	EthGetLogsLabel               = EthAPILabels{"method": "eth_getLogs"}
	EthGetTransactionByHashLabel  = EthAPILabels{"method": "eth_getTransactionByHash"}
	EthGetTransactionCountLabel   = EthAPILabels{"method": "eth_getTransactionCount"}
	EthGetTransactionReceiptLabel = EthAPILabels{"method": "eth_getTransactionReceipt"}
)

// Metrics represents the rpc provider metrics
type Metrics struct {
	// Requests number
	requests prometheus.Counter

	// Errors number
	errors prometheus.Counter

	// Requests duration (seconds)
	responseTime prometheus.Histogram

	// Eth metrics
	ethAPI *prometheus.CounterVec
}

func (m *Metrics) RequestsCounterInc() {
	if m == nil {
		return
	}

	metrics.CounterInc(m.requests)
}

func (m *Metrics) ErrorsCounterInc() {
	if m == nil {
		return
	}

	metrics.CounterInc(m.errors)
}

func (m *Metrics) ResponseTimeObserve(duration float64) {
	if m == nil {
		return
	}

	metrics.HistogramObserve(m.responseTime, duration)
}

func (m *Metrics) EthAPICounterInc(label EthAPILabels) {
	if m == nil {
		return
	}

	metrics.CounterVecInc(m.ethAPI, (prometheus.Labels)(label))
}

// GetPrometheusMetrics returns the provider metrics registered on registerer
func GetPrometheusMetrics(
	namespace string,
	registerer prometheus.Registerer,
	labelsWithValues ...string,
) (*Metrics, error) {
	constLabels, err := metrics.ParseLabels(labelsWithValues...)
	if err != nil {
		return nil, err
	}

	m := &Metrics{
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "rpc",
			Name:        "requests",
			Help:        "Requests number",
			ConstLabels: constLabels,
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "rpc",
			Name:        "request_errors",
			Help:        "Request errors number",
			ConstLabels: constLabels,
		}),
		responseTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "response_seconds",
			Help:      "Response time (seconds)",
			Buckets: []float64{
				0.001,
				0.01,
				0.1,
				0.5,
				1.0,
				2.0,
			},
			ConstLabels: constLabels,
		}),
		ethAPI: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "rpc",
			Name:        "eth_api_requests",
			Help:        "eth api requests",
			ConstLabels: constLabels,
		}, []string{"method"}),
	}

	for _, c := range []prometheus.Collector{
		m.requests,
		m.errors,
		m.responseTime,
		m.ethAPI,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// NilMetrics will return the non operational provider metrics
func NilMetrics() *Metrics {
	return &Metrics{}
}
