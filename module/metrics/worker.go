package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/oraclenet/offchain-worker/module"
)

const (
	namespaceOffchain = "offchain"
	subsystemWorker   = "worker"
)

// WorkerCollector reports offchain worker activity to prometheus. It is the
// observability collaborator through which failed pipelines become visible;
// no failure ever surfaces through the block import path.
type WorkerCollector struct {
	triggersTotal    prometheus.Counter
	lastTriggered    prometheus.Gauge
	keysDiscovered   prometheus.Histogram
	datumBytes       prometheus.Histogram
	submissionsTotal prometheus.Counter
	failuresTotal    *prometheus.CounterVec
}

var _ module.WorkerMetrics = (*WorkerCollector)(nil)

// NewWorkerCollector registers and returns the worker metrics collector.
func NewWorkerCollector(registerer prometheus.Registerer) *WorkerCollector {
	factory := promauto.With(registerer)

	return &WorkerCollector{
		triggersTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceOffchain,
			Subsystem: subsystemWorker,
			Name:      "triggers_total",
			Help:      "number of scheduler invocations triggered by imported blocks",
		}),
		lastTriggered: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceOffchain,
			Subsystem: subsystemWorker,
			Name:      "last_triggered_height",
			Help:      "height of the last block that triggered the worker",
		}),
		keysDiscovered: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespaceOffchain,
			Subsystem: subsystemWorker,
			Name:      "keys_discovered",
			Help:      "number of tagged keys discovered per invocation",
			Buckets:   []float64{0, 1, 2, 5, 10, 20},
		}),
		datumBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespaceOffchain,
			Subsystem: subsystemWorker,
			Name:      "datum_bytes",
			Help:      "payload size of successfully fetched datums",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		}),
		submissionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceOffchain,
			Subsystem: subsystemWorker,
			Name:      "submissions_total",
			Help:      "number of signed extrinsics accepted by the transaction pool",
		}),
		failuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceOffchain,
			Subsystem: subsystemWorker,
			Name:      "pipeline_failures_total",
			Help:      "number of pipelines aborted, by stage",
		}, []string{"stage"}),
	}
}

func (wc *WorkerCollector) BlockTriggered(height uint64) {
	wc.triggersTotal.Inc()
	wc.lastTriggered.Set(float64(height))
}

func (wc *WorkerCollector) KeysDiscovered(count int) {
	wc.keysDiscovered.Observe(float64(count))
}

func (wc *WorkerCollector) DatumFetched(sizeBytes int) {
	wc.datumBytes.Observe(float64(sizeBytes))
}

func (wc *WorkerCollector) ExtrinsicSubmitted() {
	wc.submissionsTotal.Inc()
}

func (wc *WorkerCollector) PipelineFailure(stage string) {
	wc.failuresTotal.WithLabelValues(stage).Inc()
}
