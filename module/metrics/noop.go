package metrics

import (
	"github.com/oraclenet/offchain-worker/module"
)

// NoopCollector discards all metrics.
type NoopCollector struct{}

var _ module.WorkerMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector { return &NoopCollector{} }

func (nc *NoopCollector) BlockTriggered(uint64)  {}
func (nc *NoopCollector) KeysDiscovered(int)     {}
func (nc *NoopCollector) DatumFetched(int)       {}
func (nc *NoopCollector) ExtrinsicSubmitted()    {}
func (nc *NoopCollector) PipelineFailure(string) {}
