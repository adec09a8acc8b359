package domain

import (
	"sync/atomic"
	"time"
)

type ExecutionMetrics struct {
	RunsStarted   int64 `json:"runs_started"`
	RunsCompleted int64 `json:"runs_completed"`
	RunsFailed    int64 `json:"runs_failed"`

	NodesExecuted int64 `json:"nodes_executed"`
	NodesSkipped  int64 `json:"nodes_skipped"`
	NodesFailed   int64 `json:"nodes_failed"`

	SwitchesEvaluated int64 `json:"switches_evaluated"`

	TotalExecutionTimeNs int64 `json:"total_execution_time_ns"`
	NodeExecutionCount   int64 `json:"node_execution_count"`
}

func NewExecutionMetrics() *ExecutionMetrics {
	return &ExecutionMetrics{}
}

func (m *ExecutionMetrics) IncrementRunsStarted() {
	atomic.AddInt64(&m.RunsStarted, 1)
}

func (m *ExecutionMetrics) IncrementRunsCompleted() {
	atomic.AddInt64(&m.RunsCompleted, 1)
}

func (m *ExecutionMetrics) IncrementRunsFailed() {
	atomic.AddInt64(&m.RunsFailed, 1)
}

func (m *ExecutionMetrics) IncrementNodesExecuted() {
	atomic.AddInt64(&m.NodesExecuted, 1)
}

func (m *ExecutionMetrics) IncrementNodesSkipped() {
	atomic.AddInt64(&m.NodesSkipped, 1)
}

func (m *ExecutionMetrics) IncrementNodesFailed() {
	atomic.AddInt64(&m.NodesFailed, 1)
}

func (m *ExecutionMetrics) IncrementSwitchesEvaluated() {
	atomic.AddInt64(&m.SwitchesEvaluated, 1)
}

func (m *ExecutionMetrics) AddExecutionTime(duration time.Duration) {
	atomic.AddInt64(&m.TotalExecutionTimeNs, duration.Nanoseconds())
	atomic.AddInt64(&m.NodeExecutionCount, 1)
}

func (m *ExecutionMetrics) GetSnapshot() ExecutionMetrics {
	return ExecutionMetrics{
		RunsStarted:          atomic.LoadInt64(&m.RunsStarted),
		RunsCompleted:        atomic.LoadInt64(&m.RunsCompleted),
		RunsFailed:           atomic.LoadInt64(&m.RunsFailed),
		NodesExecuted:        atomic.LoadInt64(&m.NodesExecuted),
		NodesSkipped:         atomic.LoadInt64(&m.NodesSkipped),
		NodesFailed:          atomic.LoadInt64(&m.NodesFailed),
		SwitchesEvaluated:    atomic.LoadInt64(&m.SwitchesEvaluated),
		TotalExecutionTimeNs: atomic.LoadInt64(&m.TotalExecutionTimeNs),
		NodeExecutionCount:   atomic.LoadInt64(&m.NodeExecutionCount),
	}
}

func (m *ExecutionMetrics) GetAverageExecutionTime() time.Duration {
	count := atomic.LoadInt64(&m.NodeExecutionCount)
	if count == 0 {
		return 0
	}
	total := atomic.LoadInt64(&m.TotalExecutionTimeNs)
	return time.Duration(total / count)
}
