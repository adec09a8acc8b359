package domain

import (
	"time"
)

type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

type NodeState string

const (
	NodeStateCompleted NodeState = "completed"
	NodeStateSkipped   NodeState = "skipped"
	NodeStateFailed    NodeState = "failed"
)

// NodeRecord is the terminal outcome of one node for one run. It is written
// exactly once; a finalized record is never mutated.
type NodeRecord struct {
	NodeID       string                 `json:"node_id"`
	State        NodeState              `json:"state"`
	Outputs      map[string]interface{} `json:"outputs,omitempty"`
	Error        string                 `json:"error,omitempty"`
	SelectedPort string                 `json:"selected_port,omitempty"`
	Contributed  []string               `json:"contributed,omitempty"`
	StartedAt    time.Time              `json:"started_at,omitempty"`
	CompletedAt  time.Time              `json:"completed_at,omitempty"`
}

// ExecutionRecord is the full result of one run, keyed by node ID.
type ExecutionRecord struct {
	RunID       string                 `json:"run_id"`
	Status      RunStatus              `json:"status"`
	Mode        ExecutionMode          `json:"mode"`
	Nodes       map[string]*NodeRecord `json:"nodes"`
	Error       string                 `json:"error,omitempty"`
	StartedAt   time.Time              `json:"started_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
}

func NewExecutionRecord(runID string, mode ExecutionMode) *ExecutionRecord {
	return &ExecutionRecord{
		RunID:     runID,
		Status:    RunStatusPending,
		Mode:      mode,
		Nodes:     make(map[string]*NodeRecord),
		StartedAt: time.Now(),
	}
}

// NodesInState returns the IDs of all nodes finalized in the given state,
// in no particular order.
func (r *ExecutionRecord) NodesInState(state NodeState) []string {
	var ids []string
	for id, rec := range r.Nodes {
		if rec.State == state {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *ExecutionRecord) Completed(nodeID string) bool {
	rec, ok := r.Nodes[nodeID]
	return ok && rec.State == NodeStateCompleted
}

func (r *ExecutionRecord) Skipped(nodeID string) bool {
	rec, ok := r.Nodes[nodeID]
	return ok && rec.State == NodeStateSkipped
}
