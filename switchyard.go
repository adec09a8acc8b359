// Package switchyard provides a DAG-based workflow execution engine with
// conditional branch elision.
//
// A workflow is a directed acyclic graph of nodes connected port-to-port.
// Switch nodes evaluate a predicate against their input payload and select
// exactly one live output port; downstream branches hanging off the ports
// that were not selected are either skipped entirely (skip_branches mode) or
// executed with an explicit dead-branch sentinel in place of real input
// (route_data mode).
//
// Basic usage:
//
//	manager, _ := switchyard.New(switchyard.Config{})
//	manager.RegisterNode(&LoadUser{})
//	manager.RegisterNode(&PremiumHandler{})
//
//	graph := switchyard.NewGraph()
//	graph.AddNode(&switchyard.Node{ID: "load", Kind: switchyard.KindSource, Type: "load_user"})
//	graph.AddNode(&switchyard.Node{ID: "tier", Kind: switchyard.KindSwitch, Switch: &switchyard.SwitchConfig{
//	    ConditionField: "user_type",
//	    Operator:       switchyard.OperatorEquals,
//	    Value:          "premium",
//	}})
//	graph.AddConnection(switchyard.Edge{FromNode: "load", FromPort: "output", ToNode: "tier", ToPort: "input"})
//
//	record, runID, _ := manager.Execute(ctx, graph, switchyard.ExecutionConfig{
//	    Mode: switchyard.ModeSkipBranches,
//	})
package switchyard

import (
	"github.com/switchyard/switchyard/internal/core"
	"github.com/switchyard/switchyard/internal/domain"
	"github.com/switchyard/switchyard/internal/ports"
)

// Manager is the main entry point: it owns the node registry, the execution
// engine and the run archive.
type Manager = core.Manager

// Config configures a Manager.
type Config = domain.Config

// Graph is the static workflow structure: nodes plus port-to-port edges.
type Graph = domain.Graph

// Node is a unit of computation in a graph.
type Node = domain.Node

// Edge connects one node's output port to another node's input port.
type Edge = domain.Edge

// NodeKind discriminates source, switch, processor and merge nodes.
type NodeKind = domain.NodeKind

const (
	KindSource    = domain.KindSource
	KindSwitch    = domain.KindSwitch
	KindProcessor = domain.KindProcessor
	KindMerge     = domain.KindMerge
)

// SwitchConfig is the predicate a switch node evaluates.
type SwitchConfig = domain.SwitchConfig

// Operator is a switch comparison operator.
type Operator = domain.Operator

const (
	OperatorEquals       = domain.OperatorEquals
	OperatorNotEquals    = domain.OperatorNotEquals
	OperatorLess         = domain.OperatorLess
	OperatorLessEqual    = domain.OperatorLessEqual
	OperatorGreater      = domain.OperatorGreater
	OperatorGreaterEqual = domain.OperatorGreaterEqual
	OperatorContains     = domain.OperatorContains
	OperatorIn           = domain.OperatorIn
	OperatorIsNull       = domain.OperatorIsNull
	OperatorIsNotNull    = domain.OperatorIsNotNull
)

// MergeConfig describes how a merge node combines its inputs.
type MergeConfig = domain.MergeConfig

// MergeStrategy selects how many inputs a merge node waits for.
type MergeStrategy = domain.MergeStrategy

const (
	StrategyAll   = domain.StrategyAll
	StrategyAny   = domain.StrategyAny
	StrategyFirst = domain.StrategyFirst
)

// ExecutionConfig is passed explicitly into every Execute call.
type ExecutionConfig = domain.ExecutionConfig

// ExecutionMode selects between executing dead branches with sentinel inputs
// and skipping them outright.
type ExecutionMode = domain.ExecutionMode

const (
	ModeRouteData    = domain.ModeRouteData
	ModeSkipBranches = domain.ModeSkipBranches
)

// ErrorPolicy controls the blast radius of node-execution errors.
type ErrorPolicy = domain.ErrorPolicy

const (
	PolicyFailFast        = domain.PolicyFailFast
	PolicyContinueOnError = domain.PolicyContinueOnError
)

// ExecutionRecord is the full result of one run, keyed by node id.
type ExecutionRecord = domain.ExecutionRecord

// NodeRecord is the terminal outcome of one node for one run.
type NodeRecord = domain.NodeRecord

// NodeState is a node's terminal state within a run.
type NodeState = domain.NodeState

const (
	NodeStateCompleted = domain.NodeStateCompleted
	NodeStateSkipped   = domain.NodeStateSkipped
	NodeStateFailed    = domain.NodeStateFailed
)

// RunStatus is a run's lifecycle state.
type RunStatus = domain.RunStatus

const (
	RunStatusPending   = domain.RunStatusPending
	RunStatusRunning   = domain.RunStatusRunning
	RunStatusCompleted = domain.RunStatusCompleted
	RunStatusFailed    = domain.RunStatusFailed
)

// PortValue is the value carried by an edge during a run; dead values mark
// pruned branches.
type PortValue = domain.PortValue

// NodeExecutor is the contract external node implementations fulfil.
type NodeExecutor = ports.NodeExecutor

// ExecuteRequest is what a NodeExecutor receives for one invocation.
type ExecuteRequest = ports.ExecuteRequest

// PortDeclarer is an optional executor capability checked before runs.
type PortDeclarer = ports.PortDeclarer

// ExecutionMetrics is a snapshot of engine counters.
type ExecutionMetrics = domain.ExecutionMetrics

// RunCompletedEvent is emitted after a run reaches a terminal state.
type RunCompletedEvent = core.RunCompletedEvent

// NodeFinishedEvent is emitted for every node of a finished run.
type NodeFinishedEvent = core.NodeFinishedEvent

// New creates a Manager.
func New(cfg Config) (*Manager, error) {
	return core.New(cfg)
}

// NewGraph creates an empty workflow graph.
func NewGraph() *Graph {
	return domain.NewGraph()
}

// LiveValue wraps a payload as a live port value.
func LiveValue(data interface{}) PortValue {
	return domain.LiveValue(data)
}

// DeadBranch is the sentinel delivered on pruned inputs in route_data mode.
func DeadBranch() PortValue {
	return domain.DeadBranch()
}
