package engine

import (
	"context"
	"time"

	"dario.cat/mergo"

	"github.com/switchyard/switchyard/internal/domain"
	"github.com/switchyard/switchyard/internal/ports"
)

// runNode executes (or skips) a single node whose predecessors have all been
// finalized, and writes its terminal record.
func (r *run) runNode(ctx context.Context, nodeID string) {
	node, ok := r.graph.Node(nodeID)
	if !ok {
		return
	}

	inputs, live := r.assembleInputs(node)

	if r.cfg.Mode == domain.ModeSkipBranches && !live {
		r.logger.Debug("node unreachable, skipping",
			"node_id", nodeID,
			"kind", node.Kind,
		)
		r.finalizeSkipped(nodeID)
		return
	}

	switch node.Kind {
	case domain.KindSwitch:
		r.runSwitch(node, inputs)
	case domain.KindMerge:
		r.runMerge(node, inputs)
	default:
		r.runExecutor(ctx, node, inputs)
	}
}

// assembleInputs gathers the value on every bound input port. live is true
// when the node is a root or at least one inbound edge carries a live value.
func (r *run) assembleInputs(node *domain.Node) (map[string]domain.PortValue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inEdges := r.graph.InEdges(node.ID)
	if len(inEdges) == 0 {
		return map[string]domain.PortValue{}, true
	}

	inputs := make(map[string]domain.PortValue, len(inEdges))
	anyLive := false
	for _, edge := range inEdges {
		if r.livePorts[edge.FromNode][edge.FromPort] {
			// Merge targets accept several writers on one port. Exclusive
			// branches guarantee at most one of them is live, so the live
			// writer always wins over dead siblings.
			value := r.record.Nodes[edge.FromNode].Outputs[edge.FromPort]
			inputs[edge.ToPort] = domain.LiveValue(value)
			anyLive = true
		} else if _, bound := inputs[edge.ToPort]; !bound {
			inputs[edge.ToPort] = domain.DeadBranch()
		}
	}

	return inputs, anyLive
}

func (r *run) runSwitch(node *domain.Node, inputs map[string]domain.PortValue) {
	payload, _ := inputs[domain.PortInput].Get()

	started := time.Now()
	selected, err := EvaluateSwitch(node.ID, node.Switch, payload)
	r.engine.metrics.IncrementSwitchesEvaluated()

	if err != nil {
		r.logger.Warn("switch evaluation failed",
			"node_id", node.ID,
			"operator", node.Switch.Operator,
			"error", err,
		)
		r.finalizeFailed(node.ID, err, started)

		// Pruning both branches is the conservative answer in skip mode; in
		// route mode every branch executes regardless, so the error cannot
		// stay scoped and must take the run down.
		if r.cfg.Mode == domain.ModeRouteData {
			r.abort(domain.NewNodeExecutionError(node.ID, err))
		}
		return
	}

	r.logger.Debug("switch evaluated",
		"node_id", node.ID,
		"selected_port", selected,
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.outcomes[node.ID] = selected
	r.livePorts[node.ID] = map[string]bool{selected: true}
	r.finalized[node.ID] = true
	r.record.Nodes[node.ID] = &domain.NodeRecord{
		NodeID:       node.ID,
		State:        domain.NodeStateCompleted,
		Outputs:      map[string]interface{}{selected: payload},
		SelectedPort: selected,
		StartedAt:    started,
		CompletedAt:  time.Now(),
	}
	r.engine.metrics.IncrementNodesExecuted()
}

func (r *run) runExecutor(ctx context.Context, node *domain.Node, inputs map[string]domain.PortValue) {
	executor, err := r.engine.registry.Get(node.Type)
	if err != nil {
		r.finalizeFailed(node.ID, err, time.Now())
		r.handleNodeFailure(node.ID, err)
		return
	}

	config, err := r.nodeConfig(node)
	if err != nil {
		r.finalizeFailed(node.ID, err, time.Now())
		r.handleNodeFailure(node.ID, err)
		return
	}

	started := time.Now()
	outputs, err := executor.Execute(ctx, ports.ExecuteRequest{
		NodeID: node.ID,
		Inputs: inputs,
		Config: config,
	})
	if err != nil {
		r.logger.Warn("node execution failed",
			"node_id", node.ID,
			"type", node.Type,
			"duration", time.Since(started),
			"error", err,
		)
		r.finalizeFailed(node.ID, err, started)
		r.handleNodeFailure(node.ID, err)
		return
	}

	r.logger.Debug("node executed",
		"node_id", node.ID,
		"type", node.Type,
		"duration", time.Since(started),
	)
	r.finalizeCompleted(node, outputs, started)
}

// nodeConfig merges per-run parameter overrides over the node's build-time
// configuration. Overrides win.
func (r *run) nodeConfig(node *domain.Node) (map[string]interface{}, error) {
	overrides := r.cfg.Parameters[node.ID]
	if len(overrides) == 0 {
		return node.Config, nil
	}

	merged := make(map[string]interface{}, len(node.Config))
	for k, v := range node.Config {
		merged[k] = v
	}
	if err := mergo.Merge(&merged, overrides, mergo.WithOverride); err != nil {
		return nil, err
	}
	return merged, nil
}

func (r *run) finalizeCompleted(node *domain.Node, outputs map[string]interface{}, started time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	livePorts := make(map[string]bool, len(node.Outputs))
	for _, port := range node.Outputs {
		livePorts[port] = true
	}

	r.livePorts[node.ID] = livePorts
	r.finalized[node.ID] = true
	r.record.Nodes[node.ID] = &domain.NodeRecord{
		NodeID:      node.ID,
		State:       domain.NodeStateCompleted,
		Outputs:     outputs,
		StartedAt:   started,
		CompletedAt: time.Now(),
	}
	r.engine.metrics.IncrementNodesExecuted()
}

func (r *run) finalizeSkipped(nodeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finalized[nodeID] {
		return
	}
	r.finalized[nodeID] = true
	r.record.Nodes[nodeID] = &domain.NodeRecord{
		NodeID: nodeID,
		State:  domain.NodeStateSkipped,
	}
	r.engine.metrics.IncrementNodesSkipped()
}

func (r *run) finalizeFailed(nodeID string, err error, started time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finalized[nodeID] = true
	r.record.Nodes[nodeID] = &domain.NodeRecord{
		NodeID:      nodeID,
		State:       domain.NodeStateFailed,
		Error:       err.Error(),
		StartedAt:   started,
		CompletedAt: time.Now(),
	}
	r.engine.metrics.IncrementNodesFailed()
}

// handleNodeFailure applies the configured blast radius for a node-execution
// error: fail_fast takes the run down, continue_on_error leaves the node's
// output ports dead and moves on.
func (r *run) handleNodeFailure(nodeID string, err error) {
	if r.cfg.ErrorPolicy == domain.PolicyFailFast {
		r.abort(domain.NewNodeExecutionError(nodeID, err))
	}
}
