package engine

import (
	"time"

	"github.com/switchyard/switchyard/internal/domain"
)

// runMerge combines the values on a merge node's bound inputs according to
// its strategy, tolerating skipped branches when the node opts in.
func (r *run) runMerge(node *domain.Node, inputs map[string]domain.PortValue) {
	started := time.Now()

	contributed, values, err := r.selectContributions(node, inputs)
	if err != nil {
		r.logger.Warn("merge failed",
			"node_id", node.ID,
			"strategy", node.Merge.Strategy,
			"error", err,
		)
		r.finalizeFailed(node.ID, err, started)
		r.handleNodeFailure(node.ID, err)
		return
	}

	merged, err := domain.MergeValues(values)
	if err != nil {
		r.finalizeFailed(node.ID, err, started)
		r.handleNodeFailure(node.ID, err)
		return
	}

	r.logger.Debug("merge completed",
		"node_id", node.ID,
		"strategy", node.Merge.Strategy,
		"contributed", contributed,
	)

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
		Outputs:     map[string]interface{}{domain.PortOutput: merged},
		Contributed: contributed,
		StartedAt:   started,
		CompletedAt: time.Now(),
	}
	r.engine.metrics.IncrementNodesExecuted()
}

// selectContributions applies the merge strategy over the node's inputs in
// declaration order and returns the ports that contributed plus their
// payloads.
func (r *run) selectContributions(node *domain.Node, inputs map[string]domain.PortValue) ([]string, []interface{}, error) {
	cfg := node.Merge

	var contributed []string
	var values []interface{}
	var missing []string

	for _, port := range node.Inputs {
		value, bound := inputs[port]
		if !bound {
			// Nothing connected to this port; it cannot contribute.
			continue
		}

		data, live := value.Get()
		if !live {
			if !cfg.SkipMissing {
				missing = append(missing, port)
			} else if cfg.Strategy == domain.StrategyAll && !cfg.IsOptional(port) {
				missing = append(missing, port)
			}
			continue
		}

		if cfg.Strategy == domain.StrategyFirst && len(contributed) == 1 {
			continue
		}
		contributed = append(contributed, port)
		values = append(values, data)
	}

	if len(missing) > 0 {
		return nil, nil, domain.NewMissingRequiredInputError(node.ID, missing)
	}
	if len(contributed) == 0 {
		return nil, nil, domain.NewMissingRequiredInputError(node.ID, node.Inputs)
	}

	return contributed, values, nil
}
