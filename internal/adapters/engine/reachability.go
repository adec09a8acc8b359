package engine

import (
	"github.com/switchyard/switchyard/internal/domain"
)

// Reachable computes the set of nodes executable in a run given the output
// port each switch selected. Traversal is a forward BFS from source nodes;
// an edge is live when its origin port is either not a switch output or the
// switch output chosen for this run. The result is order-independent.
//
// A switch absent from outcomes (it failed to evaluate, or was itself
// pruned) contributes no live edges at all.
func Reachable(g *domain.Graph, outcomes map[string]string) map[string]bool {
	reachable := make(map[string]bool)

	var frontier []string
	for _, source := range g.Sources() {
		reachable[source.ID] = true
		frontier = append(frontier, source.ID)
	}

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		for _, edge := range g.OutEdges(current) {
			if !edgeLive(g, edge, outcomes) {
				continue
			}
			if reachable[edge.ToNode] {
				continue
			}
			reachable[edge.ToNode] = true
			frontier = append(frontier, edge.ToNode)
		}
	}

	return reachable
}

func edgeLive(g *domain.Graph, edge domain.Edge, outcomes map[string]string) bool {
	from, ok := g.Node(edge.FromNode)
	if !ok {
		return false
	}
	if from.Kind != domain.KindSwitch {
		return true
	}
	selected, evaluated := outcomes[from.ID]
	return evaluated && selected == edge.FromPort
}
