package engine

import (
	"sort"

	"github.com/switchyard/switchyard/internal/domain"
)

// topologicalOrder returns every node of the graph in dependency order.
// Ties are broken by declaration sequence, so the result is stable across
// runs and processes. The graph must already have passed Validate.
func topologicalOrder(g *domain.Graph) []string {
	indegree := make(map[string]int)
	for _, node := range g.Nodes() {
		indegree[node.ID] = 0
	}
	for _, edge := range g.Edges() {
		indegree[edge.ToNode]++
	}

	seq := make(map[string]int)
	for _, node := range g.Nodes() {
		seq[node.ID] = node.Seq()
	}

	var ready []string
	for _, node := range g.Nodes() {
		if indegree[node.ID] == 0 {
			ready = append(ready, node.ID)
		}
	}

	order := make([]string, 0, len(indegree))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool {
			return seq[ready[i]] < seq[ready[j]]
		})

		current := ready[0]
		ready = ready[1:]
		order = append(order, current)

		for _, edge := range g.OutEdges(current) {
			indegree[edge.ToNode]--
			if indegree[edge.ToNode] == 0 {
				ready = append(ready, edge.ToNode)
			}
		}
	}

	return order
}
