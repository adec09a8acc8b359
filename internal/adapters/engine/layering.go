package engine

import (
	"sort"

	"github.com/switchyard/switchyard/internal/domain"
)

// SwitchLayers groups the graph's switch nodes into ordered layers. Two
// switches land in the same layer when neither's decision depends on the
// other's outcome, directly or through intermediate non-switch nodes, so
// every switch in a layer can be evaluated concurrently. Layer N only
// depends on outcomes from layers < N.
//
// This is a pure planning step: applying it never changes which nodes end
// up reachable, only the order switch predicates are evaluated in.
func SwitchLayers(g *domain.Graph) [][]string {
	deps := switchDependencies(g)

	layer := make(map[string]int)
	var assign func(id string, visiting map[string]bool) int
	assign = func(id string, visiting map[string]bool) int {
		if l, done := layer[id]; done {
			return l
		}
		if visiting[id] {
			// Validated graphs are acyclic; this path is unreachable.
			return 0
		}
		visiting[id] = true
		defer delete(visiting, id)

		l := 0
		for _, pred := range deps[id] {
			if pl := assign(pred, visiting) + 1; pl > l {
				l = pl
			}
		}
		layer[id] = l
		return l
	}

	maxLayer := -1
	for _, node := range g.Nodes() {
		if node.Kind != domain.KindSwitch {
			continue
		}
		if l := assign(node.ID, make(map[string]bool)); l > maxLayer {
			maxLayer = l
		}
	}

	if maxLayer < 0 {
		return nil
	}

	layers := make([][]string, maxLayer+1)
	for _, node := range g.Nodes() {
		if node.Kind != domain.KindSwitch {
			continue
		}
		l := layer[node.ID]
		layers[l] = append(layers[l], node.ID)
	}
	for _, ids := range layers {
		sort.Strings(ids)
	}
	return layers
}

// switchDependencies builds the switch-only dependency graph: switch B
// depends on switch A when any path from A reaches B without passing
// through a third switch.
func switchDependencies(g *domain.Graph) map[string][]string {
	deps := make(map[string][]string)

	for _, node := range g.Nodes() {
		if node.Kind != domain.KindSwitch {
			continue
		}
		seen := make(map[string]bool)
		frontier := []string{node.ID}
		var found []string

		for len(frontier) > 0 {
			current := frontier[0]
			frontier = frontier[1:]

			for _, edge := range g.InEdges(current) {
				if seen[edge.FromNode] {
					continue
				}
				seen[edge.FromNode] = true

				pred, ok := g.Node(edge.FromNode)
				if !ok {
					continue
				}
				if pred.Kind == domain.KindSwitch {
					found = append(found, pred.ID)
					continue
				}
				frontier = append(frontier, pred.ID)
			}
		}

		sort.Strings(found)
		deps[node.ID] = found
	}

	return deps
}
