package domain

import (
	"fmt"

	"github.com/heimdalr/dag"
)

type NodeKind string

const (
	KindSource    NodeKind = "source"
	KindSwitch    NodeKind = "switch"
	KindProcessor NodeKind = "processor"
	KindMerge     NodeKind = "merge"
)

const (
	PortOutput      = "output"
	PortInput       = "input"
	PortTrueOutput  = "true_output"
	PortFalseOutput = "false_output"
	PortDefaultCase = "default_output"
)

// Node is a unit of computation in a workflow graph. Nodes are created at
// build time and immutable once the graph is validated.
type Node struct {
	ID      string                 `json:"id"`
	Kind    NodeKind               `json:"kind"`
	Type    string                 `json:"type,omitempty"`
	Inputs  []string               `json:"inputs"`
	Outputs []string               `json:"outputs"`
	Config  map[string]interface{} `json:"config,omitempty"`
	Switch  *SwitchConfig          `json:"switch,omitempty"`
	Merge   *MergeConfig           `json:"merge,omitempty"`

	seq int
}

// Seq is the declaration sequence of the node, used by the scheduler to
// break topological-order ties deterministically.
func (n *Node) Seq() int {
	return n.seq
}

// Edge is a directed connection from one node's output port to another
// node's input port.
type Edge struct {
	FromNode string `json:"from_node"`
	FromPort string `json:"from_port"`
	ToNode   string `json:"to_node"`
	ToPort   string `json:"to_port"`
}

type Graph struct {
	nodes   map[string]*Node
	order   []string
	edges   []Edge
	inbound map[string]map[string]bool
}

func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]*Node),
		inbound: make(map[string]map[string]bool),
	}
}

func (g *Graph) AddNode(node *Node) error {
	if node == nil || node.ID == "" {
		return NewValidationError("node", "node must have a non-empty ID")
	}

	if _, exists := g.nodes[node.ID]; exists {
		return NewDuplicateNodeError(node.ID)
	}

	if len(node.Inputs) == 0 {
		node.Inputs = defaultInputs(node.Kind)
	}
	if len(node.Outputs) == 0 {
		node.Outputs = defaultOutputs(node)
	}

	node.seq = len(g.order)
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	g.inbound[node.ID] = make(map[string]bool)

	return nil
}

func (g *Graph) AddConnection(edge Edge) error {
	from, ok := g.nodes[edge.FromNode]
	if !ok {
		return NewUnknownNodeError(edge.FromNode)
	}
	to, ok := g.nodes[edge.ToNode]
	if !ok {
		return NewUnknownNodeError(edge.ToNode)
	}

	if !hasPort(from.Outputs, edge.FromPort) {
		return NewValidationError("from_port", fmt.Sprintf("node %s declares no output port %q", from.ID, edge.FromPort))
	}
	if !hasPort(to.Inputs, edge.ToPort) {
		return NewValidationError("to_port", fmt.Sprintf("node %s declares no input port %q", to.ID, edge.ToPort))
	}

	// Merge nodes declare multiple named inputs explicitly; everything else
	// accepts at most one writer per input port.
	if g.inbound[to.ID][edge.ToPort] && to.Kind != KindMerge {
		return NewPortConflictError(to.ID, edge.ToPort)
	}

	g.inbound[to.ID][edge.ToPort] = true
	g.edges = append(g.edges, edge)

	return nil
}

// Validate checks the structural invariants of the graph. It is idempotent:
// the graph itself is never mutated, a fresh DAG is built on every call.
func (g *Graph) Validate() error {
	if len(g.nodes) == 0 {
		return NewValidationError("graph", "graph has no nodes")
	}

	structure := dag.NewDAG()

	for _, id := range g.order {
		if err := structure.AddVertexByID(id, g.nodes[id]); err != nil {
			return NewValidationError("graph", fmt.Sprintf("failed to add vertex %s: %v", id, err))
		}
	}

	for _, edge := range g.edges {
		err := structure.AddEdge(edge.FromNode, edge.ToNode)
		if err != nil {
			if _, ok := err.(dag.EdgeLoopError); ok {
				return NewCycleDetectedError(edge.FromNode, edge.ToNode)
			}
			if _, ok := err.(dag.SrcDstEqualError); ok {
				return NewCycleDetectedError(edge.FromNode, edge.ToNode)
			}
			if _, ok := err.(dag.EdgeDuplicateError); ok {
				continue
			}
			return NewValidationError("graph", fmt.Sprintf("failed to add edge %s -> %s: %v", edge.FromNode, edge.ToNode, err))
		}
	}

	for _, id := range g.order {
		node := g.nodes[id]
		if node.Kind == KindSwitch && node.Switch == nil {
			return NewValidationError("switch", fmt.Sprintf("switch node %s has no switch configuration", id))
		}
		if node.Kind == KindMerge && node.Merge == nil {
			return NewValidationError("merge", fmt.Sprintf("merge node %s has no merge configuration", id))
		}
	}

	return nil
}

// RemoveConnection deletes the first edge matching all four endpoints.
// It exists so a graph rejected by Validate can be repaired and revalidated.
func (g *Graph) RemoveConnection(edge Edge) bool {
	for i, e := range g.edges {
		if e == edge {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			stillBound := false
			for _, rest := range g.edges {
				if rest.ToNode == edge.ToNode && rest.ToPort == edge.ToPort {
					stillBound = true
					break
				}
			}
			if !stillBound {
				delete(g.inbound[edge.ToNode], edge.ToPort)
			}
			return true
		}
	}
	return false
}

func (g *Graph) Node(id string) (*Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// Nodes returns all nodes in declaration order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

func (g *Graph) InEdges(nodeID string) []Edge {
	var in []Edge
	for _, edge := range g.edges {
		if edge.ToNode == nodeID {
			in = append(in, edge)
		}
	}
	return in
}

func (g *Graph) OutEdges(nodeID string) []Edge {
	var out []Edge
	for _, edge := range g.edges {
		if edge.FromNode == nodeID {
			out = append(out, edge)
		}
	}
	return out
}

// Sources returns every node with no inbound edges, in declaration order.
func (g *Graph) Sources() []*Node {
	hasInbound := make(map[string]bool, len(g.nodes))
	for _, edge := range g.edges {
		hasInbound[edge.ToNode] = true
	}

	var sources []*Node
	for _, id := range g.order {
		if !hasInbound[id] {
			sources = append(sources, g.nodes[id])
		}
	}
	return sources
}

func defaultInputs(kind NodeKind) []string {
	if kind == KindSource {
		return nil
	}
	return []string{PortInput}
}

func defaultOutputs(node *Node) []string {
	switch node.Kind {
	case KindSwitch:
		if node.Switch != nil && len(node.Switch.Cases) > 0 {
			outputs := make([]string, 0, len(node.Switch.Cases)+1)
			for _, c := range node.Switch.Cases {
				outputs = append(outputs, CasePort(c))
			}
			if node.Switch.DefaultOutput {
				outputs = append(outputs, PortDefaultCase)
			}
			return outputs
		}
		return []string{PortTrueOutput, PortFalseOutput}
	default:
		return []string{PortOutput}
	}
}

func hasPort(ports []string, name string) bool {
	for _, p := range ports {
		if p == name {
			return true
		}
	}
	return false
}
