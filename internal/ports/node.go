package ports

import (
	"context"

	"github.com/switchyard/switchyard/internal/domain"
)

// NodeExecutor is the uniform contract the engine drives external node
// implementations through. The engine does not know what a node does
// internally.
type NodeExecutor interface {
	Name() string
	Execute(ctx context.Context, req ExecuteRequest) (map[string]interface{}, error)
}

// PortDeclarer is an optional capability: executors that implement it have
// their declared ports checked against the graph before a run starts.
type PortDeclarer interface {
	DeclaredInputs() []string
	DeclaredOutputs() []string
}

type ExecuteRequest struct {
	NodeID string
	Inputs map[string]domain.PortValue
	Config map[string]interface{}
}

// Input returns the live payload on the given port, or nil if the port is
// absent or carries a dead-branch value.
func (r ExecuteRequest) Input(port string) interface{} {
	value, ok := r.Inputs[port]
	if !ok {
		return nil
	}
	data, live := value.Get()
	if !live {
		return nil
	}
	return data
}
