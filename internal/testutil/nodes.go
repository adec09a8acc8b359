package testutil

import (
	"context"
	"errors"

	"github.com/switchyard/switchyard/internal/domain"
	"github.com/switchyard/switchyard/internal/ports"
)

// FuncNode adapts a plain function to the NodeExecutor contract.
type FuncNode struct {
	NodeName string
	In       []string
	Out      []string
	Fn       func(ctx context.Context, req ports.ExecuteRequest) (map[string]interface{}, error)
}

func (n *FuncNode) Name() string {
	return n.NodeName
}

func (n *FuncNode) Execute(ctx context.Context, req ports.ExecuteRequest) (map[string]interface{}, error) {
	return n.Fn(ctx, req)
}

func (n *FuncNode) DeclaredInputs() []string {
	return n.In
}

func (n *FuncNode) DeclaredOutputs() []string {
	return n.Out
}

// Emit returns a source executor that always produces payload on "output".
func Emit(name string, payload interface{}) *FuncNode {
	return &FuncNode{
		NodeName: name,
		Out:      []string{domain.PortOutput},
		Fn: func(ctx context.Context, req ports.ExecuteRequest) (map[string]interface{}, error) {
			return map[string]interface{}{domain.PortOutput: payload}, nil
		},
	}
}

// Passthrough returns a processor executor that forwards its "input" value
// to "output" unchanged.
func Passthrough(name string) *FuncNode {
	return &FuncNode{
		NodeName: name,
		In:       []string{domain.PortInput},
		Out:      []string{domain.PortOutput},
		Fn: func(ctx context.Context, req ports.ExecuteRequest) (map[string]interface{}, error) {
			return map[string]interface{}{domain.PortOutput: req.Input(domain.PortInput)}, nil
		},
	}
}

// Failing returns an executor that always errors with the given message.
func Failing(name, message string) *FuncNode {
	return &FuncNode{
		NodeName: name,
		In:       []string{domain.PortInput},
		Out:      []string{domain.PortOutput},
		Fn: func(ctx context.Context, req ports.ExecuteRequest) (map[string]interface{}, error) {
			return nil, errors.New(message)
		},
	}
}
