package core

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchyard/switchyard/internal/domain"
	"github.com/switchyard/switchyard/internal/testutil"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := New(domain.Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	require.NoError(t, m.RegisterNode(testutil.Emit("emit", map[string]interface{}{"user_type": "premium"})))
	require.NoError(t, m.RegisterNode(testutil.Passthrough("pass")))
	return m
}

func routingGraph(t *testing.T) *domain.Graph {
	t.Helper()

	g := domain.NewGraph()
	require.NoError(t, g.AddNode(&domain.Node{ID: "src", Kind: domain.KindSource, Type: "emit"}))
	require.NoError(t, g.AddNode(&domain.Node{ID: "tier", Kind: domain.KindSwitch, Switch: &domain.SwitchConfig{
		ConditionField: "user_type",
		Operator:       domain.OperatorEquals,
		Value:          "premium",
	}}))
	require.NoError(t, g.AddNode(&domain.Node{ID: "premium", Kind: domain.KindProcessor, Type: "pass"}))
	require.NoError(t, g.AddNode(&domain.Node{ID: "standard", Kind: domain.KindProcessor, Type: "pass"}))
	require.NoError(t, g.AddConnection(domain.Edge{FromNode: "src", FromPort: domain.PortOutput, ToNode: "tier", ToPort: domain.PortInput}))
	require.NoError(t, g.AddConnection(domain.Edge{FromNode: "tier", FromPort: domain.PortTrueOutput, ToNode: "premium", ToPort: domain.PortInput}))
	require.NoError(t, g.AddConnection(domain.Edge{FromNode: "tier", FromPort: domain.PortFalseOutput, ToNode: "standard", ToPort: domain.PortInput}))
	return g
}

func TestManager_ExecuteAndArchive(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	record, runID, err := m.Execute(ctx, routingGraph(t), domain.ExecutionConfig{Mode: domain.ModeSkipBranches})
	require.NoError(t, err)
	require.NotEmpty(t, runID)
	assert.Equal(t, domain.RunStatusCompleted, record.Status)

	archived, err := m.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, runID, archived.RunID)
	assert.Equal(t, domain.NodeStateSkipped, archived.Nodes["standard"].State)
	assert.Equal(t, domain.NodeStateCompleted, archived.Nodes["premium"].State)

	ids, err := m.ListRuns(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, runID)
}

func TestManager_GetRun_Missing(t *testing.T) {
	m := newTestManager(t)

	_, err := m.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestManager_Hooks(t *testing.T) {
	m := newTestManager(t)

	var runEvents []*RunCompletedEvent
	nodeStates := make(map[string]domain.NodeState)
	m.OnRunCompleted(func(e *RunCompletedEvent) {
		runEvents = append(runEvents, e)
	})
	m.OnNodeFinished(func(e *NodeFinishedEvent) {
		nodeStates[e.NodeID] = e.State
	})

	_, runID, err := m.Execute(context.Background(), routingGraph(t), domain.ExecutionConfig{Mode: domain.ModeSkipBranches})
	require.NoError(t, err)

	require.Len(t, runEvents, 1)
	assert.Equal(t, runID, runEvents[0].RunID)
	assert.Equal(t, domain.RunStatusCompleted, runEvents[0].Status)
	assert.Equal(t, domain.NodeStateSkipped, nodeStates["standard"])
	assert.Equal(t, domain.NodeStateCompleted, nodeStates["premium"])
}

func TestManager_Metrics(t *testing.T) {
	m := newTestManager(t)

	_, _, err := m.Execute(context.Background(), routingGraph(t), domain.ExecutionConfig{Mode: domain.ModeSkipBranches})
	require.NoError(t, err)

	metrics := m.Metrics()
	assert.Equal(t, int64(1), metrics.RunsStarted)
	assert.Equal(t, int64(1), metrics.RunsCompleted)
	assert.Equal(t, int64(1), metrics.SwitchesEvaluated)
	assert.Equal(t, int64(1), metrics.NodesSkipped)
}

func TestManager_ExecuteAfterClose(t *testing.T) {
	m, err := New(domain.Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)
	require.NoError(t, m.Close())

	_, _, err = m.Execute(context.Background(), routingGraph(t), domain.ExecutionConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)

	assert.ErrorIs(t, m.Close(), domain.ErrAlreadyClosed)
}

func TestManager_RegisteredNodes(t *testing.T) {
	m := newTestManager(t)

	assert.Equal(t, []string{"emit", "pass"}, m.RegisteredNodes())
	require.NoError(t, m.UnregisterNode("emit"))
	assert.Equal(t, []string{"pass"}, m.RegisteredNodes())
}
