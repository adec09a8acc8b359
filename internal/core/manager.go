package core

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/switchyard/switchyard/internal/adapters/engine"
	"github.com/switchyard/switchyard/internal/adapters/registry"
	"github.com/switchyard/switchyard/internal/adapters/storage"
	"github.com/switchyard/switchyard/internal/domain"
	"github.com/switchyard/switchyard/internal/ports"
)

// RunCompletedEvent is emitted after a run reaches a terminal state.
type RunCompletedEvent struct {
	RunID  string
	Status domain.RunStatus
	Record *domain.ExecutionRecord
}

// NodeFinishedEvent is emitted for every node of a finished run.
type NodeFinishedEvent struct {
	RunID  string
	NodeID string
	State  domain.NodeState
}

// Manager wires the node registry, the execution engine and the run archive
// into one entry point.
type Manager struct {
	registry *registry.Manager
	engine   *engine.Engine
	store    ports.RunStorePort
	logger   *slog.Logger

	mu                sync.RWMutex
	closed            bool
	onRunCompleted    []func(*RunCompletedEvent)
	onNodeFinished    []func(*NodeFinishedEvent)
}

func New(cfg domain.Config) (*Manager, error) {
	cfg.ApplyDefaults()

	store, err := storage.NewRunStore(cfg.DataDir, cfg.Logger)
	if err != nil {
		return nil, err
	}

	reg := registry.NewManager(cfg.Logger)

	return &Manager{
		registry: reg,
		engine:   engine.NewEngine(reg, cfg.Logger),
		store:    store,
		logger:   cfg.Logger.With("component", "manager"),
	}, nil
}

func (m *Manager) RegisterNode(executor ports.NodeExecutor) error {
	return m.registry.Register(executor)
}

func (m *Manager) UnregisterNode(name string) error {
	return m.registry.Unregister(name)
}

func (m *Manager) RegisteredNodes() []string {
	return m.registry.List()
}

// Execute runs the graph once and archives the finished record. It returns
// the record together with the generated run id.
func (m *Manager) Execute(ctx context.Context, graph *domain.Graph, cfg domain.ExecutionConfig) (*domain.ExecutionRecord, string, error) {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return nil, "", domain.ErrAlreadyClosed
	}
	m.mu.RUnlock()

	runID := uuid.New().String()

	record, err := m.engine.Execute(ctx, graph, cfg, runID)
	if err != nil {
		return nil, "", err
	}

	if err := m.store.SaveRun(ctx, record); err != nil {
		m.logger.Warn("failed to archive run", "run_id", runID, "error", err)
	}

	m.dispatch(record)

	return record, runID, nil
}

func (m *Manager) GetRun(ctx context.Context, runID string) (*domain.ExecutionRecord, error) {
	return m.store.GetRun(ctx, runID)
}

func (m *Manager) ListRuns(ctx context.Context) ([]string, error) {
	return m.store.ListRuns(ctx)
}

func (m *Manager) DeleteRun(ctx context.Context, runID string) error {
	return m.store.DeleteRun(ctx, runID)
}

func (m *Manager) Metrics() domain.ExecutionMetrics {
	return m.engine.Metrics().GetSnapshot()
}

func (m *Manager) OnRunCompleted(handler func(*RunCompletedEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRunCompleted = append(m.onRunCompleted, handler)
}

func (m *Manager) OnNodeFinished(handler func(*NodeFinishedEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onNodeFinished = append(m.onNodeFinished, handler)
}

func (m *Manager) dispatch(record *domain.ExecutionRecord) {
	m.mu.RLock()
	runHandlers := make([]func(*RunCompletedEvent), len(m.onRunCompleted))
	copy(runHandlers, m.onRunCompleted)
	nodeHandlers := make([]func(*NodeFinishedEvent), len(m.onNodeFinished))
	copy(nodeHandlers, m.onNodeFinished)
	m.mu.RUnlock()

	for _, handler := range nodeHandlers {
		for nodeID, rec := range record.Nodes {
			handler(&NodeFinishedEvent{
				RunID:  record.RunID,
				NodeID: nodeID,
				State:  rec.State,
			})
		}
	}

	for _, handler := range runHandlers {
		handler(&RunCompletedEvent{
			RunID:  record.RunID,
			Status: record.Status,
			Record: record,
		})
	}
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return domain.ErrAlreadyClosed
	}
	m.closed = true

	return m.store.Close()
}
