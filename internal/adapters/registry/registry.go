package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/switchyard/switchyard/internal/domain"
	"github.com/switchyard/switchyard/internal/ports"
)

// Manager holds the executors node types resolve to at run time.
type Manager struct {
	executors map[string]ports.NodeExecutor
	mu        sync.RWMutex
	logger    *slog.Logger
}

func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		executors: make(map[string]ports.NodeExecutor),
		logger:    logger.With("component", "node-registry"),
	}
}

func (r *Manager) Register(executor ports.NodeExecutor) error {
	if executor == nil {
		return domain.NewValidationError("executor", "executor cannot be nil")
	}

	name := executor.Name()
	if name == "" {
		return domain.NewValidationError("executor", "executor name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.executors[name]; exists {
		r.logger.Debug("registration failed, executor already exists", "name", name)
		return domain.NewValidationError("executor", fmt.Sprintf("executor %q already registered", name))
	}

	r.executors[name] = executor
	r.logger.Debug("executor registered", "name", name, "total", len(r.executors))
	return nil
}

func (r *Manager) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.executors[name]; !exists {
		return fmt.Errorf("%w: %s", domain.ErrNodeUnregistered, name)
	}

	delete(r.executors, name)
	r.logger.Debug("executor unregistered", "name", name)
	return nil
}

func (r *Manager) Get(name string) (ports.NodeExecutor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	executor, exists := r.executors[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeUnregistered, name)
	}
	return executor, nil
}

func (r *Manager) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.executors))
	for name := range r.executors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
