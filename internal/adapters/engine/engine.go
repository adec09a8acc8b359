package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/switchyard/switchyard/internal/domain"
	"github.com/switchyard/switchyard/internal/ports"
)

// Engine schedules one graph run to completion: it orders nodes, evaluates
// switches, prunes or sentinels dead branches depending on the execution
// mode, and produces the run's ExecutionRecord.
type Engine struct {
	registry ports.NodeRegistryPort
	logger   *slog.Logger
	metrics  *domain.ExecutionMetrics
}

func NewEngine(registry ports.NodeRegistryPort, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		registry: registry,
		logger:   logger.With("component", "engine"),
		metrics:  domain.NewExecutionMetrics(),
	}
}

func (e *Engine) Metrics() *domain.ExecutionMetrics {
	return e.metrics
}

// Execute runs the graph once under the given configuration and returns the
// finished record. The configuration is scoped to this call only; concurrent
// runs with different modes share one Engine safely.
func (e *Engine) Execute(ctx context.Context, graph *domain.Graph, cfg domain.ExecutionConfig, runID string) (*domain.ExecutionRecord, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}

	if err := e.preflight(graph); err != nil {
		return nil, err
	}

	record := domain.NewExecutionRecord(runID, cfg.Mode)
	record.Status = domain.RunStatusRunning
	e.metrics.IncrementRunsStarted()

	r := &run{
		engine:    e,
		graph:     graph,
		cfg:       cfg,
		record:    record,
		logger:    e.logger.With("run_id", runID),
		outcomes:  make(map[string]string),
		livePorts: make(map[string]map[string]bool),
		finalized: make(map[string]bool),
	}

	if cfg.UseSwitchLayering {
		r.layerOf = make(map[string]int)
		for i, layer := range SwitchLayers(graph) {
			for _, id := range layer {
				r.layerOf[id] = i
			}
		}
	}

	r.logger.Debug("starting run",
		"mode", cfg.Mode,
		"error_policy", cfg.ErrorPolicy,
		"node_count", len(graph.Nodes()),
		"layering", cfg.UseSwitchLayering,
	)

	started := time.Now()
	r.execute(ctx)
	e.metrics.AddExecutionTime(time.Since(started))

	now := time.Now()
	record.CompletedAt = &now
	if record.Status != domain.RunStatusFailed {
		record.Status = domain.RunStatusCompleted
		e.metrics.IncrementRunsCompleted()
	} else {
		e.metrics.IncrementRunsFailed()
	}

	r.logger.Debug("run finished",
		"status", record.Status,
		"completed", len(record.NodesInState(domain.NodeStateCompleted)),
		"skipped", len(record.NodesInState(domain.NodeStateSkipped)),
		"failed", len(record.NodesInState(domain.NodeStateFailed)),
	)

	return record, nil
}

// preflight checks that every node the run will need has a registered
// executor, and that executors declaring their ports agree with the graph.
func (e *Engine) preflight(graph *domain.Graph) error {
	for _, node := range graph.Nodes() {
		if node.Kind != domain.KindSource && node.Kind != domain.KindProcessor {
			continue
		}

		executor, err := e.registry.Get(node.Type)
		if err != nil {
			return fmt.Errorf("%w: node %s needs type %q", domain.ErrNodeUnregistered, node.ID, node.Type)
		}

		declarer, ok := executor.(ports.PortDeclarer)
		if !ok {
			continue
		}
		if err := checkDeclaredPorts(node.ID, node.Inputs, declarer.DeclaredInputs(), "input"); err != nil {
			return err
		}
		if err := checkDeclaredPorts(node.ID, node.Outputs, declarer.DeclaredOutputs(), "output"); err != nil {
			return err
		}
	}
	return nil
}

func checkDeclaredPorts(nodeID string, used, declared []string, kind string) error {
	if len(declared) == 0 {
		return nil
	}
	set := make(map[string]bool, len(declared))
	for _, p := range declared {
		set[p] = true
	}
	for _, p := range used {
		if !set[p] {
			return domain.NewValidationError(kind+"_port", fmt.Sprintf("node %s uses %s port %q its executor does not declare", nodeID, kind, p))
		}
	}
	return nil
}

// run carries the mutable state of a single invocation. The record map is
// append-only with one writer per node id; everything is guarded by mu so
// parallel waves stay race-free.
type run struct {
	engine *Engine
	graph  *domain.Graph
	cfg    domain.ExecutionConfig
	record *domain.ExecutionRecord
	logger *slog.Logger

	mu        sync.Mutex
	outcomes  map[string]string
	livePorts map[string]map[string]bool
	finalized map[string]bool
	aborted   bool

	layerOf map[string]int
}

func (r *run) execute(ctx context.Context) {
	order := topologicalOrder(r.graph)

	for {
		if r.isAborted() || ctx.Err() != nil {
			break
		}

		wave := r.nextWave(order)
		if len(wave) == 0 {
			break
		}

		r.runWave(ctx, wave)
	}

	if ctx.Err() != nil && !r.isAborted() {
		r.abort(ctx.Err())
	}

	// Whatever never got a chance to run is finalized Skipped so the record
	// always answers for every node.
	for _, id := range order {
		r.mu.Lock()
		done := r.finalized[id]
		r.mu.Unlock()
		if !done {
			r.finalizeSkipped(id)
		}
	}
}

// nextWave returns all unfinalized nodes whose predecessors are finalized.
// With switch layering enabled, ready switches are additionally held back
// until every ready switch of a lower layer has been evaluated, so each
// layer's predicates run together.
func (r *run) nextWave(order []string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var wave []string
	minLayer := -1
	for _, id := range order {
		if r.finalized[id] {
			continue
		}

		ready := true
		for _, edge := range r.graph.InEdges(id) {
			if !r.finalized[edge.FromNode] {
				ready = false
				break
			}
		}
		if !ready {
			continue
		}

		if r.layerOf != nil {
			if layer, isSwitch := r.layerOf[id]; isSwitch {
				if minLayer == -1 || layer < minLayer {
					minLayer = layer
				}
			}
		}
		wave = append(wave, id)
	}

	if r.layerOf == nil || minLayer == -1 {
		return wave
	}

	filtered := wave[:0]
	for _, id := range wave {
		if layer, isSwitch := r.layerOf[id]; isSwitch && layer > minLayer {
			continue
		}
		filtered = append(filtered, id)
	}
	return filtered
}

func (r *run) runWave(ctx context.Context, wave []string) {
	sem := make(chan struct{}, r.cfg.MaxConcurrentNodes)
	var wg sync.WaitGroup

	for _, id := range wave {
		if r.isAborted() {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(nodeID string) {
			defer wg.Done()
			defer func() { <-sem }()
			r.runNode(ctx, nodeID)
		}(id)
	}

	wg.Wait()
}

func (r *run) isAborted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aborted
}

func (r *run) abort(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.aborted {
		return
	}
	r.aborted = true
	r.record.Status = domain.RunStatusFailed
	r.record.Error = err.Error()
}
