// internal/core/usecases/orchestrator.go
package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/core/ports"
	"gokutrace/internal/platform/errors"
	"gokutrace/internal/platform/logx"
	"gokutrace/internal/platform/metrics"
)

// transitions es la máquina de estados de una corrida.
var transitions = map[domain.RunState][]domain.RunState{
	domain.StateIdle:              {domain.StateVariantsGenerated, domain.StateNoTargets},
	domain.StateVariantsGenerated: {domain.StateDispatching},
	domain.StateDispatching:       {domain.StateAggregated},
	domain.StateAggregated:        {domain.StateDone},
}

// Orchestrator coordina una corrida: variantes, tareas, despacho y agregación.
type Orchestrator struct {
	catalog    domain.Catalog
	generator  *VariantGenerator
	dispatcher *Dispatcher
	metrics    *metrics.Metrics
	logger     logx.Logger

	// Configuración
	stealth     bool
	trackMisses bool
	onProgress  func(ports.ProgressTracker)

	mu      sync.Mutex
	state   domain.RunState
	running bool
}

// OrchestratorOptions configura el orchestrator.
type OrchestratorOptions struct {
	Catalog   domain.Catalog
	Prober    ports.Prober
	Generator *VariantGenerator
	Workers   int
	Metrics   *metrics.Metrics
	Logger    logx.Logger

	// Stealth enruta las sondas por el pool de proxies
	Stealth bool

	// TrackMisses registra las plataformas sin resultado (verbose ≥ 1)
	TrackMisses bool

	// OnProgress recibe el seguimiento del despacho antes de que empiece.
	// No debe bloquear.
	OnProgress func(ports.ProgressTracker)
}

// NewOrchestrator crea una nueva instancia del orchestrator.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Catalog.Len() == 0 {
		opts.Catalog = domain.DefaultCatalog()
	}
	if opts.Generator == nil {
		opts.Generator = NewVariantGenerator(VariantGeneratorOptions{Logger: opts.Logger})
	}

	return &Orchestrator{
		catalog:   opts.Catalog,
		generator: opts.Generator,
		dispatcher: NewDispatcher(DispatcherOptions{
			Prober:  opts.Prober,
			Workers: opts.Workers,
			Logger:  opts.Logger,
		}),
		metrics:     opts.Metrics,
		logger:      opts.Logger.With("component", "orchestrator"),
		stealth:     opts.Stealth,
		trackMisses: opts.TrackMisses,
		onProgress:  opts.OnProgress,
		state:       domain.StateIdle,
	}
}

// State retorna el estado de la corrida en curso o de la última.
func (o *Orchestrator) State() domain.RunState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) transition(to domain.RunState) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, allowed := range transitions[o.state] {
		if allowed == to {
			o.logger.Debug("state transition", "from", o.state, "to", to)
			o.state = to
			return nil
		}
	}
	return errors.Wrapf(domain.ErrInvalidState, "%s -> %s", o.state, to)
}

// Run ejecuta una corrida completa para seed en el modo indicado.
// Una semilla vacía no es un error: el reporte queda en StateNoTargets.
func (o *Orchestrator) Run(ctx context.Context, seed string, mode domain.Mode) (*domain.Report, error) {
	if !mode.IsValid() {
		return nil, errors.Wrapf(domain.ErrInvalidMode, "%q", mode)
	}

	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return nil, errors.Wrap(domain.ErrInvalidState, "run already in progress")
	}
	o.running = true
	o.state = domain.StateIdle
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	report := &domain.Report{
		RunID:     uuid.NewString(),
		Seed:      seed,
		Mode:      mode,
		State:     domain.StateIdle,
		Platforms: o.catalog.Len(),
		StartTime: time.Now(),
	}
	logger := o.logger.With("run_id", report.RunID)

	// Variantes
	variants := o.generator.Generate(seed, HasDNSHandlePlatform(o.catalog))
	if len(variants) == 0 {
		if err := o.transition(domain.StateNoTargets); err != nil {
			return nil, err
		}
		report.State = domain.StateNoTargets
		report.Results = domain.NewResultSet(mode, nil)
		report.Elapsed = time.Since(report.StartTime)
		o.metrics.RunFinished(string(mode), string(report.State), report.Elapsed)
		logger.Warn("no valid targets", "seed", seed)
		return report, nil
	}
	if err := o.transition(domain.StateVariantsGenerated); err != nil {
		return nil, err
	}
	report.State = domain.StateVariantsGenerated
	report.Variants = len(variants)

	tasks := BuildTasks(variants, o.catalog, o.stealth && mode == domain.ModeScan)
	report.Tasks = len(tasks)

	logger.Info("starting run",
		"mode", mode,
		"variants", len(variants),
		"platforms", o.catalog.Len(),
		"tasks", len(tasks),
	)

	// Despacho
	if err := o.transition(domain.StateDispatching); err != nil {
		return nil, err
	}
	report.State = domain.StateDispatching

	aggregator := NewResultAggregator(mode, variants, o.trackMisses)
	progress := NewProgress(len(tasks))
	if o.onProgress != nil {
		o.onProgress(progress)
	}

	switch mode {
	case domain.ModeScan:
		outcomes, err := o.dispatcher.Run(ctx, tasks, progress, aggregator.Record)
		report.Completed = len(outcomes)
		if err != nil {
			report.Results = aggregator.Snapshot()
			report.Elapsed = time.Since(report.StartTime)
			logger.Err(err, "phase", "dispatch")
			return report, err
		}
	case domain.ModeGenerate:
		for _, t := range o.dispatcher.Materialize(tasks, progress) {
			aggregator.RecordURL(t)
		}
		report.Completed = progress.Completed()
	}

	if progress.Cancelled() || ctx.Err() != nil {
		report.AddWarning(fmt.Sprintf("run cancelled: %d of %d tasks completed", report.Completed, report.Tasks))
	}

	// Agregación
	if err := o.transition(domain.StateAggregated); err != nil {
		return nil, err
	}
	report.State = domain.StateAggregated
	report.Results = aggregator.Snapshot()
	report.TotalHits = report.Results.TotalHits()
	report.TotalURLs = report.Results.TotalURLs()

	if err := o.transition(domain.StateDone); err != nil {
		return nil, err
	}
	report.State = domain.StateDone
	report.Elapsed = time.Since(report.StartTime)
	o.metrics.RunFinished(string(mode), string(report.State), report.Elapsed)

	logger.Info("run completed",
		"mode", mode,
		"completed", report.Completed,
		"hits", report.TotalHits,
		"urls", report.TotalURLs,
		"duration_ms", report.Elapsed.Milliseconds(),
	)

	return report, nil
}
