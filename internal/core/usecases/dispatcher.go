// internal/core/usecases/dispatcher.go
package usecases

import (
	"context"
	"fmt"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/core/ports"
	"gokutrace/internal/platform/errors"
	"gokutrace/internal/platform/logx"
	"gokutrace/internal/platform/validator"
	"gokutrace/internal/platform/workerpool"
)

// DefaultWorkers es el tamaño del pool cuando no se configura otro.
const DefaultWorkers = 50

// OutcomeFunc recibe cada outcome desde el worker que lo produjo; debe ser
// seguro para uso concurrente.
type OutcomeFunc func(domain.ProbeOutcome)

// Dispatcher ejecuta las tareas de sondeo sobre un pool de workers acotado.
type Dispatcher struct {
	prober  ports.Prober
	workers int
	logger  logx.Logger
}

// DispatcherOptions configura el dispatcher.
type DispatcherOptions struct {
	Prober  ports.Prober
	Workers int
	Logger  logx.Logger
}

// NewDispatcher crea un dispatcher.
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	return &Dispatcher{
		prober:  opts.Prober,
		workers: opts.Workers,
		logger:  opts.Logger.With("component", "dispatcher"),
	}
}

// probeJob adapta una ProbeTask al worker pool.
type probeJob struct {
	task      domain.ProbeTask
	prober    ports.Prober
	onOutcome OutcomeFunc
	progress  *Progress
}

func (j *probeJob) Name() string { return j.task.Name() }

func (j *probeJob) Execute(ctx context.Context) domain.ProbeOutcome {
	outcome := j.prober.Probe(ctx, j.task)
	j.complete(outcome)
	return outcome
}

func (j *probeJob) complete(outcome domain.ProbeOutcome) {
	if j.onOutcome != nil {
		j.onOutcome(outcome)
	}
	j.progress.advance()
}

// Run sondea todas las tareas y retorna los outcomes en orden de finalización.
//
// Cancelar ctx o progress detiene el envío de tareas nuevas; las que están en
// vuelo terminan. progress puede ser nil. Solo los errores de arranque del
// pool se retornan, junto con los outcomes obtenidos hasta ese momento.
func (d *Dispatcher) Run(ctx context.Context, tasks []domain.ProbeTask, progress *Progress, onOutcome OutcomeFunc) ([]domain.ProbeOutcome, error) {
	if progress == nil {
		progress = NewProgress(len(tasks))
	}
	defer progress.finish()

	outcomes := make([]domain.ProbeOutcome, 0, len(tasks))
	if len(tasks) == 0 {
		return outcomes, nil
	}
	if d.prober == nil {
		return outcomes, errors.Wrap(domain.ErrDispatchFailed, "no prober configured")
	}

	workers := min(d.workers, len(tasks))
	pool, err := workerpool.NewWorkerPool[domain.ProbeOutcome](workerpool.WorkerPoolConfig{
		Workers: workers,
		Logger:  d.logger,
	})
	if err != nil {
		return outcomes, errors.Wrap(domain.ErrDispatchFailed, err.Error())
	}
	if err := pool.Start(); err != nil {
		return outcomes, errors.Wrap(domain.ErrDispatchFailed, err.Error())
	}
	defer pool.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-progress.cancelCh:
			cancel()
		case <-runCtx.Done():
		}
	}()

	jobs := make([]workerpool.Task[domain.ProbeOutcome], len(tasks))
	for i := range tasks {
		jobs[i] = &probeJob{task: tasks[i], prober: d.prober, onOutcome: onOutcome, progress: progress}
	}

	d.logger.Info("dispatching probes", "tasks", len(tasks), "workers", workers)

	results, err := pool.Submit(runCtx, jobs)
	if err != nil {
		return outcomes, errors.Wrap(domain.ErrDispatchFailed, err.Error())
	}

	for res := range results {
		if res.Err != nil {
			// el prober entró en pánico: el outcome nunca se registró
			job := res.Task.(*probeJob)
			d.logger.Warn("probe task failed", "task", job.Name(), "error", res.Err.Error())
			res.Value = domain.NewOutcome(job.task, false,
				domain.StatusError(errors.Summarize(res.Err, 50)))
			job.complete(res.Value)
		}
		outcomes = append(outcomes, res.Value)
	}

	if n := len(outcomes); n < len(tasks) {
		d.logger.Warn("dispatch cancelled", "completed", n, "total", len(tasks))
	}
	return outcomes, nil
}

// Materialize es el camino del modo generate: sin red ni concurrencia,
// retorna solo las tareas cuya URL tiene forma válida.
func (d *Dispatcher) Materialize(tasks []domain.ProbeTask, progress *Progress) []domain.ProbeTask {
	if progress == nil {
		progress = NewProgress(len(tasks))
	}
	defer progress.finish()

	valid := make([]domain.ProbeTask, 0, len(tasks))
	for _, t := range tasks {
		if progress.Cancelled() {
			break
		}
		progress.advance()
		if !validator.IsProbeURL(t.URL) {
			d.logger.Debug("skipping malformed url", "task", t.Name(), "url", t.URL)
			continue
		}
		valid = append(valid, t)
	}
	return valid
}

// String describe el dispatcher en logs.
func (d *Dispatcher) String() string {
	return fmt.Sprintf("Dispatcher{workers=%d}", d.workers)
}
