// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gokutrace/internal/platform/logx"
)

var (
	ErrPoolStarted    = errors.New("worker pool already started")
	ErrPoolNotStarted = errors.New("worker pool not started")
	ErrPoolStopped    = errors.New("worker pool stopped")
	ErrInvalidWorkers = errors.New("worker count must be positive")
)

// Task representa una tarea a ejecutar en el worker pool.
type Task[R any] interface {
	// Execute ejecuta la tarea y retorna su resultado por valor
	Execute(ctx context.Context) R

	// Name retorna el nombre de la tarea (para logs)
	Name() string
}

// TaskResult representa el resultado de una tarea.
type TaskResult[R any] struct {
	Task     Task[R]
	Value    R
	Duration time.Duration

	// Err solo se rellena si la tarea entró en pánico; Value queda en cero
	Err error
}

// job acompaña a la tarea con el canal de respuesta de su lote.
type job[R any] struct {
	ctx   context.Context
	task  Task[R]
	reply chan<- TaskResult[R]
	done  func()
}

// WorkerPool ejecuta tareas con concurrencia acotada por un número fijo de workers.
// Los resultados se entregan en orden de finalización, no de envío.
type WorkerPool[R any] struct {
	workers int
	logger  logx.Logger

	taskQueue chan job[R]

	mu      sync.Mutex
	started bool
	stopped bool

	wg      sync.WaitGroup // workers
	feeders sync.WaitGroup // goroutines de Submit que aún envían
	ctx     context.Context
	cancel  context.CancelFunc

	submitted atomic.Int64
	completed atomic.Int64
	panics    atomic.Int64
}

// WorkerPoolConfig configura el worker pool.
type WorkerPoolConfig struct {
	Workers int
	Logger  logx.Logger
}

// NewWorkerPool crea un nuevo worker pool. Workers == 0 usa 4.
func NewWorkerPool[R any](cfg WorkerPoolConfig) (*WorkerPool[R], error) {
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.Nop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool[R]{
		workers:   cfg.Workers,
		logger:    cfg.Logger.With("component", "worker-pool"),
		taskQueue: make(chan job[R], cfg.Workers*2), // Buffer 2x workers
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Start lanza los workers.
func (wp *WorkerPool[R]) Start() error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.stopped {
		return ErrPoolStopped
	}
	if wp.started {
		return ErrPoolStarted
	}
	wp.started = true

	wp.logger.Debug("starting worker pool", "workers", wp.workers)
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
	return nil
}

// worker procesa tareas hasta que se cierra la cola.
func (wp *WorkerPool[R]) worker(id int) {
	defer wp.wg.Done()

	for j := range wp.taskQueue {
		wp.executeTask(id, j)
	}
	wp.logger.Debug("task queue closed, worker stopping", "worker_id", id)
}

// executeTask ejecuta una tarea aislando sus pánicos del resto del pool.
func (wp *WorkerPool[R]) executeTask(workerID int, j job[R]) {
	start := time.Now()
	result := TaskResult[R]{Task: j.task}

	func() {
		defer func() {
			if r := recover(); r != nil {
				wp.panics.Add(1)
				result.Err = fmt.Errorf("task %s panicked: %v", j.task.Name(), r)
				wp.logger.Warn("task panicked", "worker_id", workerID, "task", j.task.Name())
			}
		}()
		result.Value = j.task.Execute(j.ctx)
	}()

	result.Duration = time.Since(start)
	wp.completed.Add(1)

	// reply tiene capacidad para todo el lote: nunca bloquea
	j.reply <- result
	j.done()
}

// Submit encola un lote y retorna un canal con los resultados en orden de
// finalización. El canal se cierra cuando terminan todas las tareas enviadas.
//
// Cancelar ctx detiene el envío de tareas nuevas; las que ya están en vuelo
// terminan con un contexto que no se cancela.
func (wp *WorkerPool[R]) Submit(ctx context.Context, tasks []Task[R]) (<-chan TaskResult[R], error) {
	wp.mu.Lock()
	if wp.stopped {
		wp.mu.Unlock()
		return nil, ErrPoolStopped
	}
	if !wp.started {
		wp.mu.Unlock()
		return nil, ErrPoolNotStarted
	}
	wp.feeders.Add(1)
	wp.mu.Unlock()

	reply := make(chan TaskResult[R], len(tasks))
	taskCtx := context.WithoutCancel(ctx)

	var batch sync.WaitGroup
	go func() {
		defer wp.feeders.Done()
		defer func() {
			// cerrar cuando el último worker del lote responda
			go func() {
				batch.Wait()
				close(reply)
			}()
		}()

		for _, task := range tasks {
			if ctx.Err() != nil || wp.ctx.Err() != nil {
				return
			}
			batch.Add(1)
			select {
			case wp.taskQueue <- job[R]{ctx: taskCtx, task: task, reply: reply, done: batch.Done}:
				wp.submitted.Add(1)
			case <-ctx.Done():
				batch.Done()
				return
			case <-wp.ctx.Done():
				batch.Done()
				return
			}
		}
	}()

	return reply, nil
}

// Stop deja de aceptar lotes, espera a los envíos en curso y a los workers.
func (wp *WorkerPool[R]) Stop() {
	wp.mu.Lock()
	if wp.stopped {
		wp.mu.Unlock()
		return
	}
	wp.stopped = true
	started := wp.started
	wp.mu.Unlock()

	wp.cancel()
	wp.feeders.Wait()
	close(wp.taskQueue)
	if started {
		wp.wg.Wait()
	}

	wp.logger.Debug("worker pool stopped",
		"submitted", wp.submitted.Load(),
		"completed", wp.completed.Load(),
	)
}

// Stats retorna estadísticas del worker pool.
func (wp *WorkerPool[R]) Stats() WorkerPoolStats {
	return WorkerPoolStats{
		Workers:   wp.workers,
		QueueSize: len(wp.taskQueue),
		Submitted: wp.submitted.Load(),
		Completed: wp.completed.Load(),
		Panics:    wp.panics.Load(),
	}
}

// WorkerPoolStats contiene estadísticas del worker pool.
type WorkerPoolStats struct {
	Workers   int
	QueueSize int
	Submitted int64
	Completed int64
	Panics    int64
}
