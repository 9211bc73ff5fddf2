// internal/core/usecases/progress.go
package usecases

import (
	"sync"
	"sync/atomic"
)

// Progress es el estado compartido entre el dispatcher y la presentación.
// completed es monótono; Done se cierra una sola vez al terminar el despacho.
type Progress struct {
	total     int
	completed atomic.Int64

	cancelled  atomic.Bool
	cancelCh   chan struct{}
	cancelOnce sync.Once

	done     chan struct{}
	doneOnce sync.Once
}

// NewProgress crea el seguimiento de un despacho de total tareas.
func NewProgress(total int) *Progress {
	if total < 0 {
		total = 0
	}
	return &Progress{
		total:    total,
		cancelCh: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Completed retorna las tareas terminadas.
func (p *Progress) Completed() int { return int(p.completed.Load()) }

// Total retorna las tareas del despacho.
func (p *Progress) Total() int { return p.total }

// Cancel pide la cancelación cooperativa. Es idempotente.
func (p *Progress) Cancel() {
	p.cancelOnce.Do(func() {
		p.cancelled.Store(true)
		close(p.cancelCh)
	})
}

// Cancelled indica si se pidió la cancelación.
func (p *Progress) Cancelled() bool { return p.cancelled.Load() }

// Done se cierra al terminar el despacho.
func (p *Progress) Done() <-chan struct{} { return p.done }

// Percent retorna el avance en [0, 100].
func (p *Progress) Percent() float64 {
	if p.total == 0 {
		return 100
	}
	return float64(p.Completed()) * 100 / float64(p.total)
}

func (p *Progress) advance() {
	p.completed.Add(1)
}

func (p *Progress) finish() {
	p.doneOnce.Do(func() { close(p.done) })
}
