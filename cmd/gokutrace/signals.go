// cmd/gokutrace/signals.go
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"gokutrace/internal/core/ports"
	"gokutrace/internal/platform/logx"
)

// interrupter traduce señales en cancelación: la primera SIGINT/SIGTERM
// detiene el despacho de forma cooperativa (las sondas en vuelo terminan
// y sus resultados se guardan), la segunda cancela el contexto raíz.
type interrupter struct {
	mu      sync.Mutex
	tracker ports.ProgressTracker
	cancel  context.CancelFunc
	logger  logx.Logger
	hits    int
}

// attach registra el progreso de la corrida en curso.
func (i *interrupter) attach(tracker ports.ProgressTracker) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.tracker = tracker
}

func (i *interrupter) interrupt(sig os.Signal) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.hits++
	if i.hits == 1 && i.tracker != nil {
		i.logger.Warn("interrupt received, finishing in-flight probes", "signal", sig.String())
		i.tracker.Cancel()
		return
	}
	i.logger.Warn("second interrupt, aborting", "signal", sig.String())
	i.cancel()
}

// rootContextWithSignals creates a root context cancelled by a second signal.
// The returned cleanup stops the signal handler.
func rootContextWithSignals(logger logx.Logger) (context.Context, *interrupter, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	intr := &interrupter{cancel: cancel, logger: logger}

	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-ch:
				intr.interrupt(sig)
			case <-done:
				return
			}
		}
	}()

	cleanup := func() {
		signal.Stop(ch)
		close(done)
		cancel()
	}
	return ctx, intr, cleanup
}
