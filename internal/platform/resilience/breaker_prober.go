// internal/platform/resilience/breaker_prober.go
package resilience

import (
	"context"
	"strings"
	"sync"
	"time"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/core/ports"
	"gokutrace/internal/platform/logx"
)

// StatusCircuitOpen es la etiqueta de las sondas que el breaker rechaza.
var StatusCircuitOpen = domain.StatusError("circuit open")

// BreakerProber envuelve un Prober con un circuit breaker por plataforma.
// Una plataforma que acumula fallos de transporte o respuestas 429/5xx
// deja de recibir sondas; esas tareas se resuelven como no encontradas
// con StatusCircuitOpen, sin tocar la red.
type BreakerProber struct {
	next        ports.Prober
	threshold   int
	cooldown    time.Duration
	halfOpenMax int
	logger      logx.Logger

	mu       sync.Mutex
	breakers map[string]*CircuitBreaker
}

// BreakerOptions configura el BreakerProber.
type BreakerOptions struct {
	Threshold   int
	Cooldown    time.Duration
	HalfOpenMax int
	Logger      logx.Logger
}

// NewBreakerProber crea el wrapper. Con Threshold <= 0 retorna next sin
// envolver.
func NewBreakerProber(next ports.Prober, opts BreakerOptions) ports.Prober {
	if opts.Threshold <= 0 {
		return next
	}
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	return &BreakerProber{
		next:        next,
		threshold:   opts.Threshold,
		cooldown:    opts.Cooldown,
		halfOpenMax: opts.HalfOpenMax,
		logger:      opts.Logger.With("component", "breaker"),
		breakers:    make(map[string]*CircuitBreaker),
	}
}

// Probe implementa ports.Prober.
func (b *BreakerProber) Probe(ctx context.Context, task domain.ProbeTask) domain.ProbeOutcome {
	cb := b.breakerFor(task.Platform.Name)
	if !cb.Allow() {
		return domain.NewOutcome(task, false, StatusCircuitOpen)
	}

	outcome := b.next.Probe(ctx, task)
	if isPlatformFailure(outcome.Detail.Status) {
		before := cb.State()
		cb.RecordFailure()
		if before != StateOpen && cb.State() == StateOpen {
			b.logger.Warn("circuit opened", "platform", task.Platform.Name, "status", outcome.Detail.Status)
		}
	} else {
		cb.RecordSuccess()
	}
	return outcome
}

// State retorna el estado del breaker de una plataforma.
func (b *BreakerProber) State(platform string) State {
	return b.breakerFor(platform).State()
}

func (b *BreakerProber) breakerFor(platform string) *CircuitBreaker {
	b.mu.Lock()
	defer b.mu.Unlock()

	cb, ok := b.breakers[platform]
	if !ok {
		cb = NewCircuitBreaker(b.threshold, b.cooldown, b.halfOpenMax)
		b.breakers[platform] = cb
	}
	return cb
}

// isPlatformFailure distingue una plataforma caída o limitando de una
// respuesta normal (2xx, 3xx, 404...).
func isPlatformFailure(status string) bool {
	if status == StatusCircuitOpen || status == domain.StatusInvalidURL {
		return false
	}
	if domain.IsErrorStatus(status) {
		return true
	}
	return status == domain.StatusCode(429) || strings.HasPrefix(status, "code_5")
}
