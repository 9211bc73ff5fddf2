// internal/platform/resilience/circuit_breaker.go
package resilience

import (
	"sync"
	"time"
)

// State representa el estado del circuit breaker.
type State int

const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Failing, rejecting probes
	StateHalfOpen              // Testing if platform recovered
)

// Valores por defecto del breaker.
const (
	DefaultCooldown    = 30 * time.Second
	DefaultHalfOpenMax = 1
)

// CircuitBreaker implementa el patrón Circuit Breaker por plataforma:
// tras failureThreshold fallos consecutivos deja de sondear la plataforma
// hasta que pasa el cooldown.
type CircuitBreaker struct {
	mu              sync.Mutex
	state           State
	failureCount    int
	halfOpenCount   int
	lastFailureTime time.Time

	failureThreshold int
	cooldown         time.Duration
	halfOpenMax      int

	now func() time.Time
}

// NewCircuitBreaker crea un breaker cerrado. Un threshold <= 0 se
// normaliza a 1.
func NewCircuitBreaker(failureThreshold int, cooldown time.Duration, halfOpenMax int) *CircuitBreaker {
	if failureThreshold <= 0 {
		failureThreshold = 1
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if halfOpenMax <= 0 {
		halfOpenMax = DefaultHalfOpenMax
	}

	return &CircuitBreaker{
		state:            StateClosed,
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		halfOpenMax:      halfOpenMax,
		now:              time.Now,
	}
}

// Allow verifica si una sonda puede pasar.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true

	case StateOpen:
		if cb.now().Sub(cb.lastFailureTime) < cb.cooldown {
			return false
		}
		cb.state = StateHalfOpen
		cb.halfOpenCount = 1
		return true

	case StateHalfOpen:
		// Solo halfOpenMax sondas de prueba en vuelo
		if cb.halfOpenCount < cb.halfOpenMax {
			cb.halfOpenCount++
			return true
		}
		return false

	default:
		return false
	}
}

// RecordSuccess registra que la plataforma respondió.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount = 0
	if cb.state == StateHalfOpen {
		cb.state = StateClosed
		cb.halfOpenCount = 0
	}
}

// RecordFailure registra un fallo de la plataforma.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailureTime = cb.now()
	cb.failureCount++

	switch cb.state {
	case StateClosed:
		if cb.failureCount >= cb.failureThreshold {
			cb.state = StateOpen
		}
	case StateHalfOpen:
		// Fallo en half-open: reabrir de inmediato
		cb.state = StateOpen
		cb.halfOpenCount = 0
	}
}

// State retorna el estado actual del circuit breaker.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// String retorna una representación legible del estado.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}
