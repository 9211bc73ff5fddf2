// internal/core/usecases/aggregator.go
package usecases

import (
	"sync"

	"gokutrace/internal/core/domain"
)

// ResultAggregator acumula outcomes en un ResultSet. Es seguro para
// escritores concurrentes: un lock grueso protege el mapa y cada entrada
// tiene el suyo, así dos variantes distintas no compiten.
type ResultAggregator struct {
	mode        domain.Mode
	trackMisses bool

	mu      sync.RWMutex
	entries map[string]*aggregateEntry
}

type aggregateEntry struct {
	mu     sync.Mutex
	result domain.VariantResult
}

// NewResultAggregator crea una entrada vacía por variante.
// trackMisses registra las plataformas sin resultado (modo verbose).
func NewResultAggregator(mode domain.Mode, variants []string, trackMisses bool) *ResultAggregator {
	entries := make(map[string]*aggregateEntry, len(variants))
	for _, v := range variants {
		entries[v] = newAggregateEntry()
	}
	return &ResultAggregator{
		mode:        mode,
		trackMisses: trackMisses,
		entries:     entries,
	}
}

func newAggregateEntry() *aggregateEntry {
	return &aggregateEntry{result: domain.VariantResult{
		Hits:   []domain.Hit{},
		Misses: []string{},
		URLs:   []domain.GeneratedURL{},
	}}
}

// entry retorna la entrada de la variante, creándola si no existe.
func (a *ResultAggregator) entry(variant string) *aggregateEntry {
	a.mu.RLock()
	e, ok := a.entries[variant]
	a.mu.RUnlock()
	if ok {
		return e
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if e, ok = a.entries[variant]; !ok {
		e = newAggregateEntry()
		a.entries[variant] = e
	}
	return e
}

// Record registra el outcome de una sonda.
func (a *ResultAggregator) Record(outcome domain.ProbeOutcome) {
	if !outcome.Found && !a.trackMisses {
		// igual crea la entrada: toda variante sondeada aparece en el set
		a.entry(outcome.Detail.Variant)
		return
	}

	e := a.entry(outcome.Detail.Variant)
	e.mu.Lock()
	defer e.mu.Unlock()

	if outcome.Found {
		e.result.Hits = append(e.result.Hits, domain.Hit{
			Platform: outcome.Platform,
			Detail:   outcome.Detail,
		})
		return
	}
	e.result.Misses = append(e.result.Misses, outcome.Platform)
}

// RecordURL registra una URL materializada en modo generate.
func (a *ResultAggregator) RecordURL(task domain.ProbeTask) {
	e := a.entry(task.Variant)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.result.URLs = append(e.result.URLs, domain.GeneratedURL{
		Platform:  task.Platform.Name,
		URL:       task.URL,
		Formatted: task.Handle,
	})
}

// Snapshot copia el estado actual a un ResultSet independiente.
// Tras la barrera del dispatcher el resultado es definitivo.
func (a *ResultAggregator) Snapshot() domain.ResultSet {
	a.mu.RLock()
	defer a.mu.RUnlock()

	rs := domain.ResultSet{
		Mode:    a.mode,
		Entries: make(map[string]*domain.VariantResult, len(a.entries)),
	}
	for v, e := range a.entries {
		e.mu.Lock()
		rs.Entries[v] = &domain.VariantResult{
			Hits:   append([]domain.Hit{}, e.result.Hits...),
			Misses: append([]string{}, e.result.Misses...),
			URLs:   append([]domain.GeneratedURL{}, e.result.URLs...),
		}
		e.mu.Unlock()
	}
	return rs
}

// Len retorna el número de variantes con entrada.
func (a *ResultAggregator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entries)
}
