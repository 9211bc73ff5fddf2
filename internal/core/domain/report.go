// internal/core/domain/report.go
package domain

import "time"

// Report es la salida del orchestrator: el ResultSet más contadores derivados.
type Report struct {
	RunID string
	Seed  string
	Mode  Mode
	State RunState

	Results ResultSet

	Variants  int
	Platforms int
	Tasks     int
	Completed int

	TotalHits int
	TotalURLs int

	StartTime time.Time
	Elapsed   time.Duration

	// Warnings no fatales (catálogo degradado, cancelación, ...)
	Warnings []string
}

// NoTargets indica el estado de cero resultados por semilla vacía o inválida.
func (r *Report) NoTargets() bool {
	return r.State == StateNoTargets
}

// AddWarning registra una advertencia no fatal.
func (r *Report) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
