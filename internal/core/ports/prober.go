// internal/core/ports/prober.go
package ports

import (
	"context"

	"gokutrace/internal/core/domain"
)

// Prober es el port de sondeo HTTP de una URL de perfil.
// Los fallos se expresan en el Status del outcome, nunca como error.
type Prober interface {
	Probe(ctx context.Context, task domain.ProbeTask) domain.ProbeOutcome
}

// ProberFunc adapta una función al port Prober.
type ProberFunc func(ctx context.Context, task domain.ProbeTask) domain.ProbeOutcome

// Probe implementa Prober.
func (f ProberFunc) Probe(ctx context.Context, task domain.ProbeTask) domain.ProbeOutcome {
	return f(ctx, task)
}
