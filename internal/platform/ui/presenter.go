// internal/platform/ui/presenter.go
package ui

import (
	"io"
	"time"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/core/ports"
)

// Presenter define la interfaz para presentar una corrida en la terminal.
// La presentación solo observa: consulta el ProgressTracker y nunca toca
// el despacho, salvo para pedir cancelación.
type Presenter interface {
	// Start muestra el encabezado de la corrida
	Start(info RunInfo)

	// Track empieza a seguir el avance del despacho; no bloquea
	Track(progress ports.ProgressTracker)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Finish detiene el seguimiento y muestra los resultados
	Finish(report *domain.Report, verbose int)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo contiene información inicial de la corrida
type RunInfo struct {
	Seed      string
	Mode      domain.Mode
	Platforms int
	Workers   int
	Timeout   time.Duration
	Stealth   bool
	Proxies   int
	Catalog   string
}

// New crea el presenter del modo indicado ("pterm", "raw" o "quiet").
// Un modo desconocido se trata como "pterm".
func New(mode string, w io.Writer) Presenter {
	switch mode {
	case "quiet":
		return NewNoopPresenter()
	case "raw":
		return NewRawPresenter(w)
	default:
		return NewPTermPresenter()
	}
}
