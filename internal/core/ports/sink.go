// internal/core/ports/sink.go
package ports

import "gokutrace/internal/core/domain"

// ResultSink es el port para persistir el ResultSet de una corrida.
type ResultSink interface {
	// Save escribe el reporte en el formato pedido y retorna el nombre del
	// archivo creado. Un ResultSet vacío retorna "" sin escribir nada.
	Save(report *domain.Report, format domain.Format) (string, error)
}
