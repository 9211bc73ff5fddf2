// internal/core/ports/progress.go
package ports

// ProgressTracker expone el avance de un despacho a la capa de presentación.
// La presentación lo consulta periódicamente; nunca escribe en él salvo Cancel.
type ProgressTracker interface {
	// Completed retorna cuántas tareas terminaron (monótono)
	Completed() int

	// Total retorna el número de tareas del despacho
	Total() int

	// Cancel pide detener el envío de nuevas tareas
	Cancel()

	// Cancelled indica si se pidió la cancelación cooperativa
	Cancelled() bool

	// Done se cierra cuando el despacho terminó
	Done() <-chan struct{}
}
