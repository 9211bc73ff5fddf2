// internal/core/domain/task.go
package domain

// ProbeTask es una unidad de trabajo: una variante contra una plataforma.
type ProbeTask struct {
	Platform Platform

	// Variant es la variante generada, clave del ResultSet
	Variant string

	// Handle es la variante con el formato propio de la plataforma (p.ej. "@alice")
	Handle string

	// URL ya contiene el handle codificado
	URL string

	// Stealth indica que la sonda debe salir por un proxy del pool
	Stealth bool
}

// Name identifica la tarea en logs.
func (t ProbeTask) Name() string {
	return t.Platform.Name + ":" + t.Variant
}
