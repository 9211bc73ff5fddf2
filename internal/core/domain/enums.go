// internal/core/domain/enums.go
package domain

// Mode define el modo de ejecución de una invocación.
type Mode string

const (
	// ModeScan sondea cada (variante, plataforma) por HTTP
	ModeScan Mode = "scan"

	// ModeGenerate solo materializa las URLs candidatas, sin red
	ModeGenerate Mode = "generate"
)

// IsValid verifica si el modo es válido.
func (m Mode) IsValid() bool {
	switch m {
	case ModeScan, ModeGenerate:
		return true
	default:
		return false
	}
}

// String retorna la representación string del modo.
func (m Mode) String() string {
	return string(m)
}

// Format define el formato del archivo de resultados.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// IsValid verifica si el formato es soportado por el sink.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// String retorna la representación string del formato.
func (f Format) String() string {
	return string(f)
}

// RunState es el estado de la máquina de estados del orchestrator.
type RunState string

const (
	StateIdle              RunState = "idle"
	StateVariantsGenerated RunState = "variants_generated"
	StateDispatching       RunState = "dispatching"
	StateAggregated        RunState = "aggregated"
	StateDone              RunState = "done"

	// StateNoTargets es terminal: la semilla no produjo variantes válidas
	StateNoTargets RunState = "no_targets"
)

// IsTerminal indica si el estado ya no admite transiciones.
func (s RunState) IsTerminal() bool {
	return s == StateDone || s == StateNoTargets
}
