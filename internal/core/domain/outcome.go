// internal/core/domain/outcome.go
package domain

import (
	"strconv"
	"strings"
)

// Etiquetas de estado de un ProbeOutcome.
const (
	StatusActive     = "active"
	StatusInvalidURL = "invalid_url"

	statusCodePrefix  = "code_"
	statusErrorPrefix = "error_"
)

// StatusCode construye la etiqueta "code_<status>".
func StatusCode(code int) string {
	return statusCodePrefix + strconv.Itoa(code)
}

// StatusError construye la etiqueta "error_<msg>"; msg ya viene truncado.
func StatusError(msg string) string {
	return statusErrorPrefix + msg
}

// IsErrorStatus indica si la etiqueta corresponde a un fallo de transporte.
func IsErrorStatus(status string) bool {
	return strings.HasPrefix(status, statusErrorPrefix)
}

// StatusClass agrupa etiquetas para métricas: active, code_4xx, error, ...
func StatusClass(status string) string {
	switch {
	case status == StatusActive, status == StatusInvalidURL:
		return status
	case IsErrorStatus(status):
		return "error"
	case strings.HasPrefix(status, statusCodePrefix) && len(status) == len(statusCodePrefix)+3:
		return statusCodePrefix + status[len(statusCodePrefix):len(statusCodePrefix)+1] + "xx"
	default:
		return "other"
	}
}

// Detail es el detalle serializable de una sonda.
type Detail struct {
	URL       string `json:"url"`
	Status    string `json:"status"`
	Variant   string `json:"username"`
	Formatted string `json:"formatted"`
}

// ProbeOutcome es el resultado clasificado de una sonda. Se retorna por valor:
// los fallos son una etiqueta, nunca un error propagado.
type ProbeOutcome struct {
	Platform string
	Found    bool
	Detail   Detail
}

// NewOutcome arma un outcome a partir de la tarea que lo produjo.
func NewOutcome(task ProbeTask, found bool, status string) ProbeOutcome {
	return ProbeOutcome{
		Platform: task.Platform.Name,
		Found:    found,
		Detail: Detail{
			URL:       task.URL,
			Status:    status,
			Variant:   task.Variant,
			Formatted: task.Handle,
		},
	}
}
