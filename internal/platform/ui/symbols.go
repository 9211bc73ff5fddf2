// internal/platform/ui/symbols.go
package ui

import (
	"strings"

	"github.com/pterm/pterm"

	"gokutrace/internal/core/domain"
)

// Status agrupa los estados de un outcome para su presentación
type Status int

const (
	StatusActive Status = iota
	StatusMiss
	StatusInvalid
	StatusError
)

// StatusOf clasifica una etiqueta de outcome.
func StatusOf(label string) Status {
	switch {
	case label == domain.StatusActive:
		return StatusActive
	case label == domain.StatusInvalidURL:
		return StatusInvalid
	case strings.HasPrefix(label, "error_"):
		return StatusError
	default:
		return StatusMiss
	}
}

// String convierte el status a string
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusMiss:
		return "miss"
	case StatusInvalid:
		return "invalid"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Symbol retorna el símbolo para cada estado
func (s Status) Symbol() string {
	switch s {
	case StatusActive:
		return "[+]"
	case StatusMiss:
		return "[-]"
	case StatusInvalid:
		return "[?]"
	case StatusError:
		return "[!]"
	default:
		return "[ ]"
	}
}

// Color retorna el color pterm para cada estado
func (s Status) Color() pterm.Color {
	switch s {
	case StatusActive:
		return pterm.FgGreen
	case StatusMiss:
		return pterm.FgGray
	case StatusInvalid:
		return pterm.FgYellow
	case StatusError:
		return pterm.FgRed
	default:
		return pterm.FgDefault
	}
}

// Icons globales para diferentes elementos de la UI
var (
	IconTarget   = "🎯"
	IconTime     = "⏱"
	IconWorkers  = "⚙️"
	IconStealth  = "🥷"
	IconPlatform = "🌐"
)

// Separadores
var (
	SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
)
