// internal/core/usecases/task_builder.go
package usecases

import (
	"strings"

	"gokutrace/internal/core/domain"
)

// atPrefixPlatforms son las plataformas conocidas cuyo handle público
// empieza por "@", aunque el catálogo no lo declare.
var atPrefixPlatforms = map[string]bool{
	"YouTube":  true,
	"TikTok":   true,
	"Medium":   true,
	"Mastodon": true,
}

const upperHex = "0123456789ABCDEF"

// RequiresAtPrefix indica si la plataforma exige handles con "@".
func RequiresAtPrefix(p domain.Platform) bool {
	return p.AtPrefix || atPrefixPlatforms[p.Name]
}

// FormatHandle retorna el handle efectivo de variant para la plataforma.
func FormatHandle(p domain.Platform, variant string) string {
	if RequiresAtPrefix(p) && !strings.HasPrefix(variant, "@") {
		return "@" + variant
	}
	return variant
}

// EscapeHandle codifica el handle para el slot de la plantilla. Conserva
// A-Z a-z 0-9 "_.-~" y "/", el resto de bytes UTF-8 pasa a %XX.
//
// url.PathEscape no sirve aquí: deja sin codificar "@", "!", "$" y otros
// sub-delims, que sí deben viajar codificados ("@alice" -> "%40alice").
func EscapeHandle(h string) string {
	var b strings.Builder
	b.Grow(len(h))
	for i := 0; i < len(h); i++ {
		c := h[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '.', c == '-', c == '~', c == '/':
		return true
	}
	return false
}

// BuildTasks genera una tarea por cada par (variante, plataforma), en orden
// de variantes y, dentro de cada una, en el orden del catálogo.
func BuildTasks(variants []string, catalog domain.Catalog, stealth bool) []domain.ProbeTask {
	platforms := catalog.Platforms()
	tasks := make([]domain.ProbeTask, 0, len(variants)*len(platforms))

	for _, v := range variants {
		for _, p := range platforms {
			handle := FormatHandle(p, v)
			tasks = append(tasks, domain.ProbeTask{
				Platform: p,
				Variant:  v,
				Handle:   handle,
				URL:      p.URLFor(EscapeHandle(handle)),
				Stealth:  stealth,
			})
		}
	}
	return tasks
}
