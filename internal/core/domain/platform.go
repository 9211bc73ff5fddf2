// internal/core/domain/platform.go
package domain

import (
	"fmt"
	"strings"
)

// HandleSlot es el marcador del handle dentro de URLTemplate.
const HandleSlot = "{}"

// Platform es un servicio objetivo junto con la plantilla de su URL de perfil.
type Platform struct {
	// Name es único dentro de un catálogo
	Name string `json:"name" yaml:"name"`

	// URLTemplate contiene exactamente un HandleSlot
	URLTemplate string `json:"url_template" yaml:"url_template"`

	// EmptyMarker es un texto que, presente en un 2xx, indica un perfil vacío
	// o de relleno (falso positivo). Vacío = sin regla.
	EmptyMarker string `json:"empty_marker,omitempty" yaml:"empty_marker,omitempty"`

	// AtPrefix fuerza el prefijo @ en el handle (p.ej. TikTok, YouTube)
	AtPrefix bool `json:"at_prefix,omitempty" yaml:"at_prefix,omitempty"`
}

// Validate verifica nombre y plantilla.
func (p Platform) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPlatform)
	}
	if strings.Count(p.URLTemplate, HandleSlot) != 1 {
		return fmt.Errorf("%w: %s", ErrInvalidURLTemplate, p.Name)
	}
	return nil
}

// URLFor rellena la plantilla con un handle ya codificado.
func (p Platform) URLFor(encodedHandle string) string {
	return strings.Replace(p.URLTemplate, HandleSlot, encodedHandle, 1)
}

// Catalog es la secuencia ordenada e inmutable de plataformas de una invocación.
type Catalog struct {
	platforms []Platform
}

// NewCatalog valida cada entrada y rechaza nombres duplicados.
func NewCatalog(platforms []Platform) (Catalog, error) {
	seen := make(map[string]struct{}, len(platforms))
	out := make([]Platform, 0, len(platforms))

	for _, p := range platforms {
		if err := p.Validate(); err != nil {
			return Catalog{}, err
		}
		if _, dup := seen[p.Name]; dup {
			return Catalog{}, fmt.Errorf("%w: %s", ErrDuplicatePlatform, p.Name)
		}
		seen[p.Name] = struct{}{}
		out = append(out, p)
	}

	if len(out) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}
	return Catalog{platforms: out}, nil
}

// MustCatalog es NewCatalog para literales conocidos; entra en pánico si son inválidos.
func MustCatalog(platforms ...Platform) Catalog {
	c, err := NewCatalog(platforms)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCatalog es el catálogo de respaldo cuando la fuente falta o está corrupta.
func DefaultCatalog() Catalog {
	return MustCatalog(
		Platform{Name: "Twitter", URLTemplate: "https://twitter.com/{}"},
		Platform{Name: "GitHub", URLTemplate: "https://github.com/{}"},
	)
}

// Platforms retorna una copia de las plataformas en orden.
func (c Catalog) Platforms() []Platform {
	out := make([]Platform, len(c.platforms))
	copy(out, c.platforms)
	return out
}

// Len retorna el número de plataformas.
func (c Catalog) Len() int {
	return len(c.platforms)
}

// Lookup busca una plataforma por nombre.
func (c Catalog) Lookup(name string) (Platform, bool) {
	for _, p := range c.platforms {
		if p.Name == name {
			return p, true
		}
	}
	return Platform{}, false
}

// Names retorna los nombres en orden.
func (c Catalog) Names() []string {
	names := make([]string, len(c.platforms))
	for i, p := range c.platforms {
		names[i] = p.Name
	}
	return names
}
