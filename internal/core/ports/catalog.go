// internal/core/ports/catalog.go
package ports

import "gokutrace/internal/core/domain"

// PlatformCatalog es el port de carga del catálogo de plataformas.
// Nunca falla: ante un archivo ausente o malformado retorna el catálogo por
// defecto junto con advertencias legibles.
type PlatformCatalog interface {
	// Load lee el catálogo desde path
	Load(path string) (domain.Catalog, []string)
}
