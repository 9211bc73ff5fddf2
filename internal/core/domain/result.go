// internal/core/domain/result.go
package domain

import (
	"encoding/json"
	"sort"
)

// Hit es una plataforma donde la variante existe. Se serializa como {plataforma: detalle}.
type Hit struct {
	Platform string
	Detail   Detail
}

func (h Hit) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]Detail{h.Platform: h.Detail})
}

// GeneratedURL es una URL materializada en modo generate.
// Se serializa como {plataforma: {url, formatted}}.
type GeneratedURL struct {
	Platform  string
	URL       string
	Formatted string
}

type generatedURLInfo struct {
	URL       string `json:"url"`
	Formatted string `json:"formatted"`
}

func (g GeneratedURL) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]generatedURLInfo{
		g.Platform: {URL: g.URL, Formatted: g.Formatted},
	})
}

// VariantResult es la entrada de una variante. En modo scan se usan Hits y
// Misses; en modo generate, URLs.
type VariantResult struct {
	Hits   []Hit
	Misses []string
	URLs   []GeneratedURL
}

type scanEntryJSON struct {
	Hits   []Hit    `json:"hits"`
	Misses []string `json:"misses"`
}

type generateEntryJSON struct {
	URLs []GeneratedURL `json:"urls"`
}

// ResultSet mapea cada variante a su entrada. Tras la barrera final del
// dispatcher es de solo lectura.
type ResultSet struct {
	Mode    Mode
	Entries map[string]*VariantResult
}

// NewResultSet crea una entrada vacía por variante.
func NewResultSet(mode Mode, variants []string) ResultSet {
	entries := make(map[string]*VariantResult, len(variants))
	for _, v := range variants {
		entries[v] = newVariantResult()
	}
	return ResultSet{Mode: mode, Entries: entries}
}

func newVariantResult() *VariantResult {
	return &VariantResult{
		Hits:   []Hit{},
		Misses: []string{},
		URLs:   []GeneratedURL{},
	}
}

// MarshalJSON emite el layout del modo: {"hits":[],"misses":[]} o {"urls":[]}.
func (rs ResultSet) MarshalJSON() ([]byte, error) {
	if rs.Mode == ModeGenerate {
		out := make(map[string]generateEntryJSON, len(rs.Entries))
		for v, e := range rs.Entries {
			out[v] = generateEntryJSON{URLs: nonNil(e.URLs)}
		}
		return json.Marshal(out)
	}

	out := make(map[string]scanEntryJSON, len(rs.Entries))
	for v, e := range rs.Entries {
		out[v] = scanEntryJSON{Hits: nonNil(e.Hits), Misses: nonNil(e.Misses)}
	}
	return json.Marshal(out)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Variants retorna las variantes ordenadas.
func (rs ResultSet) Variants() []string {
	out := make([]string, 0, len(rs.Entries))
	for v := range rs.Entries {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Len retorna el número de variantes.
func (rs ResultSet) Len() int {
	return len(rs.Entries)
}

// IsEmpty indica que no hay nada que persistir.
func (rs ResultSet) IsEmpty() bool {
	return len(rs.Entries) == 0
}

// TotalHits suma los hits de todas las variantes.
func (rs ResultSet) TotalHits() int {
	total := 0
	for _, e := range rs.Entries {
		total += len(e.Hits)
	}
	return total
}

// TotalMisses suma los misses registrados.
func (rs ResultSet) TotalMisses() int {
	total := 0
	for _, e := range rs.Entries {
		total += len(e.Misses)
	}
	return total
}

// TotalURLs suma las URLs generadas.
func (rs ResultSet) TotalURLs() int {
	total := 0
	for _, e := range rs.Entries {
		total += len(e.URLs)
	}
	return total
}
