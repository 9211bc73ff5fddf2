// internal/core/usecases/variants.go
package usecases

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/platform/cache"
	"gokutrace/internal/platform/logx"
	"gokutrace/internal/platform/validator"
)

// Reglas de derivación, en el orden en que se aplican.
var (
	spaceReplacements = []string{"", "_", "-", "."}
	digitAffixes      = []string{"1", "2", "3", "4"}
	separatorAffixes  = []string{"_", "-", ".", "x"}
	symbolAffixes     = []string{"!", "@", "#", "$"}

	// leetSwaps se aplica un carácter a la vez: cada entrada produce una variante
	// con todas las ocurrencias reemplazadas.
	leetSwaps = []struct{ from, to string }{
		{"o", "0"}, {"l", "1"}, {"e", "3"}, {"s", "5"}, {"a", "4"}, {"i", "1"},
	}
)

// VariantGenerator deriva el conjunto de variantes de una semilla.
// Es determinista: la misma semilla produce siempre el mismo conjunto.
type VariantGenerator struct {
	cache  cache.Cache[[]string]
	logger logx.Logger
}

// VariantGeneratorOptions configura el generador.
type VariantGeneratorOptions struct {
	// Cache memoiza resultados por semilla; nil desactiva la memoización
	Cache  cache.Cache[[]string]
	Logger logx.Logger
}

// NewVariantGenerator crea un generador.
func NewVariantGenerator(opts VariantGeneratorOptions) *VariantGenerator {
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	return &VariantGenerator{
		cache:  opts.Cache,
		logger: opts.Logger.With("component", "variants"),
	}
}

// Generate retorna las variantes válidas de seed ordenadas. Una semilla vacía
// (o solo espacios) produce un conjunto vacío.
//
// dnsCleanup activa la limpieza de puntos que exigen las plataformas cuyo
// handle es un label DNS (p.ej. https://{}.tumblr.com).
func (g *VariantGenerator) Generate(seed string, dnsCleanup bool) []string {
	original := strings.TrimSpace(seed)
	if original == "" {
		return []string{}
	}

	key := cacheKey(original, dnsCleanup)
	if g.cache != nil {
		if cached, ok := g.cache.Get(key); ok {
			g.logger.Debug("variant cache hit", "seed", original)
			return append([]string(nil), cached...)
		}
	}

	candidates := deriveCandidates(original)
	variants := cleanupCandidates(candidates, dnsCleanup)

	g.logger.Debug("variants generated",
		"seed", original,
		"candidates", len(candidates),
		"variants", len(variants),
	)

	if g.cache != nil {
		g.cache.Set(key, append([]string(nil), variants...), 0)
	}
	return variants
}

func cacheKey(seed string, dnsCleanup bool) string {
	if dnsCleanup {
		return "dns\x00" + seed
	}
	return "raw\x00" + seed
}

// deriveCandidates acumula los candidatos crudos, antes de validar.
func deriveCandidates(original string) map[string]struct{} {
	// los Caser no son seguros para uso concurrente
	lower := cases.Lower(language.Und)
	upper := cases.Upper(language.Und)
	title := cases.Title(language.Und)

	base := lower.String(original)
	set := make(map[string]struct{}, 64)
	add := func(vs ...string) {
		for _, v := range vs {
			set[v] = struct{}{}
		}
	}

	add(original, base)

	if strings.Contains(original, " ") {
		for _, sep := range spaceReplacements {
			add(strings.ReplaceAll(original, " ", sep))
		}
	}

	for _, d := range digitAffixes {
		add(base+d, d+base, original+d, d+original)
	}

	for _, swap := range leetSwaps {
		if strings.Contains(base, swap.from) {
			add(strings.ReplaceAll(base, swap.from, swap.to))
		}
		if strings.Contains(original, swap.from) {
			add(strings.ReplaceAll(original, swap.from, swap.to))
		}
	}

	// pares de sustituciones simultáneas: "alice" -> "4lic3"
	add(pairedSwaps(base)...)
	add(pairedSwaps(original)...)

	for _, sep := range separatorAffixes {
		add(base+sep, sep+base, original+sep, sep+original)
	}

	add(upper.String(original), capitalize(original, title, lower))

	for _, sym := range symbolAffixes {
		add(base+sym, sym+base)
	}

	if collapsed, ok := collapsePairs(base); ok {
		add(collapsed)
	}

	return set
}

// pairedSwaps aplica cada par de sustituciones presentes en s a la vez.
func pairedSwaps(s string) []string {
	var present []int
	for i, swap := range leetSwaps {
		if strings.Contains(s, swap.from) {
			present = append(present, i)
		}
	}

	var out []string
	for i := 0; i < len(present); i++ {
		for j := i + 1; j < len(present); j++ {
			a, b := leetSwaps[present[i]], leetSwaps[present[j]]
			out = append(out, strings.NewReplacer(a.from, a.to, b.from, b.to).Replace(s))
		}
	}
	return out
}

// cleanupCandidates normaliza y filtra los candidatos; retorna el resultado ordenado.
func cleanupCandidates(candidates map[string]struct{}, dnsCleanup bool) []string {
	valid := make(map[string]struct{}, len(candidates))
	for c := range candidates {
		cleaned := c
		if dnsCleanup {
			cleaned = validator.CollapseDots(cleaned)
		}
		cleaned = validator.StripHandle(cleaned)
		if validator.IsHandle(cleaned) {
			valid[cleaned] = struct{}{}
		}
	}

	out := make([]string, 0, len(valid))
	for v := range valid {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// capitalize pasa la primera runa a título ("ß" -> "Ss") y el resto a minúscula.
func capitalize(s string, title, lower cases.Caser) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError && size <= 1 {
		return lower.String(s)
	}
	return title.String(string(first)) + lower.String(s[size:])
}

// collapsePairs reemplaza cada par de runas idénticas consecutivas por una
// sola, de izquierda a derecha y sin solapar ("aaa" -> "aa"). ok es false si
// no había pares.
func collapsePairs(s string) (string, bool) {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	found := false
	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if i+1 < len(runes) && runes[i] == runes[i+1] {
			found = true
			i++
		}
	}
	return b.String(), found
}

// HasDNSHandlePlatform indica si alguna plataforma del catálogo pone el
// handle dentro del host.
func HasDNSHandlePlatform(catalog domain.Catalog) bool {
	for _, p := range catalog.Platforms() {
		if validator.IsSubdomainTemplate(p.URLTemplate) {
			return true
		}
	}
	return false
}
