// internal/core/usecases/variants_test.go
package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/platform/cache"
	"gokutrace/internal/platform/validator"
	"gokutrace/internal/testutil"
)

func TestVariantGenerator_Alice(t *testing.T) {
	g := NewVariantGenerator(VariantGeneratorOptions{})
	variants := g.Generate("alice", false)

	for _, want := range []string{
		"alice", "Alice", "ALICE", "4lic3",
		"a1ice", "alic3", "4lice", "al1ce",
		"alice1", "4alice", "xalice", "alicex",
		"@alice", "alice@", "#alice", "alice#",
	} {
		assert.Contains(t, variants, want)
	}

	// "alice!" y "$alice" pierden el símbolo en la limpieza y colapsan en "alice"
	assert.NotContains(t, variants, "alice!")
	assert.NotContains(t, variants, "$alice")
	// separadores en los extremos son inválidos
	for _, edge := range []string{"_alice", ".alice", "-alice", "alice_", "alice.", "alice-"} {
		assert.NotContains(t, variants, edge)
	}
}

func TestVariantGenerator_Deterministic(t *testing.T) {
	g := NewVariantGenerator(VariantGeneratorOptions{})
	for _, seed := range []string{"alice", "John Doe", "bookkeeper", "Ünïcødé", "a", "x.y", "@handle"} {
		first := g.Generate(seed, false)
		second := g.Generate(seed, false)
		assert.Equal(t, first, second, seed)
		assert.IsIncreasing(t, first, seed)
	}
}

func TestVariantGenerator_Grammar(t *testing.T) {
	g := NewVariantGenerator(VariantGeneratorOptions{})
	seeds := append([]string{"bookkeeper", "Ünïcødé", "a.b..c", " -x- ", "@handle", "o.o"}, testutil.FixtureSeeds...)
	for _, seed := range seeds {
		for _, dns := range []bool{false, true} {
			for _, v := range g.Generate(seed, dns) {
				assert.True(t, validator.IsHandle(v), "seed=%q variant=%q", seed, v)
			}
		}
	}
}

func TestVariantGenerator_EmptySeed(t *testing.T) {
	g := NewVariantGenerator(VariantGeneratorOptions{})
	for _, seed := range testutil.FixtureBlankSeeds {
		assert.Empty(t, g.Generate(seed, false), "%q", seed)
		assert.Empty(t, g.Generate(seed, true), "%q", seed)
	}
}

func TestVariantGenerator_Spaces(t *testing.T) {
	g := NewVariantGenerator(VariantGeneratorOptions{})
	variants := g.Generate("John Doe", false)

	for _, want := range []string{"JohnDoe", "John_Doe", "John-Doe", "John.Doe", "johndoe", "JOHNDOE", "Johndoe"} {
		assert.Contains(t, variants, want)
	}
}

func TestVariantGenerator_CollapsePairs(t *testing.T) {
	g := NewVariantGenerator(VariantGeneratorOptions{})
	assert.Contains(t, g.Generate("bookkeeper", false), "bokeper")

	collapsed, ok := collapsePairs("aaa")
	assert.True(t, ok)
	assert.Equal(t, "aa", collapsed)

	_, ok = collapsePairs("abc")
	assert.False(t, ok)
}

func TestVariantGenerator_DNSCleanup(t *testing.T) {
	g := NewVariantGenerator(VariantGeneratorOptions{})

	// "4..b" (sustitución a->4) solo es válido tras colapsar los puntos
	assert.Contains(t, g.Generate("a..b", true), "4.b")
	assert.NotContains(t, g.Generate("a..b", false), "4.b")
}

func TestVariantGenerator_Unicode(t *testing.T) {
	g := NewVariantGenerator(VariantGeneratorOptions{})
	// "ß" se elimina por la limpieza, pero su mayúscula "SS" sobrevive
	variants := g.Generate("straße", false)
	assert.Contains(t, variants, "STRASSE")
	assert.Contains(t, variants, "strae")
}

func TestVariantGenerator_Capitalize(t *testing.T) {
	g := NewVariantGenerator(VariantGeneratorOptions{})
	assert.Contains(t, g.Generate("aLiCe", false), "Alice")

	// la primera runa va a título, no a mayúscula: "ß" -> "Ss", no "SS"
	title, lower := cases.Title(language.Und), cases.Lower(language.Und)
	assert.Equal(t, "Sstraße", capitalize("ßtraße", title, lower))
	assert.Equal(t, "Alice", capitalize("aLiCe", title, lower))
	assert.Equal(t, "", capitalize("", title, lower))

	variants := g.Generate("ßtraße", false)
	assert.Contains(t, variants, "Sstrae")
	assert.NotContains(t, variants, "SStrae")
}

func TestVariantGenerator_Cache(t *testing.T) {
	c := cache.NewMemoryCache[[]string](8)
	cached := NewVariantGenerator(VariantGeneratorOptions{Cache: c})
	plain := NewVariantGenerator(VariantGeneratorOptions{})

	first := cached.Generate("alice", false)
	second := cached.Generate("alice", false)
	require.Equal(t, plain.Generate("alice", false), first)
	assert.Equal(t, first, second)

	hits, misses := c.Stats()
	assert.EqualValues(t, 1, hits)
	assert.EqualValues(t, 1, misses)

	// el flag de limpieza forma parte de la clave
	cached.Generate("alice", true)
	assert.Equal(t, 2, c.Size())

	// mutar el resultado no contamina la caché
	second[0] = "mutated"
	assert.NotContains(t, cached.Generate("alice", false), "mutated")
}

func TestHasDNSHandlePlatform(t *testing.T) {
	assert.False(t, HasDNSHandlePlatform(domain.DefaultCatalog()))

	catalog := domain.MustCatalog(
		domain.Platform{Name: "GitHub", URLTemplate: "https://github.com/{}"},
		domain.Platform{Name: "Tumblr", URLTemplate: "https://{}.tumblr.com"},
	)
	assert.True(t, HasDNSHandlePlatform(catalog))
}
