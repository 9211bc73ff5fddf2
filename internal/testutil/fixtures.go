// internal/testutil/fixtures.go
package testutil

import "gokutrace/internal/core/domain"

// Fixture data compartida por los tests de varios paquetes.

// FixtureSeeds contiene semillas que producen variantes.
var FixtureSeeds = []string{
	"alice",
	"john doe",
	"dev_ops",
	"a.b",
}

// FixtureBlankSeeds contiene semillas que no producen ninguna variante.
var FixtureBlankSeeds = []string{
	"",
	"   ",
	"\t\n",
}

// FixturePlatforms cubre los casos especiales del generador de tareas:
// plantilla de path, prefijo @ y plantilla de subdominio con marcador.
var FixturePlatforms = []domain.Platform{
	{Name: "Twitter", URLTemplate: "https://twitter.com/{}"},
	{Name: "GitHub", URLTemplate: "https://github.com/{}"},
	{Name: "TikTok", URLTemplate: "https://www.tiktok.com/{}"},
	{Name: "Tumblr", URLTemplate: "https://{}.tumblr.com", EmptyMarker: "This Tumblr is Empty"},
}

// Task arma una ProbeTask para platform con el handle sin formatear.
func Task(p domain.Platform, variant string) domain.ProbeTask {
	return domain.ProbeTask{
		Platform: p,
		Variant:  variant,
		Handle:   variant,
		URL:      p.URLFor(variant),
	}
}
