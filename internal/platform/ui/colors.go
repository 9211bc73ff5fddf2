// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta "Ki": naranja del gi, azul del aura y oro del super saiyajin.
var (
	// GiOrange - elementos principales, headers
	GiOrange = pterm.NewRGB(255, 120, 30)

	// AuraBlue - progreso, elementos activos
	AuraBlue = pterm.NewRGB(60, 150, 255)

	// SaiyanGold - hits, descubrimientos
	SaiyanGold = pterm.NewRGB(255, 200, 40)

	// RedRibbon - errores
	RedRibbon = pterm.NewRGB(215, 38, 56)

	// Capsule gray - texto secundario
	CapsuleGray = pterm.NewRGB(120, 120, 120)
)

// Estilos preconfigurados para diferentes contextos
var (
	StylePrimary   = GiOrange.ToRGBStyle()
	StyleActive    = AuraBlue.ToRGBStyle()
	StyleHit       = SaiyanGold.ToRGBStyle()
	StyleError     = RedRibbon.ToRGBStyle()
	StyleSecondary = CapsuleGray.ToRGBStyle()
)
