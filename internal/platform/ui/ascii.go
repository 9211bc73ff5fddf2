// internal/platform/ui/ascii.go
package ui

// GokuBanner es el header principal.
const GokuBanner = `
 ██████╗  ██████╗ ██╗  ██╗██╗   ██╗████████╗██████╗  █████╗  ██████╗███████╗
██╔════╝ ██╔═══██╗██║ ██╔╝██║   ██║╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██╔════╝
██║  ███╗██║   ██║█████╔╝ ██║   ██║   ██║   ██████╔╝███████║██║     █████╗
██║   ██║██║   ██║██╔═██╗ ██║   ██║   ██║   ██╔══██╗██╔══██║██║     ██╔══╝
╚██████╔╝╚██████╔╝██║  ██╗╚██████╔╝   ██║   ██║  ██║██║  ██║╚██████╗███████╗
 ╚═════╝  ╚═════╝ ╚═╝  ╚═╝ ╚═════╝    ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚══════╝
`

// GokuBannerMinimal para terminales estrechas.
const GokuBannerMinimal = `
╔═══════════════════════════════════════╗
║  GOKUTRACE                       ⚡   ║
║  Username variants, profile probes    ║
╚═══════════════════════════════════════╝
`

// Tagline bajo el banner.
const Tagline = "Powering up! Tracing handles across the multiverse"

// bannerFor elige el banner según el ancho de la terminal.
func bannerFor(width int) string {
	if width > 0 && width < 80 {
		return GokuBannerMinimal
	}
	return GokuBanner
}
