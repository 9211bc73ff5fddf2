// internal/platform/validator/validator.go
package validator

import (
	"net"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/publicsuffix"
)

var (
	domainRegex      = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)
	probeURLRegex    = regexp.MustCompile(`^https?://[a-zA-Z0-9._-]+`)
	handleCharsRegex = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)
	dotRunRegex      = regexp.MustCompile(`\.+`)
)

// Handle validators

// IsHandle verifica la gramática de una variante: más de un carácter, sin
// ".", "_" o "-" en los extremos y sin "..". Los handles con "@" o "#" pueden
// llevar cualquier carácter; el resto solo [a-zA-Z0-9_.-].
func IsHandle(h string) bool {
	if utf8.RuneCountInString(h) <= 1 {
		return false
	}
	if strings.ContainsAny(h[:1], "._-") || strings.ContainsAny(h[len(h)-1:], "._-") {
		return false
	}
	if strings.Contains(h, "..") {
		return false
	}
	if !HasSymbolTag(h) && handleCharsRegex.MatchString(h) {
		return false
	}
	return true
}

// HasSymbolTag indica si el handle lleva "@" o "#" y debe pasar sin filtrar.
func HasSymbolTag(h string) bool {
	return strings.ContainsAny(h, "@#")
}

// StripHandle elimina los caracteres fuera de [a-zA-Z0-9_.-], salvo que el
// handle lleve "@" o "#".
func StripHandle(h string) string {
	if HasSymbolTag(h) {
		return h
	}
	return handleCharsRegex.ReplaceAllString(h, "")
}

// CollapseDots reduce las rachas de "." a uno solo tras quitar los puntos de
// los extremos. Es la limpieza que exigen las plataformas donde el handle es
// un label DNS.
func CollapseDots(h string) string {
	return dotRunRegex.ReplaceAllString(strings.Trim(h, "."), ".")
}

// URL validators

// IsProbeURL es el chequeo previo a cualquier petición: forma
// scheme://host y sin "..".
func IsProbeURL(u string) bool {
	return probeURLRegex.MatchString(u) && !strings.Contains(u, "..")
}

// IsURL verifica si un string es una URL válida con scheme y host.
func IsURL(urlStr string) bool {
	if len(urlStr) == 0 {
		return false
	}
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

// IsSubdomainTemplate detecta plantillas cuyo slot "{}" cae en un label DNS
// del host por encima del sufijo público, p.ej. "https://{}.tumblr.com".
// En esas plataformas el handle tiene que ser un label válido.
func IsSubdomainTemplate(tpl string) bool {
	host := templateHost(tpl)
	if !strings.Contains(host, "{}") {
		return false
	}

	probe := strings.ToLower(strings.ReplaceAll(host, "{}", "slot"))
	if !IsDomain(probe) {
		return false
	}

	suffix, _ := publicsuffix.PublicSuffix(probe)
	return probe != suffix && !strings.Contains(suffix, "slot")
}

// templateHost extrae el host de una plantilla sin parsearla como URL,
// ya que "{}" no es válido en un host.
func templateHost(tpl string) string {
	rest := tpl
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		rest = rest[i+1:]
	}
	if h, _, err := net.SplitHostPort(rest); err == nil {
		rest = h
	}
	return rest
}

// Domain validators

// IsDomain verifica si un string es un dominio válido (no una IP).
func IsDomain(domain string) bool {
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}
	if !domainRegex.MatchString(domain) {
		return false
	}
	return net.ParseIP(domain) == nil
}

// Generic validators

// IsEmpty verifica si un string está vacío o solo contiene espacios.
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
