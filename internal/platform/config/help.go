// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

const helpText = `
GokuTrace - Username variant generator and profile prober

USAGE:
  gokutrace [options] <username>

CORE OPTIONS:
  -s, --stealth             Route probes through the proxy pool (see --proxy)
  -v, --verbose             Verbosity, repeatable: -v lists misses, -vvv debug logs
  -o, --output string       Result file format: json or csv (default: json)
  -g, --generate            Only build candidate URLs, no network requests

CATALOG OPTIONS:
  -p, --platforms string    Platform catalog, JSON or YAML (default: "platforms.json")
                            Missing or malformed files fall back to Twitter + GitHub

NETWORK OPTIONS:
  --proxy string            Proxy URL used in stealth mode, repeatable
  -w, --workers int         Concurrent probe workers (default: 50)
  -T, --timeout duration    Per-attempt HTTP timeout (default: 3s)
  --retries int             Retries on 429/500/502/503/504 responses (default: 3)
                            When retries run out the last status is reported as code_<n>
  --rate float              Max requests per second across workers, 0=unlimited
  --breaker int             Skip a platform after N consecutive failures, 0=off

OUTPUT OPTIONS:
  --out-dir string          Directory for result files (default: ".")
  --ui string               UI mode: pterm, raw or quiet (default: pterm)
  -q, --quiet               Disable visual output (same as --ui quiet)

OBSERVABILITY:
  --metrics-addr string     Serve Prometheus metrics, e.g. ":9090"

INFO:
  --version                 Print version information and exit
  -h, --help                Show this help message

EXAMPLES:
  Scan the default platforms:
    gokutrace alice

  Generate URLs only, as CSV:
    gokutrace -g -o csv alice

  Stealth scan through two proxies, listing misses:
    gokutrace -s -v --proxy http://10.0.0.1:8080 --proxy http://10.0.0.2:8080 alice

  Custom YAML catalog with a rate limit:
    gokutrace -p platforms.yaml --rate 20 alice

ENVIRONMENT VARIABLES:
  Most flags can be set via environment variables with GOKUTRACE_ prefix:

  GOKUTRACE_STEALTH=true            Stealth mode
  GOKUTRACE_VERBOSE=1               Verbosity level
  GOKUTRACE_OUTPUT=csv              Result file format
  GOKUTRACE_GENERATE=true           Generate mode
  GOKUTRACE_PLATFORMS=/path         Platform catalog
  GOKUTRACE_PROXIES=http://a,http://b  Comma-separated proxy pool
  GOKUTRACE_WORKERS=100             Number of workers
  GOKUTRACE_TIMEOUT=5s              Per-attempt timeout
  GOKUTRACE_RETRIES=2               Retries on retryable statuses
  GOKUTRACE_RATE=10                 Requests per second
  GOKUTRACE_OUT_DIR=/path           Output directory
  GOKUTRACE_UI=raw                  UI mode
  GOKUTRACE_METRICS_ADDR=:9090      Metrics listen address
  GOKUTRACE_LOG_LEVEL=debug         Log level (debug, info, warn, error)

  Note: CLI flags override environment variables.

OUTPUT:
  Results are written to goku_<mode>_results_<YYYYMMDD_HHMMSS>.<json|csv>
  in the output directory. Nothing is written when no variants were produced.
`

// PrintHelp prints the custom help message.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}

// PrintUsage prints the one-line usage reminder.
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: gokutrace [options] <username>   (see --help)")
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "GokuTrace %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", getGoVersion())
}

func getGoVersion() string {
	return runtime.Version()
}
