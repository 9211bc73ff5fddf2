// internal/platform/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/platform/errors"
)

// EnvPrefix prefija todas las variables de entorno reconocidas.
const EnvPrefix = "GOKUTRACE_"

// UI modes.
const (
	UIPterm = "pterm" // spinner, banner y tablas (default)
	UIRaw   = "raw"   // eventos logfmt y tabla en texto plano
	UIQuiet = "quiet" // sin salida visual
)

type Config struct {
	// App
	Username     string
	Generate     bool
	Stealth      bool
	Verbose      int
	Workers      int
	Timeout      time.Duration // por intento
	PrintVersion bool
	ShowHelp     bool

	// IO
	PlatformsPath string
	OutputFormat  string
	OutputDir     string

	// Network
	Proxies    []string
	RateLimit  float64 // req/s, 0 = sin límite
	MaxRetries int

	// Consecutive platform failures before its circuit opens, 0 = disabled
	BreakerThreshold int

	// UI
	UI    string
	Quiet bool

	// Metrics
	MetricsAddr string
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Workers: 50,
		Timeout: 3 * time.Second,

		PlatformsPath: "platforms.json",
		OutputFormat:  string(domain.FormatJSON),
		OutputDir:     ".",

		Proxies:    []string{},
		MaxRetries: 3,

		UI: UIPterm,
	}
}

// Load inicializa la configuración: defaults -> ENV -> FLAGS (flags tienen prioridad).
// args no incluye el nombre del programa.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	// Cargar desde ENV
	if err := loadFromEnv(&cfg); err != nil {
		return cfg, err
	}

	// Parsear flags (overrides ENV)
	if err := loadFromFlags(&cfg, args); err != nil {
		return cfg, err
	}

	// Normalizar
	if err := normalize(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) error {
	if v := getenv(EnvPrefix+"USERNAME", ""); v != "" {
		cfg.Username = v
	}
	if v := getenv(EnvPrefix+"GENERATE", ""); v != "" {
		cfg.Generate = parseBool(v)
	}
	if v := getenv(EnvPrefix+"STEALTH", ""); v != "" {
		cfg.Stealth = parseBool(v)
	}
	if v := getenv(EnvPrefix+"VERBOSE", ""); v != "" {
		cfg.Verbose = parseInt(v, cfg.Verbose)
	}
	if v := getenv(EnvPrefix+"WORKERS", ""); v != "" {
		cfg.Workers = parseInt(v, cfg.Workers)
	}
	if v := getenv(EnvPrefix+"TIMEOUT", ""); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidInput, "%sTIMEOUT=%q", EnvPrefix, v)
		}
		cfg.Timeout = d
	}
	if v := getenv(EnvPrefix+"PLATFORMS", ""); v != "" {
		cfg.PlatformsPath = v
	}
	if v := getenv(EnvPrefix+"OUTPUT", ""); v != "" {
		cfg.OutputFormat = v
	}
	if v := getenv(EnvPrefix+"OUT_DIR", ""); v != "" {
		cfg.OutputDir = v
	}
	if v := getenv(EnvPrefix+"PROXIES", ""); v != "" {
		cfg.Proxies = splitList(v)
	}
	if v := getenv(EnvPrefix+"RATE", ""); v != "" {
		cfg.RateLimit = parseFloat(v, cfg.RateLimit)
	}
	if v := getenv(EnvPrefix+"RETRIES", ""); v != "" {
		cfg.MaxRetries = parseInt(v, cfg.MaxRetries)
	}
	if v := getenv(EnvPrefix+"BREAKER", ""); v != "" {
		cfg.BreakerThreshold = parseInt(v, cfg.BreakerThreshold)
	}
	if v := getenv(EnvPrefix+"UI", ""); v != "" {
		cfg.UI = v
	}
	if v := getenv(EnvPrefix+"QUIET", ""); v != "" {
		cfg.Quiet = parseBool(v)
	}
	if v := getenv(EnvPrefix+"METRICS_ADDR", ""); v != "" {
		cfg.MetricsAddr = v
	}
	return nil
}

// newFlagSet registra los flags sobre cfg; los defaults son los valores
// actuales de cfg (ya con ENV aplicado).
func newFlagSet(cfg *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("gokutrace", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.BoolVarP(&cfg.Stealth, "stealth", "s", cfg.Stealth, "Route probes through the proxy pool")
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (-v misses, -vvv debug logs)")
	fs.StringVarP(&cfg.OutputFormat, "output", "o", cfg.OutputFormat, "Output format: json or csv")
	fs.BoolVarP(&cfg.Generate, "generate", "g", cfg.Generate, "Only generate candidate URLs, no network")

	fs.StringVarP(&cfg.PlatformsPath, "platforms", "p", cfg.PlatformsPath, "Platform catalog (JSON or YAML)")
	fs.StringArrayVar(&cfg.Proxies, "proxy", cfg.Proxies, "Proxy URL for stealth mode (repeatable)")
	fs.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Concurrent probe workers")
	fs.DurationVarP(&cfg.Timeout, "timeout", "T", cfg.Timeout, "Per-attempt HTTP timeout")
	fs.IntVar(&cfg.MaxRetries, "retries", cfg.MaxRetries, "Retries on 429/5xx responses")
	fs.Float64Var(&cfg.RateLimit, "rate", cfg.RateLimit, "Max requests per second (0 = unlimited)")
	fs.IntVar(&cfg.BreakerThreshold, "breaker", cfg.BreakerThreshold, "Stop probing a platform after N consecutive failures (0 = off)")

	fs.StringVar(&cfg.OutputDir, "out-dir", cfg.OutputDir, "Directory for result files")
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "UI mode: pterm, raw or quiet")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "Disable visual output")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address")

	fs.BoolVar(&cfg.PrintVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&cfg.ShowHelp, "help", "h", false, "Show help")
	return fs
}

// loadFromFlags parsea flags de CLI y el argumento posicional username.
func loadFromFlags(cfg *Config, args []string) error {
	envVerbose := cfg.Verbose
	fs := newFlagSet(cfg)

	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	// CountVar siempre arranca en 0
	if !fs.Changed("verbose") {
		cfg.Verbose = envVerbose
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.Username = fs.Arg(0)
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "expected one username, got %d arguments", fs.NArg())
	}
	return nil
}

func normalize(c *Config) error {
	c.OutputFormat = strings.ToLower(strings.TrimSpace(c.OutputFormat))
	if !c.Format().IsValid() {
		return errors.Wrapf(errors.ErrInvalidInput, "invalid output format %q (json or csv)", c.OutputFormat)
	}

	c.UI = strings.ToLower(strings.TrimSpace(c.UI))
	switch c.UI {
	case UIPterm, UIRaw, UIQuiet:
	case "":
		c.UI = UIPterm
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "invalid ui mode %q", c.UI)
	}
	if c.Quiet {
		c.UI = UIQuiet
	}

	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = 3 * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BreakerThreshold < 0 {
		c.BreakerThreshold = 0
	}
	if c.RateLimit < 0 {
		c.RateLimit = 0
	}
	if c.Verbose < 0 {
		c.Verbose = 0
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.PlatformsPath == "" {
		c.PlatformsPath = "platforms.json"
	}
	return nil
}

// Mode retorna el modo de ejecución seleccionado.
func (c Config) Mode() domain.Mode {
	if c.Generate {
		return domain.ModeGenerate
	}
	return domain.ModeScan
}

// Format retorna el formato del archivo de resultados.
func (c Config) Format() domain.Format {
	return domain.Format(c.OutputFormat)
}

// TrackMisses indica si se registran las plataformas sin resultado.
func (c Config) TrackMisses() bool {
	return c.Verbose >= 1
}

// ToJSON serializa la configuración a JSON (útil para debugging).
func (c Config) ToJSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// parseDuration acepta "3s", "1500ms" o segundos enteros ("3").
func parseDuration(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
