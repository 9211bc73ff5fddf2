// internal/platform/logx/logx.go
package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// EnvLevel is the environment variable that selects the default log level.
const EnvLevel = "GOKUTRACE_LOG_LEVEL"

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "silent"
	}
}

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

// kvLogger writes one line per event: "15:04:05 TAG msg k=v k=v".
// Clones created by With share the level and the output lock.
type kvLogger struct {
	core  *core
	scope []string
}

type core struct {
	mu  sync.Mutex
	lvl Level
	lg  *log.Logger
}

// New returns a stderr logger whose level comes from GOKUTRACE_LOG_LEVEL.
func New() Logger {
	return NewWriter(os.Stderr, ParseLevel(os.Getenv(EnvLevel)))
}

// NewWithLevel creates a stderr logger with a fixed level.
func NewWithLevel(lvl Level) Logger {
	return NewWriter(os.Stderr, lvl)
}

// NewWriter creates a logger that writes to w.
func NewWriter(w io.Writer, lvl Level) Logger {
	return &kvLogger{core: &core{lvl: lvl, lg: log.New(w, "", 0)}}
}

// NewSilent creates a logger that only outputs errors.
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

// Nop discards everything. Handy as a default in tests and options structs.
func Nop() Logger {
	return NewWriter(io.Discard, LevelSilent)
}

// LevelForVerbosity maps the repeatable -v flag to a level.
// Without -v only warnings reach the terminal so the progress spinner stays readable.
func LevelForVerbosity(v int) Level {
	switch {
	case v >= 3:
		return LevelDebug
	case v >= 1:
		return LevelInfo
	default:
		return LevelWarn
	}
}

func (s *kvLogger) With(kv ...any) Logger {
	return &kvLogger{
		core:  s.core,
		scope: append(append([]string{}, s.scope...), kvPairs(kv...)...),
	}
}

func (s *kvLogger) SetLevel(lvl Level) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	s.core.lvl = lvl
}

func (s *kvLogger) Debug(msg string, kv ...any) { s.log(LevelDebug, "DBG", msg, kv...) }
func (s *kvLogger) Info(msg string, kv ...any)  { s.log(LevelInfo, "INF", msg, kv...) }
func (s *kvLogger) Warn(msg string, kv ...any)  { s.log(LevelWarn, "WRN", msg, kv...) }
func (s *kvLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	kv = append([]any{"error", err.Error()}, kv...)
	s.log(LevelError, "ERR", "", kv...)
}

func (s *kvLogger) log(l Level, tag, msg string, kv ...any) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	if l < s.core.lvl {
		return
	}

	fields := append([]string{}, s.scope...)
	fields = append(fields, kvPairs(kv...)...)

	parts := []string{time.Now().Format("15:04:05"), tag}
	if strings.TrimSpace(msg) != "" {
		parts = append(parts, msg)
	}
	parts = append(parts, fields...)
	s.core.lg.Println(strings.Join(parts, " "))
}

func kvPairs(kv ...any) []string {
	out := make([]string, 0, len(kv)/2+1)
	for i := 0; i < len(kv); i += 2 {
		var v any = "(missing)"
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		out = append(out, fmt.Sprintf("%v=%v", kv[i], v))
	}
	return out
}

// ParseLevel accepts the usual spellings; anything unknown means info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	case "silent", "off", "none":
		return LevelSilent
	default:
		return LevelInfo
	}
}
