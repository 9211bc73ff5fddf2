// internal/platform/ui/raw_presenter.go
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/core/ports"
)

// field es un par clave=valor de una línea logfmt. Se usa un slice en
// lugar de un map para que el orden de salida sea estable.
type field struct {
	key   string
	value any
}

// RawPresenter implementa el Presenter para modo raw (logs sin formato visual)
type RawPresenter struct {
	out     io.Writer
	mu      sync.Mutex
	now     func() time.Time
	info    RunInfo
	watcher *progressWatcher

	// progressStep es el salto mínimo de porcentaje entre eventos de progreso
	progressStep int
}

// NewRawPresenter crea un nuevo RawPresenter que escribe en out
func NewRawPresenter(out io.Writer) *RawPresenter {
	return &RawPresenter{
		out:          out,
		now:          time.Now,
		progressStep: 10,
	}
}

// log escribe en formato logfmt: timestamp LEVEL message key=value key2=value2
func (r *RawPresenter) log(level, message string, fields ...field) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parts := make([]string, 0, len(fields)+3)
	parts = append(parts, r.now().UTC().Format(time.RFC3339))
	parts = append(parts, fmt.Sprintf("%-5s", level))
	parts = append(parts, formatValue(message))

	for _, f := range fields {
		parts = append(parts, f.key+"="+formatValue(f.value))
	}

	fmt.Fprintln(r.out, strings.Join(parts, " "))
}

// formatValue formatea valores para logfmt (entrecomilla strings con espacios)
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " \t\"=") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case domain.Mode:
		return string(val)
	case time.Duration:
		return val.String()
	case float64:
		return fmt.Sprintf("%.1f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Start registra el inicio de la corrida
func (r *RawPresenter) Start(info RunInfo) {
	r.mu.Lock()
	r.info = info
	r.mu.Unlock()

	r.log("INFO", "run_started",
		field{"seed", info.Seed},
		field{"mode", info.Mode},
		field{"platforms", info.Platforms},
		field{"catalog", info.Catalog},
		field{"workers", info.Workers},
		field{"timeout", info.Timeout},
		field{"stealth", info.Stealth},
		field{"proxies", info.Proxies},
	)
}

// Track emite un evento de progreso cada vez que el avance cruza un
// múltiplo de progressStep, más uno final.
func (r *RawPresenter) Track(progress ports.ProgressTracker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.watcher != nil {
		return
	}

	lastBucket := -1
	r.watcher = watchProgress(progress, tickInterval, func(completed, total, _ int, final bool) {
		pct := 100
		if total > 0 {
			pct = completed * 100 / total
		}
		bucket := pct / r.progressStep
		if !final && bucket == lastBucket {
			return
		}
		lastBucket = bucket

		event := "progress"
		if final {
			event = "progress_done"
		}
		r.log("INFO", event,
			field{"completed", completed},
			field{"total", total},
			field{"percent", pct},
			field{"cancelled", progress.Cancelled()},
		)
	})
}

func (r *RawPresenter) stopTracking() {
	r.mu.Lock()
	w := r.watcher
	r.watcher = nil
	r.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// Info muestra un mensaje informativo
func (r *RawPresenter) Info(msg string) {
	r.log("INFO", msg)
}

// Warning muestra una advertencia
func (r *RawPresenter) Warning(msg string) {
	r.log("WARN", msg)
}

// Error muestra un error
func (r *RawPresenter) Error(msg string) {
	r.log("ERROR", msg)
}

// Finish registra cada hit y el resumen de la corrida
func (r *RawPresenter) Finish(report *domain.Report, verbose int) {
	r.stopTracking()
	if report == nil {
		return
	}

	rs := report.Results
	for _, v := range rs.Variants() {
		entry := rs.Entries[v]
		for _, h := range entry.Hits {
			r.log("INFO", "hit",
				field{"variant", v},
				field{"platform", h.Platform},
				field{"url", h.Detail.URL},
			)
		}
		if verbose >= 1 && len(entry.Misses) > 0 {
			r.log("DEBUG", "misses",
				field{"variant", v},
				field{"platforms", strings.Join(entry.Misses, ",")},
			)
		}
	}

	for _, w := range report.Warnings {
		r.log("WARN", w)
	}

	r.log("INFO", "run_completed",
		field{"run_id", report.RunID},
		field{"mode", report.Mode},
		field{"state", string(report.State)},
		field{"variants", report.Variants},
		field{"tasks", report.Tasks},
		field{"completed", report.Completed},
		field{"hits", report.TotalHits},
		field{"urls", report.TotalURLs},
		field{"duration", report.Elapsed},
	)
}

// Close limpia recursos
func (r *RawPresenter) Close() error {
	r.stopTracking()
	return nil
}
