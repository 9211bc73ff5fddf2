// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/core/ports"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar banner, spinner de progreso y tablas de resultados.
type PTermPresenter struct {
	mu sync.Mutex

	info      RunInfo
	startTime time.Time

	spinner *pterm.SpinnerPrinter
	watcher *progressWatcher
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{}
}

// Start muestra el banner y la configuración de la corrida
func (p *PTermPresenter) Start(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info = info
	p.startTime = time.Now()

	pterm.Println(StylePrimary.Sprint(bannerFor(pterm.GetTerminalWidth())))
	pterm.Println(StyleSecondary.Sprint("  " + Tagline))
	pterm.Println()

	panel := pterm.DefaultBox.
		WithTitle("Run Configuration").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgLightYellow))

	var b strings.Builder
	fmt.Fprintf(&b, "%s Seed: %s\n", IconTarget, pterm.Cyan(info.Seed))
	fmt.Fprintf(&b, "   Mode: %s\n", pterm.Yellow(string(info.Mode)))
	fmt.Fprintf(&b, "%s Platforms: %d (%s)\n", IconPlatform, info.Platforms, info.Catalog)
	if info.Mode == domain.ModeScan {
		fmt.Fprintf(&b, "%s Workers: %d\n", IconWorkers, info.Workers)
		fmt.Fprintf(&b, "%s Timeout: %s\n", IconTime, info.Timeout)
		fmt.Fprintf(&b, "%s Stealth: %s (%d proxies)", IconStealth, boolToString(info.Stealth), info.Proxies)
	} else {
		b.WriteString("   Network: " + boolToString(false))
	}
	panel.Println(b.String())
	pterm.Println()
}

// Track arranca el spinner y lo actualiza con el avance del despacho
func (p *PTermPresenter) Track(progress ports.ProgressTracker) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.watcher != nil {
		return
	}

	verb := "Probing"
	if p.info.Mode == domain.ModeGenerate {
		verb = "Generating"
	}

	spinner, err := pterm.DefaultSpinner.
		WithRemoveWhenDone(false).
		Start(fmt.Sprintf("%s %d URLs at lightning speed...", verb, progress.Total()))
	if err != nil {
		pterm.Warning.Println("progress display unavailable:", err)
		return
	}
	p.spinner = spinner

	started := time.Now()
	p.watcher = watchProgress(progress, tickInterval, func(completed, total, frame int, final bool) {
		text := fmt.Sprintf("%s %s", verb, progressText(completed, total, frame, time.Since(started)))
		if !final {
			spinner.UpdateText(text)
			return
		}

		// Stop antes del mensaje final: la animación deja de escribir
		_ = spinner.Stop()
		switch {
		case progress.Cancelled():
			pterm.Warning.Println(text + " (cancelled)")
		default:
			pterm.Success.Println(text)
		}
	})
}

// stopTracking detiene el spinner si está activo
func (p *PTermPresenter) stopTracking() {
	p.mu.Lock()
	w := p.watcher
	p.watcher = nil
	p.spinner = nil
	p.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	pterm.Info.Println(msg)
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	pterm.Warning.Println(msg)
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	pterm.Error.Println(msg)
}

// Finish detiene el progreso y muestra los resultados de la corrida
func (p *PTermPresenter) Finish(report *domain.Report, verbose int) {
	p.stopTracking()
	if report == nil {
		return
	}

	pterm.Println()
	if report.NoTargets() {
		pterm.Warning.Println("Kamehameha! No valid targets to probe.")
		return
	}

	switch report.Mode {
	case domain.ModeGenerate:
		p.renderGenerated(report, verbose)
	default:
		p.renderHits(report)
		if verbose >= 1 {
			p.renderMisses(report)
		}
	}

	for _, w := range report.Warnings {
		pterm.Warning.Println(w)
	}
	p.renderSummary(report)
}

func (p *PTermPresenter) renderHits(report *domain.Report) {
	rs := report.Results
	if rs.TotalHits() == 0 {
		pterm.Info.Println("No profiles found across the multiverse.")
		return
	}

	pterm.DefaultSection.Println("Profiles found")
	data := pterm.TableData{{"Variant", "Platform", "URL", "Status"}}
	for _, v := range rs.Variants() {
		for _, h := range rs.Entries[v].Hits {
			data = append(data, []string{v, h.Platform, h.Detail.URL, StyleHit.Sprint(h.Detail.Status)})
		}
	}
	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render(); err != nil {
		pterm.Error.Println("failed to render results:", err)
	}
}

func (p *PTermPresenter) renderMisses(report *domain.Report) {
	rs := report.Results
	if rs.TotalMisses() == 0 {
		return
	}

	pterm.DefaultSection.WithLevel(2).Println("Misses")
	for _, v := range rs.Variants() {
		misses := rs.Entries[v].Misses
		if len(misses) == 0 {
			continue
		}
		pterm.Println(pterm.NewStyle(StatusMiss.Color()).Sprintf("  %s %s: %s",
			StatusMiss.Symbol(), v, strings.Join(misses, ", ")))
	}
}

func (p *PTermPresenter) renderGenerated(report *domain.Report, verbose int) {
	rs := report.Results
	if verbose < 1 {
		pterm.Info.Printfln("Generated %d URLs for %d variants.", rs.TotalURLs(), rs.Len())
		return
	}

	for _, v := range rs.Variants() {
		pterm.Println(StylePrimary.Sprint("[Target]: " + v))
		for _, u := range rs.Entries[v].URLs {
			pterm.Println(pterm.NewStyle(StatusActive.Color()).Sprintf("  %s %s: %s", StatusActive.Symbol(), u.Platform, u.URL))
		}
	}
}

func (p *PTermPresenter) renderSummary(report *domain.Report) {
	pterm.Println()
	pterm.Println(pterm.LightBlue(SeparatorHeavy))

	summary := fmt.Sprintf("Run %s finished in %s: %d variants, %d/%d tasks",
		report.RunID, formatDuration(report.Elapsed), report.Variants, report.Completed, report.Tasks)
	if report.Mode == domain.ModeScan {
		summary += fmt.Sprintf(", %s", StyleHit.Sprintf("%d hits", report.TotalHits))
	} else {
		summary += fmt.Sprintf(", %d URLs", report.TotalURLs)
	}
	pterm.Success.Println(summary)
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() error {
	p.stopTracking()
	return nil
}
