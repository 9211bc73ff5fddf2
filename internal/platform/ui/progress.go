// internal/platform/ui/progress.go
package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gokutrace/internal/core/ports"
)

// tickInterval es la frecuencia de refresco del progreso.
const tickInterval = 200 * time.Millisecond

// growingEdgeFrames anima el borde de la barra mientras avanza.
var growingEdgeFrames = []string{"▓", "▒", "░"}

// renderBar dibuja una barra de width celdas; frame anima el borde.
func renderBar(completed, total, width, frame int) string {
	if width <= 0 {
		return ""
	}

	filled := width
	if total > 0 {
		filled = (width * completed) / total
		filled = min(max(filled, 0), width)
	}

	// Barra llena + carácter animado en el borde + vacío
	if filled > 0 && filled < width {
		edge := growingEdgeFrames[frame%len(growingEdgeFrames)]
		return strings.Repeat("█", filled-1) + edge + strings.Repeat("░", width-filled)
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// progressText es la línea de estado: barra, contadores, porcentaje y velocidad.
func progressText(completed, total, frame int, elapsed time.Duration) string {
	pct := 100
	if total > 0 {
		pct = completed * 100 / total
	}
	rate := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(completed) / secs
	}
	return fmt.Sprintf("[%s] %d/%d %3d%% %.1f/s",
		renderBar(completed, total, 30, frame), completed, total, pct, rate)
}

// progressWatcher consulta un ProgressTracker a intervalos fijos y entrega
// cada lectura a onTick. La última lectura llega siempre tras Done.
type progressWatcher struct {
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func watchProgress(tracker ports.ProgressTracker, interval time.Duration, onTick func(completed, total, frame int, final bool)) *progressWatcher {
	w := &progressWatcher{stopCh: make(chan struct{})}
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-ticker.C:
				frame++
				onTick(tracker.Completed(), tracker.Total(), frame, false)
			case <-tracker.Done():
				onTick(tracker.Completed(), tracker.Total(), frame, true)
				return
			case <-w.stopCh:
				onTick(tracker.Completed(), tracker.Total(), frame, true)
				return
			}
		}
	}()
	return w
}

// Stop detiene el watcher y espera la última lectura. Es idempotente.
func (w *progressWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
}
