package ui

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gokutrace/internal/core/domain"
)

// TestMain silencia pterm para todo el paquete. El flag de salida es global
// y la animación del spinner lo lee desde su propia goroutine, así que no
// se vuelve a activar entre tests.
func TestMain(m *testing.M) {
	pterm.DisableOutput()
	os.Exit(m.Run())
}

// fakeTracker es un ProgressTracker controlado desde el test.
type fakeTracker struct {
	completed atomic.Int64
	total     int
	cancelled atomic.Bool
	done      chan struct{}
	once      sync.Once
}

func newFakeTracker(total int) *fakeTracker {
	return &fakeTracker{total: total, done: make(chan struct{})}
}

func (f *fakeTracker) Completed() int        { return int(f.completed.Load()) }
func (f *fakeTracker) Total() int            { return f.total }
func (f *fakeTracker) Cancel()               { f.cancelled.Store(true) }
func (f *fakeTracker) Cancelled() bool       { return f.cancelled.Load() }
func (f *fakeTracker) Done() <-chan struct{} { return f.done }
func (f *fakeTracker) finish()               { f.once.Do(func() { close(f.done) }) }

func sampleReport() *domain.Report {
	rs := domain.NewResultSet(domain.ModeScan, []string{"alice", "al1ce"})
	rs.Entries["alice"].Hits = append(rs.Entries["alice"].Hits, domain.Hit{
		Platform: "GitHub",
		Detail:   domain.Detail{URL: "https://github.com/alice", Status: domain.StatusActive, Variant: "alice", Formatted: "alice"},
	})
	rs.Entries["al1ce"].Misses = append(rs.Entries["al1ce"].Misses, "GitHub")

	return &domain.Report{
		RunID:     "run-1",
		Seed:      "alice",
		Mode:      domain.ModeScan,
		State:     domain.StateDone,
		Results:   rs,
		Variants:  2,
		Platforms: 1,
		Tasks:     2,
		Completed: 2,
		TotalHits: 1,
		Elapsed:   1500 * time.Millisecond,
		Warnings:  []string{"catalog degraded"},
	}
}

func TestRenderBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", 10), renderBar(0, 10, 10, 0))
	assert.Equal(t, strings.Repeat("█", 10), renderBar(10, 10, 10, 0))
	assert.Equal(t, strings.Repeat("█", 4)+"▓"+strings.Repeat("░", 5), renderBar(5, 10, 10, 0))
	assert.Equal(t, strings.Repeat("█", 4)+"▒"+strings.Repeat("░", 5), renderBar(5, 10, 10, 1))
	assert.Equal(t, strings.Repeat("█", 10), renderBar(0, 0, 10, 0), "empty total renders as complete")
	assert.Equal(t, strings.Repeat("█", 10), renderBar(20, 10, 10, 0), "overflow is clamped")
	assert.Empty(t, renderBar(1, 2, 0, 0))
}

func TestProgressText(t *testing.T) {
	text := progressText(25, 100, 0, 5*time.Second)
	assert.Contains(t, text, "25/100")
	assert.Contains(t, text, " 25%")
	assert.Contains(t, text, "5.0/s")

	assert.Contains(t, progressText(0, 0, 0, 0), "100%")
}

func TestWatchProgress_FinalTickOnDone(t *testing.T) {
	tracker := newFakeTracker(3)

	var (
		mu     sync.Mutex
		finals []int
	)
	w := watchProgress(tracker, 5*time.Millisecond, func(completed, total, _ int, final bool) {
		if final {
			mu.Lock()
			finals = append(finals, completed)
			mu.Unlock()
		}
	})

	tracker.completed.Store(3)
	tracker.finish()
	w.Stop()
	w.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, finals, 1)
	assert.Equal(t, 3, finals[0])
}

func TestWatchProgress_StopBeforeDone(t *testing.T) {
	tracker := newFakeTracker(10)
	var finals atomic.Int32

	w := watchProgress(tracker, time.Hour, func(_, _, _ int, final bool) {
		if final {
			finals.Add(1)
		}
	})
	w.Stop()

	assert.Equal(t, int32(1), finals.Load())
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		label string
		want  Status
	}{
		{domain.StatusActive, StatusActive},
		{domain.StatusInvalidURL, StatusInvalid},
		{"error_dial tcp: connection refused", StatusError},
		{"code_404", StatusMiss},
		{"code_3xx", StatusMiss},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := StatusOf(tt.label)
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, "unknown", got.String())
			assert.NotEmpty(t, got.Symbol())
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2m5s", formatDuration(125*time.Second))
}

func TestBannerFor(t *testing.T) {
	assert.Equal(t, GokuBannerMinimal, bannerFor(60))
	assert.Equal(t, GokuBanner, bannerFor(120))
	assert.Equal(t, GokuBanner, bannerFor(0))
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	assert.IsType(t, &NoopPresenter{}, New("quiet", &buf))
	assert.IsType(t, &RawPresenter{}, New("raw", &buf))
	assert.IsType(t, &PTermPresenter{}, New("pterm", &buf))
	assert.IsType(t, &PTermPresenter{}, New("fancy", &buf))
}

func TestRawPresenter_Lifecycle(t *testing.T) {
	var buf bytes.Buffer
	r := NewRawPresenter(&buf)
	r.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	r.Start(RunInfo{Seed: "alice", Mode: domain.ModeScan, Platforms: 1, Workers: 50, Timeout: 5 * time.Second})

	tracker := newFakeTracker(2)
	r.Track(tracker)
	tracker.completed.Store(2)
	tracker.finish()

	r.Warning("careful now")
	r.Finish(sampleReport(), 1)
	require.NoError(t, r.Close())

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)

	assert.True(t, strings.HasPrefix(lines[0], "2024-05-01T12:00:00Z INFO  run_started seed=alice mode=scan platforms=1"))
	assert.Contains(t, lines[0], "timeout=5s")
	assert.Contains(t, out, "progress_done completed=2 total=2 percent=100 cancelled=false")
	assert.Contains(t, out, `WARN  "careful now"`)
	assert.Contains(t, out, "hit variant=alice platform=GitHub url=https://github.com/alice")
	assert.Contains(t, out, "DEBUG misses variant=al1ce platforms=GitHub")
	assert.Contains(t, out, `WARN  "catalog degraded"`)
	assert.Contains(t, out, "run_completed run_id=run-1 mode=scan state=done variants=2 tasks=2 completed=2 hits=1")
}

func TestRawPresenter_MissesHiddenWhenQuiet(t *testing.T) {
	var buf bytes.Buffer
	r := NewRawPresenter(&buf)

	r.Finish(sampleReport(), 0)
	assert.NotContains(t, buf.String(), "misses")
	assert.Contains(t, buf.String(), "hit variant=alice")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "plain", formatValue("plain"))
	assert.Equal(t, `"two words"`, formatValue("two words"))
	assert.Equal(t, `""`, formatValue(""))
	assert.Equal(t, "2.5", formatValue(2.5))
	assert.Equal(t, "1s", formatValue(time.Second))
	assert.Equal(t, "generate", formatValue(domain.ModeGenerate))
	assert.Equal(t, "true", formatValue(true))
}

func TestNoopPresenter(t *testing.T) {
	n := NewNoopPresenter()
	n.Start(RunInfo{})
	n.Track(newFakeTracker(0))
	n.Info("x")
	n.Warning("x")
	n.Error("x")
	n.Finish(sampleReport(), 2)
	assert.NoError(t, n.Close())
}

func TestPTermPresenter_Smoke(t *testing.T) {

	p := NewPTermPresenter()
	p.Start(RunInfo{Seed: "alice", Mode: domain.ModeScan, Platforms: 1, Workers: 4, Timeout: time.Second, Catalog: "platforms.json"})

	tracker := newFakeTracker(2)
	p.Track(tracker)
	spinner := p.spinner
	require.NotNil(t, spinner)
	tracker.completed.Store(2)
	tracker.finish()

	p.Info("info")
	p.Warning("warning")
	p.Error("error")

	assert.NotPanics(t, func() { p.Finish(sampleReport(), 1) })
	assert.False(t, spinner.IsActive, "spinner stops once the final tick is rendered")
	assert.Nil(t, p.spinner)
	assert.NotPanics(t, func() { p.Finish(&domain.Report{State: domain.StateNoTargets}, 0) })
	assert.NotPanics(t, func() { p.Finish(nil, 0) })
	assert.NoError(t, p.Close())
}

func TestPTermPresenter_GenerateMode(t *testing.T) {

	rs := domain.NewResultSet(domain.ModeGenerate, []string{"alice"})
	rs.Entries["alice"].URLs = append(rs.Entries["alice"].URLs, domain.GeneratedURL{Platform: "GitHub", URL: "https://github.com/alice", Formatted: "alice"})
	report := &domain.Report{Mode: domain.ModeGenerate, State: domain.StateDone, Results: rs, Variants: 1, TotalURLs: 1}

	p := NewPTermPresenter()
	assert.NotPanics(t, func() { p.Finish(report, 0) })
	assert.NotPanics(t, func() { p.Finish(report, 1) })
}
