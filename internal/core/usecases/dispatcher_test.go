// internal/core/usecases/dispatcher_test.go
package usecases

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/core/ports"
)

func scanTasks(t *testing.T, seed string) []domain.ProbeTask {
	t.Helper()
	variants := NewVariantGenerator(VariantGeneratorOptions{}).Generate(seed, false)
	require.NotEmpty(t, variants)
	return BuildTasks(variants, twitterGitHub(), false)
}

func TestDispatcher_ExactlyOnce(t *testing.T) {
	prober := newMockProber()
	d := NewDispatcher(DispatcherOptions{Prober: prober, Workers: 8})
	tasks := scanTasks(t, "alice")

	var recorded atomic.Int64
	progress := NewProgress(len(tasks))
	outcomes, err := d.Run(context.Background(), tasks, progress, func(domain.ProbeOutcome) { recorded.Add(1) })
	require.NoError(t, err)

	assert.Len(t, outcomes, len(tasks))
	assert.EqualValues(t, len(tasks), recorded.Load())
	assert.Equal(t, len(tasks), progress.Completed())
	assert.EqualValues(t, len(tasks), prober.calls.Load())
	for _, task := range tasks {
		assert.Equal(t, 1, prober.timesSeen(task.Name()), task.Name())
	}

	select {
	case <-progress.Done():
	default:
		t.Fatal("progress not finished")
	}
}

func TestDispatcher_BoundedConcurrency(t *testing.T) {
	prober := newMockProber()
	prober.delay = 5 * time.Millisecond
	d := NewDispatcher(DispatcherOptions{Prober: prober, Workers: 3})

	_, err := d.Run(context.Background(), scanTasks(t, "alice"), nil, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, prober.peak.Load(), int64(3))
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(DispatcherOptions{Prober: newMockProber()})
	assert.Equal(t, DefaultWorkers, d.workers)
	assert.Equal(t, "Dispatcher{workers=50}", d.String())
}

func TestDispatcher_PanicIsolated(t *testing.T) {
	inner := newMockProber()
	d := NewDispatcher(DispatcherOptions{Prober: &panickingProber{platform: "GitHub", inner: inner}, Workers: 4})
	tasks := scanTasks(t, "alice")

	var recorded atomic.Int64
	outcomes, err := d.Run(context.Background(), tasks, nil, func(domain.ProbeOutcome) { recorded.Add(1) })
	require.NoError(t, err)
	require.Len(t, outcomes, len(tasks))
	assert.EqualValues(t, len(tasks), recorded.Load())

	for _, o := range outcomes {
		if o.Platform == "GitHub" {
			assert.False(t, o.Found)
			assert.True(t, strings.HasPrefix(o.Detail.Status, "error_"), o.Detail.Status)
		} else {
			assert.Equal(t, "code_404", o.Detail.Status)
		}
	}
}

func TestDispatcher_CancelStopsFeeding(t *testing.T) {
	prober := newMockProber()
	prober.delay = 10 * time.Millisecond
	d := NewDispatcher(DispatcherOptions{Prober: prober, Workers: 2})
	tasks := scanTasks(t, "alice")

	progress := NewProgress(len(tasks))
	var once atomic.Bool
	outcomes, err := d.Run(context.Background(), tasks, progress, func(domain.ProbeOutcome) {
		if once.CompareAndSwap(false, true) {
			progress.Cancel()
		}
	})
	require.NoError(t, err)

	assert.True(t, progress.Cancelled())
	assert.Less(t, len(outcomes), len(tasks))
	assert.Equal(t, len(outcomes), progress.Completed())
}

func TestDispatcher_ContextCancelled(t *testing.T) {
	d := NewDispatcher(DispatcherOptions{Prober: newMockProber(), Workers: 2})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := d.Run(ctx, scanTasks(t, "alice"), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestDispatcher_NoTasks(t *testing.T) {
	d := NewDispatcher(DispatcherOptions{Prober: newMockProber()})
	progress := NewProgress(0)
	outcomes, err := d.Run(context.Background(), nil, progress, nil)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
	assert.Equal(t, float64(100), progress.Percent())
	<-progress.Done()
}

func TestDispatcher_NoProber(t *testing.T) {
	d := NewDispatcher(DispatcherOptions{})
	_, err := d.Run(context.Background(), scanTasks(t, "alice"), nil, nil)
	require.ErrorIs(t, err, domain.ErrDispatchFailed)
}

func TestDispatcher_Materialize(t *testing.T) {
	d := NewDispatcher(DispatcherOptions{})
	tasks := []domain.ProbeTask{
		{Platform: domain.Platform{Name: "Twitter"}, Variant: "alice", URL: "https://twitter.com/alice"},
		{Platform: domain.Platform{Name: "Broken"}, Variant: "alice", URL: "twitter.com/alice"},
		{Platform: domain.Platform{Name: "Dots"}, Variant: "a..b", URL: "https://x.example/a..b"},
	}

	progress := NewProgress(len(tasks))
	valid := d.Materialize(tasks, progress)

	require.Len(t, valid, 1)
	assert.Equal(t, "Twitter", valid[0].Platform.Name)
	assert.Equal(t, 3, progress.Completed())
	<-progress.Done()
}

func TestProgress_ImplementsTracker(t *testing.T) {
	var tracker ports.ProgressTracker = NewProgress(4)
	assert.Equal(t, 4, tracker.Total())
	tracker.Cancel()
	tracker.Cancel()
	assert.True(t, tracker.Cancelled())
}
