// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"gokutrace/internal/core/domain"
)

// mockProber es un mock de ports.Prober para tests del dispatcher y orchestrator
type mockProber struct {
	// found decide el resultado por tarea; nil = todo miss con code_404
	found func(task domain.ProbeTask) bool
	delay time.Duration

	calls    atomic.Int64
	inflight atomic.Int64
	peak     atomic.Int64

	mu   sync.Mutex
	seen map[string]int
}

func newMockProber() *mockProber {
	return &mockProber{seen: make(map[string]int)}
}

func (m *mockProber) Probe(ctx context.Context, task domain.ProbeTask) domain.ProbeOutcome {
	m.calls.Add(1)
	cur := m.inflight.Add(1)
	defer m.inflight.Add(-1)
	for {
		prev := m.peak.Load()
		if cur <= prev || m.peak.CompareAndSwap(prev, cur) {
			break
		}
	}

	m.mu.Lock()
	m.seen[task.Name()]++
	m.mu.Unlock()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	if m.found != nil && m.found(task) {
		return domain.NewOutcome(task, true, domain.StatusActive)
	}
	return domain.NewOutcome(task, false, domain.StatusCode(404))
}

func (m *mockProber) timesSeen(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seen[name]
}

// panickingProber entra en pánico para las tareas de una plataforma
type panickingProber struct {
	platform string
	inner    *mockProber
}

func (p *panickingProber) Probe(ctx context.Context, task domain.ProbeTask) domain.ProbeOutcome {
	if task.Platform.Name == p.platform {
		panic("boom")
	}
	return p.inner.Probe(ctx, task)
}

func twitterGitHub() domain.Catalog {
	return domain.DefaultCatalog()
}
