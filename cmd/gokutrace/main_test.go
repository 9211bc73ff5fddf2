package main

import (
	"context"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/core/usecases"
	"gokutrace/internal/platform/logx"
	"gokutrace/internal/testutil"
)

func TestInterrupter_FirstSignalCancelsProgress(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	intr := &interrupter{cancel: cancel, logger: logx.Nop()}
	progress := usecases.NewProgress(10)
	intr.attach(progress)

	intr.interrupt(syscall.SIGINT)
	assert.True(t, progress.Cancelled())
	assert.NoError(t, ctx.Err())

	intr.interrupt(syscall.SIGINT)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestInterrupter_WithoutRunCancelsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	intr := &interrupter{cancel: cancel, logger: logx.Nop()}
	intr.interrupt(syscall.SIGTERM)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestRun_ExitCodes(t *testing.T) {
	assert.Equal(t, 0, run([]string{"--version"}))
	assert.Equal(t, 0, run([]string{"-h"}))
	assert.Equal(t, 2, run([]string{"--no-such-flag"}))
	assert.Equal(t, 2, run([]string{"-o", "xml", "alice"}))
	assert.Equal(t, 0, run([]string{}))
}

func TestRun_GenerateWritesResults(t *testing.T) {
	dir := t.TempDir()
	catalogPath := testutil.WriteCatalog(t, dir, domain.Platform{Name: "GitHub", URLTemplate: "https://github.com/{}"})

	code := run([]string{"-g", "-q", "-o", "csv", "-p", catalogPath, "--out-dir", dir, "alice"})
	require.Equal(t, 0, code)

	data := testutil.ReadSingleMatch(t, filepath.Join(dir, "goku_generate_results_*.csv"))
	assert.Contains(t, string(data), "https://github.com/alice")
}

func TestRun_ScanAgainstProfileServer(t *testing.T) {
	ps := testutil.NewProfileServer(t)
	ps.Profile("GitHub", "alice", 200, "<html>alice</html>")

	dir := t.TempDir()
	catalogPath := testutil.WriteCatalog(t, dir, ps.Platform("GitHub"))

	code := run([]string{"-q", "-w", "4", "-T", "2s", "--retries", "0", "-p", catalogPath, "--out-dir", dir, "alice"})
	require.Equal(t, 0, code)

	data := testutil.ReadSingleMatch(t, filepath.Join(dir, "goku_scan_results_*.json"))
	assert.Contains(t, string(data), `"url":"`+ps.URL+`/github/alice"`)
	assert.Contains(t, string(data), `"status":"active"`)
	assert.Equal(t, 1, ps.Hits("GitHub", "alice"))
	assert.Greater(t, ps.TotalHits(), 1, "every variant is probed")
}
