// internal/testutil/helpers.go
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gokutrace/internal/core/domain"
)

// WriteCatalog escribe platforms como catálogo JSON en dir y retorna la ruta.
func WriteCatalog(t *testing.T, dir string, platforms ...domain.Platform) string {
	t.Helper()

	data, err := json.MarshalIndent(platforms, "", "  ")
	require.NoError(t, err)

	path := filepath.Join(dir, "platforms.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// ReadSingleMatch lee el único archivo que coincide con pattern.
func ReadSingleMatch(t *testing.T, pattern string) []byte {
	t.Helper()

	matches, err := filepath.Glob(pattern)
	require.NoError(t, err)
	require.Len(t, matches, 1, "expected exactly one file matching %s", pattern)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	return data
}
