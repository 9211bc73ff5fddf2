package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/platform/logx"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "platforms.json", `[
		{"name": "Twitter", "url_template": "https://twitter.com/{}"},
		{"name": "Tumblr", "url_template": "https://{}.tumblr.com", "empty_marker": "This Tumblr is Empty"},
		{"name": "Custom", "url_template": "https://c.example/{}", "at_prefix": true}
	]`)

	catalog, warnings := NewFileLoader(logx.Nop()).Load(path)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"Twitter", "Tumblr", "Custom"}, catalog.Names())

	tumblr, ok := catalog.Lookup("Tumblr")
	require.True(t, ok)
	assert.Equal(t, "This Tumblr is Empty", tumblr.EmptyMarker)

	custom, _ := catalog.Lookup("Custom")
	assert.True(t, custom.AtPrefix)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "platforms.yaml", `
- name: GitHub
  url_template: https://github.com/{}
- name: TikTok
  url_template: https://www.tiktok.com/{}
  at_prefix: true
`)

	catalog, warnings := NewFileLoader(nil).Load(path)
	assert.Empty(t, warnings)
	assert.Equal(t, 2, catalog.Len())

	tiktok, ok := catalog.Lookup("TikTok")
	require.True(t, ok)
	assert.True(t, tiktok.AtPrefix)
}

func TestLoad_MissingFileFallsBack(t *testing.T) {
	catalog, warnings := NewFileLoader(logx.Nop()).Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.DefaultCatalog().Names(), catalog.Names())
}

func TestLoad_MalformedFallsBack(t *testing.T) {
	for name, content := range map[string]string{
		"broken.json": `[{"name": "Twitter", "url_template": `,
		"object.json": `{"name": "Twitter"}`,
		"broken.yml":  "- name: [unclosed",
	} {
		catalog, warnings := NewFileLoader(logx.Nop()).Load(writeFile(t, name, content))
		assert.Len(t, warnings, 1, name)
		assert.Equal(t, []string{"Twitter", "GitHub"}, catalog.Names(), name)
	}
}

func TestLoad_SkipsInvalidEntries(t *testing.T) {
	path := writeFile(t, "platforms.json", `[
		{"name": "", "url_template": "https://empty.example/{}"},
		{"name": "NoSlot", "url_template": "https://noslot.example/"},
		{"name": "TwoSlots", "url_template": "https://{}.example/{}"},
		{"name": "GitHub", "url_template": "https://github.com/{}"},
		{"name": "GitHub", "url_template": "https://gh.example/{}"}
	]`)

	catalog, warnings := NewFileLoader(logx.Nop()).Load(path)
	assert.Len(t, warnings, 4)
	assert.Equal(t, []string{"GitHub"}, catalog.Names())

	gh, _ := catalog.Lookup("GitHub")
	assert.Equal(t, "https://github.com/{}", gh.URLTemplate)
}

func TestLoad_NoValidEntriesFallsBack(t *testing.T) {
	path := writeFile(t, "platforms.json", `[{"name": "NoSlot", "url_template": "https://x.example/"}]`)

	catalog, warnings := NewFileLoader(logx.Nop()).Load(path)
	assert.Len(t, warnings, 2)
	assert.Equal(t, 2, catalog.Len())
}

func TestLoad_EmptyArrayFallsBack(t *testing.T) {
	catalog, warnings := NewFileLoader(logx.Nop()).Load(writeFile(t, "platforms.json", `[]`))
	assert.Len(t, warnings, 1)
	assert.Equal(t, 2, catalog.Len())
}

func TestParse_Format(t *testing.T) {
	assert.Equal(t, FormatYAML, formatOf("a/b.YML"))
	assert.Equal(t, FormatJSON, formatOf("platforms"))

	entries, err := Parse([]byte(`[{"name":"A","url_template":"https://a.example/{}"}]`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "A", entries[0].Name)
}
