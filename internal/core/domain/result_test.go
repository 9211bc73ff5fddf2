// internal/core/domain/result_test.go
package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusHelpers(t *testing.T) {
	assert.Equal(t, "code_404", StatusCode(404))
	assert.Equal(t, "error_boom", StatusError("boom"))
	assert.True(t, IsErrorStatus("error_timeout"))
	assert.False(t, IsErrorStatus("code_500"))

	assert.Equal(t, "active", StatusClass(StatusActive))
	assert.Equal(t, "invalid_url", StatusClass(StatusInvalidURL))
	assert.Equal(t, "code_4xx", StatusClass("code_404"))
	assert.Equal(t, "code_3xx", StatusClass("code_302"))
	assert.Equal(t, "error", StatusClass("error_dial tcp"))
	assert.Equal(t, "other", StatusClass("weird"))
}

func TestNewOutcome(t *testing.T) {
	task := ProbeTask{
		Platform: Platform{Name: "TikTok", URLTemplate: "https://www.tiktok.com/{}"},
		Variant:  "alice",
		Handle:   "@alice",
		URL:      "https://www.tiktok.com/%40alice",
	}
	o := NewOutcome(task, true, StatusActive)

	assert.Equal(t, "TikTok", o.Platform)
	assert.True(t, o.Found)
	assert.Equal(t, Detail{URL: task.URL, Status: "active", Variant: "alice", Formatted: "@alice"}, o.Detail)
	assert.Equal(t, "TikTok:alice", task.Name())
}

func TestResultSet_ScanJSON(t *testing.T) {
	rs := NewResultSet(ModeScan, []string{"alice", "4lice"})
	rs.Entries["alice"].Hits = append(rs.Entries["alice"].Hits, Hit{
		Platform: "GitHub",
		Detail:   Detail{URL: "https://github.com/alice", Status: "active", Variant: "alice", Formatted: "alice"},
	})
	rs.Entries["alice"].Misses = append(rs.Entries["alice"].Misses, "Twitter")

	data, err := json.Marshal(rs)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"4lice": {"hits": [], "misses": []},
		"alice": {
			"hits": [{"GitHub": {"url": "https://github.com/alice", "status": "active", "username": "alice", "formatted": "alice"}}],
			"misses": ["Twitter"]
		}
	}`, string(data))
	assert.NotContains(t, string(data), "\n")
}

func TestResultSet_GenerateJSON(t *testing.T) {
	rs := NewResultSet(ModeGenerate, []string{"alice"})
	rs.Entries["alice"].URLs = append(rs.Entries["alice"].URLs, GeneratedURL{
		Platform: "Twitter", URL: "https://twitter.com/alice", Formatted: "alice",
	})

	data, err := json.Marshal(rs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"alice":{"urls":[{"Twitter":{"url":"https://twitter.com/alice","formatted":"alice"}}]}}`, string(data))
}

func TestResultSet_Counters(t *testing.T) {
	rs := NewResultSet(ModeScan, []string{"b", "a"})
	rs.Entries["a"].Hits = []Hit{{Platform: "X"}, {Platform: "Y"}}
	rs.Entries["b"].Hits = []Hit{{Platform: "X"}}
	rs.Entries["b"].Misses = []string{"Y"}

	assert.Equal(t, []string{"a", "b"}, rs.Variants())
	assert.Equal(t, 2, rs.Len())
	assert.Equal(t, 3, rs.TotalHits())
	assert.Equal(t, 1, rs.TotalMisses())
	assert.Equal(t, 0, rs.TotalURLs())
	assert.False(t, rs.IsEmpty())
	assert.True(t, NewResultSet(ModeScan, nil).IsEmpty())
}

func TestReport_Warnings(t *testing.T) {
	r := &Report{State: StateNoTargets}
	assert.True(t, r.NoTargets())
	r.AddWarning("catalog fallback")
	assert.Equal(t, []string{"catalog fallback"}, r.Warnings)
}
