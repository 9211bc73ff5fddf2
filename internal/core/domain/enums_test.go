// internal/core/domain/enums_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_IsValid(t *testing.T) {
	assert.True(t, ModeScan.IsValid())
	assert.True(t, ModeGenerate.IsValid())
	assert.False(t, Mode("probe").IsValid())
	assert.Equal(t, "generate", ModeGenerate.String())
}

func TestFormat_IsValid(t *testing.T) {
	assert.True(t, FormatJSON.IsValid())
	assert.True(t, FormatCSV.IsValid())
	assert.False(t, Format("xml").IsValid())
}

func TestRunState_IsTerminal(t *testing.T) {
	assert.True(t, StateDone.IsTerminal())
	assert.True(t, StateNoTargets.IsTerminal())
	for _, s := range []RunState{StateIdle, StateVariantsGenerated, StateDispatching, StateAggregated} {
		assert.False(t, s.IsTerminal(), s)
	}
}
