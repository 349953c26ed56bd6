package mip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_FixConflict(t *testing.T) {
	m := NewModel()
	idx := m.AddBinaryVar(VarKey{Slot: "s0", Recruiter: "acme", Candidate: "alice"})
	require.NoError(t, m.Fix(idx, 1))
	require.NoError(t, m.Fix(idx, 1)) // same value twice is fine
	err := m.Fix(idx, 0)
	assert.ErrorIs(t, err, ErrConflictingFix)
}

func TestModel_FixUnknownVar(t *testing.T) {
	m := NewModel()
	err := m.Fix(3, 1)
	assert.ErrorIs(t, err, ErrUnknownVar)
}

func TestModel_LookupAndVarKey(t *testing.T) {
	m := NewModel()
	key := VarKey{Slot: "s0", Recruiter: "acme", Candidate: "alice"}
	idx := m.AddBinaryVar(key)
	got, ok := m.Lookup(key)
	require.True(t, ok)
	assert.Equal(t, idx, got)
	assert.Equal(t, key, m.VarKey(idx))

	_, ok = m.Lookup(VarKey{Slot: "s1", Recruiter: "acme", Candidate: "alice"})
	assert.False(t, ok)
}
