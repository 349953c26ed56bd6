package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleBuilder() *Builder {
	b := NewBuilder()
	b.SetSlots([]string{"s0", "s1"})
	b.AddShortlist("a_corp", "alice")
	b.AddShortlist("a_corp", "bob")
	b.AddShortlist("a_corp", "carol")
	b.SetPanels("s0", "a_corp", 1)
	b.SetPanels("s1", "a_corp", 1)
	b.SetMultiSlot("a_corp", 1)
	b.AddGroup([]string{"a_corp"})
	return b
}

func TestBuilder_Build_Minimal(t *testing.T) {
	in, err := simpleBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"a_corp"}, in.Recruiters())
	assert.Equal(t, []string{"alice", "bob", "carol"}, in.Candidates())
	assert.Equal(t, []string{"s0", "s1"}, in.Slots())
	assert.True(t, in.Shortlisted("a_corp", "alice"))
	assert.False(t, in.Shortlisted("a_corp", "dave"))
	assert.Equal(t, 1, in.Panels("s0", "a_corp"))
	assert.Equal(t, 1, in.MultiSlotLen("a_corp"))
	assert.Equal(t, "a_corp", in.GroupHead("a_corp"))
}

func TestBuilder_Build_NoSlots(t *testing.T) {
	b := NewBuilder()
	b.AddGroup([]string{"a_corp"})
	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptySlots)
}

func TestBuilder_Build_UngroupedRecruiter(t *testing.T) {
	b := simpleBuilder()
	b.AddShortlist("b_corp", "alice")
	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUngroupedRecruiter)
}

func TestBuilder_Build_DuplicateGroupMembership(t *testing.T) {
	b := simpleBuilder()
	b.AddGroup([]string{"a_corp"})
	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateGroupMembership)
}

func TestBuilder_Build_NegativePanelCount(t *testing.T) {
	b := simpleBuilder()
	b.SetPanels("s0", "a_corp", -1)
	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativePanelCount)
}

func TestBuilder_Build_PreferenceOutOfRange(t *testing.T) {
	b := simpleBuilder()
	b.SetPreference("alice", "a_corp", 5)
	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPreferenceOutOfRange)
}

func TestBuilder_Build_MissingPreference(t *testing.T) {
	b := simpleBuilder()
	b.SetPreference("alice", "a_corp", 1)
	// bob, carol left without preference rows.
	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingPreference)
}

func TestBuilder_Build_UnknownPreFixedTriple(t *testing.T) {
	b := simpleBuilder()
	b.AddPreFixed("s9", "a_corp", "alice")
	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPreFixedTriple)
}

func TestBuilder_Build_PreFixedHonored(t *testing.T) {
	b := simpleBuilder()
	b.AddPreFixed("s1", "a_corp", "alice")
	in, err := b.Build()
	require.NoError(t, err)
	assert.True(t, in.IsPreFixed("s1", "a_corp", "alice"))
	assert.False(t, in.IsPreFixed("s0", "a_corp", "alice"))
}

func TestNormalize_Idempotent(t *testing.T) {
	cases := []string{"  Alice Corp. ", "A.B.C", "already_normal", "Mix-Case Name!"}
	for _, c := range cases {
		once := Normalize(c)
		twice := Normalize(once)
		assert.Equal(t, once, twice, "normalize should be idempotent for %q", c)
	}
}

func TestNormalize_Examples(t *testing.T) {
	assert.Equal(t, "acme_corp", Normalize("  Acme Corp  "))
	assert.Equal(t, "ab", Normalize("A.B."))
	assert.Equal(t, "jane_doe", Normalize("Jane Doe"))
}
