package ioformat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusched/campusched/internal/extract"
)

func TestWriteSchedule(t *testing.T) {
	dir := t.TempDir()
	g := &extract.ScheduleGrid{
		Slots:      []string{"s0", "s1"},
		Recruiters: []string{"acme"},
		MaxPanels:  map[string]int{"acme": 2},
		Cell: map[string]map[string][]string{
			"s0": {"acme": {"alice", ""}},
			"s1": {"acme": {"", "bob"}},
		},
	}
	require.NoError(t, WriteSchedule(dir, g))

	data, err := os.ReadFile(filepath.Join(dir, "sche.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Slot,acme1,acme2")
	assert.Contains(t, string(data), "s0,alice,")
	assert.Contains(t, string(data), "s1,,bob")
}

func TestWriteNames(t *testing.T) {
	dir := t.TempDir()
	nt := &extract.NamesTable{
		Slots:      []string{"s0"},
		Candidates: []string{"alice", "bob"},
		Cell: map[string]map[string]string{
			"s0": {"alice": "acme", "bob": ""},
		},
	}
	require.NoError(t, WriteNames(dir, nt))

	data, err := os.ReadFile(filepath.Join(dir, "names.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Slot,alice,bob")
	assert.Contains(t, string(data), "s0,acme,")
}

func TestWriteBuffer(t *testing.T) {
	dir := t.TempDir()
	bl := &extract.BufferList{
		GroupOrder: []string{"acme", "globex"},
		Entries: map[string][]string{
			"acme":   {"carol"},
			"globex": nil,
		},
	}
	require.NoError(t, WriteBuffer(dir, bl))

	data, err := os.ReadFile(filepath.Join(dir, "buff.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "acme,carol")
	assert.Contains(t, string(data), "globex")
}

func TestWriteStaticUpload(t *testing.T) {
	dir := t.TempDir()
	rows := []extract.StaticUploadRow{
		{Name: "alice", Company: "acme", Round: 1, Panel: 1},
	}
	require.NoError(t, WriteStaticUpload(dir, rows))

	data, err := os.ReadFile(filepath.Join(dir, "staticupload.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Name,Company,Round,Panel")
	assert.Contains(t, string(data), "alice,acme,1,1")
}
