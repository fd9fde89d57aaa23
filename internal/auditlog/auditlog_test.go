package auditlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 6, 1, 9, 15, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp: testTime,
		Kind:      "positions",
		Source:    "holdings.csv",
		Strategy:  "append",
		Accepted:  12,
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, testEntry()))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "positions", entries[0].Kind)
	assert.Equal(t, 12, entries[0].Accepted)
	assert.True(t, testTime.Equal(entries[0].Timestamp))
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, testEntry()))

	e2 := testEntry()
	e2.Kind = "banks"
	e2.Strategy = "replace"
	require.NoError(t, Append(dir, e2))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "positions", entries[0].Kind)
	assert.Equal(t, "banks", entries[1].Kind)
	assert.Equal(t, "replace", entries[1].Strategy)
}

func TestRead_Missing(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestMarshalRoundTrip(t *testing.T) {
	// Sources with commas must survive the CSV layer.
	e := testEntry()
	e.Source = "my holdings, 2025.xlsx"

	got, err := UnmarshalEntry(MarshalEntry(e))
	require.NoError(t, err)
	assert.True(t, e.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, e.Kind, got.Kind)
	assert.Equal(t, e.Source, got.Source)
	assert.Equal(t, e.Strategy, got.Strategy)
	assert.Equal(t, e.Accepted, got.Accepted)
}
