package impex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBanks(t *testing.T) {
	res := ParseBanks("name,notes\nAcme Bank,Main account\n,Missing name\n")

	require.Len(t, res.Success, 1)
	assert.Equal(t, "Acme Bank", res.Success[0].Name)
	assert.Equal(t, "Main account", res.Success[0].Notes)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, 3, res.Errors[0].Row)
	assert.Equal(t, "name is required", res.Errors[0].Err)
}

func TestParseBanks_EveryRowClassifiedOnce(t *testing.T) {
	res := ParseBanks("name,notes\nA,\n,\nB,\n  ,\n")
	assert.Equal(t, 4, len(res.Success)+len(res.Errors))
	require.Len(t, res.AllRows, 4)

	// Row numbers follow the physical line, not the rank among failures.
	assert.Equal(t, []int{2, 3, 4, 5}, []int{res.AllRows[0].Row, res.AllRows[1].Row, res.AllRows[2].Row, res.AllRows[3].Row})
	assert.False(t, res.AllRows[0].Failed())
	assert.True(t, res.AllRows[1].Failed())
	assert.False(t, res.AllRows[2].Failed())
	assert.True(t, res.AllRows[3].Failed())
}

func TestParseBanks_WhitespaceOnlyNameFails(t *testing.T) {
	res := ParseBanks("name,notes\n\"   \",some notes\n")
	assert.Empty(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "name is required", res.Errors[0].Err)

	// The failed row keeps its raw values for review.
	require.Len(t, res.AllRows, 1)
	assert.Equal(t, "some notes", res.AllRows[0].Raw["notes"])
}

func TestParseBanks_EmptyAndHeaderOnly(t *testing.T) {
	for _, text := range []string{"", "name,notes", "name,notes\n"} {
		res := ParseBanks(text)
		assert.Empty(t, res.Success, "input %q", text)
		assert.Empty(t, res.Errors, "input %q", text)
		assert.Empty(t, res.AllRows, "input %q", text)
	}
}

func TestParseBanks_TrimsNotes(t *testing.T) {
	res := ParseBanks("name,notes\nAcme,\"  padded  \"\n")
	require.Len(t, res.Success, 1)
	assert.Equal(t, "padded", res.Success[0].Notes)
}

func TestParseBanks_NeverAssignsIdentity(t *testing.T) {
	res := ParseBanks("name,notes\nAcme,\n")
	require.Len(t, res.Success, 1)
	assert.Zero(t, res.Success[0].ID)
	assert.True(t, res.Success[0].CreatedAt.IsZero())
}
