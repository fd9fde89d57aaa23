package impex

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	d, err := r.Get("holdings.CSV")
	require.NoError(t, err)
	assert.IsType(t, CSVDecoder{}, d)

	d, err = r.Get("holdings.xlsx")
	require.NoError(t, err)
	assert.IsType(t, XLSXDecoder{}, d)

	_, err = r.Get("holdings.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".pdf")
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(CSVDecoder{})
	assert.Panics(t, func() { r.Register(CSVDecoder{}) })
}

func TestCSVDecoderPassthrough(t *testing.T) {
	text := "name,notes\nAcme,x\n"
	got, err := CSVDecoder{}.Decode(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestXLSXRoundTrip(t *testing.T) {
	text, _ := ExportPositions(samplePositions(), "positions")
	parsed := ParsePositions(text, 1)
	require.Empty(t, parsed.Errors)

	data, filename, err := ExportPositionsXLSX(samplePositions(), "positions")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	decoded, err := XLSXDecoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	res := ParsePositions(decoded, 1)
	require.Empty(t, res.Errors)
	require.Len(t, res.Success, len(samplePositions()))
	assert.Equal(t, parsed.Success[0].ISIN, res.Success[0].ISIN)
	assert.True(t, parsed.Success[1].NominalValue.Decimal.Equal(res.Success[1].NominalValue.Decimal))
}

func TestXLSXDecode_EmptyWorkbookFails(t *testing.T) {
	_, err := XLSXDecoder{}.Decode(strings.NewReader("not a workbook"))
	require.Error(t, err)
}
