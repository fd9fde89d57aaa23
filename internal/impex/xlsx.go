package impex

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-dev/custodia/internal/model"
	"github.com/custodia-dev/custodia/internal/tabular"
)

// XLSXDecoder reads the first sheet of a workbook and re-serializes it as
// document text, so XLSX uploads flow through the same row validation as CSV.
type XLSXDecoder struct{}

// Extensions returns the file extensions handled by the decoder.
func (XLSXDecoder) Extensions() []string { return []string{".xlsx"} }

// Decode converts the first sheet into document text. The first sheet row is
// the header; an empty sheet decodes to an empty document.
func (XLSXDecoder) Decode(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return "", nil
	}

	header := rows[0]
	out := make([]tabular.Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(tabular.Row, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		out = append(out, row)
	}
	return tabular.Write(header, out), nil
}

// writeXLSX renders rows under a header into a single-sheet workbook.
func writeXLSX(header []string, rows []tabular.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, name := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell %d: %w", i, err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, fmt.Errorf("writing header cell %s: %w", cell, err)
		}
	}
	for rowIdx, row := range rows {
		for colIdx, name := range header {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("cell %d,%d: %w", colIdx, rowIdx, err)
			}
			if err := f.SetCellValue(sheet, cell, row[name]); err != nil {
				return nil, fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportBanksXLSX renders banks as a workbook plus its filename.
func ExportBanksXLSX(banks []model.Bank) (data []byte, filename string, err error) {
	rows := make([]tabular.Row, len(banks))
	for i, b := range banks {
		rows[i] = bankRow(b)
	}
	data, err = writeXLSX(BankHeader, rows)
	return data, ExportFilename("banks", "xlsx"), err
}

// ExportPositionsXLSX renders positions as a workbook plus its filename.
func ExportPositionsXLSX(positions []model.Position, label string) (data []byte, filename string, err error) {
	rows := make([]tabular.Row, len(positions))
	for i, p := range positions {
		rows[i] = positionRow(p)
	}
	data, err = writeXLSX(PositionHeader, rows)
	return data, ExportFilename(label, "xlsx"), err
}
