// Package impex converts between holdings documents (CSV or XLSX) and typed
// bank/position records. Parsing never aborts on a bad row: every data row is
// classified as accepted or failed, and the caller decides what to do with
// the result. The package performs no I/O and no persistence.
package impex

import "github.com/custodia-dev/custodia/internal/tabular"

// RowError pairs a failed data row with its message. Rows are numbered from
// the top of the document: the header is row 1, the first data row is row 2.
type RowError struct {
	Row int
	Err string
}

// ParsedRow is the outcome of a single data row, kept for review output.
// Exactly one of Data and Err is meaningful; Raw holds the normalized input
// values of a failed row so a review can show what the user typed.
type ParsedRow[T any] struct {
	Row  int
	Data T
	Raw  tabular.Row
	Err  string
}

// Failed reports whether the row was rejected.
func (p ParsedRow[T]) Failed() bool { return p.Err != "" }

// ParseResult aggregates one parsed document. Every data row appears exactly
// once: in Success or in Errors, and always in AllRows in original order.
type ParseResult[T any] struct {
	Success []T
	Errors  []RowError
	AllRows []ParsedRow[T]
}

// parseDocument runs validate over every data row of text. Row failures are
// collected, never propagated; normalize cleans up the raw values kept for
// failed rows.
func parseDocument[T any](text string, validate func(tabular.Row) (T, error), normalize func(tabular.Row) tabular.Row) ParseResult[T] {
	doc := tabular.Parse(text)

	var res ParseResult[T]
	for i, raw := range doc.Rows {
		rowNum := i + 2 // header is row 1

		rec, err := validate(raw)
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Err: err.Error()})
			res.AllRows = append(res.AllRows, ParsedRow[T]{Row: rowNum, Raw: normalize(raw), Err: err.Error()})
			continue
		}
		res.Success = append(res.Success, rec)
		res.AllRows = append(res.AllRows, ParsedRow[T]{Row: rowNum, Data: rec})
	}
	return res
}
