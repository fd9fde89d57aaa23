// Package tabular implements the spreadsheet-style text dialect used for
// holdings import and export: comma or semicolon delimited, fields optionally
// quoted with '"', embedded quotes doubled. The delimiter is inferred from the
// first line on read; output is always comma-delimited.
//
// The codec knows nothing about banks or positions. It turns text into
// header-keyed string rows and back.
package tabular

import "strings"

// Row maps header column names to the raw field values of one data line.
type Row map[string]string

// Document is one parsed tabular file: the ordered header plus one Row per
// data line.
type Document struct {
	Header []string
	Rows   []Row
}

// Detect infers the field delimiter from the first line of a document.
// Semicolon wins only when unquoted semicolons strictly outnumber unquoted
// commas; comma is the default on a tie or an empty line.
func Detect(firstLine string) rune {
	var commas, semicolons int
	inQuotes := false
	runes := []rune(firstLine)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				i++ // doubled quote is a literal, not a state change
				continue
			}
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				commas++
			}
		case ';':
			if !inQuotes {
				semicolons++
			}
		}
	}
	if semicolons > commas {
		return ';'
	}
	return ','
}

// splitLine tokenizes one line into whitespace-trimmed fields. Inside quotes
// a doubled quote emits a single literal quote; the delimiter only closes a
// field when outside quotes. The quote characters themselves are dropped.
func splitLine(line string, delim rune) []string {
	var fields []string
	var buf strings.Builder
	inQuotes := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				buf.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(buf.String()))
			buf.Reset()
		default:
			buf.WriteRune(c)
		}
	}
	fields = append(fields, strings.TrimSpace(buf.String()))
	return fields
}

// Parse converts document text into a Document. The first line is the header;
// blank lines are skipped. An empty or header-only document yields zero rows,
// not an error. Data lines shorter than the header get empty strings for the
// missing trailing columns; extra trailing values are discarded.
func Parse(text string) Document {
	trimmed := strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if trimmed == "" {
		return Document{}
	}

	lines := strings.Split(trimmed, "\n")
	delim := Detect(lines[0])
	doc := Document{Header: splitLine(lines[0], delim)}

	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitLine(line, delim)
		row := make(Row, len(doc.Header))
		for i, name := range doc.Header {
			if i < len(values) {
				row[name] = values[i]
			} else {
				row[name] = ""
			}
		}
		doc.Rows = append(doc.Rows, row)
	}
	return doc
}

// Write renders rows under a fixed header. Output is always comma-delimited
// regardless of what Detect would infer on re-parse; the header line is
// present even for zero rows and every line ends with a newline. Fields
// containing a comma or a quote are quoted with internal quotes doubled;
// values for absent keys render as the empty string.
func Write(header []string, rows []Row) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')
	for _, row := range rows {
		for i, name := range header {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escape(row[name]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func escape(field string) string {
	if !strings.ContainsAny(field, `,"`) {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
