// Package records converts spreadsheet grids into header-keyed records.
package records

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Grid is a header row followed by data rows. Rows may be ragged; a missing
// cell reads as empty text.
type Grid [][]string

// Cell returns the trimmed cell at row r, column c, or "" when it is absent.
func (g Grid) Cell(r, c int) string {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[r]) {
		return ""
	}
	return strings.TrimSpace(g[r][c])
}

// Record maps normalized header names to trimmed cell text.
type Record map[string]string

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeKey lower-cases a header, replaces each whitespace run with "_"
// and strips accents, so "Fecha de Inscripción" becomes
// "fecha_de_inscripcion".
func NormalizeKey(header string) string {
	key := strings.ToLower(strings.TrimSpace(header))
	key = whitespace.ReplaceAllString(key, "_")
	return stripAccents(key)
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		// the ó case must hold even if the transformer gives up
		return strings.ReplaceAll(s, "ó", "o")
	}
	return out
}

// ToRecords zips the normalized header row with every data row. Columns with
// a blank header are ignored; a duplicated header keeps the rightmost value.
// Rows whose values are all empty are dropped. Output preserves row order.
func ToRecords(grid Grid) []Record {
	if len(grid) < 2 {
		return []Record{}
	}

	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = NormalizeKey(h)
	}

	out := make([]Record, 0, len(grid)-1)
	for r := 1; r < len(grid); r++ {
		rec := make(Record, len(headers))
		blank := true
		for c, key := range headers {
			if key == "" {
				continue
			}
			v := grid.Cell(r, c)
			rec[key] = v
			if v != "" {
				blank = false
			}
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out
}

// Lookup returns the first non-empty value among the candidate headers. Each
// candidate is tried in normalized form and then verbatim.
func (r Record) Lookup(candidates ...string) string {
	for _, c := range candidates {
		if v := r[NormalizeKey(c)]; v != "" {
			return v
		}
		if v := r[c]; v != "" {
			return v
		}
	}
	return ""
}
