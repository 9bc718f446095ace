// File: /export/format.go
package export

import (
	"strings"
	"time"
	"unicode"
)

// shortDate matches the short date rendering used across the export
// pipeline ("1/2/2006" style, no leading zeros).
const shortDate = "1/2/2006"

// FormatRows prepares raw records for export. Keys starting with "_" are
// dropped, time values are rendered as short date strings and remaining
// keys are relabeled into human readable column names. Date fields keep
// their original key. Output always has exactly one row per input row and
// the input is left untouched.
func FormatRows(rows []Row) []Row {
	formatted := make([]Row, len(rows))
	for i, row := range rows {
		out := make(Row, 0, len(row))
		for _, f := range row {
			if isInternalKey(f.Key) {
				continue
			}

			if t, ok := f.Value.(time.Time); ok {
				out = append(out, Field{Key: f.Key, Value: t.Format(shortDate)})
				continue
			}

			out = append(out, Field{Key: HumanizeKey(f.Key), Value: f.Value})
		}
		formatted[i] = out
	}
	return formatted
}

// HumanizeKey turns an identifier-style key into a column label:
// underscores become spaces, the first letter is capitalized and a space
// is inserted before each interior uppercase letter. "plate_number"
// becomes "Plate number", "createdAt" becomes "Created At".
func HumanizeKey(key string) string {
	label := strings.ReplaceAll(key, "_", " ")

	runes := []rune(label)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}

	var b strings.Builder
	for _, r := range runes {
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}

func isInternalKey(key string) bool {
	return strings.HasPrefix(key, "_")
}
