// File: /export/csv.go
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
)

// ErrNoData is returned when an export is attempted over an empty row set.
// Callers are expected to log a warning and skip producing a file.
var ErrNoData = errors.New("export: no data")

// EncodeCSV writes rows as UTF-8 CSV with RFC 4180 quoting: fields
// containing commas or double quotes are wrapped in quotes with embedded
// quotes doubled. The header line is the column labels in order. A row
// missing a column's key yields an empty field.
func EncodeCSV(w io.Writer, cols []Column, rows []Row) error {
	if len(rows) == 0 {
		return ErrNoData
	}

	cw := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Label
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(cols))
	for _, row := range rows {
		for i, col := range cols {
			value, ok := row.Get(col.Key)
			if !ok || value == nil {
				record[i] = ""
				continue
			}
			if col.Format != nil {
				record[i] = col.Format(value)
				continue
			}
			record[i] = csvValue(value)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return v.Format(shortDate)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}
