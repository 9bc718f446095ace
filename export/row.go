// File: /export/row.go
package export

// Field is a single key/value pair within an export row.
type Field struct {
	Key   string
	Value interface{}
}

// Row is an ordered list of fields. Column layout is derived from field
// order, so rows keep insertion order instead of relying on map iteration.
type Row []Field

// Get returns the value for key and whether the row contains it.
func (r Row) Get(key string) (interface{}, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Column describes one output column: the row key it reads, the header
// label it is written under and an optional value formatter. A nil Format
// falls back to the encoder's default rendering.
type Column struct {
	Key    string
	Label  string
	Format func(value interface{}) string
}

// DeriveColumns builds column descriptors from the rows themselves: the
// union of all row keys, in order of first appearance, with keys starting
// with "_" skipped. Labels equal the keys, so rows that already went
// through FormatRows keep their humanized labels.
func DeriveColumns(rows []Row) []Column {
	seen := make(map[string]bool)
	var cols []Column
	for _, row := range rows {
		for _, f := range row {
			if seen[f.Key] || isInternalKey(f.Key) {
				continue
			}
			seen[f.Key] = true
			cols = append(cols, Column{Key: f.Key, Label: f.Key})
		}
	}
	return cols
}
