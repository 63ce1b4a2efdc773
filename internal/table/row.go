package table

// Row is one record of a rendered table: a stable id plus an open
// key-to-value mapping keyed by column keys.
type Row struct {
	ID     string
	Fields map[string]Value
}

func NewRow(id string) Row {
	return Row{ID: id, Fields: make(map[string]Value)}
}

// Get returns the value for key, or null when the row has no such field.
func (r Row) Get(key string) Value {
	if v, ok := r.Fields[key]; ok {
		return v
	}
	return NullValue()
}

// With returns a copy of the row with one field replaced. The receiver
// is left untouched.
func (r Row) With(key string, v Value) Row {
	fields := make(map[string]Value, len(r.Fields)+1)
	for k, val := range r.Fields {
		fields[k] = val
	}
	fields[key] = v
	return Row{ID: r.ID, Fields: fields}
}

// RowFromAny builds a Row from a JSON-decoded object.
func RowFromAny(id string, raw map[string]any) Row {
	row := NewRow(id)
	for k, v := range raw {
		row.Fields[k] = FromAny(v)
	}
	return row
}
