package exporter

import (
	"encoding/json"
	"io"
	"strconv"
)

// JSONEncoder writes rows in JSON Lines format: one object per line keyed
// by column name.
type JSONEncoder struct {
	w       io.Writer
	columns []string
	err     error
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

// WriteHeader captures the column names used as object keys. JSON Lines
// has no header row of its own.
func (e *JSONEncoder) WriteHeader(columns []string) error {
	e.columns = columns
	return nil
}

func (e *JSONEncoder) WriteRow(values []any) error {
	if e.err != nil {
		return e.err
	}

	record := make(map[string]any, len(values))
	for i, v := range values {
		key := "column_" + strconv.Itoa(i)
		if i < len(e.columns) {
			key = e.columns[i]
		}
		if b, ok := v.([]byte); ok {
			record[key] = string(b)
		} else {
			record[key] = v
		}
	}

	data, err := json.Marshal(record)
	if err == nil {
		_, err = e.w.Write(append(data, '\n'))
	}
	if err != nil {
		e.err = err
	}
	return err
}

func (e *JSONEncoder) Flush() error {
	return nil
}

func (e *JSONEncoder) Error() error {
	return e.err
}

func (e *JSONEncoder) Close() error {
	return e.Flush()
}
