package exporter

import "io"

// RowEncoder is a common interface over the supported export formats
// (CSV, JSON Lines, Excel, PDF), so the sink stays format-agnostic.
type RowEncoder interface {
	// WriteHeader writes the column headers. Called exactly once, before
	// any rows.
	WriteHeader(columns []string) error

	// WriteRow writes a single row of data. The values slice length must
	// match the header length.
	WriteRow(values []any) error

	// Flush pushes buffered data to the underlying writer. Critical for
	// buffered formats like CSV and Excel.
	Flush() error

	// Error returns the first error that occurred during encoding, if any.
	Error() error

	// Close flushes the encoder and releases its resources.
	io.Closer
}
