package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"sql-conductor/internal/engine"
	"sql-conductor/internal/storage"
)

// Sink ties a row encoder to a storage provider. It implements the
// engine's export hook: a successful SELECT's rows are streamed through
// the configured format into a uuid-keyed file.
type Sink struct {
	store  storage.Provider
	format string
	log    *slog.Logger
}

var _ engine.ExportSink = (*Sink)(nil)

// NewSink builds a sink for the given format: "xlsx", "csv", "json" or
// "pdf". Unknown formats fall back to CSV.
func NewSink(store storage.Provider, format string, log *slog.Logger) *Sink {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Sink{store: store, format: format, log: log}
}

// Export writes columns and rows to storage and returns the artifact's
// download location.
func (s *Sink) Export(ctx context.Context, columns []string, rows []engine.Row) (string, error) {
	key := fmt.Sprintf("results/%s.%s", uuid.New().String(), extension(s.format))

	writer, errChan := s.store.StreamToFile(ctx, key)
	if writer == nil {
		return "", <-errChan
	}

	encoder := s.newEncoder(writer)
	encodeErr := encodeRows(encoder, columns, rows)
	closeErr := encoder.Close()
	writerErr := writer.Close()
	storeErr := <-errChan

	switch {
	case encodeErr != nil:
		return "", fmt.Errorf("encode failed: %w", encodeErr)
	case closeErr != nil:
		return "", fmt.Errorf("encoder close failed: %w", closeErr)
	case writerErr != nil:
		return "", fmt.Errorf("storage close failed: %w", writerErr)
	case storeErr != nil:
		return "", fmt.Errorf("storage write failed: %w", storeErr)
	}

	s.log.Debug("result exported", "key", key, "rows", len(rows))
	return s.store.GetDownloadURL(key), nil
}

func (s *Sink) newEncoder(w io.Writer) RowEncoder {
	switch s.format {
	case "xlsx", "excel":
		return NewExcelEncoder(w)
	case "json":
		return NewJSONEncoder(w)
	case "pdf":
		return NewPDFEncoder(w)
	default:
		return NewCSVEncoder(w)
	}
}

// encodeRows pushes the row set through the encoder in column order.
func encodeRows(encoder RowEncoder, columns []string, rows []engine.Row) error {
	if err := encoder.WriteHeader(columns); err != nil {
		return err
	}
	for _, row := range rows {
		values := make([]any, len(columns))
		for i, col := range columns {
			values[i] = row[col]
		}
		if err := encoder.WriteRow(values); err != nil {
			return err
		}
	}
	if err := encoder.Flush(); err != nil {
		return err
	}
	return encoder.Error()
}

func extension(format string) string {
	switch format {
	case "xlsx", "excel":
		return "xlsx"
	case "json":
		return "jsonl"
	case "pdf":
		return "pdf"
	default:
		return "csv"
	}
}
