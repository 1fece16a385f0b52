package engine

import "context"

// Query is one statement with its positional arguments. It is immutable
// once submitted; the engine never rewrites statement text.
type Query struct {
	Text string
	Args []any
}

// Row is a single result record keyed by column name.
type Row map[string]any

// CommandKind tags the result category a statement produced.
type CommandKind int

const (
	// KindUnknown marks an absent command tag: the statement did not
	// complete as expected. This is a convention of this layer, not a
	// driver guarantee.
	KindUnknown CommandKind = iota
	// KindSelect covers row-returning statements.
	KindSelect
	// KindMutation covers statements reporting affected rows.
	KindMutation
)

// Result is the normalized outcome of one executed statement.
type Result struct {
	// Command is the statement's command tag ("SELECT", "INSERT", ...).
	// Empty means the tag is absent.
	Command string
	// Columns preserves the result set's column order. Empty for
	// non-row-returning statements.
	Columns []string
	// Rows holds the collected result records, in arrival order.
	Rows []Row
	// RowCount is the number of returned rows for row-returning
	// statements, otherwise the number of affected rows.
	RowCount int64

	// Export streams the result's rows to the configured export sink.
	// It is set only on successful SELECT results when the executor was
	// built with a sink, and is nil otherwise.
	Export func() error
}

// Kind classifies the result per its command tag.
func (r *Result) Kind() CommandKind {
	switch {
	case r.Command == "":
		return KindUnknown
	case returnsRows(r.Command):
		return KindSelect
	default:
		return KindMutation
	}
}

// ExportSink receives finished row sets and writes them out of band, e.g.
// as a spreadsheet on local disk or S3. It returns the artifact location.
type ExportSink interface {
	Export(ctx context.Context, columns []string, rows []Row) (string, error)
}
