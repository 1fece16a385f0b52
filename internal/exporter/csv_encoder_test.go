package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestCSVEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewCSVEncoder(&buf)

	if err := enc.WriteHeader([]string{"id", "name", "born"}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	born := time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC)
	rows := [][]any{
		{int64(1), []byte("ada"), born},
		{int64(2), nil, nil},
	}
	for _, row := range rows {
		if err := enc.WriteRow(row); err != nil {
			t.Fatalf("WriteRow: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := strings.Join([]string{
		"id,name,born",
		"1,ada,1815-12-10 00:00:00",
		"2,NULL,NULL",
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCSVFormulaInjectionQuoted(t *testing.T) {
	var buf bytes.Buffer
	enc := NewCSVEncoder(&buf)

	if err := enc.WriteHeader([]string{"v"}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if err := enc.WriteRow([]any{"=SUM(A1:A9)"}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if !strings.Contains(buf.String(), "'=SUM(A1:A9)") {
		t.Errorf("formula value not quoted: %q", buf.String())
	}
}

func TestJSONEncoderLines(t *testing.T) {
	var buf bytes.Buffer
	enc := NewJSONEncoder(&buf)

	if err := enc.WriteHeader([]string{"id", "name"}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if err := enc.WriteRow([]any{int64(1), []byte("ada")}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := `{"id":1,"name":"ada"}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
