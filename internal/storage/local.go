package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LocalProvider writes export artifacts under a base directory.
type LocalProvider struct {
	basePath string
	log      *slog.Logger
}

func NewLocalProvider(basePath string, log *slog.Logger) *LocalProvider {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		log.Error("failed to ensure storage directory", "path", basePath, "error", err)
	}
	return &LocalProvider{basePath: basePath, log: log}
}

func (p *LocalProvider) StreamToFile(ctx context.Context, key string) (io.WriteCloser, <-chan error) {
	errChan := make(chan error, 1)

	fullPath := filepath.Join(p.basePath, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		errChan <- fmt.Errorf("create directory: %w", err)
		close(errChan)
		return nil, errChan
	}

	f, err := os.Create(fullPath)
	if err != nil {
		errChan <- fmt.Errorf("create file %s: %w", fullPath, err)
		close(errChan)
		return nil, errChan
	}

	return &localWriter{f: f, errChan: errChan, path: fullPath, log: p.log}, errChan
}

func (p *LocalProvider) OpenFile(_ context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(p.basePath, key))
}

func (p *LocalProvider) GetDownloadURL(key string) string {
	abs, _ := filepath.Abs(filepath.Join(p.basePath, key))
	return "file://" + abs
}

// localWriter settles the provider's error channel when the file closes.
type localWriter struct {
	f       *os.File
	errChan chan error
	path    string
	log     *slog.Logger
}

func (w *localWriter) Write(p []byte) (int, error) {
	return w.f.Write(p)
}

func (w *localWriter) Close() error {
	err := w.f.Close()
	if err == nil {
		w.log.Debug("local file written", "path", w.path)
	}
	w.errChan <- err
	close(w.errChan)
	return err
}
