package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/tools/imports"
)

// Writer renders a generation pass and writes the artifact to disk, running
// the source through goimports-style processing before writing.
type Writer struct {
	gen     *Generator
	metrics *WriterMetrics
}

// WriterMetrics tracks generation performance.
type WriterMetrics struct {
	TotalBytes int64
	RenderTime int64 // nanoseconds
	FormatTime int64 // nanoseconds
	WriteTime  int64 // nanoseconds
}

// NewWriter returns a Writer for one generation pass.
func NewWriter(g *Generator) *Writer {
	return &Writer{gen: g, metrics: &WriterMetrics{}}
}

// Metrics returns the write metrics.
func (w *Writer) Metrics() *WriterMetrics { return w.metrics }

// WriteFile generates the migration library and writes it to path, creating
// parent directories as needed. A generation failure leaves no partial
// artifact behind.
func (w *Writer) WriteFile(path string) error {
	start := time.Now()
	f, err := w.gen.Generate()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	w.metrics.RenderTime = time.Since(start).Nanoseconds()

	start = time.Now()
	src, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("format %s: %w", path, err)
	}
	w.metrics.FormatTime = time.Since(start).Nanoseconds()

	start = time.Now()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.metrics.WriteTime = time.Since(start).Nanoseconds()
	w.metrics.TotalBytes = int64(len(src))
	return nil
}
