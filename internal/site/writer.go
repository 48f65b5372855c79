// Package site writes rendered pages into the output directory. Each run
// fully overwrites its output file; there is no locking, and concurrent runs
// against the same directory are assumed to be serialized by the caller.
package site

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	gzipWriterPool = sync.Pool{
		New: func() interface{} {
			return gzip.NewWriter(nil)
		},
	}
	bufferPool = sync.Pool{
		New: func() interface{} {
			return new(bytes.Buffer)
		},
	}
)

// Option configures the Writer.
type Option func(*Writer)

// WithGzip enables writing a precompressed .gz sibling next to each page,
// for static hosts that serve precompressed assets.
func WithGzip() Option {
	return func(w *Writer) { w.gzip = true }
}

// Writer persists rendered pages to a directory.
type Writer struct {
	dir   string
	gzip  bool
	stats CompressionStats
}

// NewWriter creates a writer rooted at dir. The directory is created on the
// first write.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WritePage writes data to name inside the output directory, overwriting any
// previous run's output, and returns the full path written.
func (w *Writer) WritePage(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	if w.gzip {
		compressed, err := compressBytes(data)
		if err != nil {
			return "", fmt.Errorf("compressing %s: %w", name, err)
		}
		if err := os.WriteFile(path+".gz", compressed, 0o644); err != nil {
			return "", fmt.Errorf("writing %s.gz: %w", name, err)
		}
		w.stats.TotalOriginal += int64(len(data))
		w.stats.TotalCompressed += int64(len(compressed))
		w.stats.ItemsCompressed++
	}

	return path, nil
}

// Stats returns compression effectiveness for this writer's lifetime.
func (w *Writer) Stats() CompressionStats {
	return w.stats
}

// compressBytes gzips raw bytes using pooled writers and buffers.
func compressBytes(data []byte) ([]byte, error) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	gzw := gzipWriterPool.Get().(*gzip.Writer)
	gzw.Reset(buf)
	defer gzipWriterPool.Put(gzw)

	if _, err := gzw.Write(data); err != nil {
		return nil, err
	}
	if err := gzw.Close(); err != nil {
		return nil, err
	}

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// CompressionStats tracks compression effectiveness.
type CompressionStats struct {
	TotalOriginal   int64
	TotalCompressed int64
	ItemsCompressed int64
}

// Ratio returns the compression ratio.
func (s CompressionStats) Ratio() float64 {
	if s.TotalOriginal == 0 {
		return 0
	}
	return float64(s.TotalCompressed) / float64(s.TotalOriginal)
}

// Savings returns bytes saved.
func (s CompressionStats) Savings() int64 {
	return s.TotalOriginal - s.TotalCompressed
}
