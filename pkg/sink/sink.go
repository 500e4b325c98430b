// Package sink stores rendered markup.
//
// A Sink receives a document name and its bytes. FileSink writes to a
// local directory, S3Sink uploads to a bucket, and WriterSink copies to an
// io.Writer such as stdout.
package sink

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/synthdom/internal/errors"
)

// Content types for rendered documents.
const (
	ContentTypeHTML  = "text/html; charset=utf-8"
	ContentTypeXHTML = "application/xhtml+xml; charset=utf-8"
)

// ContentType returns the content type for a rendering mode.
func ContentType(xhtml bool) string {
	if xhtml {
		return ContentTypeXHTML
	}
	return ContentTypeHTML
}

// Sink stores one rendered document.
type Sink interface {
	Write(ctx context.Context, name string, data []byte) error
}

// FileSink writes documents into Dir, always overwriting existing files.
type FileSink struct {
	Dir string
}

// NewFileSink creates a FileSink rooted at dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Write implements Sink. name may contain slashes; parent directories are
// created. Names that escape Dir are rejected.
func (s *FileSink) Write(_ context.Context, name string, data []byte) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.New("E121").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E121").Wrap(err)
	}
	return nil
}

func (s *FileSink) path(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if name == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.New("E121").WithDetail("Refusing to write " + name + " outside " + s.Dir + ".")
	}
	return filepath.Join(s.Dir, clean), nil
}

// WriterSink copies documents to W, ignoring their names.
type WriterSink struct {
	W io.Writer
}

// Write implements Sink.
func (s *WriterSink) Write(_ context.Context, _ string, data []byte) error {
	if _, err := s.W.Write(data); err != nil {
		return errors.New("E121").Wrap(err)
	}
	return nil
}
