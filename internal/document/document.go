// Package document writes ordered section lines to their destination.
package document

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gubarz/docco/internal/output"
)

// Sink accepts the final ordered lines of a document
type Sink interface {
	Write(lines []string) error
}

// Render joins lines into document text, one line each
func Render(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Replaceable for testing error paths.
var (
	osCreateTemp = os.CreateTemp
	osRename     = os.Rename
)

// FileSink writes the document to a file, replacing it atomically
type FileSink struct {
	Path   string
	Perm   os.FileMode
	Logger *slog.Logger
}

// NewFileSink creates a sink for path with 0644 permissions
func NewFileSink(path string, logger *slog.Logger) *FileSink {
	return &FileSink{Path: path, Perm: 0o644, Logger: logger}
}

// Write writes lines via temp file + rename so a failed run leaves any
// previous document untouched.
func (s *FileSink) Write(lines []string) error {
	if err := atomicWrite(s.Path, []byte(Render(lines)), s.Perm); err != nil {
		return output.NewOutputError(s.Path, err)
	}
	if s.Logger != nil {
		s.Logger.Info("document written",
			"component", "document", "operation", "write", "path", s.Path, "lines", len(lines))
	}
	return nil
}

func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp, err := osCreateTemp(filepath.Dir(path), ".docco-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		return fmt.Errorf("write: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close: %w", closeErr)
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := osRename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	success = true
	return nil
}

// StreamSink emits each line to a writer, optionally prefixed
type StreamSink struct {
	W      io.Writer
	Prefix string
	Name   string
}

// NewStreamSink creates a sink writing plain lines to w
func NewStreamSink(w io.Writer, name string) *StreamSink {
	return &StreamSink{W: w, Name: name}
}

// Write emits every line followed by a newline
func (s *StreamSink) Write(lines []string) error {
	bw := bufio.NewWriter(s.W)
	for _, line := range lines {
		if _, err := fmt.Fprintf(bw, "%s%s\n", s.Prefix, line); err != nil {
			return output.NewOutputError(s.Name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return output.NewOutputError(s.Name, err)
	}
	return nil
}
