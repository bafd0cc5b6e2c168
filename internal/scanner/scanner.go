package scanner

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gubarz/docco/internal/output"
	"github.com/gubarz/docco/internal/parser"
)

// Source is one matched file and its full text
type Source struct {
	Path   string
	Format parser.Format
	Text   string
}

// Scanner finds source files under a root directory
type Scanner struct {
	logger      *slog.Logger
	followLinks bool
}

// NewScanner creates a scanner. A nil logger discards messages.
func NewScanner(logger *slog.Logger, followLinks bool) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{logger: logger, followLinks: followLinks}
}

// Scan recursively reads every file under root whose name ends with one of
// the format extensions. Files are returned in lexical path order; the first
// matching format wins. Unreadable directories below root are skipped, an
// unreadable root or source file is fatal.
func (s *Scanner) Scan(root string, formats []parser.Format) ([]Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, output.NewSourceError(root, err)
	}

	w := &walker{scanner: s, formats: formats, visited: make(map[string]bool)}
	if !info.IsDir() {
		if err := w.visitFile(root); err != nil {
			return nil, err
		}
		return w.sources, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, output.NewSourceError(root, err)
	}
	w.markVisited(root)
	if err := w.walkEntries(root, entries); err != nil {
		return nil, err
	}
	return w.sources, nil
}

type walker struct {
	scanner *Scanner
	formats []parser.Format
	visited map[string]bool
	sources []Source
}

func (w *walker) walkDir(dir string) error {
	if !w.markVisited(dir) {
		w.scanner.logger.Debug("skipping visited directory",
			"component", "scanner", "operation", "walk", "path", dir)
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.scanner.logger.Warn("skipping unreadable directory",
			"component", "scanner", "operation", "walk", "path", dir, "error", err)
		return nil
	}
	return w.walkEntries(dir, entries)
}

func (w *walker) walkEntries(dir string, entries []os.DirEntry) error {
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			if !w.scanner.followLinks {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				w.scanner.logger.Warn("skipping broken link",
					"component", "scanner", "operation", "walk", "path", path, "error", err)
				continue
			}
			isDir = info.IsDir()
		}

		if isDir {
			if err := w.walkDir(path); err != nil {
				return err
			}
			continue
		}
		if err := w.visitFile(path); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) visitFile(path string) error {
	format, ok := Match(filepath.Base(path), w.formats)
	if !ok {
		return nil
	}

	w.scanner.logger.Info("reading source",
		"component", "scanner", "operation", "read", "path", path, "extension", format.Extension)
	data, err := os.ReadFile(path)
	if err != nil {
		return output.NewSourceError(path, err)
	}
	w.sources = append(w.sources, Source{Path: path, Format: format, Text: string(data)})
	return nil
}

// markVisited records dir by its resolved path and reports whether it was new
func (w *walker) markVisited(dir string) bool {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}
	if w.visited[resolved] {
		return false
	}
	w.visited[resolved] = true
	return true
}

// Match returns the first format whose extension ends name
func Match(name string, formats []parser.Format) (parser.Format, bool) {
	for _, f := range formats {
		if f.Extension != "" && strings.HasSuffix(name, f.Extension) {
			return f, true
		}
	}
	return parser.Format{}, false
}
