package generator

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/gubarz/docco/internal/config"
	"github.com/gubarz/docco/internal/document"
	"github.com/gubarz/docco/internal/output"
	"github.com/gubarz/docco/internal/parser"
	"github.com/gubarz/docco/internal/scanner"
)

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard implements Clipboard using system commands
type systemClipboard struct {
	fallback io.Writer
}

// Copy copies text to the system clipboard
func (c *systemClipboard) Copy(text string) error {
	cmd := c.findClipboardCommand()
	if cmd == nil {
		// No clipboard tool found, just print
		_, err := io.WriteString(c.fallback, text)
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// findClipboardCommand returns the appropriate clipboard command for the system
func (c *systemClipboard) findClipboardCommand() *exec.Cmd {
	switch {
	case commandExists("wl-copy"):
		return exec.Command("wl-copy")
	case commandExists("xclip"):
		return exec.Command("xclip", "-selection", "clipboard")
	case commandExists("xsel"):
		return exec.Command("xsel", "--clipboard", "--input")
	case commandExists("pbcopy"):
		return exec.Command("pbcopy")
	default:
		return nil
	}
}

// commandExists checks if a command is available in PATH
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ============================================================================
// Generator
// ============================================================================

// Result is the outcome of one extraction run
type Result struct {
	Sources  int
	Sections []parser.Block
	Lines    []string
}

// Generator runs the scan, extract, merge and order pipeline
type Generator struct {
	cfg       *config.Config
	logger    *slog.Logger
	stdout    io.Writer
	clipboard Clipboard
}

// NewGenerator creates a generator for the given configuration
func NewGenerator(cfg *config.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		cfg:    cfg,
		logger: logger,
		stdout: os.Stdout,
	}
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (g *Generator) WithClipboard(c Clipboard) *Generator {
	g.clipboard = c
	return g
}

// WithStdout sets the writer used by print mode and by copy mode when no
// clipboard tool is installed
func (g *Generator) WithStdout(w io.Writer) *Generator {
	g.stdout = w
	return g
}

// ============================================================================
// Extraction
// ============================================================================

// Build scans the configured root and returns the ordered document.
// Files are processed one at a time in scan order.
func (g *Generator) Build() (*Result, error) {
	order, err := parser.ParseMergeOrder(g.cfg.MergeOrder)
	if err != nil {
		return nil, output.NewConfigError("", err)
	}

	sources, err := scanner.NewScanner(g.logger, g.cfg.FollowLinks).Scan(g.cfg.Root, g.cfg.ParserFormats())
	if err != nil {
		return nil, err
	}

	acc := parser.NewAccumulator(
		parser.WithLogger(g.logger),
		parser.WithStrippedHeaders(g.cfg.StripHeader),
	)
	maps := make([]parser.DocMap, 0, len(sources))
	for _, src := range sources {
		docs := acc.Accumulate(src.Text, src.Format)
		g.logger.Debug("parsed source",
			"component", "generator", "operation", "build", "path", src.Path, "sections", len(docs))
		maps = append(maps, docs)
	}

	merged := parser.MergeWith(order, maps...)
	lines := parser.Order(merged, g.cfg.Index)
	if g.cfg.TOC {
		lines = append(document.TableOfContents(lines), lines...)
	}

	g.logger.Info("document built",
		"component", "generator", "operation", "build",
		"sources", len(sources), "sections", len(merged), "lines", len(lines))

	return &Result{
		Sources:  len(sources),
		Sections: parser.Sections(merged, g.cfg.Index),
		Lines:    lines,
	}, nil
}

// ============================================================================
// Output Handling
// ============================================================================

// OutputMode represents how the final document should be handled
type OutputMode string

const (
	OutputWrite OutputMode = config.ModeWrite
	OutputPrint OutputMode = config.ModePrint
	OutputCopy  OutputMode = config.ModeCopy
)

// Output handles the document based on the configured mode
func (g *Generator) Output(lines []string) error {
	return g.OutputWithMode(lines, OutputMode(g.cfg.Mode))
}

// OutputWithMode handles the document with an explicit mode
func (g *Generator) OutputWithMode(lines []string, mode OutputMode) error {
	switch mode {
	case OutputPrint:
		sink := document.NewStreamSink(g.stdout, "stdout")
		sink.Prefix = g.cfg.PrintPrefix
		return sink.Write(lines)
	case OutputCopy:
		if err := g.clipboardOrDefault().Copy(document.Render(lines)); err != nil {
			return output.NewOutputError("clipboard", err)
		}
		return nil
	case OutputWrite:
		return document.NewFileSink(g.cfg.Output, g.logger).Write(lines)
	default:
		return fmt.Errorf("unsupported output mode: %s (supported: %s, %s, %s)",
			mode, OutputWrite, OutputPrint, OutputCopy)
	}
}

func (g *Generator) clipboardOrDefault() Clipboard {
	if g.clipboard == nil {
		return &systemClipboard{fallback: g.stdout}
	}
	return g.clipboard
}

// Run builds the document and hands it to the configured output.
// Nothing is written when any source fails to read.
func (g *Generator) Run() (*Result, error) {
	result, err := g.Build()
	if err != nil {
		return nil, err
	}
	if err := g.Output(result.Lines); err != nil {
		return result, err
	}
	return result, nil
}
