package parser

import (
	"errors"
	"io"
	"log/slog"
)

// Accumulator collects documentation blocks from source text into a DocMap
type Accumulator struct {
	logger      *slog.Logger
	stripHeader bool
}

// Option configures an Accumulator
type Option func(*Accumulator)

// WithLogger sets the logger used to report skipped blocks
func WithLogger(logger *slog.Logger) Option {
	return func(a *Accumulator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithStrippedHeaders stores headers without their leading "#" markers
func WithStrippedHeaders(strip bool) Option {
	return func(a *Accumulator) {
		a.stripHeader = strip
	}
}

// NewAccumulator creates an accumulator. Without WithLogger nothing is logged.
func NewAccumulator(opts ...Option) *Accumulator {
	a := &Accumulator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Accumulate extracts every headed block of text into a new DocMap.
// Blocks sharing a header are appended in encounter order.
func (a *Accumulator) Accumulate(text string, format Format) DocMap {
	return a.AccumulateInto(DocMap{}, text, format)
}

// AccumulateInto is Accumulate growing an existing map
func (a *Accumulator) AccumulateInto(docs DocMap, text string, format Format) DocMap {
	if docs == nil {
		docs = DocMap{}
	}

	rest := text
	for {
		remainder, body, err := Locate(rest, format.Start, format.End)
		if err != nil {
			if errors.Is(err, ErrUnterminatedBlock) {
				a.logger.Warn("unterminated doc block",
					"component", "parser", "operation", "accumulate",
					"start", format.Start, "end", format.End)
			}
			return docs
		}
		rest = remainder

		block, err := a.parseBlock(body, format.Delimiter)
		if err != nil {
			a.logger.Debug("skipping doc block",
				"component", "parser", "operation", "accumulate", "error", err)
			continue
		}

		a.logger.Debug("header found",
			"component", "parser", "operation", "accumulate", "header", block.Header)
		if existing, ok := docs[block.Header]; ok {
			combined := make([]string, 0, len(existing)+len(block.Lines))
			combined = append(combined, existing...)
			docs[block.Header] = append(combined, block.Lines...)
		} else {
			docs[block.Header] = block.Lines
		}
	}
}

func (a *Accumulator) parseBlock(body string, delimiter rune) (Block, error) {
	lines, header, err := ExtractHeader(body)
	if err != nil {
		return Block{}, err
	}
	if a.stripHeader {
		header = StripHeader(header)
	}
	return Block{Header: header, Lines: Normalize(lines, delimiter)}, nil
}

// Accumulate runs a default Accumulator over text
func Accumulate(text string, format Format) DocMap {
	return NewAccumulator().Accumulate(text, format)
}
