package parser

import (
	"errors"
	"strings"
)

// DocMap maps a section header to its content lines
type DocMap map[string][]string

// Block is one extracted documentation block
type Block struct {
	Header string
	Lines  []string
}

// Format describes how documentation blocks are bracketed in one kind of file
type Format struct {
	Extension string
	Start     string
	End       string
	Delimiter rune
}

var (
	// ErrBlockNotFound means the text holds no further documentation block
	ErrBlockNotFound = errors.New("doc block not found")
	// ErrUnterminatedBlock means a start delimiter was found without a matching end.
	// It matches ErrBlockNotFound under errors.Is.
	ErrUnterminatedBlock = &unterminatedError{}
	// ErrNoHeader means a block holds no markdown header
	ErrNoHeader = errors.New("no header in doc block")
)

type unterminatedError struct{}

func (e *unterminatedError) Error() string { return "unterminated doc block" }

func (e *unterminatedError) Is(target error) bool { return target == ErrBlockNotFound }

const headerMarker = '#'

// Locate finds the first block bracketed by start and end.
// Text before start is discarded; remainder is everything after end.
func Locate(text, start, end string) (remainder, body string, err error) {
	if start == "" || end == "" {
		return "", "", ErrBlockNotFound
	}

	idx := strings.Index(text, start)
	if idx == -1 {
		return "", "", ErrBlockNotFound
	}
	rest := text[idx+len(start):]

	endIdx := strings.Index(rest, end)
	if endIdx == -1 {
		return "", "", ErrUnterminatedBlock
	}

	return rest[endIdx+len(end):], rest[:endIdx], nil
}

// ExtractHeader splits a block body into the first markdown header line and
// the lines that follow it. The header keeps its "#" markers.
func ExtractHeader(body string) (lines, header string, err error) {
	idx := strings.IndexByte(body, headerMarker)
	if idx == -1 {
		return "", "", ErrNoHeader
	}
	rest := body[idx:]

	nl := strings.IndexByte(rest, '\n')
	if nl == -1 {
		return "", strings.TrimSuffix(rest, "\r"), nil
	}

	return rest[nl+1:], strings.TrimSuffix(rest[:nl], "\r"), nil
}

// Normalize splits body lines and strips any leading run of the delimiter
// and space characters from each of them. Empty lines are kept.
func Normalize(lines string, delimiter rune) []string {
	cutset := string([]rune{delimiter, ' '})

	split := splitLines(lines)
	result := make([]string, 0, len(split))
	for _, line := range split {
		result = append(result, strings.TrimLeft(line, cutset))
	}
	return result
}

// StripHeader removes the leading "#" run and surrounding spaces from a header
func StripHeader(header string) string {
	return strings.TrimSpace(strings.TrimLeft(header, "# "))
}

// splitLines splits on "\n" without yielding an empty line for a trailing
// newline. A "\r" before each newline is dropped.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}
