package document

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Heading is a markdown heading found in a rendered document
type Heading struct {
	Level  int
	Title  string
	Anchor string
}

// Outline parses the rendered lines as markdown and returns its headings
// in document order.
func Outline(lines []string) []Heading {
	source := []byte(Render(lines))

	md := goldmark.DefaultParser()
	md.AddOptions(parser.WithAutoHeadingID())
	ctx := parser.NewContext(parser.WithIDs(newAnchorIDs()))
	doc := md.Parse(text.NewReader(source), parser.WithContext(ctx))

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		title := headingText(heading, source)
		if title == "" {
			return ast.WalkSkipChildren, nil
		}
		headings = append(headings, Heading{
			Level:  heading.Level,
			Title:  title,
			Anchor: headingID(heading),
		})
		return ast.WalkSkipChildren, nil
	})

	return headings
}

func headingID(n ast.Node) string {
	v, ok := n.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

// TableOfContents renders headings as a nested bullet list of anchor links
// followed by a blank line. No headings yields no lines.
func TableOfContents(lines []string) []string {
	headings := Outline(lines)
	if len(headings) == 0 {
		return nil
	}

	top := headings[0].Level
	for _, h := range headings {
		top = min(top, h.Level)
	}

	toc := make([]string, 0, len(headings)+1)
	for _, h := range headings {
		indent := strings.Repeat("  ", h.Level-top)
		toc = append(toc, fmt.Sprintf("%s- [%s](#%s)", indent, h.Title, h.Anchor))
	}
	return append(toc, "")
}

func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

// Slug converts a heading title to a GitHub-style anchor
func Slug(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return b.String()
}

// anchorIDs implements parser.IDs with GitHub-style anchors. Custom IDs
// replace goldmark's default set, so repeats are numbered here.
type anchorIDs struct {
	used map[string]bool
}

func newAnchorIDs() *anchorIDs {
	return &anchorIDs{used: make(map[string]bool)}
}

// Generate implements parser.IDs
func (s *anchorIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	base := Slug(string(value))
	if base == "" {
		base = "heading"
	}
	id := base
	for i := 1; s.used[id]; i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	s.used[id] = true
	return []byte(id)
}

// Put implements parser.IDs
func (s *anchorIDs) Put(value []byte) {
	s.used[string(value)] = true
}
