package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/docco/internal/config"
	"github.com/gubarz/docco/internal/parser"
)

// ============================================================================
// Key Bindings
// ============================================================================

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Top   key.Binding
	End   key.Binding
	Write key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑/k", "prev section")),
	Down:  key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓/j", "next section")),
	Top:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	End:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	Write: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) help() string {
	bindings := []key.Binding{k.Up, k.Down, k.Write, k.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// ============================================================================
// Preview Model
// ============================================================================

// WriteFunc persists the ordered document lines
type WriteFunc func(lines []string) error

// writtenMsg reports the result of a write triggered from the preview
type writtenMsg struct {
	err error
}

// previewModel is the Bubble Tea model browsing extracted sections
type previewModel struct {
	width  int
	height int

	sections []parser.Block
	lines    []string
	cursor   int
	offset   int

	content viewport.Model
	write   WriteFunc
	status  string
	ready   bool
}

const (
	listMaxWidth = 32
	statusLines  = 2 // divider + status
)

// newPreviewModel creates a preview over sections; lines is the full
// document handed to write.
func newPreviewModel(sections []parser.Block, lines []string, write WriteFunc) previewModel {
	m := previewModel{
		sections: sections,
		lines:    lines,
		write:    write,
		content:  viewport.New(80, 20),
		status:   fmt.Sprintf("%d sections, %d lines", len(sections), len(lines)),
	}
	m.refreshContent()
	return m
}

// Init implements tea.Model
func (m previewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case writtenMsg:
		if msg.err != nil {
			m.status = "write failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("wrote %d lines", len(m.lines))
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)
			return m, nil
		case key.Matches(msg, keys.Down):
			m.moveCursor(1)
			return m, nil
		case key.Matches(msg, keys.Top):
			m.moveCursor(-len(m.sections))
			return m, nil
		case key.Matches(msg, keys.End):
			m.moveCursor(len(m.sections))
			return m, nil
		case key.Matches(msg, keys.Write):
			return m, m.writeCmd()
		}
	}

	// Scrolling keys (pgup/pgdown, mouse) go to the content viewport
	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	return m, cmd
}

func (m previewModel) writeCmd() tea.Cmd {
	if m.write == nil {
		return nil
	}
	write, lines := m.write, m.lines
	return func() tea.Msg {
		return writtenMsg{err: write(lines)}
	}
}

// moveCursor moves the cursor by delta, clamping to valid range
func (m *previewModel) moveCursor(delta int) {
	prev := m.cursor
	m.cursor = clamp(m.cursor+delta, 0, max(0, len(m.sections)-1))
	if m.cursor != prev {
		m.refreshContent()
	}
}

func (m *previewModel) listHeight() int {
	return max(m.height-statusLines, 3)
}

func (m *previewModel) listWidth() int {
	return clamp(m.width/3, 10, listMaxWidth)
}

func (m *previewModel) resize() {
	m.content.Width = max(m.width-m.listWidth()-3, 10)
	m.content.Height = m.listHeight()
	m.ready = true
	m.refreshContent()
}

// refreshContent loads the selected section into the viewport
func (m *previewModel) refreshContent() {
	if len(m.sections) == 0 {
		m.content.SetContent(styles.Dim.Render("no sections found"))
		return
	}
	section := m.sections[m.cursor]

	var b strings.Builder
	b.WriteString(styles.PreviewHeader.Render(section.Header))
	b.WriteString("\n")
	for _, line := range section.Lines {
		b.WriteString(styles.PreviewLine.Render(line))
		b.WriteString("\n")
	}
	m.content.SetContent(b.String())
	m.content.GotoTop()
}

// View implements tea.Model
func (m previewModel) View() string {
	if !m.ready {
		return ""
	}

	list := m.renderList()
	divider := styles.Divider.Render(strings.Repeat("│\n", m.listHeight()))
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", strings.TrimSuffix(divider, "\n"), " ", m.content.View())

	status := styles.Status.Render(m.status + "   " + keys.help())
	return body + "\n" + styles.Divider.Render(strings.Repeat("─", max(m.width, 1))) + "\n" + status
}

// renderList renders the scrollable list of section headers
func (m *previewModel) renderList() string {
	width := m.listWidth()
	height := m.listHeight()
	start, end := scrollWindow(m.cursor, len(m.sections), height, &m.offset)

	var b strings.Builder
	for i := start; i < end; i++ {
		header := truncateString(m.sections[i].Header, width-2)
		line := "  " + styles.Header.Render(header)
		if i == m.cursor {
			line = styles.Cursor.Render("> ") + styles.WithSelection(styles.Header).Render(header)
		}
		b.WriteString(lipgloss.NewStyle().Width(width).Render(line))
		b.WriteString("\n")
	}
	for i := end - start; i < height; i++ {
		b.WriteString(strings.Repeat(" ", width))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// ============================================================================
// Run Preview
// ============================================================================

// Run launches the preview until the user quits
func Run(cfg *config.Config, sections []parser.Block, lines []string, write WriteFunc) error {
	RefreshStyles(cfg)
	m := newPreviewModel(sections, lines, write)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	_, err := p.Run()
	return err
}

// ============================================================================
// Helpers
// ============================================================================

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// scrollWindow returns the visible range for the cursor, updating offset
func scrollWindow(cursor, total, height int, offset *int) (start, end int) {
	if cursor < *offset {
		*offset = cursor
	}
	if cursor >= *offset+height {
		*offset = cursor - height + 1
	}
	*offset = clamp(*offset, 0, max(0, total-height))
	start = *offset
	end = min(start+height, total)
	return start, end
}

func truncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return string(r[:maxLen-1]) + "…"
}
