package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/purecode/internal/classify"
	"github.com/sprite-ai/purecode/internal/diff"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	fileListWidth := m.fileListWidth()
	paneWidth := m.width - fileListWidth - 1 // -1 for gap

	fileList := m.renderFileList(fileListWidth, m.height-2)
	linePane := m.renderLinePane(paneWidth, m.height-2)

	main := lipgloss.JoinHorizontal(lipgloss.Top, fileList, " ", linePane)
	statusBar := m.renderStatusBar()
	helpBar := m.renderHelpBar()

	return lipgloss.JoinVertical(lipgloss.Left, main, statusBar, helpBar)
}

func (m Model) fileListWidth() int {
	maxLen := 20
	for _, f := range m.diffSet.Files {
		if len(f.Name()) > maxLen {
			maxLen = len(f.Name())
		}
	}
	w := maxLen + 14 // padding + stats
	if w > m.width/3 {
		w = m.width / 3
	}
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) renderFileList(width, height int) string {
	var b strings.Builder

	for i, f := range m.diffSet.Files {
		name := f.Name()
		maxName := width - 14
		if maxName > 0 && len(name) > maxName {
			name = "…" + name[len(name)-maxName+1:]
		}

		var entry string
		if fs, ok := m.byPath[f.Path()]; ok && !f.IsBinary {
			entry = fmt.Sprintf("%s +%d -%d p%+d", name, fs.Added.Total, fs.Removed.Total, fs.NetPure())
		} else {
			entry = name + " (binary)"
		}

		style := fileItemStyle
		if f.IsBinary {
			style = fileItemBinaryStyle
		}
		if i == m.fileIndex {
			style = fileItemSelectedStyle
		}
		b.WriteString(style.Render(entry))
		b.WriteString("\n")
	}

	return fileListStyle.Width(width).Height(height).Render(b.String())
}

func (m Model) renderLinePane(width, height int) string {
	if len(m.diffSet.Files) == 0 {
		return linePaneStyle.Width(width).Height(height).Render("No changes.")
	}

	fc := m.diffSet.Files[m.fileIndex]

	var b strings.Builder
	header := fc.Name()
	if fs, ok := m.byPath[fc.Path()]; ok {
		header = fmt.Sprintf("%s  [%s]", header, fs.Language)
	}
	b.WriteString(fileHeaderStyle.Render(header))
	b.WriteString("\n")

	if fc.IsBinary {
		b.WriteString(contextLineStyle.Render("Binary file, not classified."))
		return linePaneStyle.Width(width).Height(height).Render(b.String())
	}

	visible := m.viewHeight
	if visible < 1 {
		visible = height - 3
	}
	end := m.scrollOffset + visible
	if end > len(m.lines) {
		end = len(m.lines)
	}

	for _, rl := range m.lines[m.scrollOffset:end] {
		b.WriteString(styleLine(rl, width-4))
		b.WriteString("\n")
	}

	return linePaneStyle.Width(width).Height(height).Render(b.String())
}

// styleLine renders one classified line: sign prefix, kind tag, and content.
// Pure lines keep their syntax colors; noise is dimmed by kind.
func styleLine(rl renderedLine, width int) string {
	var prefix string
	switch rl.line.Sign {
	case diff.Added:
		prefix = signAddedStyle.Render("+")
	case diff.Removed:
		prefix = signRemovedStyle.Render("-")
	default:
		return contextLineStyle.Render(truncate(" "+rl.line.Content, width))
	}

	tag := kindTagStyle.Render("[" + rl.line.Kind.String() + "]")
	content := truncate(rl.line.Content, width-12)

	switch rl.line.Kind {
	case classify.Pure:
		return prefix + tag + renderTokens(rl.tokens, width-12)
	case classify.Comment:
		return prefix + tag + commentLineStyle.Render(content)
	case classify.Docstring:
		return prefix + tag + docstringLineStyle.Render(content)
	default: // Blank
		return prefix + tag
	}
}

func renderTokens(tokens []token, max int) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	written := 0
	for _, tok := range tokens {
		text := tok.Text
		if written+len(text) > max {
			text = truncate(text, max-written)
		}
		if tok.Color != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(tok.Color)).Render(text))
		} else {
			b.WriteString(text)
		}
		written += len(text)
		if written >= max {
			break
		}
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	pure := statusPureStyle.Render(fmt.Sprintf(" pure %.0f%% ", m.summary.PureRatio()*100))
	noise := statusNoiseStyle.Render(fmt.Sprintf(" noise %.0f%% ", m.summary.NoiseRatio()*100))
	info := statusBarStyle.Render(fmt.Sprintf("%d file(s)  +%d -%d  net pure %+d  complexity %.1f",
		m.summary.FilesChanged,
		m.summary.Added.Total, m.summary.Removed.Total,
		m.summary.NetPure(), m.summary.Complexity()))
	return lipgloss.JoinHorizontal(lipgloss.Top, pure, noise, info)
}

func (m Model) renderHelpBar() string {
	hints := []string{
		helpKeyStyle.Render("↑/↓") + " scroll",
		helpKeyStyle.Render("n/N") + " file",
		helpKeyStyle.Render("?") + " help",
		helpKeyStyle.Render("q") + " quit",
	}
	return helpBarStyle.Render(" " + strings.Join(hints, "  "))
}

func (m Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"↑/k, ↓/j", "scroll line pane"},
		{"g / G", "jump to top / bottom"},
		{"n, tab", "next file"},
		{"N, shift+tab", "previous file"},
		{"?", "toggle this help"},
		{"q, ctrl+c", "quit"},
	}

	var b strings.Builder
	b.WriteString(fileHeaderStyle.Render("purecode browse — keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n", helpKeyStyle.Render(fmt.Sprintf("%-14s", r.key)), r.desc))
	}
	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Lines are tagged by classification; pure lines keep syntax colors, noise is dimmed."))
	return b.String()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) > max {
		return s[:max-1] + "…"
	}
	return s
}
