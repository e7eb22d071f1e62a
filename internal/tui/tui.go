// Package tui implements the Bubble Tea browser over classified changes.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sprite-ai/purecode/internal/analyze"
	"github.com/sprite-ai/purecode/internal/diff"
	"github.com/sprite-ai/purecode/internal/stats"
)

// renderedLine is one classified diff line ready for display.
type renderedLine struct {
	line   analyze.ClassifiedLine
	tokens []token // syntax tokens, nil for no highlighting
}

// Model is the top-level Bubble Tea model for the browse command.
type Model struct {
	diffSet *diff.DiffSet
	byPath  map[string]stats.FileStats
	summary stats.Summary

	// UI state
	width  int
	height int

	fileIndex    int // currently selected file
	scrollOffset int // scroll position within the current file's lines
	viewHeight   int // number of visible lines in the line pane

	// Classified lines for the current file
	lines []renderedLine

	showHelp bool
}

// New creates a TUI model from a parsed diff and its accumulated stats.
func New(ds *diff.DiffSet, set *stats.Set) Model {
	byPath := make(map[string]stats.FileStats)
	for _, fs := range set.Files() {
		byPath[fs.Path] = fs
	}

	m := Model{
		diffSet: ds,
		byPath:  byPath,
		summary: set.Summary(),
	}
	m.updateLines()
	return m
}

func (m *Model) updateLines() {
	if len(m.diffSet.Files) == 0 {
		m.lines = nil
		return
	}

	fc := m.diffSet.Files[m.fileIndex]
	classified := analyze.FileLines(fc)

	contents := make([]string, len(classified))
	for i, cl := range classified {
		contents[i] = cl.Content
	}
	highlighted := highlightLines(fc.Path(), contents)

	m.lines = make([]renderedLine, len(classified))
	for i, cl := range classified {
		m.lines[i] = renderedLine{line: cl, tokens: highlighted[i]}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewHeight = m.height - 5 // header, status bar, help bar, borders
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Down):
			if m.scrollOffset < len(m.lines)-1 {
				m.scrollOffset++
			}

		case key.Matches(msg, keys.Up):
			if m.scrollOffset > 0 {
				m.scrollOffset--
			}

		case key.Matches(msg, keys.Top):
			m.scrollOffset = 0

		case key.Matches(msg, keys.Bottom):
			if len(m.lines) > 0 {
				m.scrollOffset = len(m.lines) - 1
			}

		case key.Matches(msg, keys.NextFile):
			if m.fileIndex < len(m.diffSet.Files)-1 {
				m.fileIndex++
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.PrevFile):
			if m.fileIndex > 0 {
				m.fileIndex--
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}
	}

	return m, nil
}

// Run starts the interactive browser and blocks until the user quits.
func Run(ds *diff.DiffSet, set *stats.Set) error {
	p := tea.NewProgram(New(ds, set), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
