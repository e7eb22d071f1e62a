package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sprite-ai/purecode/internal/analyze"
	"github.com/sprite-ai/purecode/internal/classify"
	"github.com/sprite-ai/purecode/internal/diff"
)

const sampleDiff = `diff --git a/main.go b/main.go
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/main.go
@@ -0,0 +1,3 @@
+package main
+// note
+func main() {}
diff --git a/util.py b/util.py
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/util.py
@@ -0,0 +1,1 @@
+x = 1
`

func newTestModel(t *testing.T) Model {
	t.Helper()
	ds, err := diff.Parse(sampleDiff)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	set, err := analyze.Diff(context.Background(), ds)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	return New(ds, set)
}

func TestNewClassifiesFirstFile(t *testing.T) {
	m := newTestModel(t)

	if len(m.lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(m.lines))
	}
	if m.lines[0].line.Kind != classify.Pure {
		t.Errorf("first line kind = %v", m.lines[0].line.Kind)
	}
	if m.lines[1].line.Kind != classify.Comment {
		t.Errorf("second line kind = %v", m.lines[1].line.Kind)
	}
}

func TestFileNavigation(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.fileIndex != 1 {
		t.Fatalf("fileIndex = %d after tab, want 1", m.fileIndex)
	}
	if len(m.lines) != 1 {
		t.Errorf("lines not reloaded for second file: %d", len(m.lines))
	}

	// Past the last file: stays put.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.fileIndex != 1 {
		t.Errorf("fileIndex = %d, want 1 (clamped)", m.fileIndex)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(Model)
	if m.fileIndex != 0 {
		t.Errorf("fileIndex = %d after shift+tab, want 0", m.fileIndex)
	}
}

func TestScrollClamped(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = updated.(Model)
	if m.scrollOffset != 0 {
		t.Errorf("scrolled above top: %d", m.scrollOffset)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	m = updated.(Model)
	if m.scrollOffset != len(m.lines)-1 {
		t.Errorf("G did not jump to bottom: %d", m.scrollOffset)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestViewSmoke(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	out := m.View()
	if out == "" {
		t.Fatal("empty view")
	}
}
