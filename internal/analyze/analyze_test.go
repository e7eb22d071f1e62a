package analyze

import (
	"context"
	"testing"

	"github.com/sprite-ai/purecode/internal/classify"
	"github.com/sprite-ai/purecode/internal/diff"
)

const mixedDiff = `diff --git a/calc.go b/calc.go
index abc1234..def5678 100644
--- a/calc.go
+++ b/calc.go
@@ -1,3 +1,5 @@
 package calc
-// old note
-func Add(a, b int) int { return a + b }
+func Add(a, b int) int {
+	return a + b
+}
+
diff --git a/util.py b/util.py
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/util.py
@@ -0,0 +1,4 @@
+"""
+Utilities.
+"""
+def f(): return 1
`

func TestFile(t *testing.T) {
	ds, err := diff.Parse(mixedDiff)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	fs := File(ds.Files[0])
	if fs.Language != "Go" {
		t.Errorf("language = %q, want Go", fs.Language)
	}
	if fs.Added.Pure != 3 || fs.Added.Blank != 1 {
		t.Errorf("added = %+v, want 3 pure 1 blank", fs.Added)
	}
	if fs.Removed.Pure != 1 || fs.Removed.Comment != 1 {
		t.Errorf("removed = %+v, want 1 pure 1 comment", fs.Removed)
	}

	py := File(ds.Files[1])
	if py.Added.Docstring != 3 || py.Added.Pure != 1 {
		t.Errorf("python added = %+v, want 3 docstring 1 pure", py.Added)
	}
}

// Block state opened by a removed line must not bleed into added lines of
// the same hunk; the two signs describe two different texts.
func TestSignsHaveIndependentState(t *testing.T) {
	const d = `diff --git a/a.go b/a.go
index abc1234..def5678 100644
--- a/a.go
+++ b/a.go
@@ -1,2 +1,2 @@
-/* removed open
+added := code()
-still removed */
+more := code()
`
	ds, err := diff.Parse(d)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	fs := File(ds.Files[0])
	if fs.Removed.Comment != 2 {
		t.Errorf("removed comments = %d, want 2", fs.Removed.Comment)
	}
	if fs.Added.Pure != 2 {
		t.Errorf("added pure = %d, want 2 (removed-side block state leaked)", fs.Added.Pure)
	}
}

// State carries across hunks of one file but never across files.
func TestStatePerFile(t *testing.T) {
	const d = `diff --git a/a.c b/a.c
index abc1234..def5678 100644
--- a/a.c
+++ b/a.c
@@ -1,0 +2,1 @@
+/* opened and never closed
diff --git a/b.c b/b.c
index abc1234..def5678 100644
--- a/b.c
+++ b/b.c
@@ -1,0 +2,1 @@
+int x = 1;
`
	ds, err := diff.Parse(d)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	second := File(ds.Files[1])
	if second.Added.Pure != 1 {
		t.Errorf("second file saw first file's block state: %+v", second.Added)
	}
}

func TestDiffFoldsAllFiles(t *testing.T) {
	ds, err := diff.Parse(mixedDiff)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	set, err := Diff(context.Background(), ds)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}

	sum := set.Summary()
	if sum.FilesChanged != 2 {
		t.Errorf("FilesChanged = %d, want 2", sum.FilesChanged)
	}
	if sum.Added.Total != 8 {
		t.Errorf("added total = %d, want 8", sum.Added.Total)
	}
	if sum.Removed.Total != 2 {
		t.Errorf("removed total = %d, want 2", sum.Removed.Total)
	}

	langs := set.Languages()
	if len(langs) != 2 {
		t.Errorf("languages = %v", langs)
	}
}

func TestFileLinesKeepsOrder(t *testing.T) {
	ds, err := diff.Parse(mixedDiff)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	lines := FileLines(ds.Files[1])
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0].Kind != classify.Docstring || lines[3].Kind != classify.Pure {
		t.Errorf("kinds = %v, %v", lines[0].Kind, lines[3].Kind)
	}
	if lines[1].Content != "Utilities." {
		t.Errorf("content order broken: %q", lines[1].Content)
	}
}
