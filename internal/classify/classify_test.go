package classify

import (
	"testing"

	"github.com/sprite-ai/purecode/internal/language"
)

func kindsEqual(got, want []Kind) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestCStyleSequence(t *testing.T) {
	p := language.Detect("main.c")
	lines := []string{
		"// hello",
		"int x = 1; // trailing",
		"",
		"/* block",
		"still in block */",
		"int y;",
	}
	want := []Kind{Comment, Pure, Blank, Comment, Comment, Pure}

	got := Lines(p, lines)
	if !kindsEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPythonDocstring(t *testing.T) {
	p := language.Detect("mod.py")
	lines := []string{
		`"""`,
		"doc text",
		`"""`,
		"x = 1",
	}
	want := []Kind{Docstring, Docstring, Docstring, Pure}

	got := Lines(p, lines)
	if !kindsEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestOneLineDocstring(t *testing.T) {
	p := language.Detect("mod.py")
	state := NewState()

	if k := state.Classify(p, `"""all on one line"""`); k != Docstring {
		t.Errorf("one-line docstring classified %v", k)
	}
	if state.InBlock() {
		t.Error("one-line docstring must not leave the state in a block")
	}
	if k := state.Classify(p, "x = 1"); k != Pure {
		t.Errorf("line after one-line docstring classified %v", k)
	}
}

func TestWhitespaceOnlyIsBlank(t *testing.T) {
	p := language.Detect("main.go")
	for _, line := range []string{"", "   ", "\t", " \t  "} {
		if k := NewState().Classify(p, line); k != Blank {
			t.Errorf("%q classified %v, want Blank", line, k)
		}
	}
}

func TestBlankInsideBlockStaysBlank(t *testing.T) {
	p := language.Detect("main.go")
	state := NewState()
	state.Classify(p, "/* start")
	if k := state.Classify(p, ""); k != Blank {
		t.Errorf("blank inside block classified %v, want Blank", k)
	}
	if !state.InBlock() {
		t.Error("blank line must not close the block")
	}
}

func TestCloseLineKeepsBlockKind(t *testing.T) {
	p := language.Detect("main.go")
	state := NewState()
	state.Classify(p, "/* start")

	// Content after the close delimiter does not split the line.
	if k := state.Classify(p, "end */ call()"); k != Comment {
		t.Errorf("close line classified %v, want Comment", k)
	}
	if state.InBlock() {
		t.Error("close delimiter must return the state to code")
	}
	if k := state.Classify(p, "call()"); k != Pure {
		t.Errorf("line after close classified %v, want Pure", k)
	}
}

func TestTrailingOpenDoesNotEnterBlock(t *testing.T) {
	p := language.Detect("main.go")
	state := NewState()

	// Code before the delimiter wins; no multi-line state begins.
	if k := state.Classify(p, "doWork(); /* start"); k != Pure {
		t.Errorf("code-then-open classified %v, want Pure", k)
	}
	if state.InBlock() {
		t.Error("trailing open must not enter block state")
	}
	if k := state.Classify(p, "moreWork()"); k != Pure {
		t.Errorf("next line classified %v, want Pure", k)
	}
}

// An empty /**/ closes on its own line: the /** prefix must not swallow the
// overlapping */ and leave the state stuck in a docstring.
func TestEmptyBlockCommentStaysClosed(t *testing.T) {
	p := language.Detect("main.c")
	state := NewState()

	if k := state.Classify(p, "/**/"); k != Comment {
		t.Errorf("/**/ classified %v, want Comment", k)
	}
	if state.InBlock() {
		t.Error("/**/ must not enter block state")
	}
	if k := state.Classify(p, "int x = 1;"); k != Pure {
		t.Errorf("line after /**/ classified %v, want Pure", k)
	}
}

func TestDocstringWithImmediateClose(t *testing.T) {
	p := language.Detect("App.java")
	state := NewState()

	// /***/ carries a real close after the docstring open.
	if k := state.Classify(p, "/***/"); k != Docstring {
		t.Errorf("/***/ classified %v, want Docstring", k)
	}
	if state.InBlock() {
		t.Error("/***/ must not enter block state")
	}
}

func TestJavadocIsDocstring(t *testing.T) {
	p := language.Detect("App.java")
	lines := []string{
		"/**",
		" * Returns the answer.",
		" */",
		"int answer() { return 42; }",
	}
	want := []Kind{Docstring, Docstring, Docstring, Pure}

	got := Lines(p, lines)
	if !kindsEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPlaintextNeverCommentOrDocstring(t *testing.T) {
	p := language.Detect("notes.unknownext")
	lines := []string{"# looks like a comment", "/* also this */", "", "text"}
	for i, k := range Lines(p, lines) {
		if k == Comment || k == Docstring {
			t.Errorf("line %d classified %v in plaintext", i, k)
		}
	}
}

func TestRubyBlockComment(t *testing.T) {
	p := language.Detect("app.rb")
	lines := []string{
		"=begin",
		"a block comment",
		"=end",
		"puts 'hi'",
		"# line comment",
	}
	want := []Kind{Comment, Comment, Comment, Pure, Comment}

	got := Lines(p, lines)
	if !kindsEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestHTMLComment(t *testing.T) {
	p := language.Detect("index.html")
	lines := []string{
		"<!-- header",
		"still comment -->",
		"<div>content</div>",
	}
	want := []Kind{Comment, Comment, Pure}

	got := Lines(p, lines)
	if !kindsEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// Classification is a pure function of profile, prior lines, and content:
// the same sequence always yields the same kinds.
func TestDeterministic(t *testing.T) {
	p := language.Detect("main.go")
	lines := []string{"/* a", "b */", "c()", "// d", ""}

	first := Lines(p, lines)
	second := Lines(p, lines)
	if !kindsEqual(first, second) {
		t.Errorf("same input produced %v then %v", first, second)
	}
}

func TestIndentedLineComment(t *testing.T) {
	p := language.Detect("main.go")
	if k := NewState().Classify(p, "\t  // indented"); k != Comment {
		t.Errorf("indented comment classified %v", k)
	}
}
