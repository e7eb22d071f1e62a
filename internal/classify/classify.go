// Package classify implements the stateful line classifier at the heart of
// the analysis: a single left-to-right pass per line, with block-comment
// state carried across the lines of one file and one diff sign.
package classify

import (
	"strings"

	"github.com/sprite-ai/purecode/internal/language"
)

// Kind is the classification assigned to a changed line.
type Kind int

const (
	Pure Kind = iota
	Comment
	Docstring
	Blank
)

func (k Kind) String() string {
	switch k {
	case Pure:
		return "pure"
	case Comment:
		return "comment"
	case Docstring:
		return "docstring"
	case Blank:
		return "blank"
	default:
		return "unknown"
	}
}

type mode int

const (
	modeCode mode = iota
	modeInBlockComment
	modeInDocstring
)

// State is the per-file scan state. Create one with NewState at the start of
// a file's line sequence for one sign, and discard it after the last line.
// Added and Removed lines describe two different texts of the same file and
// must each get their own State.
type State struct {
	mode    mode
	closing string // close delimiter we are waiting for, when not in code
}

// NewState returns a fresh scan state positioned in code.
func NewState() *State {
	return &State{}
}

// InBlock reports whether the state is currently inside a block comment or
// docstring.
func (s *State) InBlock() bool {
	return s.mode != modeCode
}

// Classify assigns exactly one Kind to the line and advances the state.
func (s *State) Classify(p *language.Profile, line string) Kind {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Blank
	}

	if s.mode != modeCode {
		kind := Comment
		if s.mode == modeInDocstring {
			kind = Docstring
		}
		if strings.Contains(trimmed, s.closing) {
			// The whole line keeps the block's kind even when content
			// follows the close delimiter; close lines are never split.
			s.mode = modeCode
			s.closing = ""
		}
		return kind
	}

	for _, pair := range p.Docstring {
		if !strings.HasPrefix(trimmed, pair.Open) {
			continue
		}
		if rest := trimmed[len(pair.Open):]; strings.Contains(rest, pair.Close) {
			return Docstring
		}
		// A shorter overlapping pair may still close on this line: /**/ is
		// a complete empty comment, not a docstring opening.
		for _, bp := range p.BlockComment {
			if strings.HasPrefix(trimmed, bp.Open) &&
				strings.Contains(trimmed[len(bp.Open):], bp.Close) {
				return Comment
			}
		}
		s.mode = modeInDocstring
		s.closing = pair.Close
		return Docstring
	}
	for _, pair := range p.BlockComment {
		if kind, ok := s.openBlock(trimmed, pair, modeInBlockComment, Comment); ok {
			return kind
		}
	}
	for _, tok := range p.LineComments {
		if strings.HasPrefix(trimmed, tok) {
			return Comment
		}
	}

	// A line-comment token or open delimiter preceded by code does not
	// demote the line, and a trailing open deliberately does not start a
	// multi-line state.
	return Pure
}

// openBlock handles a block-comment delimiter at the start of the line's
// content. Returns false when the delimiter does not open here.
func (s *State) openBlock(trimmed string, pair language.Pair, m mode, kind Kind) (Kind, bool) {
	if !strings.HasPrefix(trimmed, pair.Open) {
		return Pure, false
	}
	rest := trimmed[len(pair.Open):]
	if !strings.Contains(rest, pair.Close) {
		s.mode = m
		s.closing = pair.Close
	}
	// Open and close on the same line: a one-line block, state stays in code.
	return kind, true
}

// Lines classifies a whole sequence of raw line contents belonging to one
// file and one sign, threading a fresh State through the pass.
func Lines(p *language.Profile, lines []string) []Kind {
	state := NewState()
	kinds := make([]Kind, len(lines))
	for i, line := range lines {
		kinds[i] = state.Classify(p, line)
	}
	return kinds
}
