// Package diff handles parsing unified diffs into structured file changes.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// ParseError marks a malformed diff. It is a distinct error kind from
// threshold failures so callers can tell "tool broke" from "gate failed".
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing diff: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Sign is the leading marker of a diff line.
type Sign int

const (
	Context Sign = iota
	Added
	Removed
)

// LineEdit is a single line of a hunk with its sign prefix stripped.
// Context lines are recorded but never classified or counted.
type LineEdit struct {
	Sign    Sign
	Content string
}

// Hunk is one contiguous region of change within a file.
type Hunk struct {
	Lines []LineEdit
}

// FileChange is one file section of a diff, immutable once built.
type FileChange struct {
	OldPath      string
	NewPath      string
	IsNew        bool
	IsDeleted    bool
	IsRenamed    bool
	IsBinary     bool // zero hunks; excluded from language stats
	Hunks        []Hunk
	AddedLines   int
	RemovedLines int
}

// Path returns the path used for language detection: the post-rename new
// path, or the old path for a pure deletion.
func (f *FileChange) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// Name returns the display name for the file.
func (f *FileChange) Name() string {
	if f.IsRenamed {
		return fmt.Sprintf("%s → %s", f.OldPath, f.NewPath)
	}
	return f.Path()
}

// LinesFor returns the raw contents of the file's lines carrying the given
// sign, in hunk order.
func (f *FileChange) LinesFor(sign Sign) []string {
	var lines []string
	for _, h := range f.Hunks {
		for _, l := range h.Lines {
			if l.Sign == sign {
				lines = append(lines, l.Content)
			}
		}
	}
	return lines
}

// DiffSet holds the parsed diff for all files, in order of appearance.
type DiffSet struct {
	Files []*FileChange
	Raw   string // the raw unified diff text
}

// Stats returns aggregate line counts.
func (ds *DiffSet) Stats() (files, added, removed int) {
	files = len(ds.Files)
	for _, f := range ds.Files {
		added += f.AddedLines
		removed += f.RemovedLines
	}
	return
}

// Parse reads a unified diff string and returns a DiffSet. Malformed hunk
// headers or hunk content outside a file section are fatal and surface as a
// *ParseError; no partial results are returned.
func Parse(raw string) (*DiffSet, error) {
	parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	ds := &DiffSet{Raw: raw}
	for _, f := range parsed {
		fc := &FileChange{
			OldPath:   f.OldName,
			NewPath:   f.NewName,
			IsNew:     f.IsNew,
			IsDeleted: f.IsDelete,
			IsRenamed: f.IsRename,
			IsBinary:  f.IsBinary,
		}

		for _, frag := range f.TextFragments {
			hunk := Hunk{Lines: make([]LineEdit, 0, len(frag.Lines))}
			for _, line := range frag.Lines {
				edit := LineEdit{Content: strings.TrimSuffix(line.Line, "\n")}
				switch line.Op {
				case gitdiff.OpAdd:
					edit.Sign = Added
					fc.AddedLines++
				case gitdiff.OpDelete:
					edit.Sign = Removed
					fc.RemovedLines++
				default:
					edit.Sign = Context
				}
				hunk.Lines = append(hunk.Lines, edit)
			}
			fc.Hunks = append(fc.Hunks, hunk)
		}

		ds.Files = append(ds.Files, fc)
	}

	return ds, nil
}

// GitDiff runs `git diff` with the given arguments and returns the raw output.
func GitDiff(repoDir string, args ...string) (string, error) {
	cmdArgs := append([]string{"diff", "--no-color"}, args...)
	cmd := exec.Command("git", cmdArgs...)
	cmd.Dir = repoDir
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}

	return string(out), nil
}

// GitDiffRange returns the diff between two refs. Zero context lines give
// the most accurate classification; larger values are tolerated, context is
// simply never counted.
func GitDiffRange(repoDir, base, head string, contextLines int) (string, error) {
	return GitDiff(repoDir, fmt.Sprintf("--unified=%d", contextLines),
		fmt.Sprintf("%s...%s", base, head))
}
