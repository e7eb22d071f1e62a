// Package analyze wires the pipeline together: detect the language of each
// changed file, classify its lines, and fold the results into stats.
package analyze

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sprite-ai/purecode/internal/classify"
	"github.com/sprite-ai/purecode/internal/diff"
	"github.com/sprite-ai/purecode/internal/language"
	"github.com/sprite-ai/purecode/internal/stats"
)

// File classifies one file change. Added and Removed lines are two different
// texts of the file, so each sign gets its own classifier state; neither
// state survives past this call.
func File(fc *diff.FileChange) stats.FileStats {
	prof := language.Detect(fc.Path())
	fs := stats.FileStats{
		Path:     fc.Path(),
		Language: prof.Name,
		Binary:   fc.IsBinary,
	}
	if fc.IsBinary {
		return fs
	}

	added := classify.NewState()
	removed := classify.NewState()
	for _, hunk := range fc.Hunks {
		for _, line := range hunk.Lines {
			switch line.Sign {
			case diff.Added:
				fs.Added.Record(added.Classify(prof, line.Content), line.Content)
			case diff.Removed:
				fs.Removed.Record(removed.Classify(prof, line.Content), line.Content)
			}
		}
	}
	return fs
}

// Diff classifies every file of a parsed diff and folds the results.
// Files are independent by construction, so classification runs on a bounded
// worker pool; the fold happens after the join since it is commutative.
func Diff(ctx context.Context, ds *diff.DiffSet) (*stats.Set, error) {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]stats.FileStats, len(ds.Files))
	for i, fc := range ds.Files {
		i, fc := i, fc
		g.Go(func() error {
			results[i] = File(fc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := stats.NewSet(stats.ModeDiff)
	for _, fs := range results {
		set.AddFile(fs)
	}
	return set, nil
}

// ClassifiedLine pairs one diff line with its classification, for rendering.
// Context lines keep their content but are never counted; their Kind is
// meaningless.
type ClassifiedLine struct {
	Sign    diff.Sign
	Kind    classify.Kind
	Content string
}

// FileLines classifies a file change line by line in display order,
// threading the two per-sign states exactly as File does.
func FileLines(fc *diff.FileChange) []ClassifiedLine {
	prof := language.Detect(fc.Path())
	added := classify.NewState()
	removed := classify.NewState()

	var lines []ClassifiedLine
	for _, hunk := range fc.Hunks {
		for _, line := range hunk.Lines {
			cl := ClassifiedLine{Sign: line.Sign, Content: line.Content}
			switch line.Sign {
			case diff.Added:
				cl.Kind = added.Classify(prof, line.Content)
			case diff.Removed:
				cl.Kind = removed.Classify(prof, line.Content)
			}
			lines = append(lines, cl)
		}
	}
	return lines
}
