// Package snapshot analyzes whole files on disk instead of a diff. Every
// line of a matched file is treated as added; the rest of the pipeline is
// identical to diff mode.
package snapshot

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/sprite-ai/purecode/internal/analyze"
	"github.com/sprite-ai/purecode/internal/diff"
	"github.com/sprite-ai/purecode/internal/stats"
)

// Analyze walks the given roots, reads every file matching the include
// globs and not matching the exclude globs, and folds the classified results.
// An unreadable file is fatal and cancels outstanding reads; results from
// files completed before the failure stay valid but are discarded with the
// error.
func Analyze(ctx context.Context, roots, include, exclude []string) (*stats.Set, error) {
	var paths []string
	for _, root := range roots {
		found, err := collect(root, include, exclude)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return analyzePaths(ctx, paths)
}

// AnalyzeList reads a newline-separated list of file paths (stdin mode) and
// analyzes each one. Missing files are warned about and skipped.
func AnalyzeList(ctx context.Context, r io.Reader) (*stats.Set, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		path := strings.TrimSpace(scanner.Text())
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file not found: %s\n", path)
			continue
		}
		paths = append(paths, path)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file list: %w", err)
	}
	return analyzePaths(ctx, paths)
}

// collect walks one root and returns the relative paths selected by the
// include/exclude globs, in walk order.
func collect(root string, include, exclude []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if matchAny(exclude, rel) || !matchAny(include, rel) {
			return nil
		}
		if root != "." {
			paths = append(paths, filepath.Join(root, rel))
		} else {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// analyzePaths reads and classifies files on a bounded worker pool, then
// folds the per-file results after the join.
func analyzePaths(ctx context.Context, paths []string) (*stats.Set, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*stats.FileStats, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fs, skip, err := processFile(path)
			if err != nil {
				return err
			}
			if !skip {
				results[i] = &fs
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := stats.NewSet(stats.ModeFiles)
	for _, fs := range results {
		if fs != nil {
			set.AddFile(*fs)
		}
	}
	return set, nil
}

// processFile reads one file and classifies every line as added. Binary
// files are skipped silently, signalled through the skip flag.
func processFile(path string) (stats.FileStats, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return stats.FileStats{}, false, fmt.Errorf("reading %s: %w", path, err)
	}
	if isBinary(data) {
		return stats.FileStats{}, true, nil
	}

	fc := &diff.FileChange{
		NewPath: filepath.ToSlash(path),
		IsNew:   true,
	}
	hunk := diff.Hunk{}
	for _, line := range splitLines(data) {
		hunk.Lines = append(hunk.Lines, diff.LineEdit{Sign: diff.Added, Content: line})
	}
	fc.AddedLines = len(hunk.Lines)
	fc.Hunks = []diff.Hunk{hunk}

	return analyze.File(fc), false, nil
}

// isBinary sniffs for a NUL byte in the first KiB, the same heuristic git
// uses. Empty files are not binary.
func isBinary(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.IndexByte(head, 0) >= 0
}

// splitLines splits file contents on newlines without producing a trailing
// phantom line for files ending in a newline.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.Split(text, "\n")
}
