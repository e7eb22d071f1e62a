// Package stats folds classified lines into per-file, per-language, and
// global counters and the derived metrics the gate and reporters consume.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/sprite-ai/purecode/internal/classify"
)

// Mode records which pipeline produced the numbers.
type Mode int

const (
	ModeDiff Mode = iota
	ModeFiles
)

func (m Mode) String() string {
	if m == ModeFiles {
		return "files"
	}
	return "diff"
}

// tokensPerWord converts whitespace-split word counts into a rough token
// estimate. A fixed per-word factor, not a real tokenizer.
const tokensPerWord = 1.3

// Complexity score coefficients. The score is a scoring policy, applied
// uniformly: pure churn dominates, docstring and other noise churn count for
// less, and every touched file adds a fixed amount.
const (
	weightNetPure    = 1.0
	weightPureChurn  = 0.5
	weightDocChurn   = 0.1
	weightNoiseChurn = 0.2
	weightPerFile    = 2.0
)

// Counts accumulates per-kind line counters for one sign.
type Counts struct {
	Total     int64
	Pure      int64
	Comment   int64
	Docstring int64
	Blank     int64
	Words     int64 // whitespace-split words on pure lines only
}

// Record counts one classified line. Total is always incremented; exactly
// one kind counter follows it.
func (c *Counts) Record(kind classify.Kind, content string) {
	c.Total++
	switch kind {
	case classify.Pure:
		c.Pure++
		c.Words += int64(len(strings.Fields(content)))
	case classify.Comment:
		c.Comment++
	case classify.Docstring:
		c.Docstring++
	case classify.Blank:
		c.Blank++
	}
}

// Add merges another set of counters into c.
func (c *Counts) Add(o Counts) {
	c.Total += o.Total
	c.Pure += o.Pure
	c.Comment += o.Comment
	c.Docstring += o.Docstring
	c.Blank += o.Blank
	c.Words += o.Words
}

// Noise returns the non-pure line count: comments, docstrings, and blanks.
func (c Counts) Noise() int64 {
	return c.Total - c.Pure
}

// TokenEstimate converts the word count into estimated tokens.
func (c Counts) TokenEstimate() int64 {
	return int64(math.Round(float64(c.Words) * tokensPerWord))
}

// FileStats holds the classified counters for one file, keyed by path.
type FileStats struct {
	Path     string
	Language string
	Binary   bool
	Added    Counts
	Removed  Counts
}

// NetPure is pure lines added minus pure lines removed.
func (f FileStats) NetPure() int64 {
	return f.Added.Pure - f.Removed.Pure
}

// LanguageStats is the same shape as FileStats summed across files of one
// language.
type LanguageStats struct {
	Language string
	Files    int
	Added    Counts
	Removed  Counts
}

// Summary holds the global totals and derived metrics.
type Summary struct {
	Mode         Mode
	FilesChanged int
	BinaryFiles  int
	Added        Counts
	Removed      Counts
}

// Churn is total added plus removed lines, regardless of classification.
func (s Summary) Churn() int64 {
	return s.Added.Total + s.Removed.Total
}

// NetPure is pure lines added minus pure lines removed.
func (s Summary) NetPure() int64 {
	return s.Added.Pure - s.Removed.Pure
}

// NoiseRatio is noise lines over total changed lines, 0 when nothing changed.
// Always within [0,1].
func (s Summary) NoiseRatio() float64 {
	total := s.Churn()
	if total == 0 {
		return 0
	}
	return float64(s.Added.Noise()+s.Removed.Noise()) / float64(total)
}

// PureRatio is the complement of NoiseRatio.
func (s Summary) PureRatio() float64 {
	total := s.Churn()
	if total == 0 {
		return 0
	}
	return float64(s.Added.Pure+s.Removed.Pure) / float64(total)
}

// TokenEstimate is the net estimated token change.
func (s Summary) TokenEstimate() int64 {
	return s.Added.TokenEstimate() - s.Removed.TokenEstimate()
}

// Complexity scores the change: a weighted combination of net pure lines,
// churn by kind, and files touched. Deterministic for identical input.
func (s Summary) Complexity() float64 {
	pureChurn := s.Added.Pure + s.Removed.Pure
	docChurn := s.Added.Docstring + s.Removed.Docstring
	noiseChurn := s.Added.Noise() + s.Removed.Noise() - docChurn

	return weightNetPure*float64(s.NetPure()) +
		weightPureChurn*float64(pureChurn) +
		weightDocChurn*float64(docChurn) +
		weightNoiseChurn*float64(noiseChurn) +
		weightPerFile*float64(s.FilesChanged)
}

// Set accumulates FileStats. Accumulation order does not matter; the
// accessors return deterministic, sorted views.
type Set struct {
	mode  Mode
	files map[string]*FileStats
}

// NewSet returns an empty accumulator for the given mode.
func NewSet(mode Mode) *Set {
	return &Set{mode: mode, files: make(map[string]*FileStats)}
}

// Mode returns the pipeline mode the set was built for.
func (s *Set) Mode() Mode {
	return s.mode
}

// AddFile folds one file's stats in. Adding the same path twice sums the
// counters, so the fold is commutative and associative.
func (s *Set) AddFile(fs FileStats) {
	existing, ok := s.files[fs.Path]
	if !ok {
		copied := fs
		s.files[fs.Path] = &copied
		return
	}
	existing.Added.Add(fs.Added)
	existing.Removed.Add(fs.Removed)
}

// Merge folds another set in. Merging two disjoint sets yields the same
// summary as accumulating their union in one pass.
func (s *Set) Merge(o *Set) {
	for _, fs := range o.files {
		s.AddFile(*fs)
	}
}

// Files returns per-file stats sorted by path.
func (s *Set) Files() []FileStats {
	result := make([]FileStats, 0, len(s.files))
	for _, fs := range s.files {
		result = append(result, *fs)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result
}

// Languages returns per-language stats sorted by language name. Binary files
// carry no language stats.
func (s *Set) Languages() []LanguageStats {
	byLang := make(map[string]*LanguageStats)
	for _, fs := range s.files {
		if fs.Binary {
			continue
		}
		ls, ok := byLang[fs.Language]
		if !ok {
			ls = &LanguageStats{Language: fs.Language}
			byLang[fs.Language] = ls
		}
		ls.Files++
		ls.Added.Add(fs.Added)
		ls.Removed.Add(fs.Removed)
	}

	result := make([]LanguageStats, 0, len(byLang))
	for _, ls := range byLang {
		result = append(result, *ls)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Language < result[j].Language })
	return result
}

// Summary computes the global totals across every accumulated file.
func (s *Set) Summary() Summary {
	sum := Summary{Mode: s.mode}
	for _, fs := range s.files {
		sum.FilesChanged++
		if fs.Binary {
			sum.BinaryFiles++
			continue
		}
		sum.Added.Add(fs.Added)
		sum.Removed.Add(fs.Removed)
	}
	return sum
}
