// Package report renders analysis results for humans, scripts, and CI logs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/purecode/internal/gate"
	"github.com/sprite-ai/purecode/internal/stats"
)

// Format selects the output renderer.
type Format int

const (
	Human Format = iota
	Plain
	JSON
)

// ParseFormat maps a --format flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "human":
		return Human, nil
	case "plain":
		return Plain, nil
	case "json":
		return JSON, nil
	default:
		return Human, fmt.Errorf("unknown format %q (want human, plain, or json)", s)
	}
}

// Options controls rendering.
type Options struct {
	Format  Format
	PerFile bool
	CI      bool // append machine-readable PURECODE_ lines
}

// Style palette for the human format.
var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	langStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8be9fd")).Bold(true)
	pureStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b"))
	noisyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Bold(true)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b")).Bold(true)
)

type styler func(lipgloss.Style, string) string

func styled(s lipgloss.Style, text string) string { return s.Render(text) }
func unstyled(_ lipgloss.Style, text string) string { return text }

// Render writes the full report for a stats set and its verdict.
func Render(w io.Writer, set *stats.Set, verdict gate.Verdict, opts Options) error {
	switch opts.Format {
	case JSON:
		if err := renderJSON(w, set, verdict, opts); err != nil {
			return err
		}
	case Plain:
		renderText(w, set, verdict, opts, unstyled)
	default:
		renderText(w, set, verdict, opts, styled)
	}

	if opts.CI {
		out := w
		if opts.Format == JSON {
			// Keep the JSON document on w well-formed; machine lines
			// go to stderr instead of being dropped.
			out = os.Stderr
		}
		CISummary(out, set.Summary())
		CIFailures(out, verdict)
	}
	return nil
}

func renderText(w io.Writer, set *stats.Set, verdict gate.Verdict, opts Options, sty styler) {
	sum := set.Summary()

	fmt.Fprintln(w, sty(headerStyle, fmt.Sprintf("=== PureCode Summary (%s) ===", sum.Mode)))
	fmt.Fprintf(w, "TOTAL lines  : +%-4d -%-4d (net %d)\n",
		sum.Added.Total, sum.Removed.Total, sum.Added.Total-sum.Removed.Total)
	fmt.Fprintf(w, "PURE  lines  : +%-4d -%-4d (net %d)\n",
		sum.Added.Pure, sum.Removed.Pure, sum.NetPure())
	fmt.Fprintf(w, "NOISE lines  : +%-4d -%-4d (comments/docstrings/blanks)\n",
		sum.Added.Noise(), sum.Removed.Noise())
	if sum.BinaryFiles > 0 {
		fmt.Fprintf(w, "Binary files : %d (not classified)\n", sum.BinaryFiles)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, sty(pureStyle,
		fmt.Sprintf("Pure ratio : %.0f%% of changes are pure code", sum.PureRatio()*100)))
	noiseLine := fmt.Sprintf("Noise      : %.0f%% comments & formatting", sum.NoiseRatio()*100)
	if sum.NoiseRatio() > 0.5 {
		fmt.Fprintln(w, sty(noisyStyle, noiseLine))
	} else {
		fmt.Fprintln(w, sty(dimStyle, noiseLine))
	}
	fmt.Fprintf(w, "Complexity : %.1f   Est. tokens: ~%d (net)\n", sum.Complexity(), sum.TokenEstimate())
	fmt.Fprintln(w)

	langs := set.Languages()
	if len(langs) > 0 {
		fmt.Fprintln(w, sty(headerStyle, "=== Per language ==="))
		for _, ls := range langs {
			if ls.Added.Total == 0 && ls.Removed.Total == 0 {
				continue
			}
			fmt.Fprintln(w, sty(langStyle, ls.Language))
			fmt.Fprintf(w, "  TOTAL : +%-4d -%-4d (net %d)\n",
				ls.Added.Total, ls.Removed.Total, ls.Added.Total-ls.Removed.Total)
			fmt.Fprintf(w, "  PURE  : +%-4d -%-4d (net %d)\n",
				ls.Added.Pure, ls.Removed.Pure, ls.Added.Pure-ls.Removed.Pure)
			if ls.Added.Comment > 0 || ls.Removed.Comment > 0 {
				fmt.Fprintf(w, "  Comments   : +%-4d -%d\n", ls.Added.Comment, ls.Removed.Comment)
			}
			if ls.Added.Docstring > 0 || ls.Removed.Docstring > 0 {
				fmt.Fprintf(w, "  Docstrings : +%-4d -%d\n", ls.Added.Docstring, ls.Removed.Docstring)
			}
			if ls.Added.Blank > 0 || ls.Removed.Blank > 0 {
				fmt.Fprintf(w, "  Blanks     : +%-4d -%d\n", ls.Added.Blank, ls.Removed.Blank)
			}
			fmt.Fprintf(w, "  Words      : +%-4d -%-4d (est. ~%d tokens net)\n",
				ls.Added.Words, ls.Removed.Words,
				ls.Added.TokenEstimate()-ls.Removed.TokenEstimate())
			fmt.Fprintln(w)
		}
	}

	if opts.PerFile {
		fmt.Fprintln(w, sty(headerStyle, "=== Per file ==="))
		for _, fs := range set.Files() {
			label := fs.Path
			if fs.Binary {
				fmt.Fprintf(w, "  %-50s binary\n", label)
				continue
			}
			fmt.Fprintf(w, "  %-50s +%-4d -%-4d pure %+d  [%s]\n",
				label, fs.Added.Total, fs.Removed.Total, fs.NetPure(), fs.Language)
		}
		fmt.Fprintln(w)
	}

	if verdict.Passed {
		fmt.Fprintln(w, sty(passStyle, "Gate: PASS"))
	} else {
		fmt.Fprintln(w, sty(failStyle, "Gate: FAIL"))
		for _, v := range verdict.Violations {
			fmt.Fprintf(w, "  %s\n", v)
		}
	}
}

// JSON document shapes.
type jsonCounts struct {
	Total     int64 `json:"total"`
	Pure      int64 `json:"pure"`
	Comment   int64 `json:"comment"`
	Docstring int64 `json:"docstring"`
	Blank     int64 `json:"blank"`
	Words     int64 `json:"words"`
	TokensEst int64 `json:"tokens_est"`
}

type jsonSide struct {
	Added   jsonCounts `json:"added"`
	Removed jsonCounts `json:"removed"`
}

type jsonFile struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Binary   bool   `json:"binary,omitempty"`
	jsonSide
}

type jsonLanguage struct {
	Language string `json:"language"`
	Files    int    `json:"files"`
	jsonSide
}

type jsonViolation struct {
	Reason   string  `json:"reason"`
	Observed float64 `json:"observed"`
	Limit    float64 `json:"limit"`
}

type jsonReport struct {
	Mode         string          `json:"mode"`
	FilesChanged int             `json:"files_changed"`
	BinaryFiles  int             `json:"binary_files,omitempty"`
	Overall      jsonSide        `json:"overall"`
	NoiseRatio   float64         `json:"noise_ratio"`
	NetPure      int64           `json:"net_pure"`
	Complexity   float64         `json:"complexity"`
	TokensEst    int64           `json:"tokens_est"`
	Languages    []jsonLanguage  `json:"languages"`
	Files        []jsonFile      `json:"files"`
	Passed       bool            `json:"passed"`
	Violations   []jsonViolation `json:"violations,omitempty"`
}

func toJSONCounts(c stats.Counts) jsonCounts {
	return jsonCounts{
		Total:     c.Total,
		Pure:      c.Pure,
		Comment:   c.Comment,
		Docstring: c.Docstring,
		Blank:     c.Blank,
		Words:     c.Words,
		TokensEst: c.TokenEstimate(),
	}
}

func renderJSON(w io.Writer, set *stats.Set, verdict gate.Verdict, opts Options) error {
	sum := set.Summary()

	out := jsonReport{
		Mode:         sum.Mode.String(),
		FilesChanged: sum.FilesChanged,
		BinaryFiles:  sum.BinaryFiles,
		Overall: jsonSide{
			Added:   toJSONCounts(sum.Added),
			Removed: toJSONCounts(sum.Removed),
		},
		NoiseRatio: sum.NoiseRatio(),
		NetPure:    sum.NetPure(),
		Complexity: sum.Complexity(),
		TokensEst:  sum.TokenEstimate(),
		Passed:     verdict.Passed,
	}

	for _, ls := range set.Languages() {
		out.Languages = append(out.Languages, jsonLanguage{
			Language: ls.Language,
			Files:    ls.Files,
			jsonSide: jsonSide{Added: toJSONCounts(ls.Added), Removed: toJSONCounts(ls.Removed)},
		})
	}
	for _, fs := range set.Files() {
		out.Files = append(out.Files, jsonFile{
			Path:     fs.Path,
			Language: fs.Language,
			Binary:   fs.Binary,
			jsonSide: jsonSide{Added: toJSONCounts(fs.Added), Removed: toJSONCounts(fs.Removed)},
		})
	}
	for _, v := range verdict.Violations {
		out.Violations = append(out.Violations, jsonViolation{
			Reason:   v.Reason,
			Observed: v.Observed,
			Limit:    v.Limit,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// CISummary prints the machine-readable summary line for CI logs.
func CISummary(w io.Writer, sum stats.Summary) {
	fmt.Fprintf(w, "PURECODE_SUMMARY noise_ratio=%.2f pure_added=%d pure_removed=%d files_changed=%d complexity=%.1f\n",
		sum.NoiseRatio(), sum.Added.Pure, sum.Removed.Pure, sum.FilesChanged, sum.Complexity())
}

// CIFailures prints one machine-readable line per gate violation.
func CIFailures(w io.Writer, verdict gate.Verdict) {
	for _, v := range verdict.Violations {
		fmt.Fprintf(w, "PURECODE_FAIL reason=%s observed=%.2f limit=%.2f\n",
			v.Reason, v.Observed, v.Limit)
	}
}
