// Package language maps file paths to the comment-rule profiles that drive
// line classification.
package language

import (
	"path/filepath"
	"sort"
	"strings"
)

// Pair is a matched open/close delimiter, e.g. /* and */.
type Pair struct {
	Open  string
	Close string
}

// Profile is the per-language rule table. It carries data only; the scan
// algorithm in package classify is language-agnostic and driven entirely by
// these fields. Profiles are immutable after registration.
type Profile struct {
	Name         string   // display identifier, e.g. "Python"
	LineComments []string // tokens opening a comment that runs to end of line
	BlockComment []Pair   // multi-line comment delimiters
	Docstring    []Pair   // documentation-block delimiters, distinct in kind
}

// HasBlockState reports whether the language can carry comment state across
// lines at all.
func (p *Profile) HasBlockState() bool {
	return len(p.BlockComment) > 0 || len(p.Docstring) > 0
}

// Plaintext is the fallback profile for unknown files: no comment or
// docstring detection, blank-line detection still applies.
var Plaintext = &Profile{Name: "Plaintext"}

// cStyle builds a profile for languages using // line comments, /* */ block
// comments, and /** */ JavaDoc-style docstrings.
func cStyle(name string) *Profile {
	return &Profile{
		Name:         name,
		LineComments: []string{"//"},
		BlockComment: []Pair{{"/*", "*/"}},
		Docstring:    []Pair{{"/**", "*/"}},
	}
}

// hashOnly builds a profile for languages whose only comment form is a #
// line comment. No block state is possible.
func hashOnly(name string) *Profile {
	return &Profile{Name: name, LineComments: []string{"#"}}
}

var python = &Profile{
	Name:         "Python",
	LineComments: []string{"#"},
	Docstring:    []Pair{{`"""`, `"""`}, {"'''", "'''"}},
}

var ruby = &Profile{
	Name:         "Ruby",
	LineComments: []string{"#"},
	BlockComment: []Pair{{"=begin", "=end"}},
}

// html conflates top-level markup comments with embedded styles; markup
// regions are not parsed. Known approximation.
var html = &Profile{
	Name:         "HTML",
	BlockComment: []Pair{{"<!--", "-->"}},
}

var vue = &Profile{
	Name:         "Vue",
	LineComments: []string{"//"},
	BlockComment: []Pair{{"<!--", "-->"}, {"/*", "*/"}},
}

var css = &Profile{
	Name:         "CSS",
	BlockComment: []Pair{{"/*", "*/"}},
}

// byExtension maps extensions (without the leading dot, lowercase) to
// profiles. Multi-part extensions are permitted and matched longest first.
var byExtension = map[string]*Profile{
	"py":    python,
	"js":    cStyle("JavaScript"),
	"jsx":   cStyle("JavaScript"),
	"mjs":   cStyle("JavaScript"),
	"ts":    cStyle("TypeScript"),
	"tsx":   cStyle("TypeScript"),
	"html":  html,
	"htm":   html,
	"css":   css,
	"scss":  css,
	"c":     cStyle("C"),
	"h":     cStyle("C"),
	"cpp":   cStyle("C++"),
	"hpp":   cStyle("C++"),
	"cc":    cStyle("C++"),
	"cxx":   cStyle("C++"),
	"hh":    cStyle("C++"),
	"cs":    cStyle("C#"),
	"java":  cStyle("Java"),
	"go":    cStyle("Go"),
	"php":   cStyle("PHP"),
	"rb":    ruby,
	"swift": cStyle("Swift"),
	"kt":    cStyle("Kotlin"),
	"kts":   cStyle("Kotlin"),
	"scala": cStyle("Scala"),
	"sc":    cStyle("Scala"),
	"sh":    hashOnly("Shell"),
	"bash":  hashOnly("Shell"),
	"zsh":   hashOnly("Shell"),
	"ps1":   hashOnly("PowerShell"),
	"psm1":  hashOnly("PowerShell"),
	"vue":   vue,
}

// byFilename overrides extension lookup for well-known extensionless files,
// keyed lowercase; lookup folds case the same way the extension table does.
var byFilename = map[string]*Profile{
	"dockerfile":  hashOnly("Dockerfile"),
	"makefile":    hashOnly("Makefile"),
	"gnumakefile": hashOnly("Makefile"),
}

// Detect returns the profile for a file path. Unknown extensions map to
// Plaintext; detection never fails.
func Detect(path string) *Profile {
	base := filepath.Base(path)
	if p, ok := byFilename[strings.ToLower(base)]; ok {
		return p
	}

	// Longest-matching extension: for "schema.d.ts" try "d.ts" before "ts".
	parts := strings.Split(base, ".")
	for i := 1; i < len(parts); i++ {
		ext := strings.ToLower(strings.Join(parts[i:], "."))
		if p, ok := byExtension[ext]; ok {
			return p
		}
	}
	return Plaintext
}

// Descriptor pairs a language name with its registered extensions, for the
// languages listing.
type Descriptor struct {
	Name       string
	Extensions []string
}

// All returns every registered language with its extensions, sorted by name.
func All() []Descriptor {
	exts := make(map[string][]string)
	for ext, p := range byExtension {
		exts[p.Name] = append(exts[p.Name], "."+ext)
	}
	for name := range byFilename {
		exts[byFilename[name].Name] = append(exts[byFilename[name].Name], name)
	}

	result := make([]Descriptor, 0, len(exts))
	for name, list := range exts {
		sort.Strings(list)
		result = append(result, Descriptor{Name: name, Extensions: list})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
