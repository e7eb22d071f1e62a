package tui

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// token is a syntax-highlighted chunk of one line.
type token struct {
	Text  string
	Color string // ANSI color string, empty for default
}

// highlightLines tokenizes source lines for a filename. Returns one token
// slice per input line; files without a matching lexer get plain tokens.
func highlightLines(filename string, lines []string) [][]token {
	lexer := lexerForFile(filename)
	if lexer == nil {
		return plainTokens(lines)
	}

	source := strings.Join(lines, "\n")
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return plainTokens(lines)
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	result := make([][]token, 0, len(lines))
	var current []token

	for _, tok := range iterator.Tokens() {
		// Tokens may span multiple lines.
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				result = append(result, current)
				current = nil
			}
			if part != "" {
				current = append(current, token{
					Text:  part,
					Color: tokenColor(style, tok.Type),
				})
			}
		}
	}
	result = append(result, current)

	for len(result) < len(lines) {
		result = append(result, []token{{Text: ""}})
	}
	return result
}

func plainTokens(lines []string) [][]token {
	result := make([][]token, len(lines))
	for i, line := range lines {
		result[i] = []token{{Text: line}}
	}
	return result
}

func lexerForFile(filename string) chroma.Lexer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		ext := filepath.Ext(filename)
		if ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	return lexer
}

func tokenColor(style *chroma.Style, tt chroma.TokenType) string {
	entry := style.Get(tt)
	if entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return ""
}
