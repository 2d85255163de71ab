package engine

import (
	"strings"
)

// commentSyntax is a static description of a language's comment markers
// and the string delimiters that can hide them.
type commentSyntax struct {
	line       []string
	blockOpen  string
	blockClose string
	quotes     []byte
	multiline  byte // quote whose literals may span lines, 0 if none
}

var (
	cSyntax    = commentSyntax{line: []string{"//"}, blockOpen: "/*", blockClose: "*/", quotes: []byte{'"', '\''}}
	jsSyntax   = commentSyntax{line: []string{"//"}, blockOpen: "/*", blockClose: "*/", quotes: []byte{'"', '\'', '`'}, multiline: '`'}
	goSyntax   = commentSyntax{line: []string{"//"}, blockOpen: "/*", blockClose: "*/", quotes: []byte{'"', '\'', '`'}, multiline: '`'}
	phpSyntax  = commentSyntax{line: []string{"//", "#"}, blockOpen: "/*", blockClose: "*/", quotes: []byte{'"', '\''}}
	hashSyntax = commentSyntax{line: []string{"#"}, quotes: []byte{'"', '\''}}
)

// syntaxByExt maps file extensions to comment syntax. Extensions not
// listed here are scanned without stripping, trading precision for
// recall on unknown languages.
var syntaxByExt = map[string]commentSyntax{
	".js":   jsSyntax,
	".jsx":  jsSyntax,
	".mjs":  jsSyntax,
	".cjs":  jsSyntax,
	".ts":   jsSyntax,
	".tsx":  jsSyntax,
	".go":   goSyntax,
	".java": cSyntax,
	".c":    cSyntax,
	".h":    cSyntax,
	".cc":   cSyntax,
	".cpp":  cSyntax,
	".hpp":  cSyntax,
	".cs":   cSyntax,
	".php":  phpSyntax,
	".py":   hashSyntax,
	".rb":   hashSyntax,
	".sh":   hashSyntax,
	".yaml": hashSyntax,
	".yml":  hashSyntax,
}

// StripComments replaces comment spans with spaces of equal length so
// line numbers and column offsets survive. ext is the file extension
// including the dot; unknown extensions are returned unchanged.
func StripComments(text, ext string) (string, []Warning) {
	syntax, ok := syntaxByExt[strings.ToLower(ext)]
	if !ok {
		return text, nil
	}

	var warnings []Warning
	buf := []byte(text)
	n := len(buf)
	i := 0

	for i < n {
		c := buf[i]

		// String literals are skipped, not stripped: a comment marker
		// inside a string is still code.
		if isQuote(syntax, c) {
			i = skipString(buf, i, c, c == syntax.multiline)
			continue
		}

		if syntax.blockOpen != "" && hasAt(buf, i, syntax.blockOpen) {
			rest := string(buf[i+len(syntax.blockOpen):])
			closeAt := strings.Index(rest, syntax.blockClose)
			if closeAt < 0 {
				blank(buf, i, n)
				warnings = append(warnings, Warning{
					Severity: SeverityWarn,
					Code:     CodeCommentUnterminated,
					Text:     "unterminated block comment, blanked to end of file",
				})
				break
			}
			stop := i + len(syntax.blockOpen) + closeAt + len(syntax.blockClose)
			blank(buf, i, stop)
			i = stop
			continue
		}

		if markerAt(syntax, buf, i) {
			j := i
			for j < n && buf[j] != '\n' {
				j++
			}
			blank(buf, i, j)
			i = j
			continue
		}

		i++
	}

	return string(buf), warnings
}

// skipString advances past a string literal starting at the opening
// quote. Backslash escapes are honored; a newline terminates tracking
// unless the literal kind may span lines.
func skipString(buf []byte, i int, quote byte, multiline bool) int {
	n := len(buf)
	i++ // opening quote
	for i < n {
		switch buf[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		case '\n':
			if !multiline {
				return i + 1
			}
			i++
		default:
			i++
		}
	}
	return n
}

func isQuote(syntax commentSyntax, c byte) bool {
	for _, q := range syntax.quotes {
		if c == q {
			return true
		}
	}
	return false
}

func markerAt(syntax commentSyntax, buf []byte, i int) bool {
	for _, marker := range syntax.line {
		if hasAt(buf, i, marker) {
			return true
		}
	}
	return false
}

func hasAt(buf []byte, i int, s string) bool {
	if i+len(s) > len(buf) {
		return false
	}
	return string(buf[i:i+len(s)]) == s
}

// blank overwrites [from, to) with spaces, preserving newlines.
func blank(buf []byte, from, to int) {
	for k := from; k < to; k++ {
		if buf[k] != '\n' {
			buf[k] = ' '
		}
	}
}
