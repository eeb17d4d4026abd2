// Package lines classifies raw source text into physical, source,
// logical, and comment line counts.
package lines

import (
	"strings"

	"github.com/reposcope/reposcope/pkg/parser"
)

// Metrics holds line counts for one source unit.
type Metrics struct {
	LOC      int `json:"loc"`      // physical lines, including blank
	LLOC     int `json:"lloc"`     // logical lines (statements)
	SLOC     int `json:"sloc"`     // lines with non-whitespace content
	Comments int `json:"comments"` // comment lines
}

// Add accumulates another unit's counts.
func (m *Metrics) Add(other Metrics) {
	m.LOC += other.LOC
	m.LLOC += other.LLOC
	m.SLOC += other.SLOC
	m.Comments += other.Comments
}

// Block is a multi-line comment or string delimiter pair.
type Block struct {
	Open  string
	Close string
}

// Profile describes the lexical conventions the classifier needs for one
// language.
type Profile struct {
	LineComments []string
	Blocks       []Block
	Separator    string
}

// ProfileFor returns the classification profile for a language.
func ProfileFor(lang parser.Language) Profile {
	switch lang {
	case parser.LangPython:
		return Profile{
			LineComments: []string{"#"},
			Blocks:       []Block{{`"""`, `"""`}, {"'''", "'''"}},
			Separator:    ";",
		}
	case parser.LangRuby:
		return Profile{
			LineComments: []string{"#"},
			Blocks:       []Block{{"=begin", "=end"}},
			Separator:    ";",
		}
	case parser.LangBash:
		return Profile{
			LineComments: []string{"#"},
			Separator:    ";",
		}
	case parser.LangPHP:
		return Profile{
			LineComments: []string{"//", "#"},
			Blocks:       []Block{{"/*", "*/"}},
			Separator:    ";",
		}
	default:
		// Go, Rust, TypeScript, JavaScript, Java, C, C++, C#
		return Profile{
			LineComments: []string{"//"},
			Blocks:       []Block{{"/*", "*/"}},
			Separator:    ";",
		}
	}
}

// Count classifies source text. Empty or whitespace-only input yields all
// zeros. Comment detection is a naive marker search: it tracks whether a
// line falls inside a multi-line block and whether a line-comment marker
// sits outside a string literal, but does not handle escaped quotes.
func Count(source string, prof Profile) Metrics {
	if strings.TrimSpace(source) == "" {
		return Metrics{}
	}

	physical := splitLines(source)

	var m Metrics
	m.LOC = len(physical)

	inBlock := false
	closeDelim := ""
	var code []string

	for _, line := range physical {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			m.SLOC++
		}

		isComment := false
		codePart := trimmed
		if inBlock {
			isComment = true
			codePart = ""
			if strings.Contains(line, closeDelim) {
				inBlock = false
			}
		} else {
			if idx := lineCommentIndex(trimmed, prof.LineComments); idx >= 0 {
				isComment = true
				codePart = strings.TrimSpace(trimmed[:idx])
			}
			for _, b := range prof.Blocks {
				open := indexOutsideString(line, b.Open)
				if open < 0 {
					continue
				}
				rest := line[open+len(b.Open):]
				if !strings.Contains(rest, b.Close) {
					inBlock = true
					closeDelim = b.Close
				}
				if strings.HasPrefix(trimmed, b.Open) {
					isComment = true
					codePart = ""
				}
				break
			}
		}

		if isComment {
			m.Comments++
		}
		if codePart != "" {
			code = append(code, codePart)
		}
	}

	m.LLOC = logicalCount(code, prof.Separator)
	return m
}

// splitLines splits on newlines without producing a trailing empty line
// for newline-terminated input.
func splitLines(source string) []string {
	lines := strings.Split(source, "\n")
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// lineCommentIndex returns the position of the first single-line comment
// marker outside a string literal, or -1. The quote check is a simple
// parity count; escaped quotes are not recognized.
func lineCommentIndex(line string, markers []string) int {
	best := -1
	for _, marker := range markers {
		if i := indexOutsideString(line, marker); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}

// indexOutsideString returns the first index of sub that is not inside a
// quoted string, or -1.
func indexOutsideString(line, sub string) int {
	from := 0
	for {
		i := strings.Index(line[from:], sub)
		if i < 0 {
			return -1
		}
		abs := from + i
		if !insideString(line[:abs]) {
			return abs
		}
		from = abs + len(sub)
		if from >= len(line) {
			return -1
		}
	}
}

// insideString reports whether an unterminated quote precedes the
// position, by counting quote characters.
func insideString(prefix string) bool {
	singles := strings.Count(prefix, "'")
	doubles := strings.Count(prefix, `"`)
	return singles%2 == 1 || doubles%2 == 1
}

// logicalCount merges continued lines into the statement that started
// them, then counts one logical line per separator-delimited fragment.
func logicalCount(code []string, separator string) int {
	var statements []string
	var pending strings.Builder

	for _, line := range code {
		pending.WriteString(line)
		if continuesNext(line) {
			pending.WriteString(" ")
			continue
		}
		statements = append(statements, pending.String())
		pending.Reset()
	}
	if pending.Len() > 0 {
		statements = append(statements, pending.String())
	}

	count := 0
	for _, stmt := range statements {
		for _, frag := range strings.Split(stmt, separator) {
			if strings.TrimSpace(frag) != "" {
				count++
			}
		}
	}
	return count
}

// continuesNext reports whether a line continues into the next one: a
// trailing backslash, comma, or open bracket.
func continuesNext(line string) bool {
	if line == "" {
		return false
	}
	switch line[len(line)-1] {
	case '\\', ',', '(', '[', '{':
		return true
	}
	return false
}
