// Package rowrepair rejoins table rows that an unescaped line break split
// across physical lines.
//
// The repair is a best-effort heuristic, not a parser. A line holding a
// single short or numeric field is taken to be an orphaned row id, and the
// next non-blank line is glued onto it when it looks like the rest of a row:
// it starts with a quote or contains a tab. A genuinely short one-field row
// followed by such a line is merged too; the heuristic cannot tell them apart.
package rowrepair

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxIDLen is the longest non-numeric field still treated as an id.
const maxIDLen = 3

type state int

const (
	// scanning copies lines through until an orphaned id shows up.
	scanning state = iota

	// expectingContinuation skips blank lines looking for the rest of the row.
	expectingContinuation
)

// Result is the outcome of a repair pass.
type Result struct {
	// Lines are the reconstructed lines.
	Lines []string

	// Merged counts orphaned ids joined with a continuation line.
	Merged int
}

// IsOrphanedID reports whether a trimmed line looks like a row id whose
// remaining fields landed on a later line.
func IsOrphanedID(line string) bool {
	if line == "" || strings.Contains(line, "\t") {
		return false
	}
	return isDigits(line) || utf8.RuneCountInString(line) <= maxIDLen
}

// IsContinuation reports whether a trimmed line looks like the remaining
// fields of a split row.
func IsContinuation(line string) bool {
	return strings.HasPrefix(line, `"`) || strings.Contains(line, "\t")
}

// Reconstruct merges orphaned ids with their continuation lines.
//
// Lines that are not part of a merge are returned unchanged. Blank lines
// between an orphaned id and its continuation are dropped. When no
// continuation follows, the id line is kept as-is and scanning resumes on
// the line after it.
func Reconstruct(lines []string) Result {
	var (
		res    = Result{Lines: make([]string, 0, len(lines))}
		st     = scanning
		anchor int
		id     string
	)

	i := 0
	for {
		if i >= len(lines) {
			if st == expectingContinuation {
				res.Lines = append(res.Lines, lines[anchor])
				i = anchor + 1
				st = scanning
				continue
			}
			break
		}

		line := strings.TrimSpace(lines[i])

		switch st {
		case scanning:
			if IsOrphanedID(line) {
				anchor, id = i, line
				st = expectingContinuation
			} else {
				res.Lines = append(res.Lines, lines[i])
			}
			i++

		case expectingContinuation:
			switch {
			case line == "":
				i++
			case IsContinuation(line):
				res.Lines = append(res.Lines, id+"\t"+line)
				res.Merged++
				i++
				st = scanning
			default:
				res.Lines = append(res.Lines, lines[anchor])
				i = anchor + 1
				st = scanning
			}
		}
	}

	return res
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
