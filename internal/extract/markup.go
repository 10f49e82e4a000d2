// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

// Markers shared by the CV sources.
const (
	entryMarker     = `\entry*`
	endRubric       = `\end{rubric}`
	subrubricMarker = `\subrubric`
)

var (
	// entryHeader matches \entry*[label] and the optional % and whitespace
	// that follow it. Empty labels are not entries.
	entryHeader = regexp.MustCompile(`\\entry\*\[([^\]]+)\]%?\s*`)

	textbfPattern = regexp.MustCompile(`\\textbf\{([^}]+)\}`)
	emphPattern   = regexp.MustCompile(`\\emph\{([^}]+)\}`)
)

// entry is one \entry*[label] block of a rubric.
type entry struct {
	label string
	body  string
}

// splitEntries segments text into entries. A body runs from the end of its
// header to the earliest of the terminators; an entry with no terminator
// after it is not returned.
func splitEntries(text string, terminators ...string) []entry {
	var entries []entry
	pos := 0
	for pos < len(text) {
		loc := entryHeader.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		label := text[pos+loc[2] : pos+loc[3]]
		start := pos + loc[1]
		end := indexAny(text[start:], terminators)
		if end < 0 {
			break
		}
		entries = append(entries, entry{label: label, body: text[start : start+end]})
		pos = start + end
	}
	return entries
}

// indexAny returns the offset of the earliest occurrence of any of seps in s,
// or -1.
func indexAny(s string, seps []string) int {
	best := -1
	for _, sep := range seps {
		if i := strings.Index(s, sep); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}

// section returns the text following header up to the earliest terminator.
func section(text, header string, terminators ...string) (string, bool) {
	i := strings.Index(text, header)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(header):]
	end := indexAny(rest, terminators)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func unwrapBold(s string) string {
	return textbfPattern.ReplaceAllString(s, "${1}")
}

func unwrapEmph(s string) string {
	return emphPattern.ReplaceAllString(s, "${1}")
}

// nonEmptyLines splits s into trimmed lines, dropping blank ones.
func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// at returns lines[i], or "" when the body is shorter.
func at(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
