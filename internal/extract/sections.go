// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/cvdata/pkg/types"
)

var (
	bioPattern         = regexp.MustCompile(`(?s)\\entry\*\[\]%?\s*(.*?)\\end\{rubric\}`)
	lineCommentPattern = regexp.MustCompile(`(?m)%.*$`)
	commentLinePattern = regexp.MustCompile(`(?m)^\s*%.*$`)

	// leadingBold matches a line that opens with \textbf{...}, capturing the
	// bold text and the rest of the physical line after separators.
	leadingBold = regexp.MustCompile(`^\s*\\textbf\{([^}]+)\}[,\s]*([^\n]*)`)
)

// Biography returns the text of the unlabeled entry of the biography rubric,
// with bold wrappers, escaped ampersands and line comments removed. It returns
// "" when the block is absent.
func Biography(text string) string {
	m := bioPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	bio := strings.TrimSpace(m[1])
	bio = unwrapBold(bio)
	bio = strings.ReplaceAll(bio, `\&`, "&")
	bio = lineCommentPattern.ReplaceAllString(bio, "")
	return strings.TrimSpace(bio)
}

// Employment maps each entry's lines to position and organization. A missing
// line leaves its field empty.
func Employment(text string) []types.Employment {
	out := []types.Employment{}
	for _, e := range splitEntries(text, entryMarker, endRubric, "%") {
		body := unwrapBold(strings.TrimSpace(e.body))
		body = strings.ReplaceAll(body, `\newline`, "\n")
		lines := nonEmptyLines(body)
		out = append(out, types.Employment{
			Period:       strings.TrimSpace(e.label),
			Position:     at(lines, 0),
			Organization: at(lines, 1),
		})
	}
	return out
}

// Education maps each entry's lines to degree, thesis and advisor. The
// thesis is only taken when the second line carries a quoted title.
func Education(text string) []types.Education {
	out := []types.Education{}
	for _, e := range splitEntries(text, entryMarker, endRubric) {
		body := unwrapEmph(unwrapBold(strings.TrimSpace(e.body)))
		body = strings.ReplaceAll(body, `\par`, "\n")
		lines := nonEmptyLines(body)

		thesis := at(lines, 1)
		if strings.Contains(thesis, `"`) {
			thesis = strings.Trim(thesis, `"`)
		} else {
			thesis = ""
		}

		out = append(out, types.Education{
			Period:  strings.TrimSpace(e.label),
			Degree:  at(lines, 0),
			Thesis:  thesis,
			Advisor: strings.ReplaceAll(at(lines, 2), "Advisor: ", ""),
		})
	}
	return out
}

// Skills maps each entry label to its text. The value is kept as a single
// string; only \ldots is rewritten.
func Skills(text string) types.Skills {
	out := types.Skills{}
	for _, e := range splitEntries(text, entryMarker, endRubric) {
		items := strings.ReplaceAll(strings.TrimSpace(e.body), `\ldots`, "...")
		out.Set(strings.TrimSpace(e.label), items)
	}
	return out
}

// Projects maps each entry to title, role and funding. The first \newline
// separated part is the title. The second part gives the role; when the role
// is bold, the rest of its line is the funding source. Further parts are
// appended to the funding.
func Projects(text string) []types.Project {
	text = commentLinePattern.ReplaceAllString(text, "")

	out := []types.Project{}
	for _, e := range splitEntries(text, entryMarker, endRubric) {
		parts := strings.Split(e.body, `\newline`)
		p := types.Project{Period: strings.TrimSpace(e.label)}

		p.Title = boldOrLine(parts[0])
		if len(parts) > 1 {
			if m := leadingBold.FindStringSubmatch(strings.TrimSpace(parts[1])); m != nil {
				p.Role = strings.TrimSpace(m[1])
				p.Funding = strings.TrimSpace(m[2])
			} else {
				p.Role = at(nonEmptyLines(unwrapBold(parts[1])), 0)
			}
		}
		for _, extra := range parts[min(len(parts), 2):] {
			more := strings.Join(nonEmptyLines(unwrapBold(extra)), " ")
			if more == "" {
				continue
			}
			if p.Funding != "" {
				p.Funding += " "
			}
			p.Funding += more
		}
		out = append(out, p)
	}
	return out
}

// boldOrLine returns the bold text a part opens with, or its first line with
// trailing separators trimmed.
func boldOrLine(part string) string {
	if m := leadingBold.FindStringSubmatch(strings.TrimSpace(part)); m != nil {
		return strings.TrimSpace(m[1])
	}
	line := at(nonEmptyLines(unwrapBold(part)), 0)
	return strings.TrimSpace(strings.TrimRight(line, ", "))
}
