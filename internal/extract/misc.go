// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/cvdata/pkg/types"
)

const (
	awardsHeader     = `\subrubric{Awards and Achievements}`
	activitiesHeader = `\subrubric{Activities}`
)

var (
	awardPattern = regexp.MustCompile(`\\entry\*\[([^\]]+)\]\s*\\textbf\{([^}]+)\}[,\s]*\\newline\s*([^\n]+)`)

	// activityPattern has two alternatives: a bold title, or plain text up to
	// the end of the line. Either may sit behind a \faLink icon and an \href
	// opener. The bold form is tried first.
	activityPattern = regexp.MustCompile(
		`\\entry\*\[([^\]]+)\]\s*(?:\\faLink\s*)?(?:\\href\{[^}]+\}\{)?\\textbf\{([^}]+)\}` +
			`|\\entry\*\[([^\]]+)\]\s*(?:\\faLink\s*)?(?:\\href\{[^}]+\}\{)?([^\n\\]+)`)
)

// Misc extracts the awards and activities subsections. A missing subsection
// leaves its list empty.
func Misc(text string) types.Misc {
	out := types.NewRecord().Misc

	if body, ok := section(text, awardsHeader, subrubricMarker, endRubric); ok {
		for _, m := range awardPattern.FindAllStringSubmatch(body, -1) {
			out.Awards = append(out.Awards, types.Award{
				Year:         strings.TrimSpace(m[1]),
				Title:        strings.TrimSpace(m[2]),
				Organization: strings.TrimSpace(m[3]),
			})
		}
	}

	if body, ok := section(text, activitiesHeader, subrubricMarker, endRubric); ok {
		for _, m := range activityPattern.FindAllStringSubmatch(body, -1) {
			switch {
			case m[1] != "" && m[2] != "":
				out.Activities = append(out.Activities, types.Activity{
					Year:     strings.TrimSpace(m[1]),
					Activity: strings.TrimSpace(m[2]),
				})
			case m[3] != "" && m[4] != "":
				out.Activities = append(out.Activities, types.Activity{
					Year:     strings.TrimSpace(m[3]),
					Activity: strings.TrimSpace(m[4]),
				})
			}
		}
	}

	return out
}
