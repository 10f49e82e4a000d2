// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/cvdata/pkg/types"
)

var (
	// referencePattern matches \textbf{Name}, position\par organization\par.
	referencePattern = regexp.MustCompile(`\\textbf\{([^}]+)\},\s*([^\n\\]+)\\par\s*([^\n\\]+?)(?:,)?\\par`)
	urlPattern       = regexp.MustCompile(`\\url\{([^}]+)\}`)
)

// References extracts referees. The contact of a referee is the first \url
// between the referee's bold name and the next bold text, the end of the
// table, or the end of the document.
func References(text string) []types.Reference {
	out := []types.Reference{}
	for _, m := range referencePattern.FindAllStringSubmatch(text, -1) {
		out = append(out, types.Reference{
			Name:         strings.TrimSpace(m[1]),
			Position:     strings.TrimSpace(m[2]),
			Organization: strings.TrimSpace(m[3]),
			Email:        contactOf(text, m[1]),
		})
	}
	return out
}

func contactOf(text, name string) string {
	marker := `\textbf{` + name + `}`
	i := strings.Index(text, marker)
	if i < 0 {
		return ""
	}
	rest := text[i+len(marker):]
	if end := indexAny(rest, []string{`\textbf`, `\end{tabularx}`}); end >= 0 {
		rest = rest[:end]
	}
	return firstGroup(urlPattern, rest)
}
