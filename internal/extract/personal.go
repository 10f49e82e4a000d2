// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/cvdata/pkg/types"
)

var (
	namePattern     = regexp.MustCompile(`\\LARGE\\bfseries\\sffamily\s+([^,}]+)`)
	emailPattern    = regexp.MustCompile(`\\href\{mailto:([^}]+)\}`)
	githubPattern   = regexp.MustCompile(`\\href\{https://github\.com/([^}]+)\}`)
	linkedinPattern = regexp.MustCompile(`\\href\{https://www\.linkedin\.com/in/([^}]+)/?\}`)
	websitePattern  = regexp.MustCompile(`\\url\{(https://sites\.google\.com[^}]+)\}`)
	scholarPattern  = regexp.MustCompile(`\\url\{(https://scholar\.google\.com[^}]+)\}`)
)

// Personal extracts the contact details of the main CV file. Each field takes
// the first match of its pattern and stays empty when there is none. Matched
// values are not validated.
func Personal(text string) types.Personal {
	var p types.Personal
	if m := namePattern.FindStringSubmatch(text); m != nil {
		p.Name = strings.TrimSpace(m[1])
	}
	p.Email = firstGroup(emailPattern, text)
	p.GitHub = firstGroup(githubPattern, text)
	p.LinkedIn = firstGroup(linkedinPattern, text)
	p.Website = firstGroup(websitePattern, text)
	p.Scholar = firstGroup(scholarPattern, text)
	return p
}

func firstGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
