// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/cvdata/internal/metrics"
	"github.com/pdiddy/cvdata/pkg/types"
)

var (
	// bibEntryStart matches the opening of an entry: @kind{key,
	bibEntryStart = regexp.MustCompile(`@(\w+)\s*\{\s*([^,\s]+)\s*,`)

	// bibFieldStart matches name = { up to and including the opening brace.
	bibFieldStart = regexp.MustCompile(`(\w+)\s*=\s*\{`)
)

// BibEntry is one raw bibliography entry.
type BibEntry struct {
	Kind   string
	Key    string
	Fields map[string]string
}

// ParseBibliography splits text into entries at each @kind{key, marker. Text
// before the first marker is ignored.
func ParseBibliography(text string) []BibEntry {
	starts := bibEntryStart.FindAllStringSubmatchIndex(text, -1)
	entries := make([]BibEntry, 0, len(starts))
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		entries = append(entries, BibEntry{
			Kind:   text[loc[2]:loc[3]],
			Key:    text[loc[4]:loc[5]],
			Fields: ParseFields(text[loc[1]:end]),
		})
	}
	return entries
}

// ParseFields collects every name = {value} assignment of an entry block.
// Names are lower-cased and a later assignment replaces an earlier one.
// Values may contain nested braces; a value whose braces never balance is
// skipped.
func ParseFields(block string) map[string]string {
	fields := make(map[string]string)
	for _, loc := range bibFieldStart.FindAllStringSubmatchIndex(block, -1) {
		value, ok := scanBraced(block, loc[1])
		if !ok {
			continue
		}
		fields[strings.ToLower(block[loc[2]:loc[3]])] = strings.TrimSpace(value)
	}
	return fields
}

// scanBraced returns the text from start up to the brace that closes the one
// just before start. Depth starts at one and the value ends where it returns
// to zero.
func scanBraced(s string, start int) (string, bool) {
	depth := 1
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start:i], true
			}
		}
	}
	return "", false
}

// NewPublication builds a Publication from a raw entry. Absent fields are
// empty, the title loses its outer braces and author markers (*) are
// removed.
func NewPublication(e BibEntry) types.Publication {
	f := e.Fields
	return types.Publication{
		Type:         strings.ToLower(e.Kind),
		Key:          e.Key,
		Title:        strings.Trim(f["title"], "{}"),
		Author:       strings.ReplaceAll(f["author"], "*", ""),
		Year:         f["year"],
		Journal:      f["journal"],
		BookTitle:    f["booktitle"],
		Volume:       f["volume"],
		Number:       f["number"],
		Pages:        f["pages"],
		DOI:          f["doi"],
		URL:          f["url"],
		Keywords:     f["keywords"],
		ImpactFactor: f["impact_factor"],
		JCRQuantile:  f["jcr_quantile"],
		JCRRanking:   f["jcr_ranking"],
		JCRField:     f["jcr_field"],
	}
}

// Classify returns the category a publication is listed under, or "" when
// it is not listed. An early access keyword wins over the entry type; books
// and every type other than article and inproceedings are not listed.
func Classify(p types.Publication) string {
	switch {
	case strings.Contains(strings.ToLower(p.Keywords), "early access"):
		return types.CategoryEarlyAccess
	case p.Type == "article":
		return types.CategoryJournals
	case p.Type == "inproceedings":
		return types.CategoryConferences
	}
	return ""
}

// PublicationResult is the outcome of extracting a bibliography.
type PublicationResult struct {
	Publications types.Publications
	// Enriched counts entries that matched a metrics row.
	Enriched int
	// Dropped lists the keys of entries that fall in no category.
	Dropped []string
}

// Publications parses a bibliography, fills missing metrics from lookup and
// files each entry under its category.
func Publications(text string, lookup metrics.Lookup) PublicationResult {
	res := PublicationResult{Publications: types.NewRecord().Publications}
	for _, e := range ParseBibliography(text) {
		pub := NewPublication(e)
		if lookup.Fill(&pub) {
			res.Enriched++
		}
		if !res.Publications.Add(Classify(pub), pub) {
			res.Dropped = append(res.Dropped, pub.Key)
		}
	}
	return res
}
