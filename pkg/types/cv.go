// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the CV data model and the build configuration shared
// by the extractor, the serializer, and the publication index.
package types

import (
	"bytes"
	"encoding/json"

	"go.yaml.in/yaml/v3"
)

// Publication categories. Entries of any other kind are dropped.
const (
	CategoryEarlyAccess = "early_access"
	CategoryJournals    = "journals"
	CategoryConferences = "conferences"
	CategoryBooks       = "books"
)

// Record is the aggregate CV document written to cv_data.json. It is built
// incrementally by the extractor; entries are only ever appended.
type Record struct {
	Personal     Personal     `json:"personal" yaml:"personal"`
	Biography    string       `json:"biography" yaml:"biography"`
	Employment   []Employment `json:"employment" yaml:"employment"`
	Education    []Education  `json:"education" yaml:"education"`
	Skills       Skills       `json:"skills" yaml:"skills"`
	Projects     []Project    `json:"projects" yaml:"projects"`
	Publications Publications `json:"publications" yaml:"publications"`
	Misc         Misc         `json:"misc" yaml:"misc"`
	References   []Reference  `json:"references" yaml:"references"`
}

// NewRecord returns an empty Record whose lists are non-nil, so an empty
// section serializes as [] rather than null.
func NewRecord() *Record {
	return &Record{
		Employment: []Employment{},
		Education:  []Education{},
		Projects:   []Project{},
		Publications: Publications{
			EarlyAccess: []Publication{},
			Journals:    []Publication{},
			Conferences: []Publication{},
			Books:       []Publication{},
		},
		Misc: Misc{
			Awards:     []Award{},
			Activities: []Activity{},
		},
		References: []Reference{},
	}
}

// Personal holds contact details from the main CV file. Fields that were not
// found stay empty and are omitted from the output.
type Personal struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	GitHub   string `json:"github,omitempty" yaml:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty"`
	Scholar  string `json:"scholar,omitempty" yaml:"scholar,omitempty"`
}

// Employment is one position held.
type Employment struct {
	Period       string `json:"period" yaml:"period"`
	Position     string `json:"position" yaml:"position"`
	Organization string `json:"organization" yaml:"organization"`
}

// Education is one degree.
type Education struct {
	Period  string `json:"period" yaml:"period"`
	Degree  string `json:"degree" yaml:"degree"`
	Thesis  string `json:"thesis" yaml:"thesis"`
	Advisor string `json:"advisor" yaml:"advisor"`
}

// Project is one funded research project.
type Project struct {
	Period  string `json:"period" yaml:"period"`
	Title   string `json:"title" yaml:"title"`
	Role    string `json:"role" yaml:"role"`
	Funding string `json:"funding" yaml:"funding"`
}

// Publications groups bibliography entries by category.
type Publications struct {
	EarlyAccess []Publication `json:"early_access" yaml:"early_access"`
	Journals    []Publication `json:"journals" yaml:"journals"`
	Conferences []Publication `json:"conferences" yaml:"conferences"`
	Books       []Publication `json:"books" yaml:"books"`
}

// Category returns the slice stored under name, or nil for an unknown name.
func (p *Publications) Category(name string) []Publication {
	switch name {
	case CategoryEarlyAccess:
		return p.EarlyAccess
	case CategoryJournals:
		return p.Journals
	case CategoryConferences:
		return p.Conferences
	case CategoryBooks:
		return p.Books
	}
	return nil
}

// Add appends pub to the named category. It reports false for an unknown
// category, in which case nothing is stored.
func (p *Publications) Add(category string, pub Publication) bool {
	switch category {
	case CategoryEarlyAccess:
		p.EarlyAccess = append(p.EarlyAccess, pub)
	case CategoryJournals:
		p.Journals = append(p.Journals, pub)
	case CategoryConferences:
		p.Conferences = append(p.Conferences, pub)
	case CategoryBooks:
		p.Books = append(p.Books, pub)
	default:
		return false
	}
	return true
}

// Categories lists the publication categories in output order.
func Categories() []string {
	return []string{CategoryEarlyAccess, CategoryJournals, CategoryConferences, CategoryBooks}
}

// Publication is one bibliography entry. Venue is carried in Journal or
// BookTitle depending on the entry type.
type Publication struct {
	Type      string `json:"type" yaml:"type"`
	Key       string `json:"key" yaml:"key"`
	Title     string `json:"title" yaml:"title"`
	Author    string `json:"author" yaml:"author"`
	Year      string `json:"year" yaml:"year"`
	Journal   string `json:"journal" yaml:"journal"`
	BookTitle string `json:"booktitle" yaml:"booktitle"`
	Volume    string `json:"volume" yaml:"volume"`
	Number    string `json:"number" yaml:"number"`
	Pages     string `json:"pages" yaml:"pages"`
	DOI       string `json:"doi" yaml:"doi"`
	URL       string `json:"url" yaml:"url"`
	Keywords  string `json:"keywords" yaml:"keywords"`

	ImpactFactor string `json:"impact_factor" yaml:"impact_factor"`
	JCRQuantile  string `json:"jcr_quantile" yaml:"jcr_quantile"`
	JCRRanking   string `json:"jcr_ranking" yaml:"jcr_ranking"`
	JCRField     string `json:"jcr_field" yaml:"jcr_field"`
}

// Venue returns the journal name, falling back to the book title.
func (p Publication) Venue() string {
	if p.Journal != "" {
		return p.Journal
	}
	return p.BookTitle
}

// Misc holds awards and activities.
type Misc struct {
	Awards     []Award    `json:"awards" yaml:"awards"`
	Activities []Activity `json:"activities" yaml:"activities"`
}

// Award is one entry of the awards subsection.
type Award struct {
	Year         string `json:"year" yaml:"year"`
	Title        string `json:"title" yaml:"title"`
	Organization string `json:"organization" yaml:"organization"`
}

// Activity is one entry of the activities subsection.
type Activity struct {
	Year     string `json:"year" yaml:"year"`
	Activity string `json:"activity" yaml:"activity"`
}

// Reference is one referee.
type Reference struct {
	Name         string `json:"name" yaml:"name"`
	Position     string `json:"position" yaml:"position"`
	Organization string `json:"organization" yaml:"organization"`
	Email        string `json:"email" yaml:"email"`
}

// Skill is one category of the skills section.
type Skill struct {
	Category string
	Items    string
}

// Skills is an insertion-ordered category to text mapping. It marshals as
// an object, keeping the order in which categories appeared in the source.
type Skills []Skill

// Set stores items under category. An existing category keeps its position
// and has its value replaced.
func (s *Skills) Set(category, items string) {
	for i := range *s {
		if (*s)[i].Category == category {
			(*s)[i].Items = items
			return
		}
	}
	*s = append(*s, Skill{Category: category, Items: items})
}

// Get returns the text stored under category.
func (s Skills) Get(category string) (string, bool) {
	for _, sk := range s {
		if sk.Category == category {
			return sk.Items, true
		}
	}
	return "", false
}

// MarshalJSON writes the skills as a JSON object in insertion order.
func (s Skills) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, sk := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := writeJSONString(&b, sk.Category); err != nil {
			return nil, err
		}
		b.WriteByte(':')
		if err := writeJSONString(&b, sk.Items); err != nil {
			return nil, err
		}
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping key order.
func (s *Skills) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = Skills{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		var items string
		if err := dec.Decode(&items); err != nil {
			return err
		}
		s.Set(tok.(string), items)
	}
	_, err := dec.Token()
	return err
}

// MarshalYAML writes the skills as a YAML mapping in insertion order.
func (s Skills) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, sk := range s {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: sk.Category},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: sk.Items},
		)
	}
	return node, nil
}

// writeJSONString encodes v without HTML escaping, matching the record
// encoder used by the serializer.
func writeJSONString(b *bytes.Buffer, v string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	b.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
