// Package taxonomy maps canonical financial concepts to the ordered lists of
// US-GAAP tags filers report them under. The mapping is domain knowledge, not
// pipeline logic, so it lives in a versionable YAML artifact: the embedded
// default ships with the binary and a site-specific file can override it.
package taxonomy

import (
	_ "embed"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed mapping.yaml
var defaultMapping []byte

// Concept is one canonical financial concept with its tag priority list.
// Tag order encodes preference: the first tag with a reported value wins.
type Concept struct {
	Column string   `yaml:"column"`
	Tags   []string `yaml:"tags"`
}

// Taxonomy holds the full concept mapping plus the balance-sheet identity tags.
// Concepts keeps file order, which is also the canonical resolution order.
type Taxonomy struct {
	Concepts []Concept `yaml:"concepts"`
	Identity []string  `yaml:"identity"`
}

// Default returns the embedded mapping.
func Default() (*Taxonomy, error) {
	return parse(defaultMapping)
}

// Load reads a mapping file from path, or the embedded default when path is
// empty.
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "taxonomy: read mapping %s", path)
	}
	return parse(data)
}

func parse(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, eris.Wrap(err, "taxonomy: unmarshal mapping")
	}
	if len(t.Concepts) == 0 {
		return nil, eris.New("taxonomy: mapping defines no concepts")
	}
	seen := make(map[string]bool, len(t.Concepts))
	for _, c := range t.Concepts {
		if c.Column == "" {
			return nil, eris.New("taxonomy: concept with empty column name")
		}
		if len(c.Tags) == 0 {
			return nil, eris.Errorf("taxonomy: concept %s has no tags", c.Column)
		}
		if seen[c.Column] {
			return nil, eris.Errorf("taxonomy: duplicate concept column %s", c.Column)
		}
		seen[c.Column] = true
	}
	if len(t.Identity) == 0 {
		return nil, eris.New("taxonomy: mapping defines no identity tags")
	}
	return &t, nil
}

// Concept returns the concept for a canonical column name.
func (t *Taxonomy) Concept(column string) (Concept, bool) {
	for _, c := range t.Concepts {
		if c.Column == column {
			return c, true
		}
	}
	return Concept{}, false
}

// Union returns every tag referenced by any concept or the identity list,
// deduplicated and sorted. Order is not significant for the union; sorting
// just keeps the fact selector deterministic.
func (t *Taxonomy) Union() []string {
	set := make(map[string]bool)
	for _, c := range t.Concepts {
		for _, tag := range c.Tags {
			set[tag] = true
		}
	}
	for _, tag := range t.Identity {
		set[tag] = true
	}
	union := make([]string, 0, len(set))
	for tag := range set {
		union = append(union, tag)
	}
	sort.Strings(union)
	return union
}
