package mapping

import (
	"fmt"
	"os"

	"github.com/helviojunior/brparser/pkg/series"
	"github.com/helviojunior/brparser/pkg/text"
	"gopkg.in/yaml.v3"
)

// Column assigns registered expressions to a CSV column.
type Column struct {
	Name        string   `yaml:"name"`
	Expressions []string `yaml:"expressions"`

	// Replace rewrites the column in place with the output of the last
	// transform instead of appending derived columns.
	Replace bool `yaml:"replace"`
}

// Mapping is the column to expression assignment loaded from YAML.
type Mapping struct {
	Columns []Column `yaml:"columns"`
}

// Load reads and validates a mapping file. Every referenced expression
// must be registered.
func Load(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes and validates mapping YAML.
func Parse(data []byte) (*Mapping, error) {
	m := &Mapping{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}

	if len(m.Columns) == 0 {
		return nil, fmt.Errorf("mapping has no columns")
	}

	for _, c := range m.Columns {
		if c.Name == "" {
			return nil, fmt.Errorf("mapping column with empty name")
		}
		if len(c.Expressions) == 0 {
			return nil, fmt.Errorf("column %q has no expressions", c.Name)
		}
		for _, e := range c.Expressions {
			if _, ok := series.Lookup(e); !ok {
				return nil, fmt.Errorf("column %q references unknown expression %q", c.Name, e)
			}
		}
	}

	return m, nil
}

// ColumnFor matches a CSV header cell against the mapping, comparing
// slugged names so accents and punctuation do not matter.
func (m *Mapping) ColumnFor(header string) (*Column, bool) {
	want := text.Slug(header)
	for i := range m.Columns {
		if text.Slug(m.Columns[i].Name) == want {
			return &m.Columns[i], true
		}
	}
	return nil, false
}
