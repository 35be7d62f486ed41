package projection

import (
	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/document"
)

// Schema is the read-only export shape used by preview and JSON view.
type Schema struct {
	Title    string    `json:"title" yaml:"title"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section is one exported section.
type Section struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title" yaml:"title"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field is one exported field. Type carries the field kind string.
type Field struct {
	ID     string          `json:"id" yaml:"id"`
	Type   catalog.Kind    `json:"type" yaml:"type"`
	Config document.Config `json:"config" yaml:"config"`
}

// FieldCount reports how many fields the schema holds across sections.
func (s Schema) FieldCount() int {
	total := 0
	for _, section := range s.Sections {
		total += len(section.Fields)
	}
	return total
}
