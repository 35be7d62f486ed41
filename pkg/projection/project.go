package projection

import "github.com/goliatone/go-formdesigner/pkg/document"

// Project derives the export schema from a document. Only entries tagged as
// fields survive; configs are deep copied so the result never aliases store
// state. Identical input always yields identical output.
func Project(doc document.FormDocument) Schema {
	schema := Schema{
		Title:    doc.Title,
		Sections: make([]Section, 0, len(doc.Sections)),
	}
	for _, section := range doc.Sections {
		out := Section{
			ID:     section.ID,
			Title:  section.Title,
			Fields: make([]Field, 0, len(section.Fields)),
		}
		for _, entry := range section.Fields {
			if entry.Type != document.EntryField {
				continue
			}
			config := entry.Config.Clone()
			if config == nil {
				config = document.Config{}
			}
			out.Fields = append(out.Fields, Field{
				ID:     entry.ID,
				Type:   entry.Kind,
				Config: config,
			})
		}
		schema.Sections = append(schema.Sections, out)
	}
	return schema
}

// FromStore projects the store's current state.
func FromStore(store *document.Store) Schema {
	if store == nil {
		return Schema{Sections: []Section{}}
	}
	return Project(store.Snapshot())
}
