package document

// Clone returns a deep copy of the document.
func (d FormDocument) Clone() FormDocument {
	out := d
	out.Sections = make([]Section, len(d.Sections))
	for idx, section := range d.Sections {
		out.Sections[idx] = section.Clone()
	}
	return out
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	out.Fields = make([]Field, len(s.Fields))
	for idx, field := range s.Fields {
		out.Fields[idx] = field.Clone()
	}
	return out
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	out.Config = f.Config.Clone()
	return out
}
