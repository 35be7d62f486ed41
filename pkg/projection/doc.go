// Package projection derives the serialisable form schema from the document
// store and encodes it for preview, JSON view and export:
//
//	{"title": ..., "sections": [{"id", "title", "fields": [{"id", "type", "config"}]}]}
//
// Non-field entries are filtered out.
package projection
