// Package document holds the designer's state tree (form, sections, fields)
// and the Store that owns it. The Store exposes the nine edit operations
// presentation layers dispatch, keeps field ids unique across the whole
// document, keeps the selection pointing at an existing field and notifies
// observers synchronously after each change.
package document
