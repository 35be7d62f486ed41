package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm      ChromeClass = "fd-form"
	ClassTitle     ChromeClass = "fd-title"
	ClassSection   ChromeClass = "fd-section"
	ClassDropZone  ChromeClass = "fd-dropzone"
	ClassField     ChromeClass = "fd-field"
	ClassSelected  ChromeClass = "is-selected"
	ClassErrors    ChromeClass = "fd-errors"
	ClassActions   ChromeClass = "fd-actions"
	ClassEmptyHint ChromeClass = "fd-empty"
)
