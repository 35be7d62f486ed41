// Package catalog enumerates the field kinds the designer supports, the
// default configuration each dropped field starts with, and the palette of
// draggable templates shown next to the canvas.
//
// The enumeration is closed, but nothing in this package rejects other
// strings: DefaultConfig works for any kind, and Known/Suggest let callers
// decide how strict they want to be.
package catalog
