// Package dnd resolves finished drag gestures from the palette into store
// mutations. The gesture engine itself lives in the browser; this package
// only sees the source and target identifiers it reports.
package dnd
