package document

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator yields field identifiers. Implementations should be collision
// resistant; the store still guards uniqueness across the document.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

// NewID implements IDGenerator.
func (fn IDGeneratorFunc) NewID() string {
	return fn()
}

type uuidGenerator struct{}

// NewUUIDGenerator returns the default random generator (UUIDv4).
func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator hands out prefix-1, prefix-2, ... which keeps fixtures
// and golden files stable.
type SequenceGenerator struct {
	Prefix string
	next   int
}

// NewID implements IDGenerator.
func (g *SequenceGenerator) NewID() string {
	g.next++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "field"
	}
	return fmt.Sprintf("%s-%d", prefix, g.next)
}
