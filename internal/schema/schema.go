// Package schema assembles table descriptions and table listings from a
// metadata.Source.
package schema

import "github.com/koustreak/dbmcp/internal/metadata"

// Introspector reads schema information through one metadata source.
// It keeps no state between calls.
type Introspector struct {
	src metadata.Source
}

// New creates an Introspector reading from src.
func New(src metadata.Source) *Introspector {
	return &Introspector{src: src}
}
