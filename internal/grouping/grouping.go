// Package grouping derives output-group labels from source URLs.
//
// Label derivation is a pluggable strategy: the engine only sees opaque
// labels and never interprets them.
package grouping

import (
	"github.com/lepinkainen/config-forge/pkg/urlutils"
)

// Grouper assigns an output-group label to a source URL.
type Grouper interface {
	Group(sourceURL string) string
}

// FilenameGrouper labels a source by the basename of its URL path with the
// extension stripped, so "https://b.example/Canada.txt" lands in "Canada".
type FilenameGrouper struct {
	// Fallback is used when no label can be derived from the URL.
	Fallback string
	// Overrides remaps derived labels, letting mirrors with divergent
	// filenames share a group.
	Overrides map[string]string
}

// NewFilenameGrouper creates a grouper with the given fallback label.
func NewFilenameGrouper(fallback string) *FilenameGrouper {
	if fallback == "" {
		fallback = "misc"
	}
	return &FilenameGrouper{Fallback: fallback}
}

// Group implements Grouper
func (g *FilenameGrouper) Group(sourceURL string) string {
	label := urlutils.PathBase(sourceURL)
	if label == "" {
		return g.Fallback
	}

	if mapped, ok := g.Overrides[label]; ok {
		return mapped
	}
	return label
}
