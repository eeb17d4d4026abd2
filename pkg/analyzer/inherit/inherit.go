// Package inherit reports inheritance depth for class declarations.
package inherit

import "github.com/reposcope/reposcope/pkg/syntax"

// Depth returns the depth-of-inheritance for a class: the number of
// direct superclass references. Historically this metric reported direct
// parents rather than the full ancestor chain, and that behavior is kept.
func Depth(cls syntax.Class) int {
	return len(cls.Superclasses)
}
