package wave

import (
	"fmt"

	"github.com/zyedidia/glob"
)

// WalkScopes visits every scope of c depth-first in declaration order.
// Returning false from fn stops descent below that scope.
func WalkScopes(c WaveContainer, fn func(scope ScopeRef) bool) {
	var walk func(scopes []ScopeRef)
	walk = func(scopes []ScopeRef) {
		for _, s := range scopes {
			if fn(s) {
				walk(c.ChildScopes(s))
			}
		}
	}
	walk(c.RootScopes())
}

// FindScopes returns the scopes whose dotted path matches the glob
// pattern, in depth-first declaration order.
func FindScopes(c WaveContainer, pattern string) ([]ScopeRef, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("wave: scope pattern %q: %w", pattern, err)
	}
	var found []ScopeRef
	WalkScopes(c, func(s ScopeRef) bool {
		if g.MatchString(s.String()) {
			found = append(found, s)
		}
		return true
	})
	return found, nil
}

// FindStreams returns the streams whose name matches the glob pattern, in
// backend order.
func FindStreams(c TransactionContainer, pattern string) ([]Stream, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("wave: stream pattern %q: %w", pattern, err)
	}
	var found []Stream
	for _, s := range c.Streams() {
		if g.MatchString(s.Name) {
			found = append(found, s)
		}
	}
	return found, nil
}
