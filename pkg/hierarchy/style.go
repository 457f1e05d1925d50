package hierarchy

// Style is the panel layout.
type Style int

const (
	// Separate draws scopes and variables in two scrollable panes.
	Separate Style = iota
	// Tree interleaves scopes and their variables in one pane.
	Tree
)

// ParseStyle reads a persisted style name. Unknown names fall back to
// Separate.
func ParseStyle(s string) Style {
	if s == "Tree" {
		return Tree
	}
	return Separate
}

func (s Style) String() string {
	if s == Tree {
		return "Tree"
	}
	return "Separate"
}
