package filter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// NameFilterType selects how the filter text is matched against names.
type NameFilterType int

const (
	Fuzzy NameFilterType = iota
	Regex
	Start
	Contain
)

var nameFilterTypes = []struct {
	typ   NameFilterType
	key   string
	label string
}{
	{Fuzzy, "Fuzzy", "Fuzzy"},
	{Regex, "Regex", "Regular expression"},
	{Start, "Start", "Variable starts with"},
	{Contain, "Contain", "Variable contains"},
}

// AllNameFilterTypes lists every filter type in menu order.
func AllNameFilterTypes() []NameFilterType {
	out := make([]NameFilterType, len(nameFilterTypes))
	for i, t := range nameFilterTypes {
		out[i] = t.typ
	}
	return out
}

// String returns the human readable label shown in the type menu.
func (t NameFilterType) String() string {
	for _, entry := range nameFilterTypes {
		if entry.typ == t {
			return entry.label
		}
	}
	return fmt.Sprintf("NameFilterType(%d)", int(t))
}

// Key returns the stable name used when the filter is persisted.
func (t NameFilterType) Key() string {
	for _, entry := range nameFilterTypes {
		if entry.typ == t {
			return entry.key
		}
	}
	return ""
}

// ParseNameFilterType accepts a persisted key ("Contain"), a menu label
// ("Variable contains") or a short CLI spelling ("contains", "prefix").
func ParseNameFilterType(s string) (NameFilterType, error) {
	needle := strings.TrimSpace(s)
	for _, entry := range nameFilterTypes {
		if strings.EqualFold(needle, entry.key) || strings.EqualFold(needle, entry.label) {
			return entry.typ, nil
		}
	}
	switch strings.ToLower(needle) {
	case "regexp", "re":
		return Regex, nil
	case "starts-with", "startswith", "prefix":
		return Start, nil
	case "contains", "substring":
		return Contain, nil
	}
	return Contain, fmt.Errorf("filter: unknown name filter type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t NameFilterType) MarshalText() ([]byte, error) {
	key := t.Key()
	if key == "" {
		return nil, fmt.Errorf("filter: invalid name filter type %d", int(t))
	}
	return []byte(key), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *NameFilterType) UnmarshalText(text []byte) error {
	parsed, err := ParseNameFilterType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t NameFilterType) MarshalYAML() (interface{}, error) {
	text, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *NameFilterType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(s))
}

// VariableFilter is the user's name filter: the matching strategy, the
// query text and whether case is ignored. An empty Pattern matches
// everything regardless of Type.
type VariableFilter struct {
	Type            NameFilterType `yaml:"name_filter_type" json:"name_filter_type"`
	Pattern         string         `yaml:"name_filter_str" json:"name_filter_str"`
	CaseInsensitive bool           `yaml:"name_filter_case_insensitive" json:"name_filter_case_insensitive"`
}

// New returns the session default: substring match, empty text, ignoring
// case.
func New() VariableFilter {
	return VariableFilter{
		Type:            Contain,
		Pattern:         "",
		CaseInsensitive: true,
	}
}

// IsEmpty reports whether the filter imposes no restriction.
func (f VariableFilter) IsEmpty() bool { return f.Pattern == "" }

// ShowsError reports whether the filter input should carry the error cue:
// a Regex filter whose text does not compile.
func (f VariableFilter) ShowsError() bool {
	return f.Type == Regex && !ValidRegex(f.Pattern)
}
