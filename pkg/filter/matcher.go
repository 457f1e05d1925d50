package filter

import (
	"regexp"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

type matchMode uint8

const (
	matchAll matchMode = iota
	matchNone
	matchFuzzy
	matchRegexp
)

// Matcher is a compiled VariableFilter. Compile once per redraw and call
// Match for every candidate name. The zero Matcher matches everything.
type Matcher struct {
	mode     matchMode
	pattern  string
	foldCase bool
	re       *regexp.Regexp
	err      error
}

// Compile turns f into a Matcher. It never fails: a pattern that does not
// compile yields a Matcher that matches nothing, and Err reports why.
func Compile(f VariableFilter) Matcher {
	if f.Pattern == "" {
		return Matcher{mode: matchAll}
	}
	switch f.Type {
	case Fuzzy:
		return Matcher{mode: matchFuzzy, pattern: f.Pattern, foldCase: f.CaseInsensitive}
	case Regex:
		return compileRegexp(f.Pattern, f.CaseInsensitive)
	case Start:
		return compileRegexp("^"+regexp.QuoteMeta(f.Pattern), f.CaseInsensitive)
	default:
		return compileRegexp(regexp.QuoteMeta(f.Pattern), f.CaseInsensitive)
	}
}

func compileRegexp(expr string, foldCase bool) Matcher {
	if foldCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return Matcher{mode: matchNone, err: err}
	}
	return Matcher{mode: matchRegexp, re: re, foldCase: foldCase}
}

// Match reports whether name passes the filter.
func (m Matcher) Match(name string) bool {
	switch m.mode {
	case matchAll:
		return true
	case matchNone:
		return false
	case matchFuzzy:
		if m.foldCase {
			return fuzzy.MatchFold(m.pattern, name)
		}
		return fuzzy.Match(m.pattern, name)
	case matchRegexp:
		return m.re.MatchString(name)
	}
	return false
}

// MatchesAll reports whether the matcher is the empty-pattern pass-through.
func (m Matcher) MatchesAll() bool { return m.mode == matchAll }

// Err returns the compile error for a pattern that fell back to matching
// nothing, or nil.
func (m Matcher) Err() error { return m.err }

// ValidRegex reports whether pattern compiles as a regular expression.
func ValidRegex(pattern string) bool {
	_, err := regexp.Compile(pattern)
	return err == nil
}

// MatchingVariables keeps the variables whose name passes f, in input
// order.
func (f VariableFilter) MatchingVariables(vars []wave.VariableRef) []wave.VariableRef {
	return Select(Compile(f), vars, func(v wave.VariableRef) string { return v.Name })
}

// Select keeps the items whose name passes m, in input order.
func Select[T any](m Matcher, items []T, name func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if m.Match(name(item)) {
			out = append(out, item)
		}
	}
	return out
}

// FilteredVariables is the display order of the variable list: the
// variables that pass f, sorted by name with numeric-aware ordering.
func FilteredVariables(vars []wave.VariableRef, f VariableFilter) []wave.VariableRef {
	out := f.MatchingVariables(vars)
	SortVariables(out)
	return out
}
