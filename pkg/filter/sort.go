package filter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// CompareNames orders names treating embedded digit runs as numbers of any
// length, so "sig2" sorts before "sig10". Names that only differ in leading
// zeros ("a01", "a1") fall back to plain byte order.
func CompareNames(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			ei, ej := digitEnd(a, i), digitEnd(b, j)
			if c := compareDigits(a[i:ei], b[j:ej]); c != 0 {
				return c
			}
			i, j = ei, ej
			continue
		}
		if a[i] != b[j] {
			return cmp.Compare(a[i], b[j])
		}
		i++
		j++
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return strings.Compare(a, b)
}

// compareDigits compares two decimal runs by value.
func compareDigits(x, y string) int {
	x = strings.TrimLeft(x, "0")
	y = strings.TrimLeft(y, "0")
	if len(x) != len(y) {
		return cmp.Compare(len(x), len(y))
	}
	return strings.Compare(x, y)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func digitEnd(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

// SortVariables sorts vars in place by CompareNames, breaking remaining ties
// on the scope-qualified path.
func SortVariables(vars []wave.VariableRef) {
	slices.SortStableFunc(vars, func(a, b wave.VariableRef) int {
		if c := CompareNames(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.FullPath(), b.FullPath())
	})
}
