package dump

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// DumpLexer tokenizes hierarchy dump files. Names that are not plain
// identifiers (bus slices, escaped Verilog names) are written as quoted
// strings. Keywords are plain identifiers matched by the grammar, so
// "var$x" or "gen$1" stay whole names.
var DumpLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `(?:#|//)[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Integer", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
})
