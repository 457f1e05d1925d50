package dump

// File is a parsed dump: a list of top-level scopes or streams.
type File struct {
	Items []*Item `@@*`
}

// Item is one top-level declaration.
type Item struct {
	Scope  *ScopeDecl  `  @@`
	Stream *StreamDecl `| @@`
}

// ScopeDecl declares a scope and its contents.
// Example: scope top { param WIDTH var clk scope cpu { var pc } }
type ScopeDecl struct {
	Name    string        `"scope":Ident @( Ident | String )`
	Entries []*ScopeEntry `LBrace @@* RBrace`
}

// ScopeEntry is one declaration inside a scope body.
type ScopeEntry struct {
	Param *string    `  "param":Ident @( Ident | String )`
	Var   *string    `| "var":Ident @( Ident | String )`
	Scope *ScopeDecl `| @@`
}

// StreamDecl declares a transaction stream.
// Example: stream 1 bus { gen 10 read gen 11 write }
type StreamDecl struct {
	ID         uint64     `"stream":Ident @Integer`
	Name       string     `@( Ident | String )`
	Generators []*GenDecl `LBrace @@* RBrace`
}

// GenDecl declares a generator of the enclosing stream.
type GenDecl struct {
	ID   uint64 `"gen":Ident @Integer`
	Name string `@( Ident | String )`
}

// HasScopes reports whether any top-level item is a scope.
func (f *File) HasScopes() bool {
	for _, item := range f.Items {
		if item.Scope != nil {
			return true
		}
	}
	return false
}

// HasStreams reports whether any top-level item is a stream.
func (f *File) HasStreams() bool {
	for _, item := range f.Items {
		if item.Stream != nil {
			return true
		}
	}
	return false
}
