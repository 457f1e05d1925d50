// Package dump reads the small text format used for demo and fixture
// hierarchies and turns it into a wave.DataContainer.
package dump

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

// Loader parses dump files.
type Loader struct {
	parser *participle.Parser[File]
}

// NewLoader builds the dump grammar.
func NewLoader() (*Loader, error) {
	parser, err := participle.Build[File](
		participle.Lexer(DumpLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("dump: failed to build parser: %w", err)
	}
	return &Loader{parser: parser}, nil
}

// Parse reads a dump from r. name is used in error positions.
func (l *Loader) Parse(name string, r io.Reader) (*File, error) {
	f, err := l.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("dump: parse error: %w", err)
	}
	return f, nil
}

// ParseString parses a dump held in memory.
func (l *Loader) ParseString(input string) (*File, error) {
	f, err := l.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("dump: parse error: %w", err)
	}
	return f, nil
}

// LoadString parses input and builds its container.
func (l *Loader) LoadString(input string) (*wave.DataContainer, error) {
	f, err := l.ParseString(input)
	if err != nil {
		return nil, err
	}
	return Build(f)
}

// LoadFile parses the dump at path and builds its container.
func (l *Loader) LoadFile(path string) (*wave.DataContainer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dump: failed to open file: %w", err)
	}
	defer file.Close()

	f, err := l.Parse(path, file)
	if err != nil {
		return nil, err
	}
	data, err := Build(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Build converts a parsed dump into a container. A dump holds either scopes
// or streams; mixing them is rejected.
func Build(f *File) (*wave.DataContainer, error) {
	switch {
	case f.HasScopes() && f.HasStreams():
		return nil, fmt.Errorf("dump: file mixes scopes and streams")
	case f.HasStreams():
		return buildTransactions(f)
	case f.HasScopes():
		return buildWaves(f)
	}
	return nil, fmt.Errorf("dump: no scopes or streams declared")
}

func buildWaves(f *File) (*wave.DataContainer, error) {
	w := wave.NewMemoryWaves()
	var add func(parent wave.ScopeRef, decl *ScopeDecl) error
	add = func(parent wave.ScopeRef, decl *ScopeDecl) error {
		if decl.Name == "" || strings.Contains(decl.Name, ".") {
			return fmt.Errorf("dump: invalid scope name %q", decl.Name)
		}
		scope := parent.Child(decl.Name)
		if err := w.AddScope(scope); err != nil {
			return err
		}
		for _, e := range decl.Entries {
			var err error
			switch {
			case e.Param != nil:
				_, err = w.AddParameter(scope, *e.Param)
			case e.Var != nil:
				_, err = w.AddVariable(scope, *e.Var)
			case e.Scope != nil:
				err = add(scope, e.Scope)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}
	for _, item := range f.Items {
		if err := add(wave.EmptyScope(), item.Scope); err != nil {
			return nil, err
		}
	}
	return wave.Waves(w), nil
}

func buildTransactions(f *File) (*wave.DataContainer, error) {
	t := wave.NewMemoryTransactions()
	for _, item := range f.Items {
		s := item.Stream
		if err := t.AddStream(wave.StreamID(s.ID), s.Name); err != nil {
			return nil, err
		}
		for _, g := range s.Generators {
			if err := t.AddGenerator(wave.StreamID(s.ID), wave.GeneratorID(g.ID), g.Name); err != nil {
				return nil, err
			}
		}
	}
	return wave.Transactions(t), nil
}
