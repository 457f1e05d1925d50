package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/filter"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/hierarchy"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/scope"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/wave"
)

func newScopesCmd() *cobra.Command {
	var tree bool
	cmd := &cobra.Command{
		Use:   "scopes <dump>",
		Short: "Print the scope hierarchy of a dump",
		Long: `Print the scope hierarchy of a dump with every node expanded.

With --tree the variables, parameters and generators are printed under
their scope, the way the Tree panel style shows them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadDump(args[0])
			if err != nil {
				return err
			}
			in := hierarchy.Input{
				Data:                     data,
				Filter:                   filter.New(),
				Style:                    hierarchy.Separate,
				ParameterSectionExpanded: true,
			}
			if tree {
				in.Style = hierarchy.Tree
			}
			frame := hierarchy.Build(in)
			rows := frame.Scopes
			if tree {
				rows = frame.Tree
			}
			printRows(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "include variables and generators")
	return cmd
}

func printRows(w io.Writer, rows []hierarchy.Row) {
	for _, row := range rows {
		indent := strings.Repeat("  ", row.Depth)
		switch row.Kind {
		case hierarchy.RowScope:
			fmt.Fprintf(w, "%s%s/\n", indent, row.Label)
		case hierarchy.RowParameterHeader:
			fmt.Fprintf(w, "%s[%s]\n", indent, row.Label)
		default:
			fmt.Fprintf(w, "%s%s\n", indent, row.Label)
		}
	}
}

type varsOptions struct {
	scope         string
	pattern       string
	filterType    string
	caseSensitive bool
	showParams    bool
	json          bool
}

// ScopeListing is the resolved content of one scope as printed by vars.
type ScopeListing struct {
	Scope      string   `json:"scope"`
	Parameters []string `json:"parameters,omitempty"`
	Variables  []string `json:"variables,omitempty"`
	Items      []string `json:"items,omitempty"`
}

func newVarsCmd() *cobra.Command {
	var opts varsOptions
	cmd := &cobra.Command{
		Use:   "vars <dump>",
		Short: "List the filtered variables of matching scopes",
		Long: `Resolve every scope matching --scope and print its parameters section
and the variables that pass the name filter. For transaction dumps --scope
matches stream names and the generators of each stream are listed; without
--scope the streams themselves are listed.

Examples:
  otw vars cpu.otw --scope top --filter sig
  otw vars cpu.otw --scope 'top.*' --type fuzzy --filter pc
  otw vars bus.otw --scope axi --filter re --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadDump(args[0])
			if err != nil {
				return err
			}
			listings, err := listVars(data, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.json {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(listings)
			}
			printListings(out, listings)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.scope, "scope", "", "glob matched against dotted scope paths (or stream names)")
	cmd.Flags().StringVar(&opts.pattern, "filter", "", "variable name filter text")
	cmd.Flags().StringVar(&opts.filterType, "type", "contain", "filter type: fuzzy, regex, start or contain")
	cmd.Flags().BoolVar(&opts.caseSensitive, "case-sensitive", false, "match names case sensitively")
	cmd.Flags().BoolVar(&opts.showParams, "show-params", false, "list parameters among the variables instead of a separate section")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output JSON")
	return cmd
}

func listVars(data *wave.DataContainer, opts varsOptions) ([]ScopeListing, error) {
	typ, err := filter.ParseNameFilterType(opts.filterType)
	if err != nil {
		return nil, err
	}
	f := filter.VariableFilter{Type: typ, Pattern: opts.pattern, CaseInsensitive: !opts.caseSensitive}
	scopeOpts := scope.Options{ShowParametersInScopes: opts.showParams}

	scopes, err := matchScopes(data, opts.scope)
	if err != nil {
		return nil, err
	}

	listings := make([]ScopeListing, 0, len(scopes))
	for _, st := range scopes {
		res := scope.Resolve(data, &st, f, scopeOpts)
		listing := ScopeListing{Scope: scopeLabel(st)}
		for _, p := range res.Parameters {
			listing.Parameters = append(listing.Parameters, p.Name)
		}
		for _, v := range res.Variables {
			listing.Variables = append(listing.Variables, v.Name)
		}
		for _, item := range res.Items {
			listing.Items = append(listing.Items, item.Name)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func matchScopes(data *wave.DataContainer, pattern string) ([]wave.ScopeType, error) {
	if t, ok := data.AsTransactions(); ok {
		if pattern == "" {
			return []wave.ScopeType{wave.NewStreamScope(wave.RootStreams())}, nil
		}
		streams, err := wave.FindStreams(t, pattern)
		if err != nil {
			return nil, err
		}
		if len(streams) == 0 {
			return nil, fmt.Errorf("no stream matches %q", pattern)
		}
		out := make([]wave.ScopeType, len(streams))
		for i, s := range streams {
			out[i] = wave.NewStreamScope(wave.StreamOf(s.ID, s.Name))
		}
		return out, nil
	}

	w, _ := data.AsWaves()
	if pattern == "" {
		pattern = "*"
	}
	found, err := wave.FindScopes(w, pattern)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no scope matches %q", pattern)
	}
	out := make([]wave.ScopeType, len(found))
	for i, s := range found {
		out[i] = wave.NewWaveScope(s)
	}
	return out, nil
}

func scopeLabel(st wave.ScopeType) string {
	if s, ok := st.Wave(); ok {
		return s.String()
	}
	s, _ := st.Stream()
	return s.Label()
}

func printListings(w io.Writer, listings []ScopeListing) {
	for _, l := range listings {
		fmt.Fprintf(w, "%s/\n", l.Scope)
		if len(l.Parameters) > 0 {
			fmt.Fprintf(w, "  [%s]\n", hierarchy.ParametersLabel)
			for _, p := range l.Parameters {
				fmt.Fprintf(w, "    %s\n", p)
			}
		}
		for _, v := range l.Variables {
			fmt.Fprintf(w, "  %s\n", v)
		}
		for _, item := range l.Items {
			fmt.Fprintf(w, "  %s\n", item)
		}
	}
}
