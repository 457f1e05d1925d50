package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is reported by `otw version` and `otw --version`.
var Version = "0.1.0"

// NewRootCommand builds the otw command tree. Commands that need a window
// system are added by the caller.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "otw",
		Short: "OpenTraceWave - waveform hierarchy browser",
		Long: `OpenTraceWave (otw) browses the scope hierarchy of a waveform or
transaction dump and picks variables, streams and generators to display.

Examples:
  otw ui design.otw                          # Launch the GUI panel
  otw tui design.otw                         # Launch the terminal panel
  otw scopes design.otw --tree               # Print the whole hierarchy
  otw vars design.otw --scope 'top.*' --filter clk
  otw vars design.otw --type regex --filter '^sig[0-9]+$'`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().String("config", "", "config file (default ~/.config/opentracewave/config.yaml)")

	root.AddCommand(newScopesCmd())
	root.AddCommand(newVarsCmd())
	root.AddCommand(newTUICmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the otw version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "otw %s\n", Version)
			return nil
		},
	}
}
