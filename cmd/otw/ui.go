package main

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWave/cmd/otw/cmd"
	appui "github.com/OpenTraceLab/OpenTraceWave/internal/ui"
)

// newUICmd lives next to main because the Gio window owns the main thread.
func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui [dump]",
		Short: "Launch the interactive GUI",
		Long: `Launch the hierarchy panel in a Gio window. The filter settings and the
parameters section state are restored from the session file and saved
again when the window closes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			env, err := cmd.NewEnv(c, args)
			if err != nil {
				return err
			}
			return appui.Run(env.Config, env.Session, env.Log, env.SaveSession)
		},
	}
}
