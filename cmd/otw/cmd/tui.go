package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWave/internal/tui"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [dump]",
		Short: "Launch the terminal hierarchy panel",
		Long: `Launch the hierarchy panel in the terminal.

Keys:
  up/down j/k   move             enter   select scope / add variable
  left/right    collapse/expand  tab     switch pane (Separate style)
  /             edit filter      t       next filter type
  c             toggle case      x       clear filter
  a             add all          q esc   quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := NewEnv(cmd, args)
			if err != nil {
				return err
			}
			palette, err := env.Config.Palette()
			if err != nil {
				return err
			}

			model := tui.NewModel(env.Session, env.Config.Style(), env.Config.ScopeOptions())
			app, err := tui.New(model, palette, env.Log)
			if err != nil {
				return err
			}
			err = app.Run(cmd.Context())
			app.Close()
			env.SaveSession()
			return err
		},
	}
}
