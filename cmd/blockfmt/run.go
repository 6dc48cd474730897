package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/blockfmt/internal/plugin/lua"
)

func newRunCmd(g *globals) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run <script.lua> [markup]",
		Short: "Run a Lua script against an editor",
		Long: `Run a Lua script with a global editor table:

  editor.execute(name [, value])  run a command
  editor.state(name)              command state (format id, or bool for undo/redo)
  editor.data()                   document as model markup
  editor.set_data(markup)         replace the document
  editor.commands()               registered command names

The optional markup argument is loaded before the script runs.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := g.newEditor()
			if err != nil {
				return err
			}
			defer ed.Destroy()

			if len(args) > 1 {
				if err := ed.SetModelData(args[1]); err != nil {
					return err
				}
			}

			state := lua.NewState(
				lua.WithOutput(cmd.OutOrStdout()),
				lua.WithExecutionTimeout(timeout),
				lua.WithLogger(g.logger.Named("lua")),
			)
			defer state.Close()

			lua.OpenEditor(state, ed)
			return state.DoFile(cmd.Context(), args[0])
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", lua.DefaultExecutionTimeout, "Script execution timeout (0 disables)")
	return cmd
}
