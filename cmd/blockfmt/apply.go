package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/blockfmt/internal/devutil"
	"github.com/dshills/blockfmt/internal/heading"
)

func newApplyCmd(g *globals) *cobra.Command {
	var (
		format   string
		html     bool
		backward bool
		times    int
	)

	cmd := &cobra.Command{
		Use:   "apply [markup|-]",
		Short: "Apply a block format to the selected blocks",
		Long: `Apply a block format to the blocks touched by the selection and print the
result. Input is model markup with [ and ] selection markers, e.g.

  blockfmt apply --format heading1 '<paragraph>Intro[]</paragraph>'

With --html the input and output are HTML and the selection starts at the
beginning of the first block. Applying the active format reverts to the
default format.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, 0)
			if err != nil {
				return err
			}

			ed, err := g.newEditor()
			if err != nil {
				return err
			}
			defer ed.Destroy()

			if html {
				err = ed.SetData(input)
			} else {
				var opts []devutil.Option
				if backward {
					opts = append(opts, devutil.WithBackward())
				}
				err = ed.SetModelData(input, opts...)
			}
			if err != nil {
				return fmt.Errorf("load input: %w", err)
			}

			for i := 0; i < times; i++ {
				if err := ed.Execute(heading.CommandName, format); err != nil {
					return err
				}
			}

			out := ed.ModelData()
			if html {
				if out, err = ed.GetData(); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Format id to apply (default format when empty)")
	cmd.Flags().BoolVar(&html, "html", false, "Read and write HTML instead of model markup")
	cmd.Flags().BoolVar(&backward, "backward", false, "Treat the selection as backward")
	cmd.Flags().IntVarP(&times, "times", "n", 1, "Number of times to execute the command")
	return cmd
}
