package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/switchpuzzle/pkg/perm"
	"github.com/matzehuels/switchpuzzle/pkg/render"
)

// applyCommand creates the apply command.
func (c *CLI) applyCommand() *cobra.Command {
	var glyphs bool

	cmd := &cobra.Command{
		Use:   "apply <arrangement> <operation>...",
		Short: "Apply operations to an arrangement",
		Long: `Apply one or more operations to an arrangement, in order.

Operation i, written as digits or comma-separated indices, places the symbol
at position op[i] of the input at position i of the output. Each intermediate
arrangement is printed on its own line; the last line is the result.`,
		Example: `  switchpuzzle apply 1234 2134 1324
  switchpuzzle apply 1,2,3,4,5,6,7,8,9,10 10,9,8,7,6,5,4,3,2,1`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("glyphs") {
				glyphs = c.Config.Glyphs
			}

			current, err := perm.ParseArrangement(args[0])
			if err != nil {
				return fmt.Errorf("arrangement %q: %w", args[0], err)
			}
			if glyphs {
				printKeyValue("start", render.Symbols(current, true))
			}

			for _, raw := range args[1:] {
				op, err := perm.ParseOperation(raw)
				if err != nil {
					return fmt.Errorf("operation %q: %w", raw, err)
				}
				next, err := perm.Apply(op, current)
				if err != nil {
					return err
				}
				c.Logger.Debug("applied operation", "op", op, "from", current, "to", next)
				current = next

				fmt.Fprintln(cmd.OutOrStdout(), current)
				if glyphs {
					printKeyValue(op.String(), render.Symbols(current, true))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&glyphs, "glyphs", false, "also draw each step as coloured shapes")

	return cmd
}
