package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/switchpuzzle/pkg/pipeline"
	"github.com/matzehuels/switchpuzzle/pkg/route"
)

// browseCommand creates the browse command for interactive route inspection.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		onlyReached bool
		limit       int
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "browse [puzzle file]",
		Short: "Browse route reports interactively",
		Long: `Browse route reports interactively.

The browse command evaluates a puzzle and opens a terminal view listing every
route. The selected route is drawn step by step as coloured shapes. Press r
to toggle between all routes and only those that reach the goal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := pipeline.Options{Path: args[0], Limit: limit, NoCache: noCache}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			in, err := pipeline.Load(opts)
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			runner, err := c.newRunner(noCache, c.Config.Workers)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			spin := startSpinner(ctx, fmt.Sprintf("Evaluating %d routes...", route.Count(in.Stages)))
			reports, _, _, err := runner.EvaluateWithCacheInfo(ctx, uuid.NewString(), in, opts)
			if err != nil {
				spin.fail("Evaluation failed")
				return err
			}
			spin.stop()

			model := NewReportListModel(in, reports)
			model.OnlyReached = onlyReached
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&onlyReached, "only-reached", false, "start with only the routes that reach the goal")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many routes (0 = all)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
