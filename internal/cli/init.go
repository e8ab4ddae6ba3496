package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
	"github.com/matzehuels/switchpuzzle/pkg/puzzle"
)

// initCommand creates the init command that writes a starter puzzle.
func (c *CLI) initCommand() *cobra.Command {
	var (
		arity  int
		stages int
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter puzzle file",
		Long: `Write a starter puzzle file.

The starter puzzle has the given arity and number of stages. Each stage offers
only the identity operation and the goal is the reversed initial arrangement,
so the puzzle has one route that misses the goal until you edit the menus.

The file format follows the extension: .toml (default), .hcl or .json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "puzzle.toml"
			if len(args) == 1 {
				path = args[0]
			}
			if arity < 1 {
				return perrors.New(perrors.ErrCodeInvalidInput, "arity must be >= 1, got %d", arity)
			}
			if stages < 1 {
				return perrors.New(perrors.ErrCodeInvalidInput, "stages must be >= 1, got %d", stages)
			}

			format, err := puzzle.DetectFormat(path)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			var buf bytes.Buffer
			if err := puzzle.Encode(&buf, puzzle.Template(arity, stages), format); err != nil {
				return fmt.Errorf("encode puzzle: %w", err)
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			c.Logger.Debug("wrote starter puzzle", "path", path, "format", format, "arity", arity, "stages", stages)
			printSuccess("Created %s", path)
			printNextStep("Solve it", "switchpuzzle solve "+path)
			return nil
		},
	}

	cmd.Flags().IntVar(&arity, "arity", 4, "number of symbols")
	cmd.Flags().IntVar(&stages, "stages", 2, "number of stages")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
