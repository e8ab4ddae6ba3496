package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/switchpuzzle/pkg/perm"
	"github.com/matzehuels/switchpuzzle/pkg/pipeline"
)

// solveFlags holds the solve command's flag values.
type solveFlags struct {
	formats     string
	output      string
	onlyReached bool
	glyphs      bool
	workers     int
	limit       int
	noCache     bool
	summary     bool
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "solve [puzzle.toml|puzzle.hcl|puzzle.json]",
		Short: "Evaluate every route through a puzzle",
		Long: `Evaluate every route through a puzzle.

The solve command reads a puzzle file, applies every combination of one
operation per stage to the initial arrangement, and reports which routes end
at the goal. Routes are listed in lexicographic order with the last stage
varying fastest.

Text, JSON and DOT output go to stdout unless --output is given. SVG output
and multiple formats are written next to the puzzle file.

Reports are cached locally, so re-solving an unchanged puzzle is instant.`,
		Example: `  switchpuzzle solve examples/puzzles/classic.toml
  switchpuzzle solve classic.toml --glyphs --only-reached
  switchpuzzle solve classic.hcl -f json,svg -o out/classic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &flags)
			return c.runSolve(cmd.Context(), cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): text (default), json, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&flags.onlyReached, "only-reached", false, "only render routes that reach the goal")
	cmd.Flags().BoolVar(&flags.glyphs, "glyphs", false, "draw symbols as coloured shapes")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "evaluation workers (0 = one per CPU)")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "stop after this many routes (0 = all)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a summary table")

	return cmd
}

// applyConfig fills flags the user did not set from the config file.
func (c *CLI) applyConfig(cmd *cobra.Command, flags *solveFlags) {
	set := cmd.Flags().Changed
	if !set("format") && c.Config.Format != "" {
		flags.formats = c.Config.Format
	}
	if !set("glyphs") {
		flags.glyphs = flags.glyphs || c.Config.Glyphs
	}
	if !set("workers") && c.Config.Workers > 0 {
		flags.workers = c.Config.Workers
	}
	if !set("no-cache") {
		flags.noCache = flags.noCache || c.Config.NoCache
	}
}

// runSolve evaluates the puzzle and writes its artifacts.
func (c *CLI) runSolve(ctx context.Context, stdout io.Writer, input string, flags solveFlags) error {
	formats := parseFormats(flags.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache, flags.workers)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Path:        input,
		Limit:       flags.limit,
		NoCache:     flags.noCache,
		Formats:     formats,
		OnlyReached: flags.onlyReached,
		Glyphs:      flags.glyphs,
		Style:       true,
		Logger:      c.Logger,
	}

	spin := startSpinner(ctx, fmt.Sprintf("Solving %s...", filepath.Base(input)))

	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Solve(ctx, opts)
	if err != nil {
		if !spin.interrupted() {
			spin.fail("Solve failed")
		} else {
			spin.stop()
		}
		return fmt.Errorf("solve %s: %w", input, err)
	}
	spin.stop()
	prog.done(fmt.Sprintf("Evaluated %d routes", res.Summary.Emitted))

	if err := writeArtifacts(stdout, artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   formats,
		input:     input,
		output:    flags.output,
	}); err != nil {
		return err
	}

	printStats(res.Summary.Total, res.Summary.Reached, res.CacheHit)
	if res.Summary.Partial {
		printWarning("Stopped after %d of %d routes", res.Summary.Emitted, res.Summary.Total)
	}
	if res.Summary.Reached == 0 && !res.Summary.Partial {
		printSolveHint(res.Input.Initial, res.Input.Goal)
	}
	if flags.summary {
		fmt.Fprintln(statusOut, summaryTable(res))
	}
	return nil
}

// printSolveHint names the single operation that would reach the goal.
func printSolveHint(initial, goal perm.Arrangement) {
	op, err := perm.Solve(initial, goal)
	if err != nil {
		return
	}
	printInfo("No route reaches the goal")
	printDetail("The operation %s maps %s to %s in one step", op, initial, goal)
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // puzzle path, used to derive output names
	output    string // -o value
}

// writeArtifacts writes each rendered format. A single textual format without
// an output path goes to stdout; everything else is written to files.
func writeArtifacts(stdout io.Writer, p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output == "" && p.formats[0] != pipeline.FormatSVG {
		_, err := stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	if len(p.formats) == 1 && p.output != "" {
		return writeArtifact(p.output, p.artifacts[p.formats[0]])
	}

	base := basePath(p.output, p.input)
	for _, f := range p.formats {
		if err := writeArtifact(base+"."+extension(f), p.artifacts[f]); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// extension maps an output format to its file extension.
func extension(format string) string {
	if format == pipeline.FormatText {
		return "txt"
	}
	return format
}

// parseFormats splits a comma-separated format list, dropping duplicates.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{pipeline.DefaultFormat}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return []string{pipeline.DefaultFormat}
	}
	return formats
}

// basePath derives the output path prefix for multi-format output.
// Known format extensions are stripped from output; with no output, the
// puzzle path minus its extension is used.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if ext == "txt" || slices.Contains(pipeline.ValidFormats, ext) {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}
