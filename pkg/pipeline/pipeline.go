// Package pipeline provides the solve pipeline shared by the CLI and the
// HTTP API.
//
// This package implements the complete load → evaluate → render pipeline so
// that every entry point validates, caches, and renders puzzles the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode a puzzle file (TOML, HCL, or JSON) and build a validated route.Input
//  2. Evaluate: Stream every route through the engine, or read the reports from cache
//  3. Render: Generate output in the requested formats (text, JSON, DOT, SVG)
//
// # Usage
//
// Create a Runner and solve a puzzle:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Solve(ctx, pipeline.Options{
//	    Path:    "examples/puzzles/classic.toml",
//	    Formats: []string{pipeline.FormatText},
//	    Glyphs:  true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifacts[pipeline.FormatText])
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
	"github.com/matzehuels/switchpuzzle/pkg/puzzle"
	"github.com/matzehuels/switchpuzzle/pkg/route"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = FormatText

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatText, FormatJSON, FormatDOT, FormatSVG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one solve.
type Options struct {
	// Input: exactly one of Puzzle, Path, or Data.
	Puzzle *puzzle.Puzzle `json:"-"`
	Path   string         `json:"-"`
	Data   []byte         `json:"-"`

	// Format is the encoding of Data. Defaults to JSON.
	Format puzzle.Format `json:"format,omitempty"`

	// Evaluation options
	Limit   int  `json:"limit,omitempty"` // stop after this many reports; 0 means all
	NoCache bool `json:"no_cache,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	OnlyReached bool     `json:"only_reached,omitempty"`
	Glyphs      bool     `json:"glyphs,omitempty"`
	Style       bool     `json:"-"` // ANSI colours in text output

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and hooks.
	RunID string

	// Input is the validated puzzle.
	Input route.Input

	// Reports holds every emitted report in enumeration order, reached or not.
	Reports []route.Report

	// Summary counts the reports.
	Summary route.Summary

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// CacheHit reports whether Reports came from the cache.
	CacheHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Stages       int
	Routes       int
	LoadTime     time.Duration
	EvaluateTime time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return perrors.ValidateFormat(format, ValidFormats...)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	sources := 0
	for _, set := range []bool{o.Puzzle != nil, o.Path != "", len(o.Data) > 0} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return perrors.New(perrors.ErrCodeInvalidInput, "exactly one of puzzle, path or data is required")
	}
	if o.Limit < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "limit must be >= 0, got %d", o.Limit)
	}
	if len(o.Data) > 0 && o.Format == "" {
		o.Format = puzzle.FormatJSON
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Wants reports whether format was requested.
func (o *Options) Wants(format string) bool {
	return slices.Contains(o.Formats, format)
}
