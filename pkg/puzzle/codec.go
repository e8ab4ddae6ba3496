package puzzle

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
	"github.com/matzehuels/switchpuzzle/pkg/perm"
)

// Format names a puzzle file encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatTOML, FormatHCL, FormatJSON}

// DetectFormat picks a format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidFormat, "cannot infer puzzle format from %q (want .toml, .hcl or .json)", path)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTOML, FormatHCL, FormatJSON:
		return f, nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidFormat, "unsupported puzzle format %q", s)
}

// Load reads and decodes the puzzle file at path.
func Load(path string) (*Puzzle, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "puzzle file %s", path)
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read puzzle %s", path)
	}
	return decode(data, format, filepath.Base(path))
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*Puzzle, error) {
	return decode(data, format, "puzzle."+string(format))
}

func decode(data []byte, format Format, filename string) (*Puzzle, error) {
	switch format {
	case FormatTOML:
		return decodeTOML(data)
	case FormatHCL:
		return decodeHCL(data, filename)
	case FormatJSON:
		return decodeJSON(data)
	}
	return nil, perrors.New(perrors.ErrCodeInvalidFormat, "unsupported puzzle format %q", format)
}

func decodeTOML(data []byte) (*Puzzle, error) {
	var p Puzzle
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidPuzzle, err, "decode TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidPuzzle, "unknown key %q", undecoded[0].String())
	}
	return &p, nil
}

func decodeJSON(data []byte) (*Puzzle, error) {
	var p Puzzle
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidPuzzle, err, "decode JSON")
	}
	return &p, nil
}

// hclPuzzle is the decoding target for HCL puzzle files.
type hclPuzzle struct {
	Initial string      `hcl:"initial"`
	Goal    string      `hcl:"goal"`
	Stages  []*hclStage `hcl:"stage,block"`
}

type hclStage struct {
	Name  string   `hcl:"name,label"`
	Count int      `hcl:"count,optional"`
	Ops   []string `hcl:"ops"`
}

// decodeHCL decodes in two passes: the first reads initial to learn the
// arity, the second decodes the whole body with arity-dependent variables in
// scope.
func decodeHCL(data []byte, filename string) (*Puzzle, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidPuzzle, diags, "parse HCL")
	}

	schema := &hcl.BodySchema{Attributes: []hcl.AttributeSchema{{Name: "initial"}}}
	content, _, diags := file.Body.PartialContent(schema)
	if diags.HasErrors() {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidPuzzle, diags, "parse HCL")
	}
	var initial string
	if attr, ok := content.Attributes["initial"]; ok {
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &initial); diags.HasErrors() {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidPuzzle, diags, "decode initial")
		}
	}

	var raw hclPuzzle
	if diags := gohcl.DecodeBody(file.Body, evalContext(initial), &raw); diags.HasErrors() {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidPuzzle, diags, "decode HCL")
	}

	p := &Puzzle{Initial: raw.Initial, Goal: raw.Goal, Stages: make([]StageDef, len(raw.Stages))}
	for i, s := range raw.Stages {
		p.Stages[i] = StageDef{Name: s.Name, Count: s.Count, Ops: s.Ops}
	}
	return p, nil
}

// evalContext exposes arity, identity and wildcard to HCL expressions.
// An unparsable initial yields arity 0 and an empty identity; Build reports
// the real error later.
func evalContext(initial string) *hcl.EvalContext {
	n := 0
	if a, err := perm.ParseArrangement(initial); err == nil {
		n = a.Len()
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"arity":    cty.NumberIntVal(int64(n)),
			"identity": cty.StringVal(perm.Identity(n).String()),
			"wildcard": cty.StringVal(Wildcard),
		},
	}
}

// Encode writes p in the given format.
func Encode(w io.Writer, p *Puzzle, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(p)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(p)
	case FormatHCL:
		return encodeHCL(w, p)
	}
	return perrors.New(perrors.ErrCodeInvalidFormat, "unsupported puzzle format %q", format)
}

func encodeHCL(w io.Writer, p *Puzzle) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("initial", cty.StringVal(p.Initial))
	body.SetAttributeValue("goal", cty.StringVal(p.Goal))

	for _, s := range p.Stages {
		body.AppendNewline()
		block := body.AppendNewBlock("stage", []string{s.Name}).Body()
		if s.Count > 0 {
			block.SetAttributeValue("count", cty.NumberIntVal(int64(s.Count)))
		}
		ops := cty.ListValEmpty(cty.String)
		if len(s.Ops) > 0 {
			vals := make([]cty.Value, len(s.Ops))
			for i, op := range s.Ops {
				vals[i] = cty.StringVal(op)
			}
			ops = cty.ListVal(vals)
		}
		block.SetAttributeValue("ops", ops)
	}

	_, err := f.WriteTo(w)
	return err
}
