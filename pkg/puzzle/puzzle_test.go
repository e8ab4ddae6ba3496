package puzzle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
	"github.com/matzehuels/switchpuzzle/pkg/route"
)

const sampleTOML = `
initial = "1234"
goal    = "2314"

[[stage]]
name  = "Camino 1"
count = 1
ops   = ["2134"]

[[stage]]
count = 2
ops   = ["1324", "1234"]
`

const sampleHCL = `
initial = "1234"
goal    = "2314"

stage "Camino 1" {
  count = 1
  ops   = ["2134"]
}

stage "" {
  ops = ["1324", identity]
}
`

const sampleJSON = `{
  "initial": "1234",
  "goal": "2314",
  "stages": [
    {"name": "Camino 1", "count": 1, "ops": ["2134"]},
    {"count": 2, "ops": ["1324", "1234"]}
  ]
}`

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatTOML, sampleTOML},
		{FormatHCL, sampleHCL},
		{FormatJSON, sampleJSON},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			p, err := Decode([]byte(tt.data), tt.format)
			require.NoError(t, err)

			in, err := p.Build()
			require.NoError(t, err)
			require.Len(t, in.Stages, 2)
			assert.Equal(t, "Camino 1", in.Stages[0].Name)
			assert.Equal(t, "Path 2", in.Stages[1].Name)

			reports, err := route.Evaluate(in)
			require.NoError(t, err)
			require.Len(t, reports, 2)
			assert.True(t, reports[0].Reached)
			assert.Equal(t, "2134 (1) -> 1324 (1)", reports[0].Trail())
			assert.Equal(t, "2134 (1) -> 1234 (2)", reports[1].Trail())
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		p    Puzzle
		code perrors.Code
	}{
		{
			name: "duplicate initial",
			p:    Puzzle{Initial: "1123", Goal: "1234", Stages: []StageDef{{Ops: []string{"1234"}}}},
			code: perrors.ErrCodeInvalidArrangement,
		},
		{
			name: "bad goal",
			p:    Puzzle{Initial: "1234", Goal: "12", Stages: []StageDef{{Ops: []string{"1234"}}}},
			code: perrors.ErrCodeInvalidArrangement,
		},
		{
			name: "no stages",
			p:    Puzzle{Initial: "1234", Goal: "1234"},
			code: perrors.ErrCodeEmptyStageList,
		},
		{
			name: "blank menu",
			p:    Puzzle{Initial: "1234", Goal: "1234", Stages: []StageDef{{Ops: []string{" ", ""}}}},
			code: perrors.ErrCodeEmptyStageMenu,
		},
		{
			name: "count mismatch",
			p:    Puzzle{Initial: "1234", Goal: "1234", Stages: []StageDef{{Count: 3, Ops: []string{"1234", "2134"}}}},
			code: perrors.ErrCodeStageCountMismatch,
		},
		{
			name: "negative count",
			p:    Puzzle{Initial: "1234", Goal: "1234", Stages: []StageDef{{Count: -1, Ops: []string{"1234"}}}},
			code: perrors.ErrCodeInvalidPuzzle,
		},
		{
			name: "bad operation",
			p:    Puzzle{Initial: "1234", Goal: "1234", Stages: []StageDef{{Ops: []string{"1224"}}}},
			code: perrors.ErrCodeInvalidOperation,
		},
		{
			name: "operation arity",
			p:    Puzzle{Initial: "1234", Goal: "1234", Stages: []StageDef{{Ops: []string{"213"}}}},
			code: perrors.ErrCodeInvalidOperation,
		},
		{
			name: "bad stage name",
			p:    Puzzle{Initial: "1234", Goal: "1234", Stages: []StageDef{{Name: "a\nb", Ops: []string{"1234"}}}},
			code: perrors.ErrCodeInvalidPuzzle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.p.Build()
			require.Error(t, err)
			assert.Equal(t, tt.code, perrors.GetCode(err), err.Error())
		})
	}
}

func TestBuildIgnoresBlankEntries(t *testing.T) {
	p := Puzzle{Initial: "1234", Goal: "1234", Stages: []StageDef{{Count: 2, Ops: []string{"1234", "", "  2134 "}}}}
	in, err := p.Build()
	require.NoError(t, err)
	require.Len(t, in.Stages[0].Ops, 2)
	assert.Equal(t, "2134", in.Stages[0].Ops[1].Label())
}

func TestBuildWildcard(t *testing.T) {
	p := Puzzle{Initial: "123", Goal: "321", Stages: []StageDef{{Count: 1, Ops: []string{Wildcard}}, {Ops: []string{"123"}}}}
	in, err := p.Build()
	require.NoError(t, err)
	assert.Equal(t, 6, in.Stages[0].Len())
	assert.Equal(t, 6, route.Count(in.Stages))

	big := Puzzle{Initial: "1,2,3,4,5,6,7,8,9", Goal: "1,2,3,4,5,6,7,8,9", Stages: []StageDef{{Ops: []string{Wildcard}}}}
	_, err = big.Build()
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidPuzzle))
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode([]byte("initial = \"12\"\ngoal = \"21\"\ncolour = \"red\"\n"), FormatTOML)
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidPuzzle), "TOML: %v", err)

	_, err = Decode([]byte(`{"initial":"12","goal":"21","colour":"red"}`), FormatJSON)
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidPuzzle), "JSON: %v", err)

	_, err = Decode([]byte("initial = \"12\"\ngoal = \"21\"\ncolour = \"red\"\n"), FormatHCL)
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidPuzzle), "HCL: %v", err)
}

func TestDecodeSyntaxErrors(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			_, err := Decode([]byte("{{{ not a puzzle"), f)
			assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidPuzzle), "%v", err)
		})
	}
	_, err := Decode([]byte(""), Format("yaml"))
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidFormat))
}

func TestHCLVariables(t *testing.T) {
	src := `
initial = "12345"
goal    = "12345"

stage "all" {
  ops = [wildcard]
}

stage "id" {
  count = 1
  ops   = [identity]
}
`
	p, err := Decode([]byte(src), FormatHCL)
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, p.Stages[0].Ops)
	assert.Equal(t, []string{"12345"}, p.Stages[1].Ops)

	in, err := p.Build()
	require.NoError(t, err)
	assert.Equal(t, 120, route.Count(in.Stages))
}

func TestEncodeRoundTrip(t *testing.T) {
	orig, err := Decode([]byte(sampleTOML), FormatTOML)
	require.NoError(t, err)

	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, orig, f))

			back, err := Decode(buf.Bytes(), f)
			require.NoError(t, err, buf.String())
			assert.Equal(t, orig, back)
		})
	}
}

func TestEncodeJSONKeepsArrows(t *testing.T) {
	p := &Puzzle{Initial: "12", Goal: "21", Stages: []StageDef{{Name: "Left -> Right", Ops: []string{"21"}}}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, p, FormatJSON))
	assert.Contains(t, buf.String(), `"name": "Left -> Right"`)
}

func TestBuildTooManyRoutes(t *testing.T) {
	p := Puzzle{Initial: "12345678", Goal: "12345678"}
	for range 5 {
		p.Stages = append(p.Stages, StageDef{Ops: []string{Wildcard}})
	}
	_, err := p.Build()
	assert.True(t, perrors.Is(err, perrors.ErrCodeTooManyRoutes), "%v", err)
	assert.True(t, perrors.IsInputError(err))
}

func TestTemplate(t *testing.T) {
	p := Template(4, 3)
	assert.Equal(t, "1234", p.Initial)
	assert.Equal(t, "4321", p.Goal)
	require.Len(t, p.Stages, 3)

	in, err := p.Build()
	require.NoError(t, err)
	reports, err := route.Evaluate(in)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.False(t, reports[0].Reached)
}

func TestFromInput(t *testing.T) {
	p, err := Decode([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)
	in, err := p.Build()
	require.NoError(t, err)

	back := FromInput(in)
	assert.Equal(t, "Path 2", back.Stages[1].Name)
	assert.Equal(t, 2, back.Stages[1].Count)

	again, err := back.Build()
	require.NoError(t, err)
	assert.Equal(t, in, again)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1234", p.Initial)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, perrors.Is(err, perrors.ErrCodeFileNotFound))

	_, err = Load(filepath.Join(dir, "p.yaml"))
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidFormat))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("HCL")
	require.NoError(t, err)
	assert.Equal(t, FormatHCL, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestExamplePuzzles(t *testing.T) {
	tests := []struct {
		file    string
		routes  int
		reached int
	}{
		{"classic.toml", 18, 2},
		{"classic.hcl", 18, 2},
		{"wildcard.json", 240, 2},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			p, err := Load(filepath.Join("..", "..", "examples", "puzzles", tt.file))
			require.NoError(t, err)
			in, err := p.Build()
			require.NoError(t, err)

			reports, err := route.Evaluate(in)
			require.NoError(t, err)
			assert.Len(t, reports, tt.routes)

			s := route.Summarize(reports, route.Count(in.Stages))
			assert.Equal(t, tt.reached, s.Reached)
		})
	}
}
