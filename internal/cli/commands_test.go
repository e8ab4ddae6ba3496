package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
	"github.com/matzehuels/switchpuzzle/pkg/render"
)

const samplePuzzle = `
initial = "1234"
goal    = "2314"

[[stage]]
name  = "Path 1"
count = 1
ops   = ["2134"]

[[stage]]
name  = "Path 2"
count = 2
ops   = ["1324", "1234"]
`

// testEnv isolates XDG directories and silences status output.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv(envCacheURL, "")

	old := statusOut
	statusOut = io.Discard
	t.Cleanup(func() { statusOut = old })
	return dir
}

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func samplePath(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "classic.toml")
	writeFile(t, path, samplePuzzle)
	return path
}

func TestSolveText(t *testing.T) {
	dir := testEnv(t)
	out, err := runCLI(t, "solve", samplePath(t, dir))
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}

	for _, want := range []string{
		"Initial: 1234   Goal: 2314",
		"Route: 2134 (1) -> 1324 (1)",
		"=> 2314 ✓ reached",
		"Route: 2134 (1) -> 1234 (2)",
		"=> 2134 ✗ missed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSolveOnlyReached(t *testing.T) {
	dir := testEnv(t)
	out, err := runCLI(t, "solve", samplePath(t, dir), "--only-reached", "--glyphs")
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if strings.Contains(out, "missed") {
		t.Errorf("--only-reached output contains a missed route:\n%s", out)
	}
	if !strings.Contains(out, "▲") {
		t.Errorf("--glyphs output has no shapes:\n%s", out)
	}
}

func TestSolveJSON(t *testing.T) {
	dir := testEnv(t)
	out, err := runCLI(t, "solve", samplePath(t, dir), "-f", "json")
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}

	doc, err := render.DecodeDocument([]byte(out))
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	if doc.Summary.Total != 2 || doc.Summary.Reached != 1 {
		t.Errorf("summary = %+v, want total 2 reached 1", doc.Summary)
	}
	if len(doc.Reports) != 2 || doc.Reports[0].Trail != "2134 (1) -> 1324 (1)" {
		t.Errorf("unexpected reports: %+v", doc.Reports)
	}
}

func TestSolveCachedRun(t *testing.T) {
	dir := testEnv(t)
	path := samplePath(t, dir)

	first, err := runCLI(t, "solve", path, "-f", "json")
	if err != nil {
		t.Fatalf("first solve: %v", err)
	}
	second, err := runCLI(t, "solve", path, "-f", "json")
	if err != nil {
		t.Fatalf("second solve: %v", err)
	}
	if first != second {
		t.Error("cached solve should render identical output")
	}

	entries, _ := filepath.Glob(filepath.Join(dir, "cache", appName, "*", "*.json"))
	if len(entries) == 0 {
		t.Error("solve should populate the file cache")
	}
}

func TestSolveLimit(t *testing.T) {
	dir := testEnv(t)
	out, err := runCLI(t, "solve", samplePath(t, dir), "--limit", "1", "-f", "json", "--no-cache")
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	doc, err := render.DecodeDocument([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Summary.Partial || doc.Summary.Emitted != 1 {
		t.Errorf("summary = %+v, want partial after 1", doc.Summary)
	}
}

func TestSolveOutputFile(t *testing.T) {
	dir := testEnv(t)
	target := filepath.Join(dir, "out", "routes.dot")

	out, err := runCLI(t, "solve", samplePath(t, dir), "-f", "dot", "-o", target)
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty when -o is set, got %q", out)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("output is not DOT:\n%s", data)
	}
}

func TestSolveMultipleFormats(t *testing.T) {
	dir := testEnv(t)
	path := samplePath(t, dir)

	if _, err := runCLI(t, "solve", path, "-f", "json,text"); err != nil {
		t.Fatalf("solve error: %v", err)
	}
	for _, name := range []string{"classic.json", "classic.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s next to the puzzle: %v", name, err)
		}
	}
}

func TestSolveErrors(t *testing.T) {
	dir := testEnv(t)
	path := samplePath(t, dir)

	if _, err := runCLI(t, "solve", path, "-f", "pdf"); !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: got %v, want INVALID_FORMAT", err)
	}
	if _, err := runCLI(t, "solve", filepath.Join(dir, "missing.toml")); !perrors.Is(err, perrors.ErrCodeFileNotFound) {
		t.Errorf("missing puzzle: got %v, want FILE_NOT_FOUND", err)
	}

	broken := filepath.Join(dir, "broken.toml")
	writeFile(t, broken, "initial = \"1123\"\ngoal = \"1234\"\n[[stage]]\nops = [\"1234\"]\n")
	if _, err := runCLI(t, "solve", broken); !perrors.Is(err, perrors.ErrCodeInvalidArrangement) {
		t.Errorf("duplicate symbol: got %v, want INVALID_ARRANGEMENT", err)
	}

	if _, err := runCLI(t, "solve"); err == nil {
		t.Error("solve without a puzzle should fail")
	}
}

func TestSolveConfigDefaults(t *testing.T) {
	dir := testEnv(t)
	cfg := filepath.Join(dir, "custom.toml")
	writeFile(t, cfg, "format = \"json\"\nno_cache = true\n")

	out, err := runCLI(t, "--config", cfg, "solve", samplePath(t, dir))
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("config format json not applied:\n%s", out)
	}

	out, err = runCLI(t, "--config", cfg, "solve", samplePath(t, dir), "-f", "text")
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if !strings.HasPrefix(out, "Initial:") {
		t.Errorf("--format should override config:\n%s", out)
	}

	if _, err := runCLI(t, "--config", filepath.Join(dir, "nope.toml"), "solve", samplePath(t, dir)); err == nil {
		t.Error("an explicit missing config should fail")
	}
}

func TestApply(t *testing.T) {
	testEnv(t)

	out, err := runCLI(t, "apply", "1234", "2134", "1324")
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if out != "2134\n2314\n" {
		t.Errorf("apply output = %q, want %q", out, "2134\n2314\n")
	}

	if _, err := runCLI(t, "apply", "1234", "1224"); !perrors.Is(err, perrors.ErrCodeInvalidOperation) {
		t.Errorf("bad op: got %v, want INVALID_OPERATION", err)
	}
	if _, err := runCLI(t, "apply", "1234", "213"); err == nil {
		t.Error("arity mismatch should fail")
	}
	if _, err := runCLI(t, "apply", "1234"); err == nil {
		t.Error("apply without operations should fail")
	}
}

func TestInit(t *testing.T) {
	dir := testEnv(t)
	path := filepath.Join(dir, "starter.toml")

	if _, err := runCLI(t, "init", path, "--arity", "3", "--stages", "2"); err != nil {
		t.Fatalf("init error: %v", err)
	}
	if _, err := runCLI(t, "init", path); err == nil {
		t.Error("init should refuse to overwrite without --force")
	}
	if _, err := runCLI(t, "init", path, "--arity", "3", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	out, err := runCLI(t, "solve", path, "--no-cache")
	if err != nil {
		t.Fatalf("solve starter: %v", err)
	}
	if !strings.Contains(out, "Initial: 123   Goal: 321") || !strings.Contains(out, "✗ missed") {
		t.Errorf("unexpected starter output:\n%s", out)
	}
}

func TestInitFormats(t *testing.T) {
	dir := testEnv(t)

	for _, name := range []string{"p.json", "p.hcl"} {
		path := filepath.Join(dir, name)
		if _, err := runCLI(t, "init", path); err != nil {
			t.Fatalf("init %s: %v", name, err)
		}
		if _, err := runCLI(t, "solve", path, "--no-cache"); err != nil {
			t.Errorf("solve %s: %v", name, err)
		}
	}

	if _, err := runCLI(t, "init", filepath.Join(dir, "p.yaml")); !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
		t.Errorf("yaml: got %v, want INVALID_FORMAT", err)
	}
	if _, err := runCLI(t, "init", filepath.Join(dir, "q.toml"), "--arity", "0"); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("arity 0: got %v, want INVALID_INPUT", err)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := testEnv(t)

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(dir, "cache", appName)
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}

	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("clear empty cache: %v", err)
	}

	if _, err := runCLI(t, "solve", samplePath(t, dir)); err != nil {
		t.Fatalf("solve: %v", err)
	}
	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ := filepath.Glob(filepath.Join(want, "*", "*.json"))
	if len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestCompletion(t *testing.T) {
	testEnv(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := runCLI(t, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("completion %s does not mention %s", shell, appName)
		}
	}
	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"text"}},
		{" , ", []string{"text"}},
		{"json", []string{"json"}},
		{"JSON, dot,json", []string{"json", "dot"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "puzzles/classic.toml", "puzzles/classic"},
		{"out/routes.svg", "p.toml", "out/routes"},
		{"out/routes.txt", "p.toml", "out/routes"},
		{"out/routes", "p.toml", "out/routes"},
		{"out/routes.v2", "p.toml", "out/routes.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}
