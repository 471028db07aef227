package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/tromp/pkg/diagram"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return ansi.Strip(stdout.String()), stderr.String(), err
}

func TestReduceCommand(t *testing.T) {
	out, stderr, err := run(t, "", "reduce", "(λx.λy.x) a b")
	require.NoError(t, err)
	assert.Equal(t, "  0 (λx.λy.x) a b\n  1 (λy.a) b\n  2 a\n", out)
	assert.Contains(t, stderr, "Reached normal form")
}

func TestReduceEvents(t *testing.T) {
	out, _, err := run(t, "", "reduce", "--events", "--ascii", `(\x.x) y`)
	require.NoError(t, err)
	assert.Equal(t, "  0 (\\x.x) y\n    redex at /: (\\x.x) y\n  1 y\n", out)
}

func TestNormalCommand(t *testing.T) {
	out, _, err := run(t, "", "normal", "--strategy", "applicative", "(λx.λy.x) a ((λz.z) b)")
	require.NoError(t, err)
	assert.Equal(t, "a\n", out)

	out, stderr, err := run(t, "", "normal", "-n", "3", "(λx.x x) (λx.x x)")
	require.NoError(t, err)
	assert.Equal(t, "(λx.x x) (λx.x x)\n", out)
	assert.Contains(t, stderr, "Step budget exhausted")
}

func TestStdinInput(t *testing.T) {
	out, _, err := run(t, "# comment\n(λx.x) y\n", "normal")
	require.NoError(t, err)
	assert.Equal(t, "y\n", out)
}

func TestParseErrorSurfaces(t *testing.T) {
	_, _, err := run(t, "", "normal", "(λx.x")
	assert.ErrorContains(t, err, "parse error at offset 6")
}

func TestDebruijnCommand(t *testing.T) {
	out, _, err := run(t, "", "debruijn", "--back", "λf.λx.f (f x)")
	require.NoError(t, err)
	assert.Equal(t, "λ λ 1 (1 0)\nλx.λy.x (x y)\n", out)

	_, _, err = run(t, "", "debruijn", "--strict", "λx.y")
	assert.ErrorContains(t, err, `free variable "y"`)
}

func TestLayoutCommand(t *testing.T) {
	out, _, err := run(t, "", "layout", "λx.x")
	require.NoError(t, err)

	var d diagram.Diagram
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 1, d.Width)
	assert.Len(t, d.Nodes, 2)

	out, _, err = run(t, "", "layout", "--trace", "(λx.x) y")
	require.NoError(t, err)
	var trace []diagram.Diagram
	require.NoError(t, json.Unmarshal([]byte(out), &trace))
	assert.Len(t, trace, 2)
}

func TestRenderCommand(t *testing.T) {
	out, _, err := run(t, "", "render", "λx.x")
	require.NoError(t, err)
	assert.Equal(t, "──\n│\n│\n", out)

	out, _, err = run(t, "", "render", "--format", "svg", "--normal", "(λx.x) (λy.y)")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg"))

	_, _, err = run(t, "", "render", "--format", "png", "x")
	assert.ErrorContains(t, err, "unknown format")
}

func TestArithCommand(t *testing.T) {
	out, _, err := run(t, "", "arith", "2 * (3 + 1)")
	require.NoError(t, err)
	assert.Equal(t, "8\n", out)
}

func TestPreludeFlag(t *testing.T) {
	out, _, err := run(t, "", "normal", "--prelude", "K a b")
	require.NoError(t, err)
	assert.Equal(t, "a\n", out)
}

func TestBatchCommand(t *testing.T) {
	input := "# batch\n(λx.x) a\n\nλx.(\n(λx.x x) (λx.x x)\n"
	out, _, err := run(t, input, "batch", "-j", "2", "-n", "5")
	assert.ErrorContains(t, err, "1 of 3 terms failed")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2: a", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "4: error: parse error"))
	assert.Equal(t, "5: (λx.x x) (λx.x x) (not normal after 5 steps)", lines[2])
}

func TestBatchJobs(t *testing.T) {
	for _, jobs := range []string{"0", "-3"} {
		_, _, err := run(t, "(λx.x) a\n", "batch", "--jobs="+jobs)
		assert.ErrorContains(t, err, "--jobs must be at least 1", jobs)
	}

	out, _, err := run(t, "(λx.x) a\n(λx.x) b\n", "batch", "-j", "1")
	require.NoError(t, err)
	assert.Equal(t, "1: a\n2: b\n", out)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tromp.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[prelude]
enabled = true

[prelude.defines]
two = "λf.λx.f (f x)"
`), 0o644))

	out, _, err := run(t, "", "normal", "--config", path, "succ two")
	require.NoError(t, err)
	assert.Equal(t, "λf.λx.f (f (f x))\n", out)
}

func TestArithLiteralLimit(t *testing.T) {
	_, _, err := run(t, "", "arith", "99999999")
	assert.ErrorContains(t, err, "numeral 99999999 exceeds 10000")
}

func TestPreludeCommand(t *testing.T) {
	out, _, err := run(t, "", "prelude")
	require.NoError(t, err)
	assert.Contains(t, out, "succ   = λn.λf.λx.f (n f x)\n")
}
