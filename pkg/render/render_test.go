package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"github.com/vic/tromp/pkg/diagram"
	"github.com/vic/tromp/pkg/lambda"
)

func layout(t *testing.T, term lambda.Term, opts diagram.Options) *diagram.Diagram {
	t.Helper()
	d, err := diagram.LayoutNamed(term, opts)
	require.NoError(t, err)
	return d
}

func TestTextGolden(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"identity", "λx.x"},
		{"k", "λx.λy.x"},
		{"identity_applied", "(λx.x) y"},
		{"church_two", "λf.λx.f (f x)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := layout(t, lambda.MustParse(tt.input), diagram.DefaultOptions())
			golden.Assert(t, Text(d, TextOptions{}), tt.name+".golden")
		})
	}
}

func TestTextColor(t *testing.T) {
	d := layout(t, lambda.MustParse("(λx.x) y"), diagram.DefaultOptions())
	plain := Text(d, TextOptions{})
	colored := Text(d, TextOptions{Color: true})

	assert.Equal(t, plain, ansi.Strip(colored))
	assert.NotContains(t, plain, "\x1b[")
}

func TestTextLineCount(t *testing.T) {
	d := layout(t, lambda.MustParse("(λx.x x) (λx.x x)"), diagram.DefaultOptions())
	lines := strings.Split(strings.TrimSuffix(Text(d, TextOptions{}), "\n"), "\n")
	assert.Len(t, lines, 2*d.Height+1)
	for _, line := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(line), 2*d.Width)
	}
}

func TestLabels(t *testing.T) {
	d := layout(t, lambda.MustParse("λx.x"), diagram.Options{ShowNames: true})
	assert.Equal(t, "abstraction 0,0 x\nvariable    0,1 x\n", Labels(d))

	d = layout(t, lambda.MustParse("λx.x"), diagram.DefaultOptions())
	assert.Empty(t, Labels(d))
}

func TestSVG(t *testing.T) {
	d := layout(t, lambda.MustParse("λx.x"), diagram.DefaultOptions())

	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, d))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="20"`))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Contains(t, out, `<line class="variable" x1="5" y1="5" x2="5" y2="15"`)
	assert.Contains(t, out, `<line class="abstraction" x1="0" y1="5" x2="10" y2="5"`)
	assert.Equal(t, 2, strings.Count(out, "<line "))
	assert.NotContains(t, out, "<circle")
}

func TestSVGFreeVariablesAndLabels(t *testing.T) {
	term := lambda.App{Fun: lambda.MustParse("λx.x"), Arg: lambda.Var{Name: "a<b"}}
	d := layout(t, term, diagram.Options{Unit: 20, ShowNames: true})

	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, d))
	out := buf.String()

	assert.Contains(t, out, `<circle class="free" cx="30" cy="30" r="5"`)
	assert.Contains(t, out, "a&lt;b")
	assert.Contains(t, out, `<line class="application"`)
}
