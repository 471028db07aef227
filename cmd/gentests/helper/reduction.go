package gentests

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/vic/tromp/pkg/debruijn"
	"github.com/vic/tromp/pkg/diagram"
	"github.com/vic/tromp/pkg/lambda"
	"github.com/vic/tromp/pkg/reduce"
)

// CheckLambdaReduction reduces inputStr with the named strategy and checks
// that the normal form is alpha-equivalent to outputStr. Free variables must
// keep their names. Every term of the trace must also lay out.
func CheckLambdaReduction(t *testing.T, testName, strategyName, inputStr, outputStr string) {
	t.Helper()

	expected, err := lambda.Parse(strings.TrimSpace(outputStr))
	if err != nil {
		t.Fatalf("Parse error for expected output: %v", err)
	}
	term, err := lambda.Parse(strings.TrimSpace(inputStr))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	strategy, err := reduce.ParseStrategy(strategyName)
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	res, err := reduce.Run(context.Background(), term, reduce.Options{Strategy: strategy})
	if err != nil {
		t.Fatalf("%s: reduce: %v", testName, err)
	}
	elapsed := time.Since(start)

	if !res.Normal {
		t.Fatalf("%s: no normal form after %d steps, last term %s", testName, res.Stats.Steps, res.Final())
	}
	if !debruijn.AlphaEqual(res.Final(), expected) {
		t.Errorf("Mismatch in %s:\nInput:    %s\nExpected: %s\nActual:   %s", testName, term, expected, res.Final())
	}
	if got := len(res.Terms); got != res.Stats.Steps+1 {
		t.Errorf("%s: trace has %d terms for %d steps", testName, got, res.Stats.Steps)
	}

	for i, tt := range res.Terms {
		if _, err := diagram.LayoutNamed(tt, diagram.DefaultOptions()); err != nil {
			t.Errorf("%s: layout of step %d: %v", testName, i, err)
		}
	}

	t.Logf("%s: %d reductions (%s) in %v, peak size %d", testName, res.Stats.Steps, strategy, elapsed, res.Stats.PeakSize)
}
