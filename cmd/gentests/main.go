// Command gentests writes one reduction test package per case under
// cmd/gentests/generated. Each package embeds input.lam and output.lam and
// checks that the input reduces to the output.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vic/tromp/pkg/lambda"
)

type TestCase struct {
	Name     string
	Input    string
	Output   string
	Strategy string
}

const testTemplate = `package gentests

import _ "embed"
import "testing"
import "github.com/vic/tromp/cmd/gentests/helper"

//go:embed input.lam
var input string

//go:embed output.lam
var output string

func Test_%s_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "%s", %q, input, output)
}
`

func main() {
	tests := []TestCase{
		// Identity
		{"001_id", `\x.x`, `\y.y`, "normal"},
		{"002_id_id", `(\x.x) (\y.y)`, `\z.z`, "normal"},

		// K combinator
		{"003_k_1", `(\x.\y.x) a b`, "a", "normal"},
		{"004_k_2", `(\x.\y.y) a b`, "b", "normal"},
		{"005_erase_complex", `(\x.\y.x) a ((\z.z) b)`, "a", "normal"},
		{"006_erase_complex_applicative", `(\x.\y.x) a ((\z.z) b)`, "a", "applicative"},

		// S combinator
		{"007_s_1", `(\x.\y.\z.x z (y z)) (\a.\b.a) (\c.\d.c) e`, "e", "normal"},

		// Church numerals
		{"010_zero", `(\f.\x.x) f x`, "x", "normal"},
		{"011_one", `(\f.\x.f x) f x`, "f x", "normal"},
		{"012_succ_1", `(\n.\f.\x.f (n f x)) (\f.\x.f x)`, `\f.\x.f (f x)`, "normal"},
		{"013_add_1_1", `(\m.\n.\f.\x.m f (n f x)) (\f.\x.f x) (\f.\x.f x)`, `\f.\x.f (f x)`, "normal"},
		{"014_pow_2_2", `(\b.\e.e b) (\f.\x.f (f x)) (\f.\x.f (f x))`, `\f.\x.f (f (f (f x)))`, "normal"},

		// Logic
		{"020_not_true", `(\b.b (\x.\y.y) (\x.\y.x)) (\x.\y.x) a b`, "b", "normal"},
		{"021_and_true_false", `(\p.\q.p q p) (\x.\y.x) (\x.\y.y) a b`, "b", "normal"},

		// Pairs
		{"030_pair_fst", `(\p.p (\x.\y.x)) ((\x.\y.\f.f x y) a b)`, "a", "normal"},
		{"031_pair_snd", `(\p.p (\x.\y.y)) ((\x.\y.\f.f x y) a b)`, "b", "normal"},

		// Let bindings
		{"040_let_simple", "let x = a in x", "a", "normal"},
		{"041_let_nested", "let x = a in let y = b in x", "a", "normal"},
		{"042_let_shadow", "let x = a in let x = b in x", "b", "normal"},

		// Capture avoidance
		{"050_capture", `(\x.\y.x) y`, `\y1.y`, "normal"},
		{"051_capture_nested", `(\f.\y.f y) y`, `\y1.y y1`, "normal"},

		// Free variables
		{"060_free", "x y", "x y", "normal"},
		{"061_free_under_lambda", `\y.x y`, `\y.x y`, "normal"},

		// Applicative order still normalizes when no argument diverges
		{"070_share_applicative", `(\x.x (x a)) (\y.y)`, "a", "applicative"},
	}

	baseDir := "cmd/gentests/generated"
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var written int
	for _, tc := range tests {
		inTerm, err := lambda.Parse(tc.Input)
		if err != nil {
			fmt.Printf("Error parsing input for %s: %v\n", tc.Name, err)
			continue
		}
		outTerm, err := lambda.Parse(tc.Output)
		if err != nil {
			fmt.Printf("Error parsing output for %s: %v\n", tc.Name, err)
			continue
		}

		dir := filepath.Join(baseDir, tc.Name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Printf("Error creating %s: %v\n", dir, err)
			continue
		}
		testGo := fmt.Sprintf(testTemplate, tc.Name, tc.Name, tc.Strategy)
		files := map[string]string{
			"input.lam":         inTerm.String() + "\n",
			"output.lam":        outTerm.String() + "\n",
			"reduction_test.go": testGo,
		}
		for name, content := range files {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
				fmt.Printf("Error writing %s/%s: %v\n", dir, name, err)
			}
		}
		written++
	}

	fmt.Printf("Generated %d tests\n", written)
}
