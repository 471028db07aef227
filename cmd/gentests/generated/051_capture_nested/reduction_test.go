package gentests

import _ "embed"
import "testing"
import "github.com/vic/tromp/cmd/gentests/helper"

//go:embed input.lam
var input string

//go:embed output.lam
var output string

func Test_051_capture_nested_Reduction(t *testing.T) {
	gentests.CheckLambdaReduction(t, "051_capture_nested", "normal", input, output)
}
