package reduce

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/tromp/pkg/debruijn"
	"github.com/vic/tromp/pkg/lambda"
)

func show(terms []lambda.Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.String()
	}
	return out
}

func many(t *testing.T, term lambda.Term, strategy Strategy, maxSteps int) []lambda.Term {
	t.Helper()
	trace, err := ReduceMany(term, strategy, maxSteps)
	require.NoError(t, err)
	return trace
}

func normalForm(t *testing.T, term lambda.Term, maxSteps int) lambda.Term {
	t.Helper()
	got, err := ReduceToNormalForm(term, maxSteps)
	require.NoError(t, err)
	return got
}

func TestBetaReduce(t *testing.T) {
	got, ok, err := BetaReduce(lambda.MustParse("(λx.x) y"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "y", got.String())

	_, ok, err = BetaReduce(lambda.MustParse("λx.x y"))
	require.NoError(t, err)
	assert.False(t, ok, "normal form has no step")

	_, ok, err = BetaReduce(lambda.MustParse("x"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReduceManyKCombinator(t *testing.T) {
	trace := many(t, lambda.MustParse("(λx.λy.x) a b"), Normal, 10)
	assert.Equal(t, []string{"(λx.λy.x) a b", "(λy.a) b", "a"}, show(trace))
}

func TestChurchTwo(t *testing.T) {
	trace := many(t, lambda.MustParse("(λf.λx.f (f x)) g z"), Normal, 10)
	require.Len(t, trace, 3)
	assert.Equal(t, "g (g z)", trace[2].String())
}

func TestOmega(t *testing.T) {
	omega := lambda.MustParse("(λx.x x) (λx.x x)")
	trace := many(t, omega, Normal, 50)

	require.Len(t, trace, 51)
	for i, term := range trace {
		assert.True(t, lambda.Equal(omega, term), "step %d: %s", i, term)
	}
	assert.True(t, Reducible(trace[50]))

	last := normalForm(t, omega, 50)
	_, ok, err := BetaReduce(last)
	require.NoError(t, err)
	assert.True(t, ok, "budget exhausted, not normal")
}

func TestApplicativeVersusNormal(t *testing.T) {
	term := lambda.MustParse("(λx.λy.x) a ((λz.z) b)")

	normal := many(t, term, Normal, 10)
	assert.Equal(t, []string{
		"(λx.λy.x) a ((λz.z) b)",
		"(λy.a) ((λz.z) b)",
		"a",
	}, show(normal))

	applicative := many(t, term, Applicative, 10)
	assert.Equal(t, []string{
		"(λx.λy.x) a ((λz.z) b)",
		"(λx.λy.x) a b",
		"(λy.a) b",
		"a",
	}, show(applicative))
}

func TestApplicativeDivergesWhereNormalTerminates(t *testing.T) {
	term := lambda.MustParse("(λx.y) ((λx.x x) (λx.x x))")

	got := normalForm(t, term, 10)
	assert.Equal(t, "y", got.String())

	trace := many(t, term, Applicative, 10)
	assert.Len(t, trace, 11)
	assert.True(t, Reducible(trace[10]))
}

func TestApplicativeReducesFunctionAfterArgument(t *testing.T) {
	// The argument is already normal, so the function side goes next.
	next, ok, err := BetaReduceApplicative(lambda.MustParse("((λx.x) f) a"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "f a", next.String())
}

func TestReductionUnderBinders(t *testing.T) {
	got := normalForm(t, lambda.MustParse("λx.(λy.y) x"), 0)
	assert.Equal(t, "λx.x", got.String())

	got = normalForm(t, lambda.MustParse("(λx.λy.x) y"), 0)
	assert.True(t, debruijn.AlphaEqual(lambda.MustParse("λw.y"), got))
	assert.Equal(t, map[string]bool{"y": true}, lambda.FreeVars(got))
}

func TestStrategiesAgree(t *testing.T) {
	inputs := []string{
		"(λm.λn.λf.λx.m f (n f x)) (λf.λx.f (f x)) (λf.λx.f x)",
		"(λx.λy.λz.x z (y z)) (λa.λb.a) (λc.λd.c) e",
		"(λp.p (λx.λy.y)) ((λx.λy.λf.f x y) a b)",
		"(λb.λe.e b) (λf.λx.f (f x)) (λf.λx.f (f (f x)))",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			term := lambda.MustParse(input)
			normal := many(t, term, Normal, 0)
			applicative := many(t, term, Applicative, 0)

			n, a := normal[len(normal)-1], applicative[len(applicative)-1]
			require.False(t, Reducible(n))
			require.False(t, Reducible(a))
			assert.True(t, debruijn.AlphaEqual(n, a), "normal %s, applicative %s", n, a)
		})
	}
}

func TestMaxStepsDefault(t *testing.T) {
	omega := lambda.MustParse("(λx.x x) (λx.x x)")
	assert.Len(t, many(t, omega, Normal, 0), DefaultMaxSteps+1)
	assert.Len(t, many(t, omega, Normal, -5), DefaultMaxSteps+1)
}

func TestMalformedTerms(t *testing.T) {
	missingBody := lambda.App{Fun: lambda.Abs{Arg: "x"}, Arg: lambda.Var{Name: "y"}}
	var merr *lambda.MalformedTermError

	_, ok, err := BetaReduce(missingBody)
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "Abs", merr.Node)
	assert.Equal(t, "Body", merr.Field)
	assert.False(t, ok)

	_, _, err = BetaReduceApplicative(missingBody)
	assert.True(t, errors.As(err, &merr))

	trace, err := ReduceMany(missingBody, Normal, 10)
	assert.True(t, errors.As(err, &merr))
	assert.Nil(t, trace)

	_, err = ReduceToNormalForm(lambda.App{Fun: lambda.Var{Name: "f"}}, 10)
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "Arg", merr.Field)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("Applicative")
	require.NoError(t, err)
	assert.Equal(t, Applicative, s)

	s, err = ParseStrategy("APPLICATIVE_ORDER")
	require.NoError(t, err)
	assert.Equal(t, Applicative, s)

	s, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, Normal, s)

	_, err = ParseStrategy("lazy")
	assert.ErrorContains(t, err, "unknown reduction strategy")
	assert.Equal(t, "normal", Normal.String())
}
