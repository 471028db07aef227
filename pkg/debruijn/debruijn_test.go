package debruijn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vic/tromp/pkg/lambda"
)

func TestFromNamed(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"λx.x", "λ 0"},
		{"λx.λy.x", "λ λ 1"},
		{"λf.λx.f (f x)", "λ λ 1 (1 0)"},
		{"λx.λx.x", "λ λ 0"},
		{"(λx.x x) (λx.x x)", "(λ 0 0) (λ 0 0)"},
		{"λx.y x", "λ y 0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := FromNamed(lambda.MustParse(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFromNamedKeepsHints(t *testing.T) {
	got, err := FromNamed(lambda.MustParse("λf.f y"))
	require.NoError(t, err)

	assert.Equal(t, Lam{
		Name: "f",
		Body: App{
			Fun: Var{Index: 0, Name: "f"},
			Arg: Var{Index: Free, Name: "y"},
		},
	}, got)
}

func TestFreeVariablePolicy(t *testing.T) {
	term := lambda.MustParse("λx.x y")

	_, err := FromNamed(term)
	assert.NoError(t, err, "permissive is the default")

	_, err = FromNamed(term, WithPolicy(Strict))
	var ferr *FreeVariableError
	require.True(t, errors.As(err, &ferr), "expected *FreeVariableError, got %v", err)
	assert.Equal(t, "y", ferr.Name)

	_, err = FromNamed(lambda.MustParse("λx.λy.x y"), WithPolicy(Strict))
	assert.NoError(t, err)
}

func TestFromNamedMalformed(t *testing.T) {
	_, err := FromNamed(lambda.App{Fun: lambda.Var{Name: "f"}})
	var merr *lambda.MalformedTermError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "Arg", merr.Field)
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"λx.x",
		"λx.λy.x",
		"λx.λy.y",
		"λf.λx.f (f (f x))",
		"λx.λy.λz.x z (y z)",
		"(λx.x x) (λx.x x)",
		"λa.λa.a",
		"λx.λy.λz.λa.λb.λc.λm.λn.λo.λp.o p",
		"λx.y x",
		"λy.x y (λx.x)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			named := lambda.MustParse(input)
			db, err := FromNamed(named)
			require.NoError(t, err)

			back, err := ToNamed(db)
			require.NoError(t, err)
			assert.True(t, AlphaEqual(named, back), "%s came back as %s", named, back)
			assert.Equal(t, lambda.FreeVars(named), lambda.FreeVars(back))

			hinted, err := ToNamed(db, PreferHints())
			require.NoError(t, err)
			assert.True(t, AlphaEqual(named, hinted))
		})
	}
}

func TestToNamedAvoidsFreeNames(t *testing.T) {
	// λ x 0: the binder must not be called x.
	db := Lam{Body: App{Fun: Var{Index: Free, Name: "x"}, Arg: Var{Index: 0}}}
	named, err := ToNamed(db)
	require.NoError(t, err)
	assert.Equal(t, "λy.x y", named.String())
}

func TestToNamedPreferHints(t *testing.T) {
	db, err := FromNamed(lambda.MustParse("λf.λn.f n"))
	require.NoError(t, err)

	plain, err := ToNamed(db)
	require.NoError(t, err)
	assert.Equal(t, "λx.λy.x y", plain.String())

	hinted, err := ToNamed(db, PreferHints())
	require.NoError(t, err)
	assert.Equal(t, "λf.λn.f n", hinted.String())
}

func TestToNamedOutOfRange(t *testing.T) {
	named, err := ToNamed(Lam{Body: Var{Index: 2}})
	require.NoError(t, err)
	assert.Equal(t, "λx.free_1", named.String())

	named, err = ToNamed(Var{Index: Free})
	require.NoError(t, err)
	assert.Equal(t, "free", named.String())

	named, err = ToNamed(Lam{Body: App{Fun: Var{Index: -2}, Arg: Var{Index: 0}}})
	require.NoError(t, err)
	assert.Equal(t, "λx.free x", named.String())

	named, err = ToNamed(Lam{Body: Var{Index: -7, Name: "x"}})
	require.NoError(t, err)
	assert.Equal(t, "λx.free", named.String())
}

func TestValidate(t *testing.T) {
	_, err := ToNamed(Lam{})
	var merr *lambda.MalformedTermError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "Lam", merr.Node)

	assert.Error(t, Validate(App{Fun: Var{}}))
	assert.NoError(t, Validate(App{Fun: Var{}, Arg: Var{}}))
}

func TestEqual(t *testing.T) {
	assert.True(t, AlphaEqual(lambda.MustParse("λx.x"), lambda.MustParse("λy.y")))
	assert.True(t, AlphaEqual(lambda.MustParse("λx.λy.x y"), lambda.MustParse("λa.λb.a b")))
	assert.False(t, AlphaEqual(lambda.MustParse("λx.λy.x"), lambda.MustParse("λx.λy.y")))
	assert.False(t, AlphaEqual(lambda.MustParse("λx.a"), lambda.MustParse("λx.b")))
	assert.False(t, AlphaEqual(lambda.MustParse("λx.x"), lambda.MustParse("λx.y")))

	// Bound variables compare by index only.
	assert.True(t, Equal(Lam{Body: Var{Index: 0, Name: "x"}}, Lam{Body: Var{Index: 0, Name: "y"}}))
}

func TestLeaves(t *testing.T) {
	db, err := FromNamed(lambda.MustParse("λf.λx.f (f x)"))
	require.NoError(t, err)
	assert.Equal(t, 3, Leaves(db))
}
