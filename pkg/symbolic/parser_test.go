package symbolic

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"goal - (producedQ + r1*(a*T - t0) + (r1 + dr)*(1 - a)*T)", "goal - (producedQ + r1*(a*T - t0) + (r1 + dr)*(1 - a)*T)"},
		{"a+b*c", "a + b*c"},
		{"(a + b) * c", "(a + b)*c"},
		{"a - (b - c)", "a - (b - c)"},
		{"a - b - c", "a - b - c"},
		{"a / (b * c)", "a/(b*c)"},
		{"-x^2", "-x**2"},
		{"(-x)**2", "(-x)**2"},
		{"a**b**c", "a**b**c"},
		{"(a**b)**c", "(a**b)**c"},
		{"2*-x", "2*-x"},
		{"+x", "x"},
		{"1.5*a", "3/2*a"},
		{"2e3", "2000"},
		{".25", "1/4"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := Parse(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, e.String())

			again, err := Parse(e.String())
			require.NoError(t, err)
			require.Equal(t, e.String(), again.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		input string
		pos   int
	}{
		{"a +", 3},
		{"a = b", 2},
		{"(a", 2},
		{"a $ b", 2},
		{"1 2", 2},
		{")", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrSyntax))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			require.Equal(t, tt.pos, perr.Pos)
		})
	}
}

func TestParse_MaxDepth(t *testing.T) {
	src := strings.Repeat("(", 300) + "x" + strings.Repeat(")", 300)
	_, err := Parse(src)
	require.ErrorIs(t, err, ErrSyntax)
	require.Contains(t, err.Error(), "maximum nesting depth exceeded")
}

func TestParseEquation(t *testing.T) {
	eq, err := ParseEquation("x + 1 = 2*y")
	require.NoError(t, err)
	require.Equal(t, "x + 1 = 2*y", eq.String())
	require.Equal(t, "x + 1 - 2*y", eq.Residual().String())

	eq, err = ParseEquation("x - 3")
	require.NoError(t, err)
	require.Equal(t, "x - 3 = 0", eq.String())
	require.Equal(t, "x - 3", eq.Residual().String())

	_, err = ParseEquation("a = b = c")
	require.ErrorIs(t, err, ErrSyntax)

	_, err = ParseEquation("(a = b)")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestConstructors(t *testing.T) {
	syms := Symbols("goal producedQ r1 a T t0 dr")
	require.Len(t, syms, 7)
	goal, producedQ, r1, a, T, t0, dr := syms[0], syms[1], syms[2], syms[3], syms[4], syms[5], syms[6]

	e := Sub(goal, Add(producedQ, Mul(r1, Sub(Mul(a, T), t0)), Mul(Add(r1, dr), Sub(N(1), a), T)))
	parsed, err := Parse("goal - (producedQ + r1*(a*T - t0) + (r1 + dr)*(1 - a)*T)")
	require.NoError(t, err)
	require.Equal(t, parsed.String(), e.String())

	require.Equal(t, "0", Add().String())
	require.Equal(t, "1", Mul().String())
	require.Equal(t, "-x/2", Div(Neg(S("x")), N(2)).String())
	require.Equal(t, "x**(1/2)", Pow(S("x"), R(1, 2)).String())
}

func TestFreeSymbols(t *testing.T) {
	eq, err := ParseEquation("goal - (producedQ + r1*(a*T - t0) + (r1 + dr)*(1 - a)*T)")
	require.NoError(t, err)
	require.Equal(t, []string{"T", "a", "dr", "goal", "producedQ", "r1", "t0"}, FreeSymbols(eq.Residual()))
	require.Empty(t, FreeSymbols(N(3)))
}
