package symbolic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func poly(t *testing.T, src string) Poly {
	t.Helper()
	f := expand(t, src)
	require.True(t, f.Den.IsConstant(), "%s is not a polynomial", src)
	return f.Num
}

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b     string
		expected string
	}{
		{"x**2 - 1", "x - 1", "x - 1"},
		{"x**2 - 1", "x**2 + 2*x + 1", "x + 1"},
		{"x*y - y", "x**2 - 1", "x - 1"},
		{"(a + b)*(a - b)*c", "(a + b)**2*c**2", "a*c + b*c"},
		{"x + 1", "y + 1", "1"},
		{"6*x", "4", "1"},
		{"0", "x + y", "x + y"},
	}
	for _, tt := range tests {
		t.Run(tt.a+", "+tt.b, func(t *testing.T) {
			a, b := poly(t, tt.a), poly(t, tt.b)
			g := gcd(a, b)

			// unique up to a constant factor
			_, ok := proportional(g, poly(t, tt.expected))
			require.True(t, ok, "gcd = %s, want %s", g, tt.expected)

			_, ok = a.divide(g)
			require.True(t, ok)
			_, ok = b.divide(g)
			require.True(t, ok)
		})
	}
}

func TestPoly_Divide(t *testing.T) {
	q, ok := poly(t, "x**3*y - y").divide(poly(t, "x - 1"))
	require.True(t, ok)
	require.Equal(t, "x**2*y + x*y + y", q.String())

	_, ok = poly(t, "x**2 + 1").divide(poly(t, "x - 1"))
	require.False(t, ok)

	_, ok = poly(t, "y").divide(poly(t, "x"))
	require.False(t, ok)
}
