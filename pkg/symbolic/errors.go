package symbolic

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is matched by every *ParseError.
	ErrSyntax = errors.New("symbolic: syntax error")

	// ErrNoUniqueSolution is returned when the target's coefficient vanishes,
	// leaving either no solution or infinitely many.
	ErrNoUniqueSolution = errors.New("symbolic: no unique solution")

	// ErrNonlinear is returned when the equation has degree two or more in the target.
	ErrNonlinear = errors.New("symbolic: equation is not linear in target")

	// ErrDivisionByZero is returned when an expression divides by a polynomial
	// that is identically zero.
	ErrDivisionByZero = errors.New("symbolic: division by zero")

	// ErrUnsupportedExponent is returned for exponents that are not small integer constants.
	ErrUnsupportedExponent = errors.New("symbolic: unsupported exponent")

	// ErrExpressionTooLarge is returned when expanding an expression would
	// exceed the degree or term budget.
	ErrExpressionTooLarge = errors.New("symbolic: expression too large")

	// ErrTargetBound is returned when the target symbol also appears in the bindings.
	ErrTargetBound = errors.New("symbolic: target symbol is bound")
)

// ParseError describes a syntax error at a byte offset of the source text.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

// DegenerateError reports an equation without exactly one root in Target.
// Infinite is true when the equation reduces to 0 = 0.
type DegenerateError struct {
	Target   string
	Infinite bool
}

func (e *DegenerateError) Error() string {
	if e.Infinite {
		return fmt.Sprintf("every value of %s satisfies the equation", e.Target)
	}
	return fmt.Sprintf("no value of %s satisfies the equation", e.Target)
}

// Is reports whether target is ErrNoUniqueSolution.
func (e *DegenerateError) Is(target error) bool {
	return target == ErrNoUniqueSolution
}
