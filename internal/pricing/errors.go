package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter reports contract terms or lattice inputs that can
	// never be priced: bad option type token, non-positive spot, strike,
	// maturity or volatility, fewer than one step, or a degenerate lattice.
	ErrInvalidParameter = errors.New("pricing: invalid parameter")

	// ErrNumericalInstability reports a non-finite intermediate value or a
	// risk-neutral probability outside (0,1) found while rolling back a lattice.
	ErrNumericalInstability = errors.New("pricing: numerical instability")

	// ErrGreekComputationFailed is matched by every *GreekError.
	ErrGreekComputationFailed = errors.New("pricing: greek computation failed")
)

// StageError names the pricing stage that hit a numerical failure.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pricing: %s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// GreekError wraps the failure of a perturbed repricing run.
type GreekError struct {
	Greek Greek
	Err   error
}

func (e *GreekError) Error() string {
	return fmt.Sprintf("pricing: %s computation failed: %v", e.Greek, e.Err)
}

func (e *GreekError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrGreekComputationFailed) match any GreekError.
func (e *GreekError) Is(target error) bool {
	return target == ErrGreekComputationFailed
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}

func unstablef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNumericalInstability}, args...)...)
}
