package nmath

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrNoInverse is returned when a modular inverse does not exist.
	ErrNoInverse = errors.New("no modular inverse")

	// ErrInvalidInput is returned for arguments outside a function's domain,
	// such as an even Jacobi modulus.
	ErrInvalidInput = errors.New("invalid input")
)

// NoInverseError describes a failed ModInverse call.
type NoInverseError struct {
	A   *big.Int
	Mod *big.Int
	GCD *big.Int
}

func (e *NoInverseError) Error() string {
	return fmt.Sprintf("no modular multiplicative inverse exists between %s and %s (gcd %s)", e.A, e.Mod, e.GCD)
}

func (e *NoInverseError) Unwrap() error { return ErrNoInverse }

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
