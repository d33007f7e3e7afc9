package lattice

import "errors"

// Sentinel errors returned by the lattice primitives, checkable with
// errors.Is by callers further up the stack.
var (
	ErrInvalidOrientation = errors.New("lattice: invalid orientation")
	ErrInvalidAxis        = errors.New("lattice: invalid axis")
)
