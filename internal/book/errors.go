package book

import "errors"

// Error kinds surfaced by the core. Only InvalidArgument is a hard failure;
// everything else is a normal return value (empty matches, unset resting
// order, non-zero residual) that callers inspect rather than unwrap.
var (
	// ErrInvalidArgument reports a non-positive size/price or an unknown
	// side. No state is mutated when this is returned.
	ErrInvalidArgument = errors.New("book: invalid argument")
)
