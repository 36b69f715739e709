package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRepsNotBuilt indicates staleness or compilation was requested
	// before the asset's representation set was built. This is a caller
	// bug, never retried or defaulted.
	ErrRepsNotBuilt = errors.New("representations not built")

	// ErrInvalidRepSpec indicates an asset's reps attribute is present but
	// malformed: either not a mapping, or an entry that is neither absent
	// nor a mapping of override attributes.
	ErrInvalidRepSpec = errors.New("invalid representation spec")

	// ErrUnknownFilter indicates a representation referenced a content
	// filter that is not registered.
	ErrUnknownFilter = errors.New("unknown filter")
)
