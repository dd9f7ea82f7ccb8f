package domain

import "errors"

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrPreferenceNotFound = errors.New("preference not found")
	ErrMatchNotFound      = errors.New("match not found")

	// ErrMatchExists is returned by an insert-if-absent that lost the race to
	// a concurrent writer. Callers re-read the surviving row and treat the
	// operation as a success.
	ErrMatchExists = errors.New("match already exists")

	ErrCannotSwipeSelf = errors.New("cannot record a preference toward yourself")
	ErrInvalidDecision = errors.New("decision must be like or pass")

	// ErrDecisionFinal is returned when decision override is disabled and a
	// re-swipe attempts to change an existing decision.
	ErrDecisionFinal = errors.New("decision already recorded and cannot be changed")

	// ErrStoreTimeout marks a store call that exceeded its deadline. Retryable
	// like any persistence failure, logged distinctly.
	ErrStoreTimeout = errors.New("store operation timed out")
)
