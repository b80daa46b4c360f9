package calendar

import "errors"

// Conversion errors. All are terminal for the request; none are
// retryable, and the engine never recovers internally.
var (
	// ErrInsufficientEventData means fewer than two new-moon instants
	// were supplied, so no month period can be formed.
	ErrInsufficientEventData = errors.New("at least two new-moon instants are required")

	// ErrMissingSolsticeTerm means no Winter Solstice (Z11) crossing was
	// found in the supplied solar-term data, so month numbering cannot
	// be anchored.
	ErrMissingSolsticeTerm = errors.New("no winter solstice term in event data")

	// ErrPeriodNotFound means the target instant falls outside the span
	// covered by the constructed month periods.
	ErrPeriodNotFound = errors.New("instant outside covered month periods")

	// ErrMalformedInput means the event data violates a structural
	// invariant, such as non-monotonic instants.
	ErrMalformedInput = errors.New("malformed event data")
)
