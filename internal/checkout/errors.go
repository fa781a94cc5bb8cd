package checkout

import "errors"

var (
	ErrNotOpen             = errors.New("no checkout session is open")
	ErrSubmitInFlight      = errors.New("a submission is already in flight for this session")
	ErrIncompleteForm      = errors.New("checkout form incomplete")
	ErrUnknownField        = errors.New("unknown shipping form field")
	IllegalTransitionError = errors.New("illegal transition of checkout status")
)
