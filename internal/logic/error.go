package logic

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition     = errors.New("invalid invoice status transition")
	ErrCounterAlreadyPending = errors.New("a counter offer is already pending for this invoice")
	ErrNotAcknowledged       = errors.New("invoice has not been acknowledged by the shipper")
	ErrUnauthorized          = errors.New("permission denied")
	ErrPermanent             = errors.New("a permanent error occurred that should not be retried")
)

// Specialized sentinels folded into the broader classes so callers can match
// either the precise condition or the class with errors.Is.
var (
	ErrPaymentNotConfirmed    = fmt.Errorf("%w: payment confirmation flag is required", ErrUnauthorized)
	ErrCounterAlreadyResolved = fmt.Errorf("%w: counter offer has already been resolved", ErrInvalidTransition)
)
