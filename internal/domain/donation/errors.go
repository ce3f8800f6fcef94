package donation

import "errors"

// Sentinel kinds for donation errors.
var (
	// ErrInvalidAmount rejects absent, zero, negative or non-numeric amounts.
	ErrInvalidAmount = errors.New("invalid donation amount")
)

// RejectMessage is the notice shown for ErrInvalidAmount.
const RejectMessage = "Please choose or enter a donation amount greater than zero."
