package services

import "errors"

// Ledger-mutation failures. All of them abort the enclosing transaction and
// reach the caller unmodified; nothing in this package retries silently.
var (
	// ErrNotFound is returned when a bet or member id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientBalance is returned when a payout would drive a
	// member's current balance below zero. Checked before any mutation.
	ErrInsufficientBalance = errors.New("payout exceeds current balance")

	// ErrInvalidAmount is returned for non-positive contribution or
	// withdrawal amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidOutcome is returned for an outcome outside
	// pending/won/lost.
	ErrInvalidOutcome = errors.New("unknown bet outcome")

	// ErrProfitLossMismatch is returned when a bet's profit/loss sign
	// contradicts its outcome.
	ErrProfitLossMismatch = errors.New("profit/loss inconsistent with outcome")
)
