// Package calculator implements the pure money arithmetic of a group:
// splitting an amount into shares, netting balances and settling debts.
// All amounts are int64 minor units.
package calculator

import "errors"

var (
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrEmptyMemberSet = errors.New("at least one member is required")
	ErrInvalidWeight  = errors.New("weights must be positive")
	ErrShareMismatch  = errors.New("shares must sum to the total amount")
	ErrUnbalanced     = errors.New("net positions do not sum to zero")
	ErrOverflow       = errors.New("amount total is out of int64 range")
)
