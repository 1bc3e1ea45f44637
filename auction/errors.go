package auction

import "errors"

var (
	// ErrAlreadySold is returned when an outcome is recorded twice for the
	// same player. The first outcome stands.
	ErrAlreadySold = errors.New("player already resolved")

	// ErrBudgetExceeded is returned by a commit that would drive a purse
	// negative. The ledger is left untouched.
	ErrBudgetExceeded = errors.New("bid exceeds remaining purse")

	// ErrRosterFull is returned by a commit that would violate squad size,
	// overseas or role composition rules. The ledger is left untouched.
	ErrRosterFull = errors.New("squad composition rules violated")

	// ErrEmptyPool is returned by the pool once every player has been
	// resolved.
	ErrEmptyPool = errors.New("no players left in auction pool")

	// ErrNotRunning is returned when the auction is advanced outside the
	// Running phase.
	ErrNotRunning = errors.New("auction is not running")
)
