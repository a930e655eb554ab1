package engine

import "errors"

// Rule violations. Engine operations wrap these with context; match with errors.Is.
var (
	ErrGameNotStarted      = errors.New("game has not started")
	ErrGameOver            = errors.New("game is already over")
	ErrNotEnoughPlayers    = errors.New("not enough players")
	ErrTooManyPlayers      = errors.New("too many players")
	ErrDuplicatePlayer     = errors.New("duplicate player")
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrPendingAction       = errors.New("another action must be resolved first")
	ErrWrongPending        = errors.New("no matching pending action")
	ErrNotResponder        = errors.New("player is not expected to respond")
	ErrBudgetExhausted     = errors.New("no plays left this turn")
	ErrCardNotFound        = errors.New("card not found")
	ErrNotPlayable         = errors.New("card cannot be played this way")
	ErrColorRequired       = errors.New("a color must be chosen")
	ErrInvalidColor        = errors.New("invalid color")
	ErrColorNotOwned       = errors.New("no properties of that color")
	ErrSetIncomplete       = errors.New("property set is not complete")
	ErrSetComplete         = errors.New("property set is complete")
	ErrUpgradeLimit        = errors.New("property set cannot take that upgrade")
	ErrInvalidTarget       = errors.New("invalid target player")
	ErrNoLegalTarget       = errors.New("no player can be targeted")
	ErrInvalidPayment      = errors.New("invalid payment selection")
	ErrInsufficientPayment = errors.New("payment does not cover the amount owed")
	ErrInvalidBankruptcy   = errors.New("bankruptcy payment is not valid")
	ErrNoCounterCard       = errors.New("player holds no Just Say No")
	ErrNotWildcard         = errors.New("card is not a wildcard")
	ErrAlreadyReassigned   = errors.New("a wildcard was already reassigned this turn")
	ErrDiscardCount        = errors.New("wrong number of cards to discard")
)
