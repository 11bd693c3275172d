package game

import "errors"

// Recoverable rejections returned to input handlers. None of these indicates
// a bug; callers report them to the acting player (or, for ErrStaleAction,
// drop the input silently) and the game continues.
var (
	ErrInvalidTurn       = errors.New("not your turn")
	ErrStaleAction       = errors.New("stale action snapshot")
	ErrNoCardInHand      = errors.New("card not in hand")
	ErrNoCounterCard     = errors.New("no nope card in hand")
	ErrInvalidRosterSize = errors.New("need at least 2 players")
	ErrGameAlreadyEnded  = errors.New("game already ended")
	ErrNoEligibleTarget  = errors.New("no eligible target")
	ErrNotEligible       = errors.New("not eligible for this step")
	ErrGameNotStarted    = errors.New("game not started")
	ErrGameInProgress    = errors.New("game already started")
)

// Invariant violations. These indicate a core bug; the manager aborts the
// offending game instance when one surfaces but keeps the process alive.
var (
	ErrDuplicatePlayer = errors.New("invariant: duplicate player id")
	ErrEmptyDeckDraw   = errors.New("invariant: draw from empty deck")
	ErrCardNotPresent  = errors.New("invariant: removing card not in hand")
)

// IsFatal reports whether err is an invariant violation that must abort the
// game instance rather than be surfaced as a rejection.
func IsFatal(err error) bool {
	return errors.Is(err, ErrDuplicatePlayer) ||
		errors.Is(err, ErrEmptyDeckDraw) ||
		errors.Is(err, ErrCardNotPresent)
}
