package game

import "time"

// pendingKind tags the single per-game pending interaction slot.
type pendingKind int

const (
	pendingNopeVote pendingKind = iota
	pendingChoosePlayer
	pendingChoosePosition
	pendingReorder
)

// pendingInteraction is the explicit record of an open sub-interaction.
// While one is set the game is paused: ordinary turn actions are rejected
// and only inputs addressed to this record are accepted. The record captures
// the actionID at creation; inputs carrying any other snapshot are ignored.
// Exactly one of the resolution callbacks runs, after which the slot is
// cleared. Callbacks run with the game lock held.
type pendingInteraction struct {
	kind     pendingKind
	actionID uint64
	actorID  string    // player whose action opened the interaction
	deadline time.Time // timeout default applies after this instant

	// Nope vote state.
	targetID  string          // single eligible confirmer; empty = open quorum
	eligible  []string        // quorum members when targetID is empty
	nopeCount int             // parity: odd = currently vetoed
	confirmed map[string]bool // quorum confirmations, toggled by repeat OK

	// Selection state.
	options  []string // eligible players for pendingChoosePlayer
	card     string   // card being placed for pendingChoosePosition
	position int      // working deck position
	order    []string // working top-of-deck order for pendingReorder

	// Resolution continuations.
	onConfirmed func(confirmerID string) // nope vote resolved allowed
	onCancelled func()                   // nope vote resolved vetoed (nil = default action_end)
	onChosen    func(targetID string)    // player selection
	onPlaced    func(position int)       // deck position selection
	onApplied   func(order []string)     // reorder confirmed
}

// vetoed reports the parity flag: odd nope count means currently vetoed.
func (p *pendingInteraction) vetoed() bool {
	return p.nopeCount%2 == 1
}

// quorumMet reports whether every eligible player has an active
// confirmation. Only meaningful in open (untargeted) mode.
func (p *pendingInteraction) quorumMet() bool {
	if p.targetID != "" {
		return false
	}
	for _, id := range p.eligible {
		if !p.confirmed[id] {
			return false
		}
	}
	return len(p.eligible) > 0
}

// expired reports whether the timeout default applies at now.
func (p *pendingInteraction) expired(now time.Time) bool {
	return !p.deadline.IsZero() && now.After(p.deadline)
}
