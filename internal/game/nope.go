package game

import (
	"github.com/phorb/eggsplode-server/internal/catalog"
)

// openNopeVote suspends the game behind a timed challenge window. targetID
// selects the confirmation mode: a non-empty target means only that player
// may confirm, an empty target opens confirmation to every player in
// eligible (quorum). onConfirmed runs when the window resolves allowed;
// onCancelled (or the default action_end) runs when it resolves vetoed.
// Callers hold the lock.
func (g *Game) openNopeVote(actorID, targetID string, eligible []string, cardID string, onConfirmed func(confirmerID string), onCancelled func()) {
	g.pending = &pendingInteraction{
		kind:        pendingNopeVote,
		actionID:    g.actionID,
		actorID:     actorID,
		targetID:    targetID,
		eligible:    eligible,
		confirmed:   make(map[string]bool),
		deadline:    g.now().Add(g.rules.NopeWindow),
		onConfirmed: onConfirmed,
		onCancelled: onCancelled,
	}
	g.send(Notice{
		Kind:     NoticeNopeWindow,
		PlayerID: actorID,
		TargetID: targetID,
		CardID:   cardID,
		Players:  eligible,
		Deadline: g.pending.deadline,
	})
}

// voteGate validates that an input belongs to the open sub-interaction.
// A missing or mismatched snapshot is the expected result of front-end lag
// and surfaces as ErrStaleAction, which callers drop silently.
func (g *Game) voteGate(playerID string, snapshot uint64, kind pendingKind) (*pendingInteraction, error) {
	if g.state == StateEnded {
		return nil, ErrGameAlreadyEnded
	}
	p := g.pending
	if p == nil || p.kind != kind || snapshot != p.actionID {
		return nil, ErrStaleAction
	}
	if !g.isPlayer(playerID) {
		return nil, ErrNotEligible
	}
	return p, nil
}

func (g *Game) isPlayer(playerID string) bool {
	for _, p := range g.players {
		if p == playerID {
			return true
		}
	}
	return false
}

// VoteNope spends one nope card to toggle the veto parity of the open
// challenge window. The acting player may not nope their own action while
// it stands allowed; counter-noping an existing veto is always open.
func (g *Game) VoteNope(playerID string, snapshot uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.voteGate(playerID, snapshot, pendingNopeVote)
	if err != nil {
		return err
	}
	if !p.vetoed() && playerID == p.actorID {
		return ErrNotEligible
	}
	hand, ok := removeFromHand(g.hands[playerID], catalog.CardNope)
	if !ok {
		return ErrNoCounterCard
	}
	g.hands[playerID] = hand
	g.discard = append(g.discard, catalog.CardNope)
	p.nopeCount++
	g.lastActivity = g.now()

	kind := NoticeNoped
	if !p.vetoed() {
		kind = NoticeYupped
	}
	g.send(Notice{Kind: kind, PlayerID: playerID, Amount: p.nopeCount, Deadline: p.deadline})
	return nil
}

// VoteOk confirms the open sub-interaction. For a targeted challenge only
// the target may confirm; for an open challenge every eligible player must,
// and a repeat OK from the same player withdraws their confirmation. VoteOk
// also serves as the explicit confirm for reorder and position selections.
func (g *Game) VoteOk(playerID string, snapshot uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateEnded {
		return ErrGameAlreadyEnded
	}
	p := g.pending
	if p == nil || snapshot != p.actionID {
		return ErrStaleAction
	}

	switch p.kind {
	case pendingNopeVote:
		if p.vetoed() {
			return ErrNotEligible
		}
		if p.targetID != "" {
			if playerID != p.targetID {
				return ErrNotEligible
			}
			g.resolveConfirmed(p, playerID)
			return nil
		}
		if playerID == p.actorID || !contains(p.eligible, playerID) {
			return ErrNotEligible
		}
		p.confirmed[playerID] = !p.confirmed[playerID]
		g.lastActivity = g.now()
		if p.quorumMet() {
			g.resolveConfirmed(p, playerID)
		}
		return nil

	case pendingReorder:
		if playerID != p.actorID {
			return ErrNotEligible
		}
		g.pending = nil
		if p.onApplied != nil {
			p.onApplied(p.order)
		}
		return nil

	case pendingChoosePosition:
		if playerID != p.actorID {
			return ErrNotEligible
		}
		g.pending = nil
		if p.onPlaced != nil {
			p.onPlaced(p.position)
		}
		return nil

	default:
		return ErrStaleAction
	}
}

func (g *Game) resolveConfirmed(p *pendingInteraction, confirmerID string) {
	g.pending = nil
	g.lastActivity = g.now()
	if p.onConfirmed != nil {
		p.onConfirmed(confirmerID)
	}
}

// resolveCancelled closes a vetoed or abandoned challenge. Without an
// explicit cancellation path the effect never fires; the action ends and
// the actor is prompted again.
func (g *Game) resolveCancelled(p *pendingInteraction) {
	g.pending = nil
	if p.onCancelled != nil {
		p.onCancelled()
		return
	}
	g.send(Notice{Kind: NoticeActionNoped, PlayerID: p.actorID})
	g.bus.Notify(Event{Type: EventActionEnd, PlayerID: p.actorID})
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
