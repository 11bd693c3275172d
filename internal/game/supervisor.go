package game

import (
	"time"

	"go.uber.org/zap"
)

// CheckTimeouts applies every timeout default that is due at now. The game
// owns no timers; the host drives this from a ticker so time-based behavior
// stays deterministic under test. One call resolves at most one expired
// pending interaction and at most one stalled turn.
func (g *Game) CheckTimeouts(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateActive {
		return
	}

	if p := g.pending; p != nil {
		if p.expired(now) {
			g.resolveExpired(p)
		}
		return
	}

	if now.Sub(g.lastActivity) < g.rules.TurnTimeout {
		return
	}

	// The current player sat out the whole turn window. Draw on their
	// behalf; enough stalled turns in a row end the game for everyone.
	g.inactivityStreak++
	g.lastActivity = now
	if g.inactivityStreak > g.rules.MaxInactivityStreak {
		g.logger.Warn("game stalled, forcing end", zap.Int("streak", g.inactivityStreak))
		g.endCause = EndCauseTimeout
		g.send(Notice{Kind: NoticeGameOver})
		g.bus.Notify(Event{Type: EventGameEnd})
		return
	}
	playerID := g.currentPlayerID()
	g.send(Notice{Kind: NoticeTimeoutDraw, PlayerID: playerID})
	if err := g.drawFrom(-1, true); err != nil {
		g.logger.Error("timeout draw failed", zap.String("player_id", playerID), zap.Error(err))
	}
}

// resolveExpired applies the timeout default of an expired interaction:
// an unvetoed challenge resolves allowed, a vetoed one cancelled, and
// selections commit their working value.
func (g *Game) resolveExpired(p *pendingInteraction) {
	switch p.kind {
	case pendingNopeVote:
		if p.vetoed() {
			g.resolveCancelled(p)
		} else {
			g.resolveConfirmed(p, "")
		}
	case pendingChoosePlayer:
		g.pending = nil
		if p.onChosen != nil && len(p.options) > 0 {
			p.onChosen(p.options[0])
		}
	case pendingChoosePosition:
		g.pending = nil
		if p.onPlaced != nil {
			p.onPlaced(p.position)
		}
	case pendingReorder:
		g.pending = nil
		if p.onApplied != nil {
			p.onApplied(p.order)
		}
	}
}
