package game

import (
	"fmt"

	"github.com/phorb/eggsplode-server/internal/catalog"
)

func radioeggtiveEffects() effectSet {
	return effectSet{
		name: catalog.ExpansionRadioeggtive,
		play: map[string]playEffect{
			catalog.CardDrawFromBottom: playDrawFromBottom,
			catalog.CardReverse:        playReverse,
			catalog.CardAlterFuture:    playAlterFuture,
			catalog.CardShareFuture:    playShareFuture,
			catalog.CardSuperSkip:      playSuperSkip,
			catalog.CardSelfAttegg:     playSelfAttegg,
			catalog.CardTargetedAttegg: playTargetedAttegg,
			catalog.CardBury:           playBury,
			catalog.CardSwapTopBottom:  playSwapTopBottom,
		},
		draw: map[string]drawEffect{
			catalog.CardRadioeggtive:       drawRadioeggtive,
			catalog.CardRadioeggtiveFaceUp: drawRadioeggtiveFaceUp,
		},
		warnings: []warningFunc{radioeggtiveWarning},
	}
}

func playDrawFromBottom(g *Game, playerID string) error {
	return g.drawFrom(0, false)
}

func playReverse(g *Game, playerID string) error {
	g.reverse()
	g.send(Notice{Kind: NoticeReversed, PlayerID: playerID})
	g.bus.Notify(Event{Type: EventTurnEnd, PlayerID: playerID})
	return nil
}

// playAlterFuture opens a reorder window over the top three cards. The deck
// mutates only once the actor confirms or the window times out.
func playAlterFuture(g *Game, playerID string) error {
	g.openReorder(playerID, 3, func(order []string) {
		g.deck.setTop(order)
		g.bus.Notify(Event{Type: EventActionEnd, PlayerID: playerID})
	})
	return nil
}

// playShareFuture is alter-the-future with witnesses: the actor reorders
// the top three cards and the final order is revealed to both the actor and
// the player about to draw into it.
func playShareFuture(g *Game, playerID string) error {
	g.openReorder(playerID, 3, func(order []string) {
		g.deck.setTop(order)
		g.send(Notice{Kind: NoticeFutureCards, RecipientID: playerID, Cards: order})
		g.send(Notice{Kind: NoticeFutureCards, RecipientID: g.nextPlayerID(), Cards: order})
		g.bus.Notify(Event{Type: EventActionEnd, PlayerID: playerID})
	})
	return nil
}

// playBury takes the top card off the deck, shows it to the actor alone and
// lets them slide it back in at any position. Burying ends the turn, so the
// actor never draws the card they peeked at.
func playBury(g *Game, playerID string) error {
	card, err := g.deck.draw(-1)
	if err != nil {
		return err
	}
	g.openChoosePosition(playerID, card, func(position int) {
		g.deck.insert(card, position)
		g.send(Notice{Kind: NoticeBuried, PlayerID: playerID})
		g.bus.Notify(Event{Type: EventTurnEnd, PlayerID: playerID})
	})
	return nil
}

func playSwapTopBottom(g *Game, playerID string) error {
	g.deck.swapTopBottom()
	g.send(Notice{Kind: NoticeSwapped, PlayerID: playerID})
	g.bus.Notify(Event{Type: EventActionEnd, PlayerID: playerID})
	return nil
}

// playSuperSkip sheds every stacked extra turn along with the current one.
func playSuperSkip(g *Game, playerID string) error {
	g.extraTurns = 0
	g.send(Notice{Kind: NoticeSkipped, PlayerID: playerID, CardID: catalog.CardSuperSkip})
	g.bus.Notify(Event{Type: EventTurnEnd, PlayerID: playerID})
	return nil
}

func playSelfAttegg(g *Game, playerID string) error {
	g.attackFinish(playerID, playerID, g.rules.SelfAttackTurns)
	return nil
}

// playTargetedAttegg is the attack with a chosen victim: pick any other
// player, then give that player the targeted challenge window.
func playTargetedAttegg(g *Game, playerID string) error {
	options := g.otherPlayers(playerID)
	if len(options) == 0 {
		return g.abort(fmt.Errorf("targeted attack with no opponents in %s", g.ID))
	}
	g.openChoosePlayer(playerID, options, func(targetID string) {
		g.openNopeVote(playerID, targetID, nil, catalog.CardTargetedAttegg,
			func(string) { g.attackFinish(playerID, targetID, g.rules.AttackTurns) }, nil)
	})
	return nil
}

// drawRadioeggtive flips the hidden radioeggtive face up and returns it to
// the deck at a position of the drawer's choosing. Nobody is eliminated
// yet; the face-up copy is the one that kills.
func drawRadioeggtive(g *Game, playerID string, timedOut bool) error {
	g.send(Notice{Kind: NoticeCardDrawn, PlayerID: playerID, CardID: catalog.CardRadioeggtive})
	if timedOut {
		g.deck.insert(catalog.CardRadioeggtiveFaceUp, g.rng.Intn(g.deck.size()+1))
		g.bus.Notify(Event{Type: EventTurnEnd, PlayerID: playerID})
		return nil
	}
	g.openChoosePosition(playerID, catalog.CardRadioeggtiveFaceUp, func(position int) {
		g.deck.insert(catalog.CardRadioeggtiveFaceUp, position)
		g.bus.Notify(Event{Type: EventTurnEnd, PlayerID: playerID})
	})
	return nil
}

// drawRadioeggtiveFaceUp eliminates the drawer outright. A defuse does not
// help against a bomb everyone saw coming.
func drawRadioeggtiveFaceUp(g *Game, playerID string, timedOut bool) error {
	g.discard = append(g.discard, catalog.CardRadioeggtiveFaceUp)
	g.send(Notice{Kind: NoticeEliminated, PlayerID: playerID, CardID: catalog.CardRadioeggtiveFaceUp})
	if err := g.removePlayer(playerID); err != nil {
		return err
	}
	if g.state == StateActive {
		g.bus.Notify(Event{Type: EventTurnEnd, PlayerID: playerID})
	}
	return nil
}

// radioeggtiveWarning counts down the draws until the face-up radioeggtive
// surfaces.
func radioeggtiveWarning(g *Game) string {
	dist := g.deck.distanceFromTop(catalog.CardRadioeggtiveFaceUp)
	if dist < 0 {
		return ""
	}
	return fmt.Sprintf("radioeggtive face up in %d draws", dist+1)
}
