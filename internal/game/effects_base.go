package game

import (
	"fmt"

	"github.com/phorb/eggsplode-server/internal/catalog"
)

func baseEffects() effectSet {
	set := effectSet{
		name: "base",
		play: map[string]playEffect{
			catalog.CardSkip:      playSkip,
			catalog.CardShuffle:   playShuffle,
			catalog.CardSeeFuture: playSeeFuture,
			catalog.CardAttegg:    playAttegg,
		},
		draw: map[string]drawEffect{
			catalog.CardEggsplode: drawEggsplode,
		},
		warnings: []warningFunc{deckCountWarning},
	}
	for _, id := range catalog.ComboCardIDs() {
		set.play[id] = playComboSteal
	}
	return set
}

func playSkip(g *Game, playerID string) error {
	g.send(Notice{Kind: NoticeSkipped, PlayerID: playerID})
	g.bus.Notify(Event{Type: EventTurnEnd, PlayerID: playerID})
	return nil
}

func playShuffle(g *Game, playerID string) error {
	g.deck.shuffle(g.rng)
	g.send(Notice{Kind: NoticeShuffled, PlayerID: playerID})
	g.bus.Notify(Event{Type: EventActionEnd, PlayerID: playerID})
	return nil
}

func playSeeFuture(g *Game, playerID string) error {
	g.send(Notice{Kind: NoticeFutureCards, RecipientID: playerID, Cards: g.deck.peekTop(3)})
	g.bus.Notify(Event{Type: EventActionEnd, PlayerID: playerID})
	return nil
}

// playAttegg stacks extra turns onto the next player behind a targeted
// challenge window: only the target may confirm early, anyone may nope.
func playAttegg(g *Game, playerID string) error {
	target := g.nextPlayerID()
	g.openNopeVote(playerID, target, nil, catalog.CardAttegg,
		func(string) { g.attackFinish(playerID, target, g.rules.AttackTurns) }, nil)
	return nil
}

// attackFinish hands the turn to the target with stacked extra turns.
// Stacking on top of an unconsumed attack accumulates: the target owes the
// previous remainder plus the new turns.
func (g *Game) attackFinish(playerID, targetID string, turns int) {
	g.extraTurns += turns
	for i, p := range g.players {
		if p == targetID {
			g.current = i
			break
		}
	}
	g.send(Notice{Kind: NoticeAttacked, PlayerID: playerID, TargetID: targetID, Amount: g.extraTurns})
	g.turnID++
	g.bus.Notify(Event{Type: EventTurnStart, PlayerID: targetID})
}

// playComboSteal is the handler behind every combo pair: pick a victim with
// cards, survive their challenge, then take a random card from their hand.
func playComboSteal(g *Game, playerID string) error {
	var options []string
	for _, p := range g.players {
		if p != playerID && len(g.hands[p]) > 0 {
			options = append(options, p)
		}
	}
	if len(options) == 0 {
		// PlayCard checks eligibility before removing the pair, so an empty
		// option list here means every other hand emptied mid-action.
		g.send(Notice{Kind: NoticeNoCardsToSteal, PlayerID: playerID})
		g.bus.Notify(Event{Type: EventActionEnd, PlayerID: playerID})
		return nil
	}
	g.openChoosePlayer(playerID, options, func(targetID string) {
		g.openNopeVote(playerID, targetID, nil, "",
			func(string) { g.stealFinish(playerID, targetID) }, nil)
	})
	return nil
}

// stealFinish moves one random card between hands atomically.
func (g *Game) stealFinish(playerID, targetID string) {
	targetHand := g.hands[targetID]
	if len(targetHand) == 0 {
		g.send(Notice{Kind: NoticeNoCardsToSteal, PlayerID: playerID, TargetID: targetID})
		g.bus.Notify(Event{Type: EventActionEnd, PlayerID: playerID})
		return
	}
	stolen := targetHand[g.rng.Intn(len(targetHand))]
	g.hands[targetID], _ = removeFromHand(targetHand, stolen)
	g.hands[playerID] = append(g.hands[playerID], stolen)

	g.send(Notice{Kind: NoticeStolenCard, PlayerID: playerID, TargetID: targetID})
	g.send(Notice{Kind: NoticeDrawnCard, RecipientID: playerID, CardID: stolen})
	g.bus.Notify(Event{Type: EventActionEnd, PlayerID: playerID})
}

// drawEggsplode resolves the elimination bomb. A held defuse lets the
// player slip the bomb back into the deck at a position of their choosing;
// on a supervisor-timed draw the position is random instead of prompted.
func drawEggsplode(g *Game, playerID string, timedOut bool) error {
	if hand, ok := removeFromHand(g.hands[playerID], catalog.CardDefuse); ok {
		g.hands[playerID] = hand
		g.discard = append(g.discard, catalog.CardDefuse)
		if timedOut {
			g.deck.insert(catalog.CardEggsplode, g.rng.Intn(g.deck.size()+1))
			g.send(Notice{Kind: NoticeDefused, PlayerID: playerID})
			g.bus.Notify(Event{Type: EventTurnEnd, PlayerID: playerID})
			return nil
		}
		g.openChoosePosition(playerID, catalog.CardEggsplode, func(position int) {
			g.deck.insert(catalog.CardEggsplode, position)
			g.send(Notice{Kind: NoticeDefused, PlayerID: playerID})
			g.bus.Notify(Event{Type: EventTurnEnd, PlayerID: playerID})
		})
		return nil
	}

	g.discard = append(g.discard, catalog.CardEggsplode)
	g.send(Notice{Kind: NoticeEliminated, PlayerID: playerID, CardID: catalog.CardEggsplode})
	if err := g.removePlayer(playerID); err != nil {
		return err
	}
	if g.state == StateActive {
		g.bus.Notify(Event{Type: EventTurnEnd, PlayerID: playerID})
	}
	return nil
}

func deckCountWarning(g *Game) string {
	return fmt.Sprintf("%d cards left, %d eggsplosions", g.deck.size(), g.deck.count(catalog.CardEggsplode))
}
