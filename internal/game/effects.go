package game

import (
	"fmt"

	"github.com/phorb/eggsplode-server/internal/catalog"
)

// playEffect resolves a card played from hand. It runs with the game lock
// held and either completes the action (emitting action_end or turn_end) or
// opens a pending sub-interaction whose continuation does so.
type playEffect func(g *Game, playerID string) error

// drawEffect resolves a draw-trigger card (one that never joins the hand).
// timedOut marks draws performed by the inactivity supervisor on behalf of
// an absent player; such resolutions must not open interactive prompts.
type drawEffect func(g *Game, playerID string, timedOut bool) error

// warningFunc contributes a line to the turn prompt.
type warningFunc func(g *Game) string

// effectSet is the static table of handlers one expansion contributes.
// Tables are fixed at compile time and validated against the catalog when a
// game starts, so an id/handler mismatch fails fast instead of at draw time.
type effectSet struct {
	name     string
	play     map[string]playEffect
	draw     map[string]drawEffect
	warnings []warningFunc
}

func registeredSets() map[string]effectSet {
	return map[string]effectSet{
		"base":                        baseEffects(),
		catalog.ExpansionRadioeggtive: radioeggtiveEffects(),
	}
}

// loadEffects populates the dispatch tables for the base set plus each
// enabled expansion, validating every card id against the catalog.
func (g *Game) loadEffects() error {
	g.playEffects = make(map[string]playEffect)
	g.drawEffects = make(map[string]drawEffect)
	g.warnings = nil

	sets := registeredSets()
	enabled := append([]string{"base"}, g.rules.Expansions...)
	for _, name := range enabled {
		set, ok := sets[name]
		if !ok {
			return fmt.Errorf("unknown card set %q", name)
		}
		var ids []string
		for id := range set.play {
			ids = append(ids, id)
		}
		for id := range set.draw {
			ids = append(ids, id)
		}
		if err := g.catalog.Validate(ids); err != nil {
			return fmt.Errorf("card set %q: %w", name, err)
		}
		for id, fn := range set.play {
			g.playEffects[id] = fn
		}
		for id, fn := range set.draw {
			g.drawEffects[id] = fn
		}
		g.warnings = append(g.warnings, set.warnings...)
	}
	return nil
}
