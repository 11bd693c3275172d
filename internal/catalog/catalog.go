package catalog

import (
	"fmt"
	"sort"
)

// Card is an immutable catalog entry. Games share catalog entries and never
// mutate them; all per-game card state lives in decks and hands as card IDs.
type Card struct {
	ID                  string
	Title               string
	Usable              bool // playable from hand on the owner's turn
	ComboSize           int  // copies required to play (0 or 1 = single card)
	ResolvesImmediately bool // skip the challenge window; the effect manages its own protocol
	Expansion           string
	Count               int // copies seeded into the base deck (before multiplier)
}

// Catalog is a read-only card lookup keyed by card ID.
type Catalog struct {
	cards map[string]Card
	order []string
}

// New returns a catalog populated with the built-in card set.
func New() *Catalog {
	c := &Catalog{cards: make(map[string]Card)}
	for _, card := range builtinCards() {
		c.put(card)
	}
	return c
}

func (c *Catalog) put(card Card) {
	if _, exists := c.cards[card.ID]; !exists {
		c.order = append(c.order, card.ID)
	}
	c.cards[card.ID] = card
}

// Get returns the catalog entry for a card ID.
func (c *Catalog) Get(id string) (Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// Has reports whether a card ID exists in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.cards[id]
	return ok
}

// Deck returns the seed cards for the base game plus the named expansions,
// in catalog order. Cards with Count 0 (bombs, defuses handed out at deal
// time) are excluded; they are inserted explicitly during game setup.
func (c *Catalog) Deck(expansions []string) []string {
	enabled := map[string]bool{"base": true}
	for _, e := range expansions {
		enabled[e] = true
	}
	var deck []string
	for _, id := range c.order {
		card := c.cards[id]
		if !enabled[card.Expansion] {
			continue
		}
		for i := 0; i < card.Count; i++ {
			deck = append(deck, card.ID)
		}
	}
	return deck
}

// Expansions returns the distinct expansion tags present in the catalog,
// excluding the base set, sorted for stable output.
func (c *Catalog) Expansions() []string {
	seen := map[string]bool{}
	var out []string
	for _, id := range c.order {
		exp := c.cards[id].Expansion
		if exp == "base" || seen[exp] {
			continue
		}
		seen[exp] = true
		out = append(out, exp)
	}
	sort.Strings(out)
	return out
}

// Validate checks that every referenced card ID exists and that combo cards
// declare a sane combo size.
func (c *Catalog) Validate(ids []string) error {
	for _, id := range ids {
		card, ok := c.cards[id]
		if !ok {
			return fmt.Errorf("card %q not in catalog", id)
		}
		if card.ComboSize < 0 {
			return fmt.Errorf("card %q has negative combo size", id)
		}
	}
	return nil
}
