package game

import "math/rand"

// deck is an ordered pile of card IDs. The top of the deck is the last
// element: draws pop from the end, insertions at len(deck) go on top.
type deck struct {
	cards []string
}

func (d *deck) size() int { return len(d.cards) }

// draw removes and returns the card at index. Index -1 addresses the top,
// 0 the bottom. Drawing from an empty deck is an invariant violation.
func (d *deck) draw(index int) (string, error) {
	if len(d.cards) == 0 {
		return "", ErrEmptyDeckDraw
	}
	if index < 0 || index >= len(d.cards) {
		index = len(d.cards) - 1
	}
	card := d.cards[index]
	d.cards = append(d.cards[:index], d.cards[index+1:]...)
	return card, nil
}

// insert places a card at position, counted from the bottom; position
// len(cards) or larger puts it on top.
func (d *deck) insert(card string, position int) {
	if position < 0 {
		position = 0
	}
	if position >= len(d.cards) {
		d.cards = append(d.cards, card)
		return
	}
	d.cards = append(d.cards, "")
	copy(d.cards[position+1:], d.cards[position:])
	d.cards[position] = card
}

// peekTop returns up to n cards from the top, top-first, without removal.
func (d *deck) peekTop(n int) []string {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, d.cards[len(d.cards)-1-i])
	}
	return out
}

// setTop overwrites the top len(order) cards, taking order top-first. The
// caller must pass a permutation of the current top cards.
func (d *deck) setTop(order []string) {
	for i, card := range order {
		d.cards[len(d.cards)-1-i] = card
	}
}

// swapTopBottom exchanges the next draw with the bottom card.
func (d *deck) swapTopBottom() {
	if len(d.cards) < 2 {
		return
	}
	last := len(d.cards) - 1
	d.cards[0], d.cards[last] = d.cards[last], d.cards[0]
}

// count returns how many copies of the card the deck holds.
func (d *deck) count(card string) int {
	n := 0
	for _, c := range d.cards {
		if c == card {
			n++
		}
	}
	return n
}

// distanceFromTop returns how many draws until the card surfaces, or -1 if
// the deck does not contain it.
func (d *deck) distanceFromTop(card string) int {
	for i := len(d.cards) - 1; i >= 0; i-- {
		if d.cards[i] == card {
			return len(d.cards) - 1 - i
		}
	}
	return -1
}

func (d *deck) shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// hand helpers: hands are multisets stored as slices.

func handCount(hand []string, card string) int {
	n := 0
	for _, c := range hand {
		if c == card {
			n++
		}
	}
	return n
}

// removeFromHand deletes one copy of the card, reporting whether a copy was
// present.
func removeFromHand(hand []string, card string) ([]string, bool) {
	for i, c := range hand {
		if c == card {
			return append(hand[:i], hand[i+1:]...), true
		}
	}
	return hand, false
}
