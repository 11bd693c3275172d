package game

import (
	"math/rand"
	"testing"
)

func TestDeckDrawTopAndBottom(t *testing.T) {
	d := deck{cards: []string{"bottom", "middle", "top"}}

	card, err := d.draw(-1)
	if err != nil || card != "top" {
		t.Fatalf("draw(-1) = %q, %v; want top", card, err)
	}
	card, err = d.draw(0)
	if err != nil || card != "bottom" {
		t.Fatalf("draw(0) = %q, %v; want bottom", card, err)
	}
	if d.size() != 1 {
		t.Fatalf("expected 1 card left, got %d", d.size())
	}
}

func TestDeckDrawEmpty(t *testing.T) {
	d := deck{}
	if _, err := d.draw(-1); err != ErrEmptyDeckDraw {
		t.Fatalf("expected ErrEmptyDeckDraw, got %v", err)
	}
}

func TestDeckInsertPositions(t *testing.T) {
	d := deck{cards: []string{"a", "b"}}

	d.insert("bottom", 0)
	d.insert("top", 99)
	d.insert("mid", 2)

	want := []string{"bottom", "a", "mid", "b", "top"}
	for i, c := range want {
		if d.cards[i] != c {
			t.Fatalf("position %d: expected %q, got %q", i, c, d.cards[i])
		}
	}
}

func TestDeckPeekAndSetTop(t *testing.T) {
	d := deck{cards: []string{"d", "c", "b", "a"}}

	top := d.peekTop(3)
	if len(top) != 3 || top[0] != "a" || top[1] != "b" || top[2] != "c" {
		t.Fatalf("peekTop(3) = %v", top)
	}
	if d.size() != 4 {
		t.Fatalf("peek must not remove cards")
	}

	d.setTop([]string{"c", "b", "a"})
	card, _ := d.draw(-1)
	if card != "c" {
		t.Fatalf("expected reordered top c, got %q", card)
	}
}

func TestDeckPeekBeyondSize(t *testing.T) {
	d := deck{cards: []string{"x"}}
	if got := d.peekTop(5); len(got) != 1 || got[0] != "x" {
		t.Fatalf("peekTop(5) = %v", got)
	}
}

func TestDeckCountAndDistance(t *testing.T) {
	d := deck{cards: []string{"bomb", "a", "bomb", "b"}}

	if n := d.count("bomb"); n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
	if dist := d.distanceFromTop("bomb"); dist != 1 {
		t.Fatalf("distanceFromTop = %d, want 1", dist)
	}
	if dist := d.distanceFromTop("missing"); dist != -1 {
		t.Fatalf("expected -1 for missing card, got %d", dist)
	}
}

func TestDeckShuffleKeepsContents(t *testing.T) {
	d := deck{cards: []string{"a", "b", "c", "d", "e"}}
	d.shuffle(rand.New(rand.NewSource(3)))

	if d.size() != 5 {
		t.Fatalf("shuffle changed deck size to %d", d.size())
	}
	seen := map[string]bool{}
	for _, c := range d.cards {
		seen[c] = true
	}
	for _, c := range []string{"a", "b", "c", "d", "e"} {
		if !seen[c] {
			t.Fatalf("card %q lost in shuffle", c)
		}
	}
}

func TestHandHelpers(t *testing.T) {
	hand := []string{"nope", "skip", "nope"}

	if n := handCount(hand, "nope"); n != 2 {
		t.Fatalf("handCount = %d, want 2", n)
	}

	hand, ok := removeFromHand(hand, "nope")
	if !ok || handCount(hand, "nope") != 1 {
		t.Fatalf("removeFromHand failed: %v %v", hand, ok)
	}

	if _, ok := removeFromHand(hand, "defuse"); ok {
		t.Fatal("removed a card that was not in hand")
	}
}
