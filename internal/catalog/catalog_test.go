package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalogLookup(t *testing.T) {
	c := New()

	card, ok := c.Get(CardAttegg)
	require.True(t, ok)
	assert.Equal(t, "Attegg", card.Title)
	assert.True(t, card.Usable)
	assert.True(t, card.ResolvesImmediately)

	_, ok = c.Get("no_such_card")
	assert.False(t, ok)
}

func TestDeckExcludesZeroCountCards(t *testing.T) {
	c := New()
	deck := c.Deck(nil)

	require.NotEmpty(t, deck)
	for _, id := range deck {
		assert.NotEqual(t, CardEggsplode, id)
		assert.NotEqual(t, CardDefuse, id)
	}
}

func TestDeckIncludesExpansionCards(t *testing.T) {
	c := New()

	base := c.Deck(nil)
	for _, id := range base {
		card, _ := c.Get(id)
		assert.Equal(t, "base", card.Expansion)
	}

	expanded := c.Deck([]string{ExpansionRadioeggtive})
	assert.Greater(t, len(expanded), len(base))

	found := false
	for _, id := range expanded {
		if id == CardReverse {
			found = true
		}
	}
	assert.True(t, found, "expansion deck should include reverse")
}

func TestComboCardsNeedPairs(t *testing.T) {
	c := New()
	for _, id := range ComboCardIDs() {
		card, ok := c.Get(id)
		require.True(t, ok, id)
		assert.Equal(t, 2, card.ComboSize, id)
		assert.True(t, card.ResolvesImmediately, id)
	}
}

func TestValidate(t *testing.T) {
	c := New()
	assert.NoError(t, c.Validate([]string{CardSkip, CardShuffle}))
	assert.Error(t, c.Validate([]string{CardSkip, "bogus"}))
}

func TestExpansions(t *testing.T) {
	c := New()
	assert.Equal(t, []string{ExpansionRadioeggtive}, c.Expansions())
}
