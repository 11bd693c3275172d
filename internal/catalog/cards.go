package catalog

// Well-known card IDs referenced by the game core.
const (
	CardEggsplode          = "eggsplode"
	CardDefuse             = "defuse"
	CardNope               = "nope"
	CardAttegg             = "attegg"
	CardSkip               = "skip"
	CardShuffle            = "shuffle"
	CardSeeFuture          = "see_future"
	CardAlterFuture        = "alter_future"
	CardDrawFromBottom     = "draw_from_bottom"
	CardReverse            = "reverse"
	CardSuperSkip          = "super_skip"
	CardBury               = "bury"
	CardSwapTopBottom      = "swap_top_bottom"
	CardShareFuture        = "share_future"
	CardSelfAttegg         = "self_attegg"
	CardTargetedAttegg     = "targeted_attegg"
	CardRadioeggtive       = "radioeggtive"
	CardRadioeggtiveFaceUp = "radioeggtive_face_up"
)

// ExpansionRadioeggtive is the only built-in expansion tag.
const ExpansionRadioeggtive = "radioeggtive"

// builtinCards is the default card set. Count is copies per base deck; the
// deck builder multiplies these by the roster-size multiplier. Bombs and
// defuses carry Count 0 because setup inserts them explicitly.
func builtinCards() []Card {
	cards := []Card{
		{ID: CardEggsplode, Title: "Eggsplode", Expansion: "base"},
		{ID: CardDefuse, Title: "Defuse", Expansion: "base"},
		{ID: CardNope, Title: "Nope", Expansion: "base", Count: 5},
		{ID: CardAttegg, Title: "Attegg", Usable: true, ResolvesImmediately: true, Expansion: "base", Count: 4},
		{ID: CardSkip, Title: "Skip", Usable: true, Expansion: "base", Count: 4},
		{ID: CardShuffle, Title: "Shuffle", Usable: true, Expansion: "base", Count: 4},
		{ID: CardSeeFuture, Title: "See the Future", Usable: true, Expansion: "base", Count: 5},

		{ID: CardDrawFromBottom, Title: "Draw from the Bottom", Usable: true, Expansion: ExpansionRadioeggtive, Count: 4},
		{ID: CardReverse, Title: "Reverse", Usable: true, Expansion: ExpansionRadioeggtive, Count: 4},
		{ID: CardAlterFuture, Title: "Alter the Future", Usable: true, ResolvesImmediately: true, Expansion: ExpansionRadioeggtive, Count: 4},
		{ID: CardSuperSkip, Title: "Super Skip", Usable: true, Expansion: ExpansionRadioeggtive, Count: 1},
		{ID: CardBury, Title: "Bury", Usable: true, Expansion: ExpansionRadioeggtive, Count: 2},
		{ID: CardSwapTopBottom, Title: "Swap Top and Bottom", Usable: true, Expansion: ExpansionRadioeggtive, Count: 2},
		{ID: CardShareFuture, Title: "Share the Future", Usable: true, ResolvesImmediately: true, Expansion: ExpansionRadioeggtive, Count: 2},
		{ID: CardSelfAttegg, Title: "Self Attegg", Usable: true, ResolvesImmediately: true, Expansion: ExpansionRadioeggtive, Count: 2},
		{ID: CardTargetedAttegg, Title: "Targeted Attegg", Usable: true, ResolvesImmediately: true, Expansion: ExpansionRadioeggtive, Count: 3},
		{ID: CardRadioeggtive, Title: "Radioeggtive", Expansion: ExpansionRadioeggtive},
		{ID: CardRadioeggtiveFaceUp, Title: "Radioeggtive (face up)", Expansion: ExpansionRadioeggtive},
	}
	// Five interchangeable combo cards; each needs a pair to play.
	for i := 0; i < 5; i++ {
		cards = append(cards, Card{
			ID:                  comboCardID(i),
			Title:               comboCardTitle(i),
			Usable:              true,
			ComboSize:           2,
			ResolvesImmediately: true,
			Expansion:           "base",
			Count:               4,
		})
	}
	return cards
}

func comboCardID(i int) string {
	return "food" + string(rune('0'+i))
}

func comboCardTitle(i int) string {
	titles := [5]string{"Eggroll", "Omelette", "Benedict", "Scramble", "Sunny Side"}
	return titles[i]
}

// ComboCardIDs lists the built-in combo (steal) cards.
func ComboCardIDs() []string {
	ids := make([]string, 5)
	for i := range ids {
		ids[i] = comboCardID(i)
	}
	return ids
}
