package game

// openChoosePlayer suspends the game until the actor picks one of the
// eligible players. The timeout default selects the first option.
func (g *Game) openChoosePlayer(actorID string, options []string, onChosen func(targetID string)) {
	g.pending = &pendingInteraction{
		kind:     pendingChoosePlayer,
		actionID: g.actionID,
		actorID:  actorID,
		options:  options,
		deadline: g.now().Add(g.rules.SelectionWindow),
		onChosen: onChosen,
	}
	g.send(Notice{
		Kind:        NoticeChoosePlayer,
		PlayerID:    actorID,
		RecipientID: actorID,
		Players:     options,
		Deadline:    g.pending.deadline,
	})
}

// ChoosePlayer resolves an open player selection.
func (g *Game) ChoosePlayer(playerID string, snapshot uint64, targetID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.voteGate(playerID, snapshot, pendingChoosePlayer)
	if err != nil {
		return err
	}
	if playerID != p.actorID {
		return ErrNotEligible
	}
	if !contains(p.options, targetID) {
		return ErrNoEligibleTarget
	}
	g.pending = nil
	g.touch()
	if p.onChosen != nil {
		p.onChosen(targetID)
	}
	return nil
}

// openChoosePosition suspends the game until the actor picks a deck
// position for the card, counted from the bottom. The timeout default keeps
// the working position, which starts at the bottom.
func (g *Game) openChoosePosition(actorID, cardID string, onPlaced func(position int)) {
	g.pending = &pendingInteraction{
		kind:     pendingChoosePosition,
		actionID: g.actionID,
		actorID:  actorID,
		card:     cardID,
		position: 0,
		deadline: g.now().Add(g.rules.SelectionWindow),
		onPlaced: onPlaced,
	}
	g.send(Notice{
		Kind:        NoticeChoosePos,
		PlayerID:    actorID,
		RecipientID: actorID,
		CardID:      cardID,
		Amount:      g.deck.size(),
		Deadline:    g.pending.deadline,
	})
}

// ChooseDeckPosition resolves an open position selection with the chosen
// slot (0 = bottom, deck size = top).
func (g *Game) ChooseDeckPosition(playerID string, snapshot uint64, position int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.voteGate(playerID, snapshot, pendingChoosePosition)
	if err != nil {
		return err
	}
	if playerID != p.actorID {
		return ErrNotEligible
	}
	if position < 0 {
		position = 0
	}
	if position > g.deck.size() {
		position = g.deck.size()
	}
	p.position = position
	g.pending = nil
	g.touch()
	if p.onPlaced != nil {
		p.onPlaced(position)
	}
	return nil
}

// openReorder suspends the game while the actor rearranges the top n deck
// cards. The working order applies on explicit confirm (VoteOk) or on the
// timeout default.
func (g *Game) openReorder(actorID string, n int, onApplied func(order []string)) {
	order := g.deck.peekTop(n)
	g.pending = &pendingInteraction{
		kind:      pendingReorder,
		actionID:  g.actionID,
		actorID:   actorID,
		order:     order,
		deadline:  g.now().Add(g.rules.SelectionWindow),
		onApplied: onApplied,
	}
	g.send(Notice{
		Kind:        NoticeAlterFuture,
		PlayerID:    actorID,
		RecipientID: actorID,
		Cards:       order,
		Deadline:    g.pending.deadline,
	})
}

// ReorderFuture swaps two slots (top-first indices) in the working order of
// an open reorder selection. The deck itself changes only on confirmation.
func (g *Game) ReorderFuture(playerID string, snapshot uint64, from, to int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.voteGate(playerID, snapshot, pendingReorder)
	if err != nil {
		return err
	}
	if playerID != p.actorID {
		return ErrNotEligible
	}
	if from < 0 || from >= len(p.order) || to < 0 || to >= len(p.order) {
		return ErrNoEligibleTarget
	}
	p.order[from], p.order[to] = p.order[to], p.order[from]
	g.lastActivity = g.now()
	g.send(Notice{
		Kind:        NoticeAlterFuture,
		PlayerID:    playerID,
		RecipientID: playerID,
		Cards:       append([]string(nil), p.order...),
		Deadline:    p.deadline,
	})
	return nil
}
