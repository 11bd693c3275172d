package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/phorb/eggsplode-server/internal/catalog"
	"go.uber.org/zap"
)

// State represents the lifecycle state of a game.
type State int

const (
	StateLobby State = iota
	StateActive
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateLobby:
		return "LOBBY"
	case StateActive:
		return "ACTIVE"
	case StateEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}

// EndCause records why a game reached the terminal state.
type EndCause string

const (
	EndCauseWinner  EndCause = "winner"
	EndCauseTimeout EndCause = "timeout"
	EndCauseAborted EndCause = "aborted"
)

// Rules holds the per-game configuration. The zero value is usable; Start
// fills in defaults.
type Rules struct {
	Expansions          []string
	HandSize            int           // cards dealt per player beyond the defuse
	BombCards           int           // elimination bombs seeded; 0 = players-1
	ExtraDefuseCards    int           // extra defuses shuffled into the deck
	TurnTimeout         time.Duration // inactivity threshold per turn
	NopeWindow          time.Duration // challenge window for non-immediate plays
	SelectionWindow     time.Duration // deadline for player/position selections
	AttackTurns         int           // turns stacked onto the target per attack
	SelfAttackTurns     int           // turns taken on when attacking yourself
	MaxInactivityStreak int           // stalled turns tolerated before force-end
	Seed                int64         // deck shuffle seed; 0 = time-based
}

func (r Rules) withDefaults() Rules {
	if r.HandSize <= 0 {
		r.HandSize = 7
	}
	if r.TurnTimeout <= 0 {
		r.TurnTimeout = 60 * time.Second
	}
	if r.NopeWindow <= 0 {
		r.NopeWindow = 10 * time.Second
	}
	if r.SelectionWindow <= 0 {
		r.SelectionWindow = 20 * time.Second
	}
	if r.AttackTurns <= 0 {
		r.AttackTurns = 2
	}
	if r.SelfAttackTurns <= 0 {
		r.SelfAttackTurns = 3
	}
	if r.MaxInactivityStreak <= 0 {
		r.MaxInactivityStreak = 5
	}
	return r
}

// Snapshot is a consistent external view of game state. Hand contents are
// exposed separately via HandOf so public snapshots leak only counts.
type Snapshot struct {
	ID              string
	State           State
	Players         []string
	CurrentPlayerID string
	HandCounts      map[string]int
	DeckCount       int
	ExtraTurns      int
	ActionID        uint64
	TurnID          uint64
	Winner          string
	EndCause        EndCause
}

// Game is the authoritative state machine for one match. It is a
// single-writer actor: every public method serializes through one mutex, so
// inputs arriving concurrently from players and the supervisor tick mutate
// state one at a time. Suspension points are represented by the pending
// interaction slot; while it is occupied the game rejects ordinary turn
// actions but still accepts votes belonging to the open sub-interaction.
type Game struct {
	ID string

	mu      sync.Mutex
	catalog *catalog.Catalog
	rules   Rules
	sink    PresentationSink
	logger  *zap.Logger
	rng     *rand.Rand
	now     func() time.Time

	state            State
	players          []string
	hands            map[string][]string
	deck             deck
	discard          []string
	current          int
	extraTurns       int
	actionID         uint64
	turnID           uint64
	lastActivity     time.Time
	inactivityStreak int
	pending          *pendingInteraction

	bus         *EventBus
	playEffects map[string]playEffect
	drawEffects map[string]drawEffect
	warnings    []warningFunc

	winner   string
	endCause EndCause
}

// NewGame creates a game in the lobby state.
func NewGame(id string, cat *catalog.Catalog, rules Rules, sink PresentationSink, logger *zap.Logger) *Game {
	if sink == nil {
		sink = NopSink{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	rules = rules.withDefaults()
	seed := rules.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		ID:      id,
		catalog: cat,
		rules:   rules,
		sink:    sink,
		logger:  logger.With(zap.String("game_id", id)),
		rng:     rand.New(rand.NewSource(seed)),
		now:     time.Now,
		state:   StateLobby,
		hands:   make(map[string][]string),
		bus:     NewEventBus(),
	}
	g.bus.Subscribe(EventTurnEnd, func(Event) { g.advanceTurn() })
	g.bus.Subscribe(EventTurnStart, func(Event) { g.resume() })
	g.bus.Subscribe(EventTurnReset, func(Event) { g.resume() })
	g.bus.Subscribe(EventActionEnd, func(Event) { g.resume() })
	g.bus.Subscribe(EventGameEnd, func(Event) { g.finish() })
	return g
}

// Events exposes the bus for read-only observers. Subscribers run with the
// game lock held and must not call back into the game's public API.
func (g *Game) Events() *EventBus { return g.bus }

// AddPlayer joins a player to the lobby roster.
func (g *Game) AddPlayer(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case StateEnded:
		return ErrGameAlreadyEnded
	case StateActive:
		return ErrGameInProgress
	}
	for _, p := range g.players {
		if p == playerID {
			return ErrDuplicatePlayer
		}
	}
	g.players = append(g.players, playerID)
	return nil
}

// Start seeds the deck, deals hands and begins the turn loop. It fails with
// ErrInvalidRosterSize for rosters smaller than two.
func (g *Game) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case StateEnded:
		return ErrGameAlreadyEnded
	case StateActive:
		return ErrGameInProgress
	}
	if len(g.players) < 2 {
		return ErrInvalidRosterSize
	}
	seen := make(map[string]bool, len(g.players))
	for _, p := range g.players {
		if seen[p] {
			return ErrDuplicatePlayer
		}
		seen[p] = true
	}

	if err := g.loadEffects(); err != nil {
		return fmt.Errorf("load card effects: %w", err)
	}

	// Seed the draw pile: catalog counts scaled by roster size.
	multiplier := 1 + len(g.players)/5
	base := g.catalog.Deck(g.rules.Expansions)
	g.deck.cards = nil
	for i := 0; i < multiplier; i++ {
		g.deck.cards = append(g.deck.cards, base...)
	}
	g.deck.shuffle(g.rng)

	// Deal: one guaranteed defuse plus a fixed hand size per player.
	for _, p := range g.players {
		hand := []string{catalog.CardDefuse}
		for i := 0; i < g.rules.HandSize; i++ {
			card, err := g.deck.draw(-1)
			if err != nil {
				return fmt.Errorf("deck too small for %d players: %w", len(g.players), err)
			}
			hand = append(hand, card)
		}
		g.hands[p] = hand
	}

	// Deterministic insertions, then a reshuffle so positions are unknown.
	bombs := g.rules.BombCards
	if bombs <= 0 {
		bombs = len(g.players) - 1
	}
	for i := 0; i < bombs; i++ {
		g.deck.insert(catalog.CardEggsplode, 0)
	}
	if g.expansionEnabled(catalog.ExpansionRadioeggtive) {
		g.deck.insert(catalog.CardRadioeggtive, 0)
	}
	for i := 0; i < g.rules.ExtraDefuseCards; i++ {
		g.deck.insert(catalog.CardDefuse, 0)
	}
	g.deck.shuffle(g.rng)

	g.state = StateActive
	g.current = 0
	g.turnID = 1
	g.lastActivity = g.now()
	g.logger.Info("game started",
		zap.Int("players", len(g.players)),
		zap.Int("deck", g.deck.size()),
		zap.Strings("expansions", g.rules.Expansions),
	)
	g.send(Notice{Kind: NoticeGameStarted, Players: g.players, Amount: g.deck.size()})
	g.bus.Notify(Event{Type: EventGameStart})
	g.bus.Notify(Event{Type: EventTurnStart})
	return nil
}

func (g *Game) expansionEnabled(name string) bool {
	for _, e := range g.rules.Expansions {
		if e == name {
			return true
		}
	}
	return false
}

// CurrentPlayerID returns the player whose turn it is.
func (g *Game) CurrentPlayerID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentPlayerID()
}

// NextPlayerID returns the player after the current one, wrapping the
// roster.
func (g *Game) NextPlayerID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.nextPlayerID()
}

func (g *Game) currentPlayerID() string {
	if len(g.players) == 0 {
		return ""
	}
	return g.players[g.current]
}

func (g *Game) nextPlayerID() string {
	if len(g.players) == 0 {
		return ""
	}
	return g.players[(g.current+1)%len(g.players)]
}

// checkAction is the staleness gate every mutating play passes through.
// The input carries the action and turn counters the client last saw;
// either one lagging behind means the input was built against a state that
// no longer exists. Callers hold the lock.
func (g *Game) checkAction(playerID string, action, turn uint64) error {
	if g.state == StateEnded {
		return ErrGameAlreadyEnded
	}
	if g.state != StateActive {
		return ErrGameNotStarted
	}
	if playerID != g.currentPlayerID() {
		return ErrInvalidTurn
	}
	if g.pending != nil || action != g.actionID || turn != g.turnID {
		return ErrStaleAction
	}
	return nil
}

// acceptAction validates and claims the action slot: the counter advances
// so every input still carrying the old snapshot is stale from here on.
func (g *Game) acceptAction(playerID string, action, turn uint64) error {
	if err := g.checkAction(playerID, action, turn); err != nil {
		return err
	}
	g.actionID++
	g.touch()
	return nil
}

// AcceptAction validates and claims an action slot for the player. Exposed
// for hosts that gate custom actions; PlayCard calls it internally.
func (g *Game) AcceptAction(playerID string, action, turn uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.acceptAction(playerID, action, turn)
}

// touch records player-initiated activity.
func (g *Game) touch() {
	g.lastActivity = g.now()
	g.inactivityStreak = 0
}

// PlayCard plays a card from the acting player's hand. Non-immediate cards
// open a challenge window before the effect runs.
func (g *Game) PlayCard(playerID string, action, turn uint64, cardID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkAction(playerID, action, turn); err != nil {
		return err
	}
	card, ok := g.catalog.Get(cardID)
	if !ok || !card.Usable {
		return ErrNoCardInHand
	}
	handler, ok := g.playEffects[cardID]
	if !ok {
		return ErrNoCardInHand
	}

	copies := 1
	if card.ComboSize >= 2 {
		copies = card.ComboSize
	}
	if handCount(g.hands[playerID], cardID) < copies {
		return ErrNoCardInHand
	}

	g.actionID++
	g.touch()
	g.bus.Notify(Event{Type: EventActionStart, PlayerID: playerID, CardID: cardID})

	// Combo pre-check: without an eligible target the cards stay in hand
	// and the action ends with no state change.
	if card.ComboSize >= 2 && !g.anyOtherPlayerHasCards(playerID) {
		g.send(Notice{Kind: NoticeComboRefunded, PlayerID: playerID, CardID: cardID})
		g.bus.Notify(Event{Type: EventActionEnd, PlayerID: playerID, CardID: cardID})
		return nil
	}

	for i := 0; i < copies; i++ {
		if err := g.removeCard(playerID, cardID); err != nil {
			return g.abort(err)
		}
	}
	g.send(Notice{Kind: NoticeCardPlayed, PlayerID: playerID, CardID: cardID})

	if card.ResolvesImmediately {
		return g.runPlayEffect(handler, playerID, cardID)
	}

	// Open challenge window around the effect; anyone else may nope, and
	// the effect applies on quorum confirmation or an unvetoed timeout.
	g.openNopeVote(playerID, "", g.otherPlayers(playerID), cardID,
		func(string) {
			if err := g.runPlayEffect(handler, playerID, cardID); err != nil {
				g.logger.Error("play effect failed", zap.String("card", cardID), zap.Error(err))
			}
		}, nil)
	return nil
}

func (g *Game) runPlayEffect(handler playEffect, playerID, cardID string) error {
	if err := handler(g, playerID); err != nil {
		if IsFatal(err) {
			return g.abort(err)
		}
		return err
	}
	return nil
}

// DrawCard pops the top card for the current player, ending their turn.
// Draw is turn-ending rather than action-gated: it leaves the action
// counter untouched, so the turn counter in the snapshot is what makes a
// replayed draw stale once the turn has moved on.
func (g *Game) DrawCard(playerID string, action, turn uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkAction(playerID, action, turn); err != nil {
		return err
	}
	g.touch()
	return g.drawFrom(-1, false)
}

// drawFrom draws at the given deck index and routes draw-trigger cards to
// their handlers. Plain cards join the hand and end the turn.
func (g *Game) drawFrom(index int, timedOut bool) error {
	playerID := g.currentPlayerID()
	card, err := g.deck.draw(index)
	if err != nil {
		return g.abort(err)
	}
	if handler, ok := g.drawEffects[card]; ok {
		if herr := handler(g, playerID, timedOut); herr != nil {
			if IsFatal(herr) {
				return g.abort(herr)
			}
			return herr
		}
		return nil
	}
	g.hands[playerID] = append(g.hands[playerID], card)
	g.send(Notice{Kind: NoticeCardDrawn, PlayerID: playerID})
	g.send(Notice{Kind: NoticeDrawnCard, RecipientID: playerID, CardID: card})
	g.bus.Notify(Event{Type: EventTurnEnd, PlayerID: playerID})
	return nil
}

// advanceTurn moves the turn pointer: a stacked extra turn keeps the same
// player, otherwise rotation proceeds and action-scoped state resets.
func (g *Game) advanceTurn() {
	if g.state != StateActive {
		return
	}
	if g.extraTurns > 1 {
		g.extraTurns--
	} else {
		g.extraTurns = 0
		g.current = (g.current + 1) % len(g.players)
	}
	g.turnID++
	g.bus.Notify(Event{Type: EventTurnStart, PlayerID: g.currentPlayerID()})
}

// resume refreshes activity tracking and prompts the current player.
func (g *Game) resume() {
	if g.state != StateActive {
		return
	}
	g.lastActivity = g.now()
	g.send(Notice{
		Kind:     NoticeTurnPrompt,
		PlayerID: g.currentPlayerID(),
		Amount:   g.extraTurns,
		Warnings: g.turnWarnings(),
	})
}

// TouchTurn registers activity from the current player that consumes
// nothing, such as opening their play prompt. The turn resets: inactivity
// tracking restarts and the prompt is re-sent. Inputs from anyone else or
// while an interaction is pending are ignored.
func (g *Game) TouchTurn(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateActive || g.pending != nil || playerID != g.currentPlayerID() {
		return
	}
	g.touch()
	g.bus.Notify(Event{Type: EventTurnReset, PlayerID: playerID})
}

func (g *Game) turnWarnings() []string {
	var out []string
	for _, fn := range g.warnings {
		if w := fn(g); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// RemovePlayer eliminates a player: their roster entry goes away, their
// hand moves to the discard pile and the turn pointer shifts so no player
// is skipped or repeated. Removing the current player of an active game
// ends their turn so the next player is prompted. A sole survivor ends the
// game.
func (g *Game) RemovePlayer(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateEnded {
		return ErrGameAlreadyEnded
	}
	wasCurrent := g.state == StateActive && playerID == g.currentPlayerID()
	if err := g.removePlayer(playerID); err != nil {
		return err
	}
	if wasCurrent && g.state == StateActive {
		g.pending = nil
		g.bus.Notify(Event{Type: EventTurnEnd, PlayerID: playerID})
	}
	return nil
}

func (g *Game) removePlayer(playerID string) error {
	idx := -1
	for i, p := range g.players {
		if p == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNoEligibleTarget
	}
	wasCurrent := playerID == g.currentPlayerID()
	currentID := g.currentPlayerID()
	g.discard = append(g.discard, g.hands[playerID]...)
	delete(g.hands, playerID)
	g.players = append(g.players[:idx], g.players[idx+1:]...)
	if len(g.players) > 0 {
		if wasCurrent {
			// Park the pointer one slot back so the following turn
			// advance lands on the player after the eliminated one.
			g.current = (idx - 1 + len(g.players)) % len(g.players)
		} else {
			for i, p := range g.players {
				if p == currentID {
					g.current = i
					break
				}
			}
		}
	}
	g.extraTurns = 0
	g.logger.Info("player eliminated", zap.String("player_id", playerID), zap.Int("remaining", len(g.players)))

	if len(g.players) == 1 {
		g.winner = g.players[0]
		g.endCause = EndCauseWinner
		g.send(Notice{Kind: NoticeGameOver, PlayerID: g.winner})
		g.bus.Notify(Event{Type: EventGameEnd, PlayerID: g.winner})
	}
	return nil
}

// End performs the idempotent terminal transition.
func (g *Game) End(cause EndCause) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateEnded {
		return nil
	}
	g.endCause = cause
	g.bus.Notify(Event{Type: EventGameEnd})
	return nil
}

// finish clears mutable collections once the terminal event fires.
func (g *Game) finish() {
	if g.state == StateEnded {
		return
	}
	g.state = StateEnded
	g.pending = nil
	g.players = nil
	g.hands = make(map[string][]string)
	g.deck.cards = nil
	g.discard = nil
	g.extraTurns = 0
	g.logger.Info("game ended", zap.String("cause", string(g.endCause)), zap.String("winner", g.winner))
}

// abort terminates the game instance after an invariant violation. The
// process stays alive; only this game is torn down.
func (g *Game) abort(err error) error {
	g.logger.Error("invariant violation, aborting game", zap.Error(err))
	if g.state != StateEnded {
		g.endCause = EndCauseAborted
		g.bus.Notify(Event{Type: EventGameEnd})
	}
	return err
}

// removeCard discards one copy of the card from the player's hand. Missing
// cards are invariant violations: callers verify presence first.
func (g *Game) removeCard(playerID, cardID string) error {
	hand, ok := removeFromHand(g.hands[playerID], cardID)
	if !ok {
		return fmt.Errorf("%w: %s from %s", ErrCardNotPresent, cardID, playerID)
	}
	g.hands[playerID] = hand
	g.discard = append(g.discard, cardID)
	return nil
}

func (g *Game) otherPlayers(playerID string) []string {
	var out []string
	for _, p := range g.players {
		if p != playerID {
			out = append(out, p)
		}
	}
	return out
}

func (g *Game) anyOtherPlayerHasCards(playerID string) bool {
	for _, p := range g.players {
		if p != playerID && len(g.hands[p]) > 0 {
			return true
		}
	}
	return false
}

// reverse flips the rotation direction by reversing the roster in place,
// keeping the turn pointer on the same player.
func (g *Game) reverse() {
	for i, j := 0, len(g.players)-1; i < j; i, j = i+1, j-1 {
		g.players[i], g.players[j] = g.players[j], g.players[i]
	}
	g.current = len(g.players) - 1 - g.current
}

func (g *Game) send(n Notice) {
	n.ActionID = g.actionID
	n.TurnID = g.turnID
	g.sink.Send(g.ID, n)
}

// Snapshot returns a consistent copy of the public game state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	counts := make(map[string]int, len(g.hands))
	for p, hand := range g.hands {
		counts[p] = len(hand)
	}
	return Snapshot{
		ID:              g.ID,
		State:           g.state,
		Players:         append([]string(nil), g.players...),
		CurrentPlayerID: g.currentPlayerID(),
		HandCounts:      counts,
		DeckCount:       g.deck.size(),
		ExtraTurns:      g.extraTurns,
		ActionID:        g.actionID,
		TurnID:          g.turnID,
		Winner:          g.winner,
		EndCause:        g.endCause,
	}
}

// HandOf returns a copy of the player's hand for private rendering.
func (g *Game) HandOf(playerID string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	hand, ok := g.hands[playerID]
	if !ok {
		return nil, ErrNoEligibleTarget
	}
	return append([]string(nil), hand...), nil
}

// CurrentState returns the lifecycle state.
func (g *Game) CurrentState() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
