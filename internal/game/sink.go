package game

import "time"

// NoticeKind labels a presentation notice.
type NoticeKind string

const (
	NoticeGameStarted    NoticeKind = "game_started"
	NoticeTurnPrompt     NoticeKind = "turn_prompt"
	NoticeCardPlayed     NoticeKind = "card_played"
	NoticeCardDrawn      NoticeKind = "card_drawn"
	NoticeDrawnCard      NoticeKind = "drawn_card" // private: which card the player drew
	NoticeNopeWindow     NoticeKind = "nope_window"
	NoticeNoped          NoticeKind = "noped"
	NoticeYupped         NoticeKind = "yupped"
	NoticeActionNoped    NoticeKind = "action_cancelled"
	NoticeChoosePlayer   NoticeKind = "choose_player"
	NoticeChoosePos      NoticeKind = "choose_position"
	NoticeAlterFuture    NoticeKind = "alter_future"
	NoticeFutureCards    NoticeKind = "future_cards" // private: upcoming deck cards
	NoticeSkipped        NoticeKind = "skipped"
	NoticeShuffled       NoticeKind = "shuffled"
	NoticeReversed       NoticeKind = "reversed"
	NoticeBuried         NoticeKind = "buried"
	NoticeSwapped        NoticeKind = "swapped_top_bottom"
	NoticeAttacked       NoticeKind = "attacked"
	NoticeStolenCard     NoticeKind = "stolen_card"
	NoticeNoCardsToSteal NoticeKind = "no_cards_to_steal"
	NoticeComboRefunded  NoticeKind = "combo_refunded"
	NoticeDefused        NoticeKind = "defused"
	NoticeEliminated     NoticeKind = "eliminated"
	NoticeTimeoutDraw    NoticeKind = "timeout_draw"
	NoticeGameOver       NoticeKind = "game_over"
)

// Notice is the payload handed to the presentation sink. The core treats the
// sink as fire-and-forget; nothing in game logic depends on delivery.
// RecipientID restricts delivery; TargetID is game content and says nothing
// about who may see the notice.
type Notice struct {
	Kind        NoticeKind `json:"kind"`
	PlayerID    string     `json:"player_id,omitempty"`    // acting player
	TargetID    string     `json:"target_id,omitempty"`    // player the effect lands on
	RecipientID string     `json:"recipient_id,omitempty"` // sole recipient; empty = broadcast
	CardID      string     `json:"card_id,omitempty"`
	Cards       []string   `json:"cards,omitempty"`   // e.g. upcoming deck cards
	Players     []string   `json:"players,omitempty"` // e.g. eligible selection targets
	Amount      int        `json:"amount,omitempty"`  // e.g. stacked turns, deck count
	Warnings    []string   `json:"warnings,omitempty"`
	Deadline    time.Time  `json:"deadline,omitzero"`
	ActionID    uint64     `json:"action_id"`
	TurnID      uint64     `json:"turn_id"`
}

// PresentationSink receives notices for rendering by the chat front end.
// Implementations must not block and must not call back into the game
// synchronously; the gateway hands notices to per-client send buffers.
type PresentationSink interface {
	Send(gameID string, n Notice)
}

// NopSink discards all notices. Used in tests and by games without a
// connected front end.
type NopSink struct{}

// Send implements PresentationSink.
func (NopSink) Send(string, Notice) {}
