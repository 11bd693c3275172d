package gateway

import "github.com/phorb/eggsplode-server/internal/game"

// Envelope is the wire frame for client input. Type selects the operation;
// the remaining fields are read per type. ActionID and TurnID together
// carry the client's state snapshot and gate in-game inputs against
// staleness.
type Envelope struct {
	Type     string   `json:"type"`
	GameID   string   `json:"game_id,omitempty"`
	PlayerID string   `json:"player_id,omitempty"`
	ActionID uint64   `json:"action_id,omitempty"`
	TurnID   uint64   `json:"turn_id,omitempty"`
	CardID   string   `json:"card_id,omitempty"`
	TargetID string   `json:"target_id,omitempty"`
	Position int      `json:"position,omitempty"`
	From     int      `json:"from,omitempty"`
	To       int      `json:"to,omitempty"`
	Rules    *RuleSet `json:"rules,omitempty"`
}

// RuleSet is the client-facing subset of game rules accepted on create.
type RuleSet struct {
	Expansions       []string `json:"expansions,omitempty"`
	HandSize         int      `json:"hand_size,omitempty"`
	BombCards        int      `json:"bomb_cards,omitempty"`
	ExtraDefuseCards int      `json:"extra_defuse_cards,omitempty"`
}

// Client input types.
const (
	TypeCreateGame     = "create_game"
	TypeJoinGame       = "join_game"
	TypeStartGame      = "start_game"
	TypePlayCard       = "play_card"
	TypeDrawCard       = "draw_card"
	TypeVoteNope       = "vote_nope"
	TypeVoteOk         = "vote_ok"
	TypeChoosePlayer   = "choose_player"
	TypeChoosePosition = "choose_position"
	TypeReorderFuture  = "reorder_future"
	TypeGetState       = "get_state"
	TypeGetHand        = "get_hand"
)

// Reply is the wire frame for server output.
type Reply struct {
	Type   string         `json:"type"`
	GameID string         `json:"game_id,omitempty"`
	Notice *game.Notice   `json:"notice,omitempty"`
	State  *game.Snapshot `json:"state,omitempty"`
	Cards  []string       `json:"cards,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Server output types.
const (
	TypeNotice    = "notice"
	TypeGameState = "game_state"
	TypeHand      = "hand"
	TypeError     = "error"
)
