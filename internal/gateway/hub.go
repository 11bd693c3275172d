package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/phorb/eggsplode-server/internal/catalog"
	"github.com/phorb/eggsplode-server/internal/game"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub owns the websocket clients and routes frames between them and the
// game manager. It is the manager's presentation sink: notices published by
// games fan out to the connected clients of that game, and notices carrying
// a recipient go to that player's connection alone.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	manager *game.Manager
	logger  *zap.Logger
}

// NewHub creates the hub and its game manager in one step, wiring the hub
// in as the manager's sink.
func NewHub(cat *catalog.Catalog, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		clients: make(map[*Client]bool),
		logger:  logger,
	}
	h.manager = game.NewManager(cat, h, logger)
	return h
}

// Manager returns the hub's game manager, for hosts that drive timeouts.
func (h *Hub) Manager() *game.Manager { return h.manager }

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Send implements game.PresentationSink. Games call it with their lock
// held, so delivery must never block: frames to backed-up clients drop.
func (h *Hub) Send(gameID string, n game.Notice) {
	data, err := json.Marshal(Reply{Type: TypeNotice, GameID: gameID, Notice: &n})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.gameID != gameID {
			continue
		}
		if n.RecipientID != "" && c.playerID != n.RecipientID {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

// ServeWS upgrades an HTTP request and starts the connection pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	h.register(c)

	go c.writePump()
	go c.readPump()
}

// handleEnvelope dispatches one client frame. Stale inputs are the normal
// result of a laggy front end and are dropped without a reply.
func (h *Hub) handleEnvelope(c *Client, env Envelope) {
	var err error
	switch env.Type {
	case TypeCreateGame:
		h.createGame(c, env)
		return
	case TypeJoinGame:
		h.joinGame(c, env)
		return
	case TypeGetState:
		h.sendState(c)
		return
	case TypeGetHand:
		h.sendHand(c)
		return
	}

	switch env.Type {
	case TypeStartGame, TypePlayCard, TypeDrawCard, TypeVoteNope, TypeVoteOk,
		TypeChoosePlayer, TypeChoosePosition, TypeReorderFuture:
	default:
		c.reply(Reply{Type: TypeError, Error: "unknown type: " + env.Type})
		return
	}

	g, ok := h.manager.GetGame(c.gameID)
	if !ok {
		c.reply(Reply{Type: TypeError, Error: "no such game"})
		return
	}

	switch env.Type {
	case TypeStartGame:
		err = g.Start()
	case TypePlayCard:
		err = g.PlayCard(c.playerID, env.ActionID, env.TurnID, env.CardID)
	case TypeDrawCard:
		err = g.DrawCard(c.playerID, env.ActionID, env.TurnID)
	case TypeVoteNope:
		err = g.VoteNope(c.playerID, env.ActionID)
	case TypeVoteOk:
		err = g.VoteOk(c.playerID, env.ActionID)
	case TypeChoosePlayer:
		err = g.ChoosePlayer(c.playerID, env.ActionID, env.TargetID)
	case TypeChoosePosition:
		err = g.ChooseDeckPosition(c.playerID, env.ActionID, env.Position)
	case TypeReorderFuture:
		err = g.ReorderFuture(c.playerID, env.ActionID, env.From, env.To)
	}

	if err != nil {
		if errors.Is(err, game.ErrStaleAction) {
			h.logger.Debug("dropping stale input",
				zap.String("type", env.Type),
				zap.String("player_id", c.playerID),
			)
			return
		}
		c.reply(Reply{Type: TypeError, GameID: c.gameID, Error: err.Error()})
	}
}

func (h *Hub) createGame(c *Client, env Envelope) {
	rules := game.Rules{}
	if env.Rules != nil {
		rules.Expansions = env.Rules.Expansions
		rules.HandSize = env.Rules.HandSize
		rules.BombCards = env.Rules.BombCards
		rules.ExtraDefuseCards = env.Rules.ExtraDefuseCards
	}
	g := h.manager.CreateGame(rules)
	if env.PlayerID != "" {
		if err := g.AddPlayer(env.PlayerID); err != nil {
			c.reply(Reply{Type: TypeError, GameID: g.ID, Error: err.Error()})
			return
		}
		c.playerID = env.PlayerID
	}
	c.gameID = g.ID
	snap := g.Snapshot()
	c.reply(Reply{Type: TypeGameState, GameID: g.ID, State: &snap})
}

func (h *Hub) joinGame(c *Client, env Envelope) {
	g, ok := h.manager.GetGame(env.GameID)
	if !ok {
		c.reply(Reply{Type: TypeError, Error: "no such game"})
		return
	}
	snap := g.Snapshot()
	if !rosterContains(snap.Players, env.PlayerID) {
		// A join from a player already on the roster is a reconnect and
		// rebinds the connection without touching the game.
		if err := g.AddPlayer(env.PlayerID); err != nil {
			c.reply(Reply{Type: TypeError, GameID: env.GameID, Error: err.Error()})
			return
		}
		snap = g.Snapshot()
	}
	c.gameID = env.GameID
	c.playerID = env.PlayerID
	c.reply(Reply{Type: TypeGameState, GameID: g.ID, State: &snap})
}

func rosterContains(players []string, id string) bool {
	for _, p := range players {
		if p == id {
			return true
		}
	}
	return false
}

func (h *Hub) sendState(c *Client) {
	g, ok := h.manager.GetGame(c.gameID)
	if !ok {
		c.reply(Reply{Type: TypeError, Error: "no such game"})
		return
	}
	snap := g.Snapshot()
	c.reply(Reply{Type: TypeGameState, GameID: g.ID, State: &snap})
}

func (h *Hub) sendHand(c *Client) {
	g, ok := h.manager.GetGame(c.gameID)
	if !ok {
		c.reply(Reply{Type: TypeError, Error: "no such game"})
		return
	}
	hand, err := g.HandOf(c.playerID)
	if err != nil {
		c.reply(Reply{Type: TypeError, GameID: c.gameID, Error: err.Error()})
		return
	}
	c.reply(Reply{Type: TypeHand, GameID: c.gameID, Cards: hand})
	// Opening the hand counts as turn activity for the current player.
	g.TouchTurn(c.playerID)
}
