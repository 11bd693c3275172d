package gateway

import (
	"encoding/json"
	"testing"

	"github.com/phorb/eggsplode-server/internal/catalog"
	"github.com/phorb/eggsplode-server/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub, gameID, playerID string) *Client {
	c := &Client{
		hub:      h,
		send:     make(chan []byte, sendBufferSize),
		gameID:   gameID,
		playerID: playerID,
	}
	h.register(c)
	return c
}

func drain(c *Client) []Reply {
	var out []Reply
	for {
		select {
		case data := <-c.send:
			var r Reply
			if err := json.Unmarshal(data, &r); err == nil {
				out = append(out, r)
			}
		default:
			return out
		}
	}
}

func lastReply(t *testing.T, c *Client, replyType string) Reply {
	t.Helper()
	replies := drain(c)
	for i := len(replies) - 1; i >= 0; i-- {
		if replies[i].Type == replyType {
			return replies[i]
		}
	}
	t.Fatalf("no %q reply among %d frames", replyType, len(replies))
	return Reply{}
}

func TestHubRoutesNoticesPerGame(t *testing.T) {
	h := NewHub(catalog.New(), nil)

	inGame := newTestClient(h, "g1", "alice")
	otherGame := newTestClient(h, "g2", "bob")

	h.Send("g1", game.Notice{Kind: game.NoticeCardPlayed, PlayerID: "alice"})

	replies := drain(inGame)
	require.Len(t, replies, 1)
	assert.Equal(t, TypeNotice, replies[0].Type)
	assert.Equal(t, game.NoticeCardPlayed, replies[0].Notice.Kind)

	assert.Empty(t, drain(otherGame))
}

func TestHubRoutesRecipientNoticesPrivately(t *testing.T) {
	h := NewHub(catalog.New(), nil)

	alice := newTestClient(h, "g1", "alice")
	bob := newTestClient(h, "g1", "bob")

	h.Send("g1", game.Notice{Kind: game.NoticeDrawnCard, RecipientID: "alice", CardID: "skip"})

	replies := drain(alice)
	require.Len(t, replies, 1)
	assert.Equal(t, "skip", replies[0].Notice.CardID)
	assert.Empty(t, drain(bob))
}

func TestHubBroadcastsTargetedNotices(t *testing.T) {
	h := NewHub(catalog.New(), nil)

	alice := newTestClient(h, "g1", "alice")
	bob := newTestClient(h, "g1", "bob")
	carol := newTestClient(h, "g1", "carol")

	// A target names who the effect lands on, not who may see it: the
	// challenge window has to reach every player or nobody else can nope.
	h.Send("g1", game.Notice{Kind: game.NoticeNopeWindow, PlayerID: "alice", TargetID: "bob"})

	for _, c := range []*Client{alice, bob, carol} {
		replies := drain(c)
		require.Len(t, replies, 1)
		assert.Equal(t, game.NoticeNopeWindow, replies[0].Notice.Kind)
	}
}

func TestHubCreateAndJoinGame(t *testing.T) {
	h := NewHub(catalog.New(), nil)

	alice := newTestClient(h, "", "")
	h.handleEnvelope(alice, Envelope{Type: TypeCreateGame, PlayerID: "alice"})

	created := lastReply(t, alice, TypeGameState)
	require.NotEmpty(t, created.GameID)
	assert.Equal(t, "alice", alice.playerID)
	assert.Equal(t, created.GameID, alice.gameID)

	bob := newTestClient(h, "", "")
	h.handleEnvelope(bob, Envelope{Type: TypeJoinGame, GameID: created.GameID, PlayerID: "bob"})
	joined := lastReply(t, bob, TypeGameState)
	assert.ElementsMatch(t, []string{"alice", "bob"}, joined.State.Players)
}

func TestHubJoinUnknownGame(t *testing.T) {
	h := NewHub(catalog.New(), nil)
	c := newTestClient(h, "", "")

	h.handleEnvelope(c, Envelope{Type: TypeJoinGame, GameID: "nope", PlayerID: "alice"})
	reply := lastReply(t, c, TypeError)
	assert.Equal(t, "no such game", reply.Error)
}

func TestHubRejoinRebindsConnection(t *testing.T) {
	h := NewHub(catalog.New(), nil)

	alice := newTestClient(h, "", "")
	h.handleEnvelope(alice, Envelope{Type: TypeCreateGame, PlayerID: "alice"})
	gameID := lastReply(t, alice, TypeGameState).GameID

	bob := newTestClient(h, "", "")
	h.handleEnvelope(bob, Envelope{Type: TypeJoinGame, GameID: gameID, PlayerID: "bob"})
	h.handleEnvelope(alice, Envelope{Type: TypeStartGame})

	// A reconnect mid-game joins with the same player ID on a new
	// connection and must not touch the roster.
	alice2 := newTestClient(h, "", "")
	h.handleEnvelope(alice2, Envelope{Type: TypeJoinGame, GameID: gameID, PlayerID: "alice"})
	reply := lastReply(t, alice2, TypeGameState)
	assert.Equal(t, gameID, reply.GameID)
	assert.Equal(t, "alice", alice2.playerID)
	assert.ElementsMatch(t, []string{"alice", "bob"}, reply.State.Players)

	// A brand-new player cannot join a running game.
	carol := newTestClient(h, "", "")
	h.handleEnvelope(carol, Envelope{Type: TypeJoinGame, GameID: gameID, PlayerID: "carol"})
	errReply := lastReply(t, carol, TypeError)
	assert.Equal(t, game.ErrGameInProgress.Error(), errReply.Error)
}

func TestHubGameFlowOverEnvelopes(t *testing.T) {
	h := NewHub(catalog.New(), nil)

	alice := newTestClient(h, "", "")
	h.handleEnvelope(alice, Envelope{Type: TypeCreateGame, PlayerID: "alice", Rules: &RuleSet{HandSize: 3}})
	gameID := lastReply(t, alice, TypeGameState).GameID

	bob := newTestClient(h, "", "")
	h.handleEnvelope(bob, Envelope{Type: TypeJoinGame, GameID: gameID, PlayerID: "bob"})
	drain(bob)

	h.handleEnvelope(alice, Envelope{Type: TypeStartGame})

	h.handleEnvelope(alice, Envelope{Type: TypeGetState})
	state := lastReply(t, alice, TypeGameState).State
	require.NotNil(t, state)
	assert.Equal(t, "alice", state.CurrentPlayerID)
	assert.Equal(t, 4, state.HandCounts["alice"])

	h.handleEnvelope(alice, Envelope{Type: TypeGetHand})
	hand := lastReply(t, alice, TypeHand)
	assert.Len(t, hand.Cards, 4)

	// Acting out of turn surfaces an error frame on the sender only.
	h.handleEnvelope(bob, Envelope{Type: TypeDrawCard, ActionID: state.ActionID, TurnID: state.TurnID})
	errReply := lastReply(t, bob, TypeError)
	assert.Equal(t, game.ErrInvalidTurn.Error(), errReply.Error)
}

func TestHubDropsStaleInputSilently(t *testing.T) {
	h := NewHub(catalog.New(), nil)

	alice := newTestClient(h, "", "")
	h.handleEnvelope(alice, Envelope{Type: TypeCreateGame, PlayerID: "alice"})
	gameID := lastReply(t, alice, TypeGameState).GameID

	bob := newTestClient(h, "", "")
	h.handleEnvelope(bob, Envelope{Type: TypeJoinGame, GameID: gameID, PlayerID: "bob"})
	h.handleEnvelope(alice, Envelope{Type: TypeStartGame})
	drain(alice)

	h.handleEnvelope(alice, Envelope{Type: TypeDrawCard, ActionID: 999})
	for _, r := range drain(alice) {
		assert.NotEqual(t, TypeError, r.Type)
	}
}

func TestHubUnknownType(t *testing.T) {
	h := NewHub(catalog.New(), nil)
	c := newTestClient(h, "", "")

	h.handleEnvelope(c, Envelope{Type: "teleport"})
	reply := lastReply(t, c, TypeError)
	assert.Contains(t, reply.Error, "unknown type")
}
