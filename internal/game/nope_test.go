package game

import (
	"testing"
	"time"

	"github.com/phorb/eggsplode-server/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expireDeadline(g *Game) time.Time {
	return g.pending.deadline.Add(time.Second)
}

func TestNopeVetoCancelsEffect(t *testing.T) {
	g, sink := newTestGame(t, []string{"alice", "bob", "carol"}, Rules{})
	giveCard(g, "alice", catalog.CardSkip)
	nopesBefore := handCount(g.hands["bob"], catalog.CardNope)
	giveCard(g, "bob", catalog.CardNope)

	var actionEnds int
	g.Events().Subscribe(EventActionEnd, func(Event) { actionEnds++ })

	require.NoError(t, g.PlayCard("alice", actionID(g), turnID(g), catalog.CardSkip))
	require.NoError(t, g.VoteNope("bob", actionID(g)))
	g.CheckTimeouts(expireDeadline(g))

	// The skip never fired; both played cards stay spent and the action
	// closed out so the actor is live again.
	snap := g.Snapshot()
	assert.Equal(t, "alice", snap.CurrentPlayerID)
	assert.Equal(t, nopesBefore, handCount(g.hands["bob"], catalog.CardNope))
	assert.Contains(t, g.discard, catalog.CardSkip)
	assert.Equal(t, 1, actionEnds)
	_, ok := sink.last(NoticeActionNoped)
	assert.True(t, ok)

	// The turn is live again for a fresh action.
	stackTop(g, catalog.CardSeeFuture)
	require.NoError(t, g.DrawCard("alice", actionID(g), turnID(g)))
	assert.Equal(t, "bob", g.Snapshot().CurrentPlayerID)
}

func TestCounterNopeRestoresEffect(t *testing.T) {
	g, sink := newTestGame(t, []string{"alice", "bob", "carol"}, Rules{})
	giveCard(g, "alice", catalog.CardSkip)
	giveCard(g, "bob", catalog.CardNope)
	giveCard(g, "carol", catalog.CardNope)

	require.NoError(t, g.PlayCard("alice", actionID(g), turnID(g), catalog.CardSkip))
	require.NoError(t, g.VoteNope("bob", actionID(g)))
	require.NoError(t, g.VoteNope("carol", actionID(g)))
	g.CheckTimeouts(expireDeadline(g))

	assert.Equal(t, "bob", g.Snapshot().CurrentPlayerID)
	_, ok := sink.last(NoticeYupped)
	assert.True(t, ok)
}

func TestActorMayCounterNopeOwnAction(t *testing.T) {
	g, _ := newTestGame(t, []string{"alice", "bob"}, Rules{})
	giveCard(g, "alice", catalog.CardSkip)
	giveCard(g, "alice", catalog.CardNope)
	giveCard(g, "bob", catalog.CardNope)

	require.NoError(t, g.PlayCard("alice", actionID(g), turnID(g), catalog.CardSkip))

	// Noping your own allowed action is not a move.
	assert.ErrorIs(t, g.VoteNope("alice", actionID(g)), ErrNotEligible)

	require.NoError(t, g.VoteNope("bob", actionID(g)))
	require.NoError(t, g.VoteNope("alice", actionID(g)))
	g.CheckTimeouts(expireDeadline(g))

	assert.Equal(t, "bob", g.Snapshot().CurrentPlayerID)
}

func TestNopeWithoutCounterCard(t *testing.T) {
	g, _ := newTestGame(t, []string{"alice", "bob"}, Rules{})
	giveCard(g, "alice", catalog.CardSkip)
	g.hands["bob"] = []string{catalog.CardDefuse}

	require.NoError(t, g.PlayCard("alice", actionID(g), turnID(g), catalog.CardSkip))
	assert.ErrorIs(t, g.VoteNope("bob", actionID(g)), ErrNoCounterCard)
}

func TestVoteRejectsStaleSnapshot(t *testing.T) {
	g, _ := newTestGame(t, []string{"alice", "bob"}, Rules{})
	giveCard(g, "alice", catalog.CardSkip)
	giveCard(g, "bob", catalog.CardNope)

	before := actionID(g)
	require.NoError(t, g.PlayCard("alice", before, turnID(g), catalog.CardSkip))
	assert.ErrorIs(t, g.VoteNope("bob", before), ErrStaleAction)
	assert.ErrorIs(t, g.VoteOk("bob", before), ErrStaleAction)
}

func TestVoteRejectsOutsider(t *testing.T) {
	g, _ := newTestGame(t, []string{"alice", "bob"}, Rules{})
	giveCard(g, "alice", catalog.CardSkip)

	require.NoError(t, g.PlayCard("alice", actionID(g), turnID(g), catalog.CardSkip))
	assert.ErrorIs(t, g.VoteNope("mallory", actionID(g)), ErrNotEligible)
	assert.ErrorIs(t, g.VoteOk("mallory", actionID(g)), ErrNotEligible)
}

func TestQuorumConfirmResolvesEarly(t *testing.T) {
	g, _ := newTestGame(t, []string{"alice", "bob", "carol"}, Rules{})
	giveCard(g, "alice", catalog.CardSkip)

	require.NoError(t, g.PlayCard("alice", actionID(g), turnID(g), catalog.CardSkip))
	require.NoError(t, g.VoteOk("bob", actionID(g)))
	assert.Equal(t, "alice", g.Snapshot().CurrentPlayerID)

	require.NoError(t, g.VoteOk("carol", actionID(g)))
	assert.Equal(t, "bob", g.Snapshot().CurrentPlayerID)
}

func TestRepeatOkWithdrawsConfirmation(t *testing.T) {
	g, _ := newTestGame(t, []string{"alice", "bob", "carol"}, Rules{})
	giveCard(g, "alice", catalog.CardSkip)

	require.NoError(t, g.PlayCard("alice", actionID(g), turnID(g), catalog.CardSkip))
	require.NoError(t, g.VoteOk("bob", actionID(g)))
	require.NoError(t, g.VoteOk("bob", actionID(g)))
	require.NoError(t, g.VoteOk("carol", actionID(g)))
	assert.Equal(t, "alice", g.Snapshot().CurrentPlayerID)

	require.NoError(t, g.VoteOk("bob", actionID(g)))
	assert.Equal(t, "bob", g.Snapshot().CurrentPlayerID)
}

func TestActorCannotConfirmOwnAction(t *testing.T) {
	g, _ := newTestGame(t, []string{"alice", "bob"}, Rules{})
	giveCard(g, "alice", catalog.CardSkip)

	require.NoError(t, g.PlayCard("alice", actionID(g), turnID(g), catalog.CardSkip))
	assert.ErrorIs(t, g.VoteOk("alice", actionID(g)), ErrNotEligible)
}

func TestTargetedWindowOnlyTargetConfirms(t *testing.T) {
	g, _ := newTestGame(t, []string{"alice", "bob", "carol"}, Rules{})
	giveCard(g, "alice", catalog.CardAttegg)

	require.NoError(t, g.PlayCard("alice", actionID(g), turnID(g), catalog.CardAttegg))
	assert.ErrorIs(t, g.VoteOk("carol", actionID(g)), ErrNotEligible)

	require.NoError(t, g.VoteOk("bob", actionID(g)))
	snap := g.Snapshot()
	assert.Equal(t, "bob", snap.CurrentPlayerID)
	assert.Equal(t, 2, snap.ExtraTurns)
}

func TestNopedAttackLeavesTurnWithActor(t *testing.T) {
	g, _ := newTestGame(t, []string{"alice", "bob"}, Rules{})
	giveCard(g, "alice", catalog.CardAttegg)
	giveCard(g, "bob", catalog.CardNope)

	require.NoError(t, g.PlayCard("alice", actionID(g), turnID(g), catalog.CardAttegg))
	require.NoError(t, g.VoteNope("bob", actionID(g)))
	g.CheckTimeouts(expireDeadline(g))

	snap := g.Snapshot()
	assert.Equal(t, "alice", snap.CurrentPlayerID)
	assert.Equal(t, 0, snap.ExtraTurns)
}

func TestConfirmRejectedAfterVeto(t *testing.T) {
	g, _ := newTestGame(t, []string{"alice", "bob", "carol"}, Rules{})
	giveCard(g, "alice", catalog.CardSkip)
	giveCard(g, "bob", catalog.CardNope)

	require.NoError(t, g.PlayCard("alice", actionID(g), turnID(g), catalog.CardSkip))
	require.NoError(t, g.VoteNope("bob", actionID(g)))
	assert.ErrorIs(t, g.VoteOk("carol", actionID(g)), ErrNotEligible)
}
