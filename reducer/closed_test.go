package reducer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sevanspowell/hydra-poc/crypto"
	"github.com/sevanspowell/hydra-poc/head"
)

func closedState(f fixture, number uint64) head.Closed {
	snap := head.Confirmed(head.Snapshot{Number: number, UTxO: f.Ledger.InitUTxO()}, crypto.AggregateSignature("agg"))
	return head.Closed{
		Parameters:        f.Params,
		ConfirmedSnapshot: snap,
		Prev:              openState(f.Params, f.Ledger.InitUTxO()),
	}
}

func TestUpdateClosedContestCommand(t *testing.T) {
	f := newFixture(t)
	s := closedState(f, 3)

	out := Update(f.Env, f.Ledger, f.Capability, s, clientEvent(head.ContestCmd{}))
	ns := mustNewState(t, out)
	require.Equal(t, []head.Effect{head.OnChainEffectOf{Tx: head.ContestTx{ConfirmedSnapshot: s.ConfirmedSnapshot}}}, ns.Effects)
}

func TestUpdateClosedObserveContestReContestsIfStale(t *testing.T) {
	f := newFixture(t)
	s := closedState(f, 3)

	out := Update(f.Env, f.Ledger, f.Capability, s, chainEvent(head.Observation{Tx: head.OnContestTx{SnapshotNumber: 1}}))
	ns := mustNewState(t, out)
	require.Equal(t, s, ns.State)
	require.Equal(t, []head.Effect{head.OnChainEffectOf{Tx: head.ContestTx{ConfirmedSnapshot: s.ConfirmedSnapshot}}}, ns.Effects)
}

func TestUpdateClosedObserveContestNoOpIfNotStale(t *testing.T) {
	f := newFixture(t)
	s := closedState(f, 3)

	out := Update(f.Env, f.Ledger, f.Capability, s, chainEvent(head.Observation{Tx: head.OnContestTx{SnapshotNumber: 5}}))
	ns := mustNewState(t, out)
	require.Empty(t, ns.Effects)
}

func TestUpdateClosedFanoutFinalizes(t *testing.T) {
	f := newFixture(t)
	s := closedState(f, 3)

	out := Update(f.Env, f.Ledger, f.Capability, s, chainEvent(head.Observation{Tx: head.OnFanoutTx{}}))
	ns := mustNewState(t, out)
	_, ok := ns.State.(head.Final)
	require.True(t, ok)
	require.Equal(t, []head.Effect{head.ClientEffectOf{Output: head.HeadIsFinalized{}}}, ns.Effects)
}

func TestUpdateClosedFanoutTimerPostsFanoutTx(t *testing.T) {
	f := newFixture(t)
	s := closedState(f, 3)

	out := Update(f.Env, f.Ledger, f.Capability, s, head.ShouldPostFanoutEvent{})
	ns := mustNewState(t, out)
	require.Equal(t, []head.Effect{head.OnChainEffectOf{Tx: head.FanoutTx{ConfirmedSnapshot: s.ConfirmedSnapshot}}}, ns.Effects)
}
