package reducer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sevanspowell/hydra-poc/crypto"
	"github.com/sevanspowell/hydra-poc/head"
	"github.com/sevanspowell/hydra-poc/ledger"
)

// These scenarios follow the end-to-end walkthroughs for parties =
// [alice, bob, carol], env.self = bob, contestation period = 42s.

func TestScenarioConfirmSnapshotInOrder(t *testing.T) {
	f := newFixture(t)
	s := openState(f.Params, f.Ledger.InitUTxO())

	out := Update(f.Env, f.Ledger, f.Capability, s, networkEvent(head.ReqSn{From: f.Alice.ID, Number: 1}))
	s = mustNewState(t, out).State.(head.Open)

	snapshot1 := s.CoordinatedHeadState.SeenSnapshot.Snapshot
	require.Equal(t, uint64(1), snapshot1.Number)

	out = Update(f.Env, f.Ledger, f.Capability, s, networkEvent(ackFrom(t, f.Capability, f.Carol, snapshot1)))
	s = mustNewState(t, out).State.(head.Open)
	require.Equal(t, uint64(0), s.CoordinatedHeadState.ConfirmedSnapshot.Number())

	out = Update(f.Env, f.Ledger, f.Capability, s, networkEvent(ackFrom(t, f.Capability, f.Alice, snapshot1)))
	s = mustNewState(t, out).State.(head.Open)
	require.Equal(t, uint64(0), s.CoordinatedHeadState.ConfirmedSnapshot.Number())

	out = Update(f.Env, f.Ledger, f.Capability, s, networkEvent(ackFrom(t, f.Capability, f.Bob, snapshot1)))
	ns := mustNewState(t, out)
	s = ns.State.(head.Open)
	require.Equal(t, uint64(1), s.CoordinatedHeadState.ConfirmedSnapshot.Number())
	require.True(t, s.CoordinatedHeadState.SeenSnapshot.IsNone())

	var sawConfirmation bool
	for _, e := range ns.Effects {
		if ce, ok := e.(head.ClientEffectOf); ok {
			if _, ok := ce.Output.(head.SnapshotConfirmed); ok {
				sawConfirmation = true
			}
		}
	}
	require.True(t, sawConfirmation)
}

func TestScenarioBadSignatureAckIsIgnored(t *testing.T) {
	f := newFixture(t)
	s := openState(f.Params, f.Ledger.InitUTxO())

	out := Update(f.Env, f.Ledger, f.Capability, s, networkEvent(head.ReqSn{From: f.Alice.ID, Number: 1}))
	s = mustNewState(t, out).State.(head.Open)
	snapshot1 := s.CoordinatedHeadState.SeenSnapshot.Snapshot

	out = Update(f.Env, f.Ledger, f.Capability, s, networkEvent(ackFrom(t, f.Capability, f.Carol, snapshot1)))
	s = mustNewState(t, out).State.(head.Open)
	out = Update(f.Env, f.Ledger, f.Capability, s, networkEvent(ackFrom(t, f.Capability, f.Alice, snapshot1)))
	s = mustNewState(t, out).State.(head.Open)
	preBob := s

	// bob's ack claims to cover snapshot 1 but actually signs snapshot 2's
	// bytes: the signature fails to verify against snapshot1's bytes and is
	// silently dropped.
	wrongSnapshot := head.Snapshot{Number: 2, UTxO: snapshot1.UTxO}
	badSig, err := f.Capability.Sign(f.Bob.SK, wrongSnapshot.CanonicalBytes())
	require.NoError(t, err)
	badAck := head.AckSn{From: f.Bob.ID, Signature: badSig, Number: 1}

	out = Update(f.Env, f.Ledger, f.Capability, s, networkEvent(badAck))
	ns := mustNewState(t, out)
	require.Equal(t, preBob, ns.State)
	require.Empty(t, ns.Effects)
}

func TestScenarioFutureSnapshotWaits(t *testing.T) {
	f := newFixture(t)
	s := openState(f.Params, f.Ledger.InitUTxO())

	out := Update(f.Env, f.Ledger, f.Capability, s, networkEvent(head.ReqSn{From: f.Bob.ID, Number: 2}))
	wait, ok := out.(head.WaitOutcome)
	require.True(t, ok)
	_, ok = wait.Reason.(head.WaitOnSeenSnapshot)
	require.True(t, ok)
}

func TestScenarioOverlappingLeaderRequestsReject(t *testing.T) {
	f := newFixture(t)
	s := openState(f.Params, f.Ledger.InitUTxO())

	tx42 := ledger.Tx{TxID: mkTestID(42)}
	out := Update(f.Env, f.Ledger, f.Capability, s, networkEvent(head.ReqSn{From: f.Alice.ID, Number: 1, Txs: []ledger.Tx{tx42}}))
	s = mustNewState(t, out).State.(head.Open)

	tx51 := ledger.Tx{TxID: mkTestID(51)}
	out = Update(f.Env, f.Ledger, f.Capability, s, networkEvent(head.ReqSn{From: f.Alice.ID, Number: 1, Txs: []ledger.Tx{tx51}}))
	_, ok := out.(head.ErrorOutcome)
	require.True(t, ok)
}

func TestScenarioObserveCloseWithStaleSnapshotTriggersContest(t *testing.T) {
	f := newFixture(t)
	confirmed := head.Confirmed(head.Snapshot{Number: 2, UTxO: f.Ledger.InitUTxO()}, crypto.AggregateSignature("agg"))
	s := head.Open{
		Parameters: f.Params,
		CoordinatedHeadState: head.CoordinatedHeadState{
			SeenUTxO:          confirmed.UTxO(),
			ConfirmedSnapshot: confirmed,
		},
		Prev: head.Initial{Parameters: f.Params, Prev: head.Idle{}},
	}

	out := Update(f.Env, f.Ledger, f.Capability, s, chainEvent(head.Observation{Tx: head.OnCloseTx{SnapshotNumber: 0}}))
	ns := mustNewState(t, out)

	closed, ok := ns.State.(head.Closed)
	require.True(t, ok)
	require.Equal(t, confirmed, closed.ConfirmedSnapshot)

	var sawContest, sawDelay bool
	for _, e := range ns.Effects {
		switch eff := e.(type) {
		case head.OnChainEffectOf:
			if ct, ok := eff.Tx.(head.ContestTx); ok {
				sawContest = true
				require.Equal(t, confirmed, ct.ConfirmedSnapshot)
			}
		case head.Delay:
			sawDelay = true
			require.Equal(t, 42*time.Second, eff.DelayFor)
			require.Equal(t, head.ShouldPostFanoutEvent{}, eff.Event)
		}
	}
	require.True(t, sawContest)
	require.True(t, sawDelay)
}

func TestScenarioMutualExclusionOfCollectComAndAbort(t *testing.T) {
	f := newFixture(t)
	s := freshInitial(f)
	s.PendingCommits = s.PendingCommits.Clone()
	for _, p := range f.Params.Parties {
		s.PendingCommits.Remove(p)
	}

	out := Update(f.Env, f.Ledger, f.Capability, s, chainEvent(head.Observation{Tx: head.OnCollectComTx{}}))
	ns := mustNewState(t, out)
	open, ok := ns.State.(head.Open)
	require.True(t, ok)

	out = Update(f.Env, f.Ledger, f.Capability, open, chainEvent(head.Observation{Tx: head.OnAbortTx{}}))
	_, ok = out.(head.ErrorOutcome)
	require.True(t, ok)

	// Symmetric reverse ordering: abort first, then collect-com also errors.
	s2 := freshInitial(f)
	out = Update(f.Env, f.Ledger, f.Capability, s2, chainEvent(head.Observation{Tx: head.OnAbortTx{}}))
	ns = mustNewState(t, out)
	final, ok := ns.State.(head.Final)
	require.True(t, ok)

	out = Update(f.Env, f.Ledger, f.Capability, final, chainEvent(head.Observation{Tx: head.OnCollectComTx{}}))
	_, ok = out.(head.ErrorOutcome)
	require.True(t, ok)
}
