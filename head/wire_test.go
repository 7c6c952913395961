package head

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevanspowell/hydra-poc/crypto"
	"github.com/sevanspowell/hydra-poc/ids"
	"github.com/sevanspowell/hydra-poc/ledger"
)

func mkParty(b byte) ids.Party { return ids.PartyFromBytes([]byte{b}) }

func mkID(b byte) ids.ID {
	var id ids.ID
	id[0] = b
	return id
}

func readGolden(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return b
}

func assertJSONEqual(t *testing.T, want, got []byte) {
	t.Helper()
	var w, g interface{}
	require.NoError(t, json.Unmarshal(want, &w))
	require.NoError(t, json.Unmarshal(got, &g))
	assert.Equal(t, w, g)
}

func TestMessageRoundTrip(t *testing.T) {
	msgs := []Message{
		ReqTx{From: mkParty(1), Tx: ledger.Tx{TxID: mkID(1)}},
		ReqSn{From: mkParty(1), Number: 3, Txs: []ledger.Tx{{TxID: mkID(2)}}},
		AckSn{From: mkParty(2), Signature: crypto.Signature("sig"), Number: 3},
		Connected{Host: mkParty(3)},
		Disconnected{Host: mkParty(3)},
	}
	for _, m := range msgs {
		b, err := MarshalMessage(m)
		require.NoError(t, err)
		got, err := UnmarshalMessage(b)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestCommandRoundTrip(t *testing.T) {
	cmds := []Command{
		InitCmd{},
		CommitCmd{UTxO: ledger.UTxO{{TxID: mkID(1), Index: 0}: {Owner: mkParty(1), Amount: 10}}},
		NewTxCmd{Tx: ledger.Tx{TxID: mkID(2)}},
		CloseCmd{},
		ContestCmd{},
		GetUTxOCmd{},
		AbortCmd{},
	}
	for _, c := range cmds {
		b, err := MarshalCommand(c)
		require.NoError(t, err)
		got, err := UnmarshalCommand(b)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestOnChainTxRoundTrip(t *testing.T) {
	txs := []OnChainTx{
		OnInitTx{Parameters: HeadParameters{ContestationPeriod: time.Minute, Parties: []ids.Party{mkParty(1), mkParty(2)}}},
		OnCommitTx{Party: mkParty(1), UTxO: ledger.UTxO{}},
		OnCollectComTx{},
		OnAbortTx{},
		OnCloseTx{SnapshotNumber: 5, Deadline: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		OnContestTx{SnapshotNumber: 5},
		OnFanoutTx{},
	}
	for _, tx := range txs {
		b, err := MarshalOnChainTx(tx)
		require.NoError(t, err)
		got, err := UnmarshalOnChainTx(b)
		require.NoError(t, err)
		assert.Equal(t, tx, got)
	}
}

func TestChainEventRoundTrip(t *testing.T) {
	events := []ChainEvent{
		Observation{Tx: OnAbortTx{}},
		Rollback{Depth: 2},
		Tick{Time: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)},
	}
	for _, e := range events {
		b, err := MarshalChainEvent(e)
		require.NoError(t, err)
		got, err := UnmarshalChainEvent(b)
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
}

func TestServerOutputRoundTrip(t *testing.T) {
	outputs := []ServerOutput{
		PeerConnected{Host: mkParty(1)},
		PeerDisconnected{Host: mkParty(1)},
		HeadIsInitializing{},
		HeadIsOpen{},
		SnapshotConfirmed{
			Snapshot:  Snapshot{Number: 1, UTxO: ledger.UTxO{}},
			Signature: crypto.AggregateSignature("agg"),
		},
		RolledBack{},
		HeadIsClosed{},
		HeadIsFinalized{},
		HeadIsAborted{},
		UTxOOutput{UTxO: ledger.UTxO{{TxID: mkID(9), Index: 0}: {Owner: mkParty(9), Amount: 1}}},
	}
	for _, o := range outputs {
		b, err := MarshalServerOutput(o)
		require.NoError(t, err)
		got, err := UnmarshalServerOutput(b)
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
}

func TestEventRoundTrip(t *testing.T) {
	events := []Event{
		ClientEventOf{Command: InitCmd{}},
		NetworkEventOf{Message: Connected{Host: mkParty(1)}},
		OnChainEventOf{ChainEvent: Rollback{Depth: 1}},
		ShouldPostFanoutEvent{},
	}
	for _, e := range events {
		b, err := MarshalEvent(e)
		require.NoError(t, err)
		got, err := UnmarshalEvent(b)
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
}

func TestStateRoundTrip(t *testing.T) {
	params := HeadParameters{ContestationPeriod: time.Minute, Parties: []ids.Party{mkParty(1), mkParty(2)}}

	states := []State{
		Idle{},
		Initial{
			Parameters:     params,
			PendingCommits: ids.NewPartySet(mkParty(1), mkParty(2)),
			Committed:      map[ids.Party]ledger.UTxO{mkParty(1): {}},
			Prev:           Idle{},
		},
		Open{
			Parameters: params,
			CoordinatedHeadState: CoordinatedHeadState{
				SeenUTxO:          ledger.UTxO{},
				ConfirmedSnapshot: InitialSnapshot(Snapshot{Number: 0, UTxO: ledger.UTxO{}}),
				SeenSnapshot:      SeenSnapshot{Snapshot: Snapshot{UTxO: ledger.UTxO{}}},
			},
			Prev: Initial{Parameters: params, Prev: Idle{}},
		},
		Closed{
			Parameters:        params,
			ConfirmedSnapshot: Confirmed(Snapshot{Number: 2, UTxO: ledger.UTxO{}}, crypto.AggregateSignature("agg")),
			Prev:              Open{Parameters: params, Prev: Idle{}},
		},
		Final{Prev: Closed{Parameters: params, Prev: Idle{}}},
	}

	for _, s := range states {
		b, err := MarshalState(s)
		require.NoError(t, err)
		got, err := UnmarshalState(b)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestStateGoldenVectors(t *testing.T) {
	params := HeadParameters{ContestationPeriod: time.Minute, Parties: []ids.Party{mkParty(1), mkParty(2)}}

	idle := Idle{}
	idleGolden := readGolden(t, "state_idle.golden.json")
	got, err := MarshalState(idle)
	require.NoError(t, err)
	assertJSONEqual(t, idleGolden, got)

	initial := Initial{
		Parameters:     params,
		PendingCommits: ids.NewPartySet(mkParty(1)),
		Prev:           Idle{},
	}
	initialGolden := readGolden(t, "state_initial.golden.json")
	got, err = MarshalState(initial)
	require.NoError(t, err)
	assertJSONEqual(t, initialGolden, got)

	roundTripped, err := UnmarshalState(initialGolden)
	require.NoError(t, err)
	assert.Equal(t, State(initial), roundTripped)
}
