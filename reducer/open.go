package reducer

import (
	"github.com/sevanspowell/hydra-poc/crypto"
	"github.com/sevanspowell/hydra-poc/head"
	"github.com/sevanspowell/hydra-poc/ids"
	"github.com/sevanspowell/hydra-poc/ledger"
)

// updateOpen runs the coordinated snapshot/tx protocol: ReqTx, ReqSn,
// AckSn, client commands, and the close observation that ends it (spec
// §4.2, §4.3, §4.5).
func updateOpen(env head.Environment, ledgerCap Ledger, capability Capability, s head.Open, event head.Event) head.Outcome {
	switch e := event.(type) {
	case head.ClientEventOf:
		return updateOpenCommand(env, ledgerCap, s, event, e.Command)
	case head.NetworkEventOf:
		return updateOpenMessage(env, ledgerCap, capability, s, event, e.Message)
	case head.OnChainEventOf:
		obs, ok := e.ChainEvent.(head.Observation)
		if !ok {
			break
		}
		closeTx, ok := obs.Tx.(head.OnCloseTx)
		if !ok {
			break
		}
		return updateOpenClose(s, closeTx)
	}
	return invalid(s, event)
}

func updateOpenCommand(env head.Environment, ledgerCap Ledger, s head.Open, event head.Event, cmd head.Command) head.Outcome {
	chs := s.CoordinatedHeadState
	switch c := cmd.(type) {
	case head.NewTxCmd:
		req := head.ReqTx{From: env.Self, Tx: c.Tx}
		out := updateOpenReqTx(env, ledgerCap, s, req)
		ns, ok := out.(head.NewStateOutcome)
		if !ok {
			return out
		}
		effects := append([]head.Effect{head.NetworkEffectOf{Message: req}}, ns.Effects...)
		return head.NewStateOutcome{State: ns.State, Effects: effects}
	case head.CloseCmd:
		return unchanged(s, head.OnChainEffectOf{Tx: head.CloseTx{ConfirmedSnapshot: chs.ConfirmedSnapshot}})
	case head.GetUTxOCmd:
		return unchanged(s, head.ClientEffectOf{Output: head.UTxOOutput{UTxO: chs.SeenUTxO}})
	default:
		return invalid(s, event)
	}
}

func updateOpenMessage(env head.Environment, ledgerCap Ledger, capability Capability, s head.Open, event head.Event, msg head.Message) head.Outcome {
	switch m := msg.(type) {
	case head.ReqTx:
		return updateOpenReqTx(env, ledgerCap, s, m)
	case head.ReqSn:
		return updateOpenReqSn(env, ledgerCap, capability, s, event, m)
	case head.AckSn:
		return updateOpenAckSn(env, ledgerCap, capability, s, event, m)
	default:
		return invalid(s, event)
	}
}

// updateOpenReqTx implements spec §4.2 "Processing ReqTx(from, tx)". Both
// the NewTx command path and the network-delivered ReqTx message share it.
func updateOpenReqTx(env head.Environment, ledgerCap Ledger, s head.Open, m head.ReqTx) head.Outcome {
	chs := s.CoordinatedHeadState
	nextUTxO, err := ledgerCap.ApplyTransactions(chs.SeenUTxO, []ledger.Tx{m.Tx})
	if err != nil {
		return head.WaitOutcome{Reason: head.WaitOnNotApplicableTx{Err: err}}
	}

	nextTxs := append(append([]ledger.Tx(nil), chs.SeenTxs...), m.Tx)
	nextState := head.Open{
		Parameters:           s.Parameters,
		CoordinatedHeadState: chs.WithSeen(nextUTxO, nextTxs),
		Prev:                 s.Prev,
	}

	nextSn := chs.ConfirmedSnapshot.Number() + 1
	var effects []head.Effect
	if s.Parameters.Leader(nextSn) == env.Self && chs.SeenSnapshot.IsNone() {
		effects = append(effects, head.NetworkEffectOf{Message: head.ReqSn{From: env.Self, Number: nextSn, Txs: nextTxs}})
	}
	return head.NewStateOutcome{State: nextState, Effects: effects}
}

// updateOpenReqSn implements spec §4.2 "Processing ReqSn(from, sn, txs)".
func updateOpenReqSn(env head.Environment, ledgerCap Ledger, capability Capability, s head.Open, event head.Event, m head.ReqSn) head.Outcome {
	chs := s.CoordinatedHeadState

	if m.From != s.Parameters.Leader(m.Number) {
		return invalid(s, event)
	}
	if m.Number <= chs.ConfirmedSnapshot.Number() {
		return invalid(s, event)
	}
	if m.Number > chs.ConfirmedSnapshot.Number()+1 {
		return head.WaitOutcome{Reason: head.WaitOnSeenSnapshot{}}
	}
	if !chs.SeenSnapshot.IsNone() {
		inFlight := chs.SeenSnapshot.Snapshot.Number
		if m.Number == inFlight {
			return invalid(s, event)
		}
		return head.WaitOutcome{Reason: head.WaitOnSnapshotNumber{Number: inFlight}}
	}

	result, err := ledgerCap.ApplyTransactions(chs.ConfirmedSnapshot.UTxO(), m.Txs)
	if err != nil {
		return head.WaitOutcome{Reason: head.WaitOnNotApplicableTx{Err: err}}
	}

	snapshot := head.Snapshot{Number: m.Number, UTxO: result, ConfirmedTxs: m.Txs}
	sig, err := capability.Sign(env.SigningKey, snapshot.CanonicalBytes())
	if err != nil {
		return head.ErrorOutcome{Err: head.RequireFailed{Reason: err.Error()}}
	}

	// This node's own ack is not recorded here: it is broadcast like anyone
	// else's and only counted once it comes back through the normal AckSn
	// path (spec §8 scenario 1: confirmation needs every party's ack,
	// including this node's own).
	seenSnapshot := head.Seen(snapshot, map[ids.Party]crypto.Signature{})
	nextState := head.Open{
		Parameters:           s.Parameters,
		CoordinatedHeadState: chs.WithSeenSnapshot(seenSnapshot),
		Prev:                 s.Prev,
	}
	return head.NewStateOutcome{
		State:   nextState,
		Effects: []head.Effect{head.NetworkEffectOf{Message: head.AckSn{From: env.Self, Signature: sig, Number: m.Number}}},
	}
}

// updateOpenAckSn implements spec §4.2 "Processing AckSn(from, sig, sn)".
func updateOpenAckSn(env head.Environment, ledgerCap Ledger, capability Capability, s head.Open, event head.Event, m head.AckSn) head.Outcome {
	chs := s.CoordinatedHeadState

	if chs.SeenSnapshot.IsNone() || chs.SeenSnapshot.Snapshot.Number != m.Number {
		return head.WaitOutcome{Reason: head.WaitOnSeenSnapshot{}}
	}

	msg := chs.SeenSnapshot.Snapshot.CanonicalBytes()
	if !capability.Verify(verificationKeyOf(m.From), m.Signature, msg) {
		// Invalid signature: drop the ack silently (spec §4.2, §4.6). The
		// runtime's metrics layer, not the reducer, is told about this.
		return unchanged(s)
	}

	nextSeenSnapshot := chs.SeenSnapshot.WithSig(m.From, m.Signature)
	if !nextSeenSnapshot.CoversAll(s.Parameters.Parties) {
		nextState := head.Open{
			Parameters:           s.Parameters,
			CoordinatedHeadState: chs.WithSeenSnapshot(nextSeenSnapshot),
			Prev:                 s.Prev,
		}
		return head.NewStateOutcome{State: nextState}
	}

	sigs := make([]crypto.Signature, 0, len(nextSeenSnapshot.Sigs))
	for _, p := range s.Parameters.Parties {
		sigs = append(sigs, nextSeenSnapshot.Sigs[p])
	}
	agg, err := capability.Aggregate(sigs)
	if err != nil {
		return head.ErrorOutcome{Err: head.RequireFailed{Reason: err.Error()}}
	}

	confirmed := head.Confirmed(nextSeenSnapshot.Snapshot, agg)
	nextSeenTxs := head.DropConfirmedTxs(chs.SeenTxs, nextSeenSnapshot.Snapshot.ConfirmedTxs)
	nextSeenUTxO, err := ledgerCap.ApplyTransactions(confirmed.UTxO(), nextSeenTxs)
	if err != nil {
		return head.ErrorOutcome{Err: head.RequireFailed{Reason: err.Error()}}
	}

	nextCHS := chs.WithConfirmed(confirmed, head.SeenSnapshot{}, nextSeenUTxO, nextSeenTxs)
	nextState := head.Open{Parameters: s.Parameters, CoordinatedHeadState: nextCHS, Prev: s.Prev}

	effects := []head.Effect{head.ClientEffectOf{Output: head.SnapshotConfirmed{
		Snapshot:  confirmed.Snapshot,
		Signature: agg,
	}}}

	if nextSn := confirmed.Number() + 1; s.Parameters.Leader(nextSn) == env.Self && len(nextSeenTxs) > 0 {
		effects = append(effects, head.NetworkEffectOf{Message: head.ReqSn{From: env.Self, Number: nextSn, Txs: nextSeenTxs}})
	}

	return head.NewStateOutcome{State: nextState, Effects: effects}
}

func updateOpenClose(s head.Open, closeTx head.OnCloseTx) head.Outcome {
	chs := s.CoordinatedHeadState
	closed := head.Closed{
		Parameters:        s.Parameters,
		ConfirmedSnapshot: chs.ConfirmedSnapshot,
		Prev:              s,
	}

	effects := []head.Effect{head.ClientEffectOf{Output: head.HeadIsClosed{}}}
	if closeTx.SnapshotNumber < chs.ConfirmedSnapshot.Number() {
		effects = append(effects, head.OnChainEffectOf{Tx: head.ContestTx{ConfirmedSnapshot: chs.ConfirmedSnapshot}})
	}
	effects = append(effects, head.Delay{
		DelayFor: s.Parameters.ContestationPeriod,
		Reason:   head.WaitOnContestationPeriod{},
		Event:    head.ShouldPostFanoutEvent{},
	})
	return head.NewStateOutcome{State: closed, Effects: effects}
}
