package reducer

import (
	"github.com/sevanspowell/hydra-poc/head"
	"github.com/sevanspowell/hydra-poc/ids"
	"github.com/sevanspowell/hydra-poc/ledger"
)

// updateInitial handles commits (client and chain), abort and collect-com
// while a head is waiting for all parties to fund it (spec §4.3, §4.5).
func updateInitial(env head.Environment, ledgerCap Ledger, s head.Initial, event head.Event) head.Outcome {
	switch e := event.(type) {
	case head.ClientEventOf:
		return updateInitialCommand(env, s, event, e.Command)
	case head.OnChainEventOf:
		obs, ok := e.ChainEvent.(head.Observation)
		if !ok {
			break
		}
		return updateInitialObservation(ledgerCap, s, event, obs.Tx)
	}
	return invalid(s, event)
}

func updateInitialCommand(env head.Environment, s head.Initial, event head.Event, cmd head.Command) head.Outcome {
	switch c := cmd.(type) {
	case head.CommitCmd:
		if !s.PendingCommits.Contains(env.Self) {
			return invalid(s, event)
		}
		return unchanged(s, head.OnChainEffectOf{Tx: head.CommitTx{Self: env.Self, UTxO: c.UTxO}})
	case head.AbortCmd:
		return unchanged(s, head.OnChainEffectOf{Tx: head.AbortTx{}})
	default:
		return invalid(s, event)
	}
}

func updateInitialObservation(ledgerCap Ledger, s head.Initial, event head.Event, tx head.OnChainTx) head.Outcome {
	switch t := tx.(type) {
	case head.OnCommitTx:
		if !s.PendingCommits.Contains(t.Party) {
			return invalid(s, event)
		}
		nextPending := s.PendingCommits.Clone()
		nextPending.Remove(t.Party)

		nextCommitted := make(map[ids.Party]ledger.UTxO, len(s.Committed)+1)
		for p, u := range s.Committed {
			nextCommitted[p] = u
		}
		nextCommitted[t.Party] = t.UTxO

		next := head.Initial{
			Parameters:     s.Parameters,
			PendingCommits: nextPending,
			Committed:      nextCommitted,
			Prev:           s.Prev,
		}

		var effects []head.Effect
		if nextPending.Len() == 0 {
			effects = append(effects, head.OnChainEffectOf{Tx: head.CollectComTx{}})
		}
		return head.NewStateOutcome{State: next, Effects: effects}

	case head.OnCollectComTx:
		utxo := ledgerCap.InitUTxO()
		for _, u := range s.Committed {
			utxo = utxo.Union(u)
		}
		open := head.Open{
			Parameters: s.Parameters,
			CoordinatedHeadState: head.CoordinatedHeadState{
				SeenUTxO:          utxo,
				ConfirmedSnapshot: head.InitialSnapshot(head.Snapshot{Number: 0, UTxO: utxo}),
			},
			Prev: s,
		}
		return head.NewStateOutcome{
			State:   open,
			Effects: []head.Effect{head.ClientEffectOf{Output: head.HeadIsOpen{}}},
		}

	case head.OnAbortTx:
		final := head.Final{Prev: s}
		return head.NewStateOutcome{
			State:   final,
			Effects: []head.Effect{head.ClientEffectOf{Output: head.HeadIsAborted{}}},
		}

	default:
		return invalid(s, event)
	}
}
