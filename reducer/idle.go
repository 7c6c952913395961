package reducer

import (
	"github.com/sevanspowell/hydra-poc/head"
	"github.com/sevanspowell/hydra-poc/ids"
	"github.com/sevanspowell/hydra-poc/ledger"
)

// updateIdle handles the two events meaningful before anything has been
// observed on-chain: the client asking to start a head, and the chain
// reporting that one has started (spec §4.1, §4.3).
func updateIdle(s head.Idle, event head.Event) head.Outcome {
	switch e := event.(type) {
	case head.ClientEventOf:
		if cmd, ok := e.Command.(head.InitCmd); ok {
			return unchanged(s, head.OnChainEffectOf{Tx: head.InitTx{Parameters: cmd.Parameters}})
		}
	case head.OnChainEventOf:
		if obs, ok := e.ChainEvent.(head.Observation); ok {
			if initTx, ok := obs.Tx.(head.OnInitTx); ok {
				next := head.Initial{
					Parameters:     initTx.Parameters,
					PendingCommits: initTx.Parameters.PartySet(),
					Committed:      map[ids.Party]ledger.UTxO{},
					Prev:           s,
				}
				return head.NewStateOutcome{
					State:   next,
					Effects: []head.Effect{head.ClientEffectOf{Output: head.HeadIsInitializing{}}},
				}
			}
		}
	}
	return invalid(s, event)
}
