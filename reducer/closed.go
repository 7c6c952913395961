package reducer

import "github.com/sevanspowell/hydra-poc/head"

// updateClosed handles the contestation period: contest commands and
// observations, the self-delivered fanout timer, and the fanout
// observation that finalizes the head (spec §4.3, §4.5).
func updateClosed(s head.Closed, event head.Event) head.Outcome {
	switch e := event.(type) {
	case head.ClientEventOf:
		if _, ok := e.Command.(head.ContestCmd); ok {
			return unchanged(s, head.OnChainEffectOf{Tx: head.ContestTx{ConfirmedSnapshot: s.ConfirmedSnapshot}})
		}
	case head.OnChainEventOf:
		switch ce := e.ChainEvent.(type) {
		case head.Observation:
			switch tx := ce.Tx.(type) {
			case head.OnContestTx:
				var effects []head.Effect
				if tx.SnapshotNumber < s.ConfirmedSnapshot.Number() {
					effects = append(effects, head.OnChainEffectOf{Tx: head.ContestTx{ConfirmedSnapshot: s.ConfirmedSnapshot}})
				}
				return head.NewStateOutcome{State: s, Effects: effects}
			case head.OnFanoutTx:
				final := head.Final{Prev: s}
				return head.NewStateOutcome{
					State:   final,
					Effects: []head.Effect{head.ClientEffectOf{Output: head.HeadIsFinalized{}}},
				}
			}
		}
	case head.ShouldPostFanoutEvent:
		return unchanged(s, head.OnChainEffectOf{Tx: head.FanoutTx{ConfirmedSnapshot: s.ConfirmedSnapshot}})
	}
	return invalid(s, event)
}
