package reducer

import (
	"github.com/sevanspowell/hydra-poc/head"
)

// Update advances state by exactly one event. It is a pure total function:
// identical inputs always produce identical outcomes, and it never mutates
// state or event. The caller is responsible for serializing calls on a
// given head instance (spec: the core is single-threaded and synchronous).
func Update(env head.Environment, ledger Ledger, capability Capability, state head.State, event head.Event) head.Outcome {
	if out, handled := updateUniversal(state, event); handled {
		return out
	}

	switch s := state.(type) {
	case head.Idle:
		return updateIdle(s, event)
	case head.Initial:
		return updateInitial(env, ledger, s, event)
	case head.Open:
		return updateOpen(env, ledger, capability, s, event)
	case head.Closed:
		return updateClosed(s, event)
	case head.Final:
		return invalid(state, event)
	default:
		return invalid(state, event)
	}
}

// updateUniversal handles events meaningful in every state: peer
// connectivity notifications and rollback. Neither depends on the current
// state's tag.
func updateUniversal(state head.State, event head.Event) (head.Outcome, bool) {
	net, ok := event.(head.NetworkEventOf)
	if ok {
		switch m := net.Message.(type) {
		case head.Connected:
			return unchanged(state, head.ClientEffectOf{Output: head.PeerConnected{Host: m.Host}}), true
		case head.Disconnected:
			return unchanged(state, head.ClientEffectOf{Output: head.PeerDisconnected{Host: m.Host}}), true
		}
	}

	chain, ok := event.(head.OnChainEventOf)
	if ok {
		if rb, ok := chain.ChainEvent.(head.Rollback); ok {
			return rollback(state, rb.Depth), true
		}
	}

	return nil, false
}

func invalid(state head.State, event head.Event) head.Outcome {
	return head.ErrorOutcome{Err: head.InvalidEvent{Event: event, State: state}}
}

func unchanged(state head.State, effects ...head.Effect) head.Outcome {
	return head.NewStateOutcome{State: state, Effects: effects}
}
