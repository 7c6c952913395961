package reducer

import (
	"bytes"
	"reflect"

	"github.com/sevanspowell/hydra-poc/head"
)

// Instrumented wraps Update with Metrics, the way the teacher's MeterVM
// wraps a ChainVM: the decorated call observes outcomes from the outside,
// the wrapped function's behavior is untouched.
type Instrumented struct {
	Ledger     Ledger
	Capability Capability
	Metrics    *Metrics
}

// Update calls Update and records the outcome on i.Metrics before
// returning it unchanged to the caller.
func (i *Instrumented) Update(env head.Environment, state head.State, event head.Event) head.Outcome {
	outcome := Update(env, i.Ledger, i.Capability, state, event)
	i.Metrics.observe(outcome)

	if isDroppedAck(state, event, outcome) {
		i.Metrics.badAckDropped.Inc()
	}
	return outcome
}

// isDroppedAck reports whether outcome is the no-op NewStateOutcome
// produced when an AckSn's signature fails verification (spec §4.2, §4.6):
// state is returned unchanged and no effects are raised, which at this
// call site only happens for a silently-dropped bad signature.
func isDroppedAck(state head.State, event head.Event, outcome head.Outcome) bool {
	net, ok := event.(head.NetworkEventOf)
	if !ok {
		return false
	}
	ack, ok := net.Message.(head.AckSn)
	if !ok {
		return false
	}
	// A repeat of an ack whose signature is already recorded verified when it
	// was first recorded and yields the same no-op shape; it is not a drop.
	if open, ok := state.(head.Open); ok {
		if prior, seen := open.CoordinatedHeadState.SeenSnapshot.Sigs[ack.From]; seen && bytes.Equal(prior, ack.Signature) {
			return false
		}
	}

	ns, ok := outcome.(head.NewStateOutcome)
	if !ok {
		return false
	}
	return len(ns.Effects) == 0 && reflect.DeepEqual(ns.State, state)
}
