package head

import "fmt"

// WaitReason explains why an event could not be applied yet but may
// become applicable later (spec §3, §7). Every variant implements error
// so callers can use errors.As against it, while still carrying
// structured payloads.
type WaitReason interface {
	error
	waitReason()
}

// WaitOnNotApplicableTx reports that a transaction did not apply against
// the current utxo. The runtime is expected to retry after other events
// may have changed the state.
type WaitOnNotApplicableTx struct{ Err error }

func (w WaitOnNotApplicableTx) Error() string {
	return fmt.Sprintf("tx not yet applicable: %s", w.Err)
}
func (WaitOnNotApplicableTx) waitReason() {}
func (w WaitOnNotApplicableTx) Unwrap() error { return w.Err }

// WaitOnSeenSnapshot reports that there is no in-flight snapshot to match
// the event against yet.
type WaitOnSeenSnapshot struct{}

func (WaitOnSeenSnapshot) Error() string { return "waiting on a seen snapshot" }
func (WaitOnSeenSnapshot) waitReason()   {}

// WaitOnSnapshotNumber reports that a different snapshot number m is
// already in flight.
type WaitOnSnapshotNumber struct{ Number uint64 }

func (w WaitOnSnapshotNumber) Error() string {
	return fmt.Sprintf("waiting on in-flight snapshot number %d", w.Number)
}
func (WaitOnSnapshotNumber) waitReason() {}

// WaitOnContestationPeriod reports that the contestation period has not
// yet elapsed.
type WaitOnContestationPeriod struct{}

func (WaitOnContestationPeriod) Error() string { return "waiting on contestation period" }
func (WaitOnContestationPeriod) waitReason()   {}

// LogicError is a protocol violation: the event can never be valid for
// the state it was delivered in (spec §3, §7). Surfaced to the client,
// not fatal to the head.
type LogicError interface {
	error
	logicError()
}

// InvalidEvent reports that Event cannot happen while the head is in
// State.
type InvalidEvent struct {
	Event Event
	State State
}

func (e InvalidEvent) Error() string {
	return fmt.Sprintf("event %s invalid in state %s", e.Event.EventTag(), e.State.Kind())
}
func (InvalidEvent) logicError() {}

// RequireFailed reports a guard failure not otherwise covered by
// InvalidEvent (e.g. a malformed or internally inconsistent request).
type RequireFailed struct{ Reason string }

func (e RequireFailed) Error() string { return fmt.Sprintf("requirement failed: %s", e.Reason) }
func (RequireFailed) logicError()     {}

// NotOurHead reports that an observation belongs to a different head than
// the one this node is tracking.
type NotOurHead struct{}

func (NotOurHead) Error() string { return "observation does not belong to our head" }
func (NotOurHead) logicError()   {}

// Outcome is the reducer's result: advance to a new state with effects to
// dispatch, wait for the event to become valid later, or reject it as a
// protocol violation.
type Outcome interface {
	outcome()
}

// NewStateOutcome advances the head to State, with Effects to dispatch in
// order.
type NewStateOutcome struct {
	State   State
	Effects []Effect
}

func (NewStateOutcome) outcome() {}

// WaitOutcome asks the runtime to re-deliver the event later.
type WaitOutcome struct {
	Reason WaitReason
}

func (WaitOutcome) outcome() {}

// ErrorOutcome rejects the event as invalid for the current state. State
// is unchanged.
type ErrorOutcome struct {
	Err LogicError
}

func (ErrorOutcome) outcome() {}
