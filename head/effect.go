package head

import "time"

// Effect is a single side-effecting instruction the outer runtime must
// execute (spec §3). The reducer returns effects as data, in dispatch
// order; it never calls out itself.
type Effect interface {
	EffectTag() string
	effect()
}

// ClientEffectOf asks the runtime to push output to local clients.
type ClientEffectOf struct {
	Output ServerOutput
}

func (ClientEffectOf) EffectTag() string { return "ClientEffect" }
func (ClientEffectOf) effect()           {}

// NetworkEffectOf asks the runtime to broadcast message to peers.
type NetworkEffectOf struct {
	Message Message
}

func (NetworkEffectOf) EffectTag() string { return "NetworkEffect" }
func (NetworkEffectOf) effect()           {}

// OnChainEffectOf asks the runtime to submit a chain transaction.
type OnChainEffectOf struct {
	Tx PostChainTx
}

func (OnChainEffectOf) EffectTag() string { return "OnChainEffect" }
func (OnChainEffectOf) effect()           {}

// Delay asks the runtime to re-deliver event after delay has elapsed,
// using the runtime's own monotonic clock (spec §5).
type Delay struct {
	DelayFor time.Duration
	Reason   WaitReason
	Event    Event
}

func (Delay) EffectTag() string { return "Delay" }
func (Delay) effect()           {}
