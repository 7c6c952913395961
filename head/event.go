package head

// Event is a single input to the reducer: a network message, an on-chain
// observation, a client command, or a self-delivered timer (spec §3).
type Event interface {
	EventTag() string
	event()
}

// ClientEventOf wraps a Command issued by a local client.
type ClientEventOf struct {
	Command Command
}

func (ClientEventOf) EventTag() string { return "ClientEvent" }
func (ClientEventOf) event()           {}

// NetworkEventOf wraps a Message received from a peer.
type NetworkEventOf struct {
	Message Message
}

func (NetworkEventOf) EventTag() string { return "NetworkEvent" }
func (NetworkEventOf) event()           {}

// OnChainEventOf wraps a ChainEvent reported by the chain observer.
type OnChainEventOf struct {
	ChainEvent ChainEvent
}

func (OnChainEventOf) EventTag() string { return "OnChainEvent" }
func (OnChainEventOf) event()           {}

// ShouldPostFanoutEvent is the self-delivered timer event scheduled when a
// close is observed; it fires once the contestation period elapses.
type ShouldPostFanoutEvent struct{}

func (ShouldPostFanoutEvent) EventTag() string { return "ShouldPostFanout" }
func (ShouldPostFanoutEvent) event()           {}
