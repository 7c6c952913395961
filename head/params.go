// Package head defines the data model of the Coordinated Head Protocol
// core: head parameters, snapshots, the tagged-union HeadState, the
// network/client/chain event and effect types, and the outcome shapes the
// reducer returns. This package carries no behavior beyond what the data
// model itself demands (encoding, simple queries); the reducer package
// contains the state machine.
package head

import (
	"time"

	"github.com/sevanspowell/hydra-poc/crypto"
	"github.com/sevanspowell/hydra-poc/ids"
)

// HeadParameters is frozen at head initialization. Leader election indexes
// into Parties, so its order is part of the contract and must never be
// re-sorted by implementations.
type HeadParameters struct {
	ContestationPeriod time.Duration
	Parties            []ids.Party
}

// IndexOf returns the index of p within Parties, or -1 if p is not a
// member.
func (hp HeadParameters) IndexOf(p ids.Party) int {
	for i, party := range hp.Parties {
		if party == p {
			return i
		}
	}
	return -1
}

// Leader returns the party entitled to originate snapshot number sn.
// Leader(sn) = parties[(sn-1) mod N]; sn must be >= 1.
func (hp HeadParameters) Leader(sn uint64) ids.Party {
	n := uint64(len(hp.Parties))
	return hp.Parties[(sn-1)%n]
}

// PartySet returns the frozen party list as a set, used for pendingCommits
// initialization. Ack-map completeness is checked against Parties itself.
func (hp HeadParameters) PartySet() ids.PartySet {
	return ids.NewPartySet(hp.Parties...)
}

// Environment is the per-node constant context the reducer is invoked
// with: this node's own identity, its signing key, and the set of other
// parties it expects to hear from.
type Environment struct {
	Self       ids.Party
	SigningKey crypto.SigningKey
	Others     ids.PartySet
}
