// Package reducer implements the deterministic, side-effect-free
// head-logic state machine: Update(env, ledger, capability, state, event)
// advances a head by exactly one event, returning the next state and the
// effects the surrounding runtime must dispatch. It never performs I/O and
// never mutates the state or event it is given.
package reducer

import (
	"github.com/sevanspowell/hydra-poc/crypto"
	"github.com/sevanspowell/hydra-poc/ids"
	"github.com/sevanspowell/hydra-poc/ledger"
)

// Ledger is the capability Update needs from a ledger implementation. The
// reducer depends only on this interface, never on the concrete
// ledger.Ledger, so any deterministic, order-sensitive UTxO model over the
// ledger package's UTxO and Tx types can drive it.
type Ledger interface {
	InitUTxO() ledger.UTxO
	ApplyTransactions(utxo ledger.UTxO, txs []ledger.Tx) (ledger.UTxO, error)
}

// Capability is the crypto capability Update needs to sign and verify
// snapshots. A party's verification key is its identity bytes (spec: "the
// verification key is the Party identity").
type Capability interface {
	Sign(sk crypto.SigningKey, msg []byte) (crypto.Signature, error)
	Verify(vk crypto.VerificationKey, sig crypto.Signature, msg []byte) bool
	Aggregate(sigs []crypto.Signature) (crypto.AggregateSignature, error)
	VerifyAggregate(vks []crypto.VerificationKey, agg crypto.AggregateSignature, msg []byte) bool
}

func verificationKeyOf(p ids.Party) crypto.VerificationKey {
	return crypto.VerificationKey(p.Bytes())
}
