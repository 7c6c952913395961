// Package crypto defines the crypto capability the head-logic core treats
// as opaque (spec §6): sign, verify, aggregate and verify-aggregate over a
// canonical byte message. The reducer package uses only the key and
// signature types defined here, behind a Capability interface of its own
// with the same methods, never a concrete implementation.
package crypto

import "fmt"

// SigningKey is a party's private key material.
type SigningKey []byte

// VerificationKey is a party's public key — the party's identity.
type VerificationKey []byte

// Signature is a single party's signature over a message.
type Signature []byte

// AggregateSignature combines signatures from multiple parties into one
// value that verifies against the set of their verification keys.
type AggregateSignature []byte

// Capability is the crypto capability the reducer's surrounding runtime
// supplies. Implementations must be pure or internally thread-safe (spec
// §5): the reducer may be driven from any thread.
type Capability interface {
	// Sign produces sk's signature over msg.
	Sign(sk SigningKey, msg []byte) (Signature, error)
	// Verify reports whether sig is vk's signature over msg.
	Verify(vk VerificationKey, sig Signature, msg []byte) bool
	// Aggregate combines sigs into a single AggregateSignature.
	Aggregate(sigs []Signature) (AggregateSignature, error)
	// VerifyAggregate reports whether agg is a valid aggregate signature
	// over msg by exactly the parties identified by vks.
	VerifyAggregate(vks []VerificationKey, agg AggregateSignature, msg []byte) bool
}

// ErrEmptyAggregate is returned by Aggregate when given no signatures.
var ErrEmptyAggregate = fmt.Errorf("crypto: cannot aggregate zero signatures")
