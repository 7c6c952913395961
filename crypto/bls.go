package crypto

import (
	"fmt"
	"sync"

	"github.com/herumi/bls-eth-go-binary/bls"
)

var blsInit sync.Once

// BLSCapability is a concrete Capability backed by BLS12-381 signatures.
// BLS signatures aggregate by point addition, which is exactly the shape
// spec §6 asks of `aggregate`/`verifyAggregate`, so this capability needs
// no bespoke aggregation scheme: it delegates straight to the library.
//
// This type is used by tests and example wiring only; the reducer package
// never imports it.
type BLSCapability struct{}

// NewBLSCapability initializes the underlying BLS library (once, process
// wide, as the library requires) and returns a ready Capability.
func NewBLSCapability() (*BLSCapability, error) {
	var initErr error
	blsInit.Do(func() {
		initErr = bls.Init(bls.BLS12_381)
		if initErr != nil {
			return
		}
		initErr = bls.SetETHmode(bls.EthModeDraft07)
	})
	if initErr != nil {
		return nil, fmt.Errorf("crypto: bls init: %w", initErr)
	}
	return &BLSCapability{}, nil
}

// GenerateKey returns a fresh random BLS keypair, for tests and example
// wiring; key generation itself is out of the core's scope (spec §1).
func GenerateKey() (SigningKey, VerificationKey, error) {
	if _, err := NewBLSCapability(); err != nil {
		return nil, nil, err
	}
	var sk bls.SecretKey
	sk.SetByCSPRNG()
	pk := sk.GetPublicKey()
	return SigningKey(sk.Serialize()), VerificationKey(pk.Serialize()), nil
}

func (*BLSCapability) Sign(sk SigningKey, msg []byte) (Signature, error) {
	var secret bls.SecretKey
	if err := secret.Deserialize(sk); err != nil {
		return nil, fmt.Errorf("crypto: invalid signing key: %w", err)
	}
	sig := secret.SignByte(msg)
	return Signature(sig.Serialize()), nil
}

func (*BLSCapability) Verify(vk VerificationKey, sig Signature, msg []byte) bool {
	var pub bls.PublicKey
	if err := pub.Deserialize(vk); err != nil {
		return false
	}
	var s bls.Sign
	if err := s.Deserialize(sig); err != nil {
		return false
	}
	return s.VerifyByte(&pub, msg)
}

func (*BLSCapability) Aggregate(sigs []Signature) (AggregateSignature, error) {
	if len(sigs) == 0 {
		return nil, ErrEmptyAggregate
	}
	agg := new(bls.Sign)
	for i, raw := range sigs {
		var s bls.Sign
		if err := s.Deserialize(raw); err != nil {
			return nil, fmt.Errorf("crypto: invalid signature at index %d: %w", i, err)
		}
		if i == 0 {
			*agg = s
			continue
		}
		agg.Add(&s)
	}
	return AggregateSignature(agg.Serialize()), nil
}

func (*BLSCapability) VerifyAggregate(vks []VerificationKey, agg AggregateSignature, msg []byte) bool {
	if len(vks) == 0 {
		return false
	}
	var s bls.Sign
	if err := s.Deserialize(agg); err != nil {
		return false
	}
	pubs := make([]bls.PublicKey, len(vks))
	for i, vk := range vks {
		if err := pubs[i].Deserialize(vk); err != nil {
			return false
		}
	}
	// All signers sign the same snapshot message, so this is a
	// same-message aggregate verification rather than a distinct-message
	// one.
	return s.FastAggregateVerify(pubs, msg)
}
