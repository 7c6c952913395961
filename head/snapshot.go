package head

import (
	"encoding/binary"
	"sort"

	"github.com/sevanspowell/hydra-poc/crypto"
	"github.com/sevanspowell/hydra-poc/ids"
	"github.com/sevanspowell/hydra-poc/ledger"
)

// Snapshot is a numbered, signed summary of the head's UTxO and confirmed
// transactions. Number 0 is the initial snapshot, built from the chain's
// committed UTxO, with no confirmed transactions.
type Snapshot struct {
	Number       uint64
	UTxO         ledger.UTxO
	ConfirmedTxs []ledger.Tx
}

// CanonicalBytes returns the canonical byte serialization of the snapshot
// that both signers and verifiers must agree on bit-exactly (spec §6).
// Output ids are sorted so the encoding does not depend on map iteration
// order.
func (s Snapshot) CanonicalBytes() []byte {
	outputIDs := make([]ledger.OutputID, 0, len(s.UTxO))
	for id := range s.UTxO {
		outputIDs = append(outputIDs, id)
	}
	sort.Slice(outputIDs, func(i, j int) bool {
		a, b := outputIDs[i], outputIDs[j]
		if a.TxID != b.TxID {
			return string(a.TxID[:]) < string(b.TxID[:])
		}
		return a.Index < b.Index
	})

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, s.Number)
	out := append([]byte(nil), buf...)

	for _, id := range outputIDs {
		o := s.UTxO[id]
		out = append(out, id.TxID[:]...)
		binary.BigEndian.PutUint32(buf[:4], id.Index)
		out = append(out, buf[:4]...)
		owner := o.Owner.Bytes()
		binary.BigEndian.PutUint32(buf[:4], uint32(len(owner)))
		out = append(out, buf[:4]...)
		out = append(out, owner...)
		binary.BigEndian.PutUint64(buf, o.Amount)
		out = append(out, buf...)
	}

	for _, tx := range s.ConfirmedTxs {
		txID := tx.ID()
		out = append(out, txID[:]...)
	}
	return out
}

// ConfirmedSnapshot is either Initial(Snapshot) — before any snapshot has
// been confirmed off-chain — or Confirmed(Snapshot, AggregateSignature).
type ConfirmedSnapshot struct {
	Snapshot  Snapshot
	Signature crypto.AggregateSignature // nil iff this is the Initial variant
}

// IsInitial reports whether this ConfirmedSnapshot is the pre-confirmation
// Initial variant.
func (c ConfirmedSnapshot) IsInitial() bool { return c.Signature == nil }

// Number returns the wrapped snapshot's number.
func (c ConfirmedSnapshot) Number() uint64 { return c.Snapshot.Number }

// UTxO returns the wrapped snapshot's UTxO.
func (c ConfirmedSnapshot) UTxO() ledger.UTxO { return c.Snapshot.UTxO }

// InitialSnapshot constructs the Initial(Snapshot) variant of
// ConfirmedSnapshot. Named to avoid colliding with the Initial head state.
func InitialSnapshot(s Snapshot) ConfirmedSnapshot { return ConfirmedSnapshot{Snapshot: s} }

// Confirmed constructs the Confirmed(Snapshot, AggregateSignature) variant.
func Confirmed(s Snapshot, sig crypto.AggregateSignature) ConfirmedSnapshot {
	return ConfirmedSnapshot{Snapshot: s, Signature: sig}
}

// SeenSnapshot tracks an in-flight snapshot awaiting signatures. The zero
// value is the None variant.
type SeenSnapshot struct {
	Snapshot Snapshot
	Sigs     map[ids.Party]crypto.Signature // nil iff this is the None variant
}

// IsNone reports whether this is the None variant (no in-flight snapshot).
func (s SeenSnapshot) IsNone() bool { return s.Sigs == nil }

// Seen constructs a SeenSnapshot with the given initial signer set.
func Seen(s Snapshot, sigs map[ids.Party]crypto.Signature) SeenSnapshot {
	return SeenSnapshot{Snapshot: s, Sigs: sigs}
}

// WithSig returns a copy of s with from -> sig inserted into the signer
// map, leaving s untouched (the reducer never mutates its inputs).
func (s SeenSnapshot) WithSig(from ids.Party, sig crypto.Signature) SeenSnapshot {
	next := make(map[ids.Party]crypto.Signature, len(s.Sigs)+1)
	for p, sg := range s.Sigs {
		next[p] = sg
	}
	next[from] = sig
	return SeenSnapshot{Snapshot: s.Snapshot, Sigs: next}
}

// CoversAll reports whether every party in parties has signed.
func (s SeenSnapshot) CoversAll(parties []ids.Party) bool {
	for _, p := range parties {
		if _, ok := s.Sigs[p]; !ok {
			return false
		}
	}
	return true
}
