// Package ledger implements the Ledger capability described by the
// head-logic core: a deterministic, order-sensitive UTxO model that the
// reducer treats as an opaque value with an identity (∅) and a union (∪).
//
// The reducer package uses this package's UTxO and Tx types but never the
// concrete Ledger: it depends only on the Ledger interface it defines for
// itself. This package is a concrete,
// swappable implementation used by tests and example wiring, grounded on
// the teacher's vms/avm/vms/components/avax UTXO tx model.
package ledger

import (
	"encoding/json"

	"github.com/sevanspowell/hydra-poc/ids"
)

// OutputID identifies a single unspent output, analogous to avax.UTXOID.
type OutputID struct {
	TxID  ids.ID
	Index uint32
}

// Output is a single unspent output. The value is opaque beyond its owner
// and amount; the head-logic core never inspects these fields.
type Output struct {
	Owner  ids.Party
	Amount uint64
}

// UTxO is a monoidal set of unspent outputs, keyed by OutputID.
type UTxO map[OutputID]Output

// Empty is the identity element (∅) of the UTxO monoid.
func Empty() UTxO { return UTxO{} }

// Union returns a new UTxO containing the entries of both u and other.
// Overlapping keys take other's value, matching the teacher's avax.UTXO
// convention of later entries winning when reconciling sets.
func (u UTxO) Union(other UTxO) UTxO {
	out := make(UTxO, len(u)+len(other))
	for id, o := range u {
		out[id] = o
	}
	for id, o := range other {
		out[id] = o
	}
	return out
}

// Clone returns a shallow copy of u.
func (u UTxO) Clone() UTxO {
	out := make(UTxO, len(u))
	for id, o := range u {
		out[id] = o
	}
	return out
}

// Equals reports whether u and other contain exactly the same entries.
func (u UTxO) Equals(other UTxO) bool {
	if len(u) != len(other) {
		return false
	}
	for id, o := range u {
		oo, ok := other[id]
		if !ok || oo != o {
			return false
		}
	}
	return true
}

// Remove returns a copy of u with the given output ids removed.
func (u UTxO) Remove(outputIDs ...OutputID) UTxO {
	out := u.Clone()
	for _, id := range outputIDs {
		delete(out, id)
	}
	return out
}

// utxoEntry is the wire shape of a single UTxO entry. OutputID is a struct,
// not a string or integer, so it cannot be a JSON object key directly; UTxO
// marshals as a list of entries instead.
type utxoEntry struct {
	ID     OutputID `json:"id"`
	Output Output   `json:"output"`
}

// MarshalJSON renders u as a list of (id, output) entries sorted by id, so
// that two UTxO values with the same contents always produce the same
// bytes regardless of map iteration order.
func (u UTxO) MarshalJSON() ([]byte, error) {
	if u == nil {
		return []byte("null"), nil
	}
	entries := make([]utxoEntry, 0, len(u))
	for id, o := range u {
		entries = append(entries, utxoEntry{ID: id, Output: o})
	}
	sortEntries(entries)
	return json.Marshal(entries)
}

// UnmarshalJSON parses a list of (id, output) entries into u. A JSON null
// unmarshals to a nil UTxO, mirroring the map's own nil-vs-empty semantics.
func (u *UTxO) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*u = nil
		return nil
	}
	var entries []utxoEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return err
	}
	out := make(UTxO, len(entries))
	for _, e := range entries {
		out[e.ID] = e.Output
	}
	*u = out
	return nil
}

func sortEntries(entries []utxoEntry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entryLess(entries[j], entries[j-1]); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

func entryLess(a, b utxoEntry) bool {
	if a.ID.TxID != b.ID.TxID {
		return a.ID.TxID.String() < b.ID.TxID.String()
	}
	return a.ID.Index < b.ID.Index
}
