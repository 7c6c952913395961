// Package ids defines the small, comparable identifier types shared across
// the head-logic core: party identities, transaction ids and output ids.
package ids

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Party is the public identity of a head participant. A party's identifier
// *is* its verification key bytes, so Party is variable-length rather than
// a fixed-size array: real signature schemes (BLS12-381 public keys are 48
// bytes compressed) don't fit a single convenient fixed width, and the
// core never needs to know the width. Party is still a plain comparable
// Go string under the hood, so it remains usable as a map key exactly like
// the teacher's fixed-size ids.ShortID.
type Party string

// Empty is the zero Party, never a valid participant.
const Empty Party = ""

// String returns a hex representation of the party's identity bytes.
func (p Party) String() string {
	return hex.EncodeToString([]byte(p))
}

// Less orders two parties lexicographically over their bytes. HeadParameters
// freezes an explicit ordered list, but Less gives a canonical tie-break for
// any code that needs one (e.g. deterministic test fixtures).
func (p Party) Less(other Party) bool {
	return p < other
}

// MarshalJSON renders a Party as a hex string, matching String().
func (p Party) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON parses a Party from a hex string.
func (p *Party) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("ids: party: %w", err)
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("ids: party: %w", err)
	}
	*p = Party(decoded)
	return nil
}

// MarshalText implements encoding.TextMarshaler. Classic encoding/json writes
// string-kinded map keys verbatim without calling it, so PartySet and the
// head package's state encoding convert Party keys to hex themselves.
func (p Party) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler; encoding/json calls it
// to decode each JSON object key of a map keyed by Party.
func (p *Party) UnmarshalText(b []byte) error {
	decoded, err := hex.DecodeString(string(b))
	if err != nil {
		return fmt.Errorf("ids: party: %w", err)
	}
	*p = Party(decoded)
	return nil
}

// PartyFromBytes constructs a Party from raw identity bytes, e.g. a
// verification key's serialized form.
func PartyFromBytes(b []byte) Party { return Party(b) }

// Bytes returns the party's identity bytes.
func (p Party) Bytes() []byte { return []byte(p) }

// ID is a 32-byte content identifier, used for transaction and output ids.
type ID [32]byte

// String returns the hex representation of all 32 bytes.
func (id ID) String() string { return hex.EncodeToString(id[:]) }

// IDFromBytes copies b into a new ID. b must be exactly 32 bytes.
func IDFromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != len(id) {
		return id, fmt.Errorf("ids: expected %d bytes for an id, got %d", len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}

// MarshalJSON renders an ID as a hex string, matching String().
func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

// UnmarshalJSON parses an ID from a hex string.
func (id *ID) UnmarshalJSON(b []byte) error {
	decoded, err := unmarshalHexFixed(b, len(*id))
	if err != nil {
		return fmt.Errorf("ids: id: %w", err)
	}
	copy(id[:], decoded)
	return nil
}

func unmarshalHexFixed(b []byte, length int) ([]byte, error) {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(decoded) != length {
		return nil, fmt.Errorf("expected %d bytes, got %d", length, len(decoded))
	}
	return decoded, nil
}
