package ids

import "encoding/json"

// PartySet is a set of Party, implemented as a map the way the teacher's
// ids.Set wraps map[[32]byte]struct{}.
type PartySet map[Party]struct{}

// NewPartySet returns a set containing the given parties.
func NewPartySet(parties ...Party) PartySet {
	s := make(PartySet, len(parties))
	for _, p := range parties {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts p into the set.
func (s PartySet) Add(p Party) { s[p] = struct{}{} }

// Remove deletes p from the set, if present.
func (s PartySet) Remove(p Party) { delete(s, p) }

// Contains reports whether p is a member of the set.
func (s PartySet) Contains(p Party) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of parties in the set.
func (s PartySet) Len() int { return len(s) }

// List returns the set's members in no particular order.
func (s PartySet) List() []Party {
	out := make([]Party, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	return out
}

// Clone returns a shallow copy of the set.
func (s PartySet) Clone() PartySet {
	out := make(PartySet, len(s))
	for p := range s {
		out[p] = struct{}{}
	}
	return out
}

// MarshalJSON renders the set as a JSON object keyed by each party's hex
// form. Decoding needs no counterpart: it calls Party.UnmarshalText per key.
func (s PartySet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	keys := make(map[string]struct{}, len(s))
	for p := range s {
		keys[p.String()] = struct{}{}
	}
	return json.Marshal(keys)
}

// Equals reports whether s and other contain exactly the same parties.
func (s PartySet) Equals(other PartySet) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if !other.Contains(p) {
			return false
		}
	}
	return true
}
