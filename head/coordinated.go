package head

import "github.com/sevanspowell/hydra-poc/ledger"

// CoordinatedHeadState is the per-Open bookkeeping: the UTxO and tx set
// seen locally but not yet confirmed, and the confirmation/in-flight
// snapshot state.
//
// Invariant (spec §3.3): seenUTxO = applyTransactions(confirmedSnapshot.utxo,
// seenTxs), and every element of seenTxs applies cleanly in order. The
// reducer maintains this invariant on every transition; it never recomputes
// it lazily on read.
type CoordinatedHeadState struct {
	SeenUTxO          ledger.UTxO
	SeenTxs           []ledger.Tx
	ConfirmedSnapshot ConfirmedSnapshot
	SeenSnapshot      SeenSnapshot
}

// WithSeen returns a copy of c with SeenUTxO and SeenTxs replaced.
func (c CoordinatedHeadState) WithSeen(utxo ledger.UTxO, txs []ledger.Tx) CoordinatedHeadState {
	return CoordinatedHeadState{
		SeenUTxO:          utxo,
		SeenTxs:           txs,
		ConfirmedSnapshot: c.ConfirmedSnapshot,
		SeenSnapshot:      c.SeenSnapshot,
	}
}

// WithSeenSnapshot returns a copy of c with SeenSnapshot replaced.
func (c CoordinatedHeadState) WithSeenSnapshot(s SeenSnapshot) CoordinatedHeadState {
	return CoordinatedHeadState{
		SeenUTxO:          c.SeenUTxO,
		SeenTxs:           c.SeenTxs,
		ConfirmedSnapshot: c.ConfirmedSnapshot,
		SeenSnapshot:      s,
	}
}

// WithConfirmed returns a CoordinatedHeadState with ConfirmedSnapshot,
// SeenSnapshot, SeenUTxO and SeenTxs all replaced, as happens when an AckSn
// completes a snapshot's signer set.
func (c CoordinatedHeadState) WithConfirmed(confirmed ConfirmedSnapshot, seenSnapshot SeenSnapshot, utxo ledger.UTxO, txs []ledger.Tx) CoordinatedHeadState {
	return CoordinatedHeadState{
		SeenUTxO:          utxo,
		SeenTxs:           txs,
		ConfirmedSnapshot: confirmed,
		SeenSnapshot:      seenSnapshot,
	}
}

// DropConfirmedTxs returns seenTxs with the leading run matching
// confirmedTxs removed, as required when a snapshot confirms: the newly
// confirmed transactions are dropped from the seen (unconfirmed) list.
func DropConfirmedTxs(seenTxs []ledger.Tx, confirmedTxs []ledger.Tx) []ledger.Tx {
	if len(confirmedTxs) > len(seenTxs) {
		return seenTxs
	}
	for i, tx := range confirmedTxs {
		if !tx.Equals(seenTxs[i]) {
			return seenTxs
		}
	}
	out := make([]ledger.Tx, len(seenTxs)-len(confirmedTxs))
	copy(out, seenTxs[len(confirmedTxs):])
	return out
}
