package ledger

import (
	"errors"
	"fmt"

	"github.com/sevanspowell/hydra-poc/ids"
)

var (
	// ErrMissingInput is returned when a transaction spends an output that
	// does not exist in the UTxO it is applied against.
	ErrMissingInput = errors.New("ledger: missing input utxo")
	// ErrUnbalanced is returned when a transaction's inputs and outputs do
	// not carry equal total value.
	ErrUnbalanced = errors.New("ledger: inputs and outputs are not balanced")
	// ErrDuplicateInput is returned when a transaction spends the same
	// output more than once.
	ErrDuplicateInput = errors.New("ledger: duplicate input in transaction")
)

// Tx is the concrete, opaque-to-the-core transaction type: an identity, an
// input set and an output set, matching the teacher's UTXO tx model where
// inputs consume prior outputs and outputs are newly created.
type Tx struct {
	TxID    ids.ID
	Inputs  []OutputID
	Outputs []Output
}

// ID returns this transaction's identity.
func (t Tx) ID() ids.ID { return t.TxID }

// Equals reports whether t and other are the same transaction, by identity
// as the spec requires ("Equality decidable").
func (t Tx) Equals(other Tx) bool { return t.TxID == other.TxID }

// ValidationError reports why a transaction failed to apply against a
// UTxO, embedding the tx identity for diagnostics.
type ValidationError struct {
	TxID ids.ID
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ledger: tx %s invalid: %s", e.TxID, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// applyOne applies a single transaction against utxo, returning the
// resulting utxo or a *ValidationError.
func applyOne(utxo UTxO, tx Tx) (UTxO, error) {
	seen := make(map[OutputID]struct{}, len(tx.Inputs))
	var spentValue uint64
	for _, in := range tx.Inputs {
		if _, dup := seen[in]; dup {
			return nil, &ValidationError{TxID: tx.TxID, Err: ErrDuplicateInput}
		}
		seen[in] = struct{}{}

		out, ok := utxo[in]
		if !ok {
			return nil, &ValidationError{TxID: tx.TxID, Err: ErrMissingInput}
		}
		spentValue += out.Amount
	}

	var newValue uint64
	for _, out := range tx.Outputs {
		newValue += out.Amount
	}
	if spentValue != newValue {
		return nil, &ValidationError{TxID: tx.TxID, Err: ErrUnbalanced}
	}

	next := utxo.Remove(tx.Inputs...)
	for i, out := range tx.Outputs {
		next[OutputID{TxID: tx.TxID, Index: uint32(i)}] = out
	}
	return next, nil
}
