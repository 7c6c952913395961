package ledger

// Ledger is the concrete, order-sensitive UTxO ledger capability. It
// structurally satisfies the Ledger capability interface the reducer
// package defines for itself (spec §6); no import cycle is introduced
// because this package never imports the reducer.
type Ledger struct{}

// New returns a fresh Ledger capability.
func New() *Ledger { return &Ledger{} }

// InitUTxO returns the identity element of the UTxO monoid.
func (*Ledger) InitUTxO() UTxO { return Empty() }

// ApplyTransactions applies txs, in order, against utxo. Applying an empty
// slice returns utxo unchanged. The first transaction that fails to apply
// aborts the whole batch; the returned error is always a *ValidationError.
func (*Ledger) ApplyTransactions(utxo UTxO, txs []Tx) (UTxO, error) {
	current := utxo
	for _, tx := range txs {
		next, err := applyOne(current, tx)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}
