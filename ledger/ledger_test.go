package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevanspowell/hydra-poc/ids"
)

func mkID(b byte) ids.ID {
	var id ids.ID
	id[0] = b
	return id
}

func mkParty(b byte) ids.Party { return ids.PartyFromBytes([]byte{b}) }

func TestApplyTransactionsEmpty(t *testing.T) {
	l := New()
	utxo := l.InitUTxO()
	out, err := l.ApplyTransactions(utxo, nil)
	assert.NoError(t, err)
	assert.True(t, out.Equals(utxo))
}

func TestApplyTransactionsOrderSensitive(t *testing.T) {
	l := New()
	genesisOut := OutputID{TxID: mkID(0), Index: 0}
	utxo := UTxO{genesisOut: {Owner: mkParty(1), Amount: 100}}

	spend := Tx{
		TxID:    mkID(1),
		Inputs:  []OutputID{genesisOut},
		Outputs: []Output{{Owner: mkParty(2), Amount: 100}},
	}
	spendAgain := Tx{
		TxID:    mkID(2),
		Inputs:  []OutputID{genesisOut},
		Outputs: []Output{{Owner: mkParty(3), Amount: 100}},
	}

	// Applying spend then spendAgain: the second fails, missing input.
	_, err := l.ApplyTransactions(utxo, []Tx{spend, spendAgain})
	assert.ErrorIs(t, err, ErrMissingInput)

	// Applying spend alone succeeds and produces a fresh output.
	next, err := l.ApplyTransactions(utxo, []Tx{spend})
	assert.NoError(t, err)
	assert.Len(t, next, 1)
}

func TestApplyTransactionsUnbalanced(t *testing.T) {
	l := New()
	genesisOut := OutputID{TxID: mkID(0), Index: 0}
	utxo := UTxO{genesisOut: {Owner: mkParty(1), Amount: 100}}

	bad := Tx{
		TxID:    mkID(1),
		Inputs:  []OutputID{genesisOut},
		Outputs: []Output{{Owner: mkParty(2), Amount: 99}},
	}
	_, err := l.ApplyTransactions(utxo, []Tx{bad})
	assert.ErrorIs(t, err, ErrUnbalanced)
}

func TestApplyTransactionsDuplicateInput(t *testing.T) {
	l := New()
	genesisOut := OutputID{TxID: mkID(0), Index: 0}
	utxo := UTxO{genesisOut: {Owner: mkParty(1), Amount: 100}}

	bad := Tx{
		TxID:    mkID(1),
		Inputs:  []OutputID{genesisOut, genesisOut},
		Outputs: []Output{{Owner: mkParty(2), Amount: 200}},
	}
	_, err := l.ApplyTransactions(utxo, []Tx{bad})
	assert.ErrorIs(t, err, ErrDuplicateInput)
}
