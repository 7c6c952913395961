package head

import (
	"github.com/sevanspowell/hydra-poc/ids"
	"github.com/sevanspowell/hydra-poc/ledger"
)

// PostChainTx is a chain transaction the reducer asks the runtime to
// submit. The reducer never builds the actual on-chain transaction body
// (spec §1, §6); these types carry only the parameters the submitter
// needs.
type PostChainTx interface {
	PostChainTag() string
	postChainTx()
}

// InitTx opens a new head with the given parameters.
type InitTx struct {
	Parameters HeadParameters
}

func (InitTx) PostChainTag() string { return "InitTx" }
func (InitTx) postChainTx()         {}

// CommitTx commits self's utxo to the head being initialized.
type CommitTx struct {
	Self ids.Party
	UTxO ledger.UTxO
}

func (CommitTx) PostChainTag() string { return "CommitTx" }
func (CommitTx) postChainTx()         {}

// CollectComTx collects all parties' commits, opening the head.
type CollectComTx struct{}

func (CollectComTx) PostChainTag() string { return "CollectComTx" }
func (CollectComTx) postChainTx()         {}

// CloseTx closes the head with the given confirmed snapshot.
type CloseTx struct {
	ConfirmedSnapshot ConfirmedSnapshot
}

func (CloseTx) PostChainTag() string { return "CloseTx" }
func (CloseTx) postChainTx()         {}

// ContestTx contests a close with a newer confirmed snapshot.
type ContestTx struct {
	ConfirmedSnapshot ConfirmedSnapshot
}

func (ContestTx) PostChainTag() string { return "ContestTx" }
func (ContestTx) postChainTx()         {}

// FanoutTx distributes the final confirmed snapshot's UTxO back on-chain.
type FanoutTx struct {
	ConfirmedSnapshot ConfirmedSnapshot
}

func (FanoutTx) PostChainTag() string { return "FanoutTx" }
func (FanoutTx) postChainTx()         {}

// AbortTx aborts the head before it opens.
type AbortTx struct{}

func (AbortTx) PostChainTag() string { return "AbortTx" }
func (AbortTx) postChainTx()         {}
