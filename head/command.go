package head

import "github.com/sevanspowell/hydra-poc/ledger"

// Command is a client-issued instruction (spec §3, ClientEvent payload).
type Command interface {
	CommandName() string
	command()
}

// InitCmd asks the node to post an InitTx, starting a new head with the
// given parameters.
type InitCmd struct {
	Parameters HeadParameters
}

func (InitCmd) CommandName() string { return "Init" }
func (InitCmd) command()            {}

// CommitCmd asks the node to commit utxo to the head being initialized.
type CommitCmd struct {
	UTxO ledger.UTxO
}

func (CommitCmd) CommandName() string { return "Commit" }
func (CommitCmd) command()            {}

// NewTxCmd submits a new local transaction for inclusion in the head.
type NewTxCmd struct {
	Tx ledger.Tx
}

func (NewTxCmd) CommandName() string { return "NewTx" }
func (NewTxCmd) command()            {}

// CloseCmd asks the node to close the head with its latest confirmed
// snapshot.
type CloseCmd struct{}

func (CloseCmd) CommandName() string { return "Close" }
func (CloseCmd) command()            {}

// ContestCmd asks the node to contest a close with its latest confirmed
// snapshot.
type ContestCmd struct{}

func (ContestCmd) CommandName() string { return "Contest" }
func (ContestCmd) command()            {}

// GetUTxOCmd asks for the current seen UTxO.
type GetUTxOCmd struct{}

func (GetUTxOCmd) CommandName() string { return "GetUTxO" }
func (GetUTxOCmd) command()            {}

// AbortCmd asks the node to abort the head before it opens.
type AbortCmd struct{}

func (AbortCmd) CommandName() string { return "Abort" }
func (AbortCmd) command()            {}
