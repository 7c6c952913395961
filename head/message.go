package head

import (
	"github.com/sevanspowell/hydra-poc/crypto"
	"github.com/sevanspowell/hydra-poc/ids"
	"github.com/sevanspowell/hydra-poc/ledger"
)

// Message is a network-delivered protocol message (spec §3, NetworkEvent
// payload; spec §6, wire contract). Tag is the stable JSON discriminator
// these messages round-trip through, per the golden-test contract.
type Message interface {
	Tag() string
	message()
}

// ReqTx broadcasts a newly seen transaction.
type ReqTx struct {
	From ids.Party  `json:"from"`
	Tx   ledger.Tx  `json:"tx"`
}

func (ReqTx) Tag() string { return "ReqTx" }
func (ReqTx) message()    {}

// ReqSn is the leader's request to confirm a snapshot at number Number
// covering Txs.
type ReqSn struct {
	From   ids.Party   `json:"from"`
	Number uint64      `json:"number"`
	Txs    []ledger.Tx `json:"txs"`
}

func (ReqSn) Tag() string { return "ReqSn" }
func (ReqSn) message()    {}

// AckSn is a single party's signature acknowledging a ReqSn.
type AckSn struct {
	From      ids.Party       `json:"from"`
	Signature crypto.Signature `json:"signature"`
	Number    uint64           `json:"number"`
}

func (AckSn) Tag() string { return "AckSn" }
func (AckSn) message()    {}

// Connected reports that a peer connection to host came up.
type Connected struct {
	Host ids.Party `json:"host"`
}

func (Connected) Tag() string { return "Connected" }
func (Connected) message()    {}

// Disconnected reports that a peer connection to host went down.
type Disconnected struct {
	Host ids.Party `json:"host"`
}

func (Disconnected) Tag() string { return "Disconnected" }
func (Disconnected) message()    {}
