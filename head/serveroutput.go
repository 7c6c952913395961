package head

import (
	"github.com/sevanspowell/hydra-poc/crypto"
	"github.com/sevanspowell/hydra-poc/ids"
	"github.com/sevanspowell/hydra-poc/ledger"
)

// ServerOutput is a message pushed to local clients (spec §6).
type ServerOutput interface {
	OutputTag() string
	serverOutput()
}

// PeerConnected reports that host came up.
type PeerConnected struct{ Host ids.Party }

func (PeerConnected) OutputTag() string { return "PeerConnected" }
func (PeerConnected) serverOutput()     {}

// PeerDisconnected reports that host went down.
type PeerDisconnected struct{ Host ids.Party }

func (PeerDisconnected) OutputTag() string { return "PeerDisconnected" }
func (PeerDisconnected) serverOutput()     {}

// HeadIsInitializing reports that the head has begun initializing.
type HeadIsInitializing struct{}

func (HeadIsInitializing) OutputTag() string { return "HeadIsInitializing" }
func (HeadIsInitializing) serverOutput()     {}

// HeadIsOpen reports that the head has opened.
type HeadIsOpen struct{}

func (HeadIsOpen) OutputTag() string { return "HeadIsOpen" }
func (HeadIsOpen) serverOutput()     {}

// SnapshotConfirmed reports that a snapshot was newly confirmed.
type SnapshotConfirmed struct {
	Snapshot  Snapshot
	Signature crypto.AggregateSignature
}

func (SnapshotConfirmed) OutputTag() string { return "SnapshotConfirmed" }
func (SnapshotConfirmed) serverOutput()     {}

// RolledBack reports that the head rewound to a previous state.
type RolledBack struct{}

func (RolledBack) OutputTag() string { return "RolledBack" }
func (RolledBack) serverOutput()     {}

// HeadIsClosed reports that the head has closed.
type HeadIsClosed struct{}

func (HeadIsClosed) OutputTag() string { return "HeadIsClosed" }
func (HeadIsClosed) serverOutput()     {}

// HeadIsFinalized reports that the head has fanned out.
type HeadIsFinalized struct{}

func (HeadIsFinalized) OutputTag() string { return "HeadIsFinalized" }
func (HeadIsFinalized) serverOutput()     {}

// HeadIsAborted reports that the head was aborted before opening.
type HeadIsAborted struct{}

func (HeadIsAborted) OutputTag() string { return "HeadIsAborted" }
func (HeadIsAborted) serverOutput()     {}

// UTxOOutput reports the current seen UTxO, in answer to GetUTxOCmd.
type UTxOOutput struct {
	UTxO ledger.UTxO
}

func (UTxOOutput) OutputTag() string { return "UTxO" }
func (UTxOOutput) serverOutput()     {}
