package head

import (
	"time"

	"github.com/sevanspowell/hydra-poc/ids"
	"github.com/sevanspowell/hydra-poc/ledger"
)

// OnChainTx is an on-chain transaction the reducer has observed, i.e. a
// ChainEvent's Observation payload.
type OnChainTx interface {
	OnChainTag() string
	onChainTx()
}

// OnInitTx observes the head's InitTx, freezing its parameters.
type OnInitTx struct {
	Parameters HeadParameters
}

func (OnInitTx) OnChainTag() string { return "OnInitTx" }
func (OnInitTx) onChainTx()         {}

// OnCommitTx observes a single party's commit.
type OnCommitTx struct {
	Party ids.Party
	UTxO  ledger.UTxO
}

func (OnCommitTx) OnChainTag() string { return "OnCommitTx" }
func (OnCommitTx) onChainTx()         {}

// OnCollectComTx observes the collect-commits transaction that opens the
// head.
type OnCollectComTx struct{}

func (OnCollectComTx) OnChainTag() string { return "OnCollectComTx" }
func (OnCollectComTx) onChainTx()         {}

// OnAbortTx observes the head's abort.
type OnAbortTx struct{}

func (OnAbortTx) OnChainTag() string { return "OnAbortTx" }
func (OnAbortTx) onChainTx()         {}

// OnCloseTx observes the head's close, at the given snapshot number, with
// the contestation deadline the chain recorded.
type OnCloseTx struct {
	SnapshotNumber uint64
	Deadline       time.Time
}

func (OnCloseTx) OnChainTag() string { return "OnCloseTx" }
func (OnCloseTx) onChainTx()         {}

// OnContestTx observes a contest at the given snapshot number.
type OnContestTx struct {
	SnapshotNumber uint64
}

func (OnContestTx) OnChainTag() string { return "OnContestTx" }
func (OnContestTx) onChainTx()         {}

// OnFanoutTx observes the head's fanout, finalizing it.
type OnFanoutTx struct{}

func (OnFanoutTx) OnChainTag() string { return "OnFanoutTx" }
func (OnFanoutTx) onChainTx()         {}

// ChainEvent is an on-chain occurrence delivered to the reducer (spec §3,
// OnChainEvent payload).
type ChainEvent interface {
	ChainEventTag() string
	chainEvent()
}

// Observation wraps a single observed on-chain transaction.
type Observation struct {
	Tx OnChainTx
}

func (Observation) ChainEventTag() string { return "Observation" }
func (Observation) chainEvent()           {}

// Rollback asks the reducer to rewind the head by depth confirmations
// (spec §4.4).
type Rollback struct {
	Depth int
}

func (Rollback) ChainEventTag() string { return "Rollback" }
func (Rollback) chainEvent()           {}

// Tick delivers the chain's current wall-clock time. The reducer never
// consults wall clock on its own (spec §9) and handles Tick in no state:
// Update rejects it with InvalidEvent. Delay effects are re-delivered by
// the runtime's Scheduler, not through Tick.
type Tick struct {
	Time time.Time
}

func (Tick) ChainEventTag() string { return "Tick" }
func (Tick) chainEvent()           {}
