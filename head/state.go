package head

import (
	"github.com/sevanspowell/hydra-poc/ids"
	"github.com/sevanspowell/hydra-poc/ledger"
)

// State is the top-level tagged union of head lifecycle states. Each
// non-Idle variant is its own struct carrying Parameters explicitly
// (spec §9: avoid sharing fields structurally across variants) plus Prev,
// the previous State, forming the linked history consumed only by
// Rollback (spec §4.4).
//
// The set of implementations is closed: Idle, Initial, Open, Closed and
// Final. A private marker method seals the interface the way the
// teacher's choices.Decidable-style interfaces are implemented only by
// package-internal types.
type State interface {
	// Kind names this variant, for logging and error messages.
	Kind() string
	// Previous returns the prior State this variant rolled forward from,
	// or nil for Idle (which has no predecessor) and for a fresh Idle
	// produced only at head creation.
	Previous() State

	headState()
}

// Idle is the state before anything has been observed on-chain.
type Idle struct{}

func (Idle) Kind() string     { return "Idle" }
func (Idle) Previous() State  { return nil }
func (Idle) headState()       {}

// Initial is entered once an InitTx has been observed: parties are
// expected to commit their UTxO before the head opens.
type Initial struct {
	Parameters     HeadParameters
	PendingCommits ids.PartySet
	Committed      map[ids.Party]ledger.UTxO
	Prev           State
}

func (s Initial) Kind() string    { return "Initial" }
func (s Initial) Previous() State { return s.Prev }
func (Initial) headState()        {}

// Open is the state in which the coordinated snapshot/tx protocol runs.
type Open struct {
	Parameters           HeadParameters
	CoordinatedHeadState CoordinatedHeadState
	Prev                 State
}

func (s Open) Kind() string    { return "Open" }
func (s Open) Previous() State { return s.Prev }
func (Open) headState()        {}

// Closed is entered once a CloseTx has been observed on-chain; the head
// waits out the contestation period before it can fan out.
type Closed struct {
	Parameters        HeadParameters
	ConfirmedSnapshot ConfirmedSnapshot
	Prev              State
}

func (s Closed) Kind() string    { return "Closed" }
func (s Closed) Previous() State { return s.Prev }
func (Closed) headState()        {}

// Final is the terminal state: the head has fanned out or aborted.
type Final struct {
	Prev State
}

func (s Final) Kind() string    { return "Final" }
func (s Final) Previous() State { return s.Prev }
func (Final) headState()        {}
