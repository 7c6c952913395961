// Package runtime demonstrates the serialization discipline the reducer
// requires: one goroutine per head, reading events off a channel and
// calling reducer.Update, dispatching the returned effects to small
// sinks the caller supplies. It is illustrative wiring, grounded on the
// single-goroutine-per-chain idiom the teacher's engines use, not itself
// part of the head-logic core.
package runtime

import (
	"time"

	"github.com/sevanspowell/hydra-poc/head"
	"github.com/sevanspowell/hydra-poc/log"
	"github.com/sevanspowell/hydra-poc/reducer"
)

// NetworkSender broadcasts a Message to the head's peers.
type NetworkSender interface {
	Send(head.Message) error
}

// ChainPoster submits a transaction to the underlying chain.
type ChainPoster interface {
	Post(head.PostChainTx) error
}

// ClientPusher delivers output to whatever is consuming this head's
// client-facing events (a CLI, an RPC server, a test channel).
type ClientPusher interface {
	Push(head.ServerOutput)
}

// Scheduler re-delivers an Event to the loop after a delay.
type Scheduler interface {
	Schedule(after time.Duration, event head.Event, redeliver func(head.Event))
}

// RealScheduler schedules redelivery with a real timer, the way a
// production head would.
type RealScheduler struct{}

// Schedule starts a timer that calls redeliver(event) after.
func (RealScheduler) Schedule(after time.Duration, event head.Event, redeliver func(head.Event)) {
	time.AfterFunc(after, func() { redeliver(event) })
}

// Loop owns a single head's state and serializes every Update call
// through a single goroutine (spec §5: the core is single-threaded and
// synchronous; this is where that discipline is actually enforced).
type Loop struct {
	env    head.Environment
	log    *log.Logger
	events chan head.Event

	network  NetworkSender
	chain    ChainPoster
	client   ClientPusher
	schedule Scheduler

	reducer *reducer.Instrumented

	done chan struct{}
}

// New returns a Loop ready to Run; Run takes the starting state.
func New(
	env head.Environment,
	logger *log.Logger,
	network NetworkSender,
	chain ChainPoster,
	client ClientPusher,
	schedule Scheduler,
	r *reducer.Instrumented,
) *Loop {
	return &Loop{
		env:      env,
		log:      logger,
		events:   make(chan head.Event, 64),
		network:  network,
		chain:    chain,
		client:   client,
		schedule: schedule,
		reducer:  r,
		done:     make(chan struct{}),
	}
}

// Submit enqueues event for processing. Safe to call from any goroutine.
func (l *Loop) Submit(event head.Event) {
	select {
	case l.events <- event:
	case <-l.done:
	}
}

// Run processes events from state until ctx-like shutdown via Stop,
// returning the final state. Every call to Update happens on this single
// goroutine, satisfying the reducer's serialization requirement.
func (l *Loop) Run(state head.State) head.State {
	for {
		select {
		case event := <-l.events:
			state = l.step(state, event)
		case <-l.done:
			return state
		}
	}
}

// Stop causes a running Run to return after its current event finishes.
func (l *Loop) Stop() { close(l.done) }

func (l *Loop) step(state head.State, event head.Event) head.State {
	outcome := l.reducer.Update(l.env, state, event)

	switch o := outcome.(type) {
	case head.NewStateOutcome:
		l.log.Debug("%s -> %s on %s", state.Kind(), o.State.Kind(), event.EventTag())
		for _, effect := range o.Effects {
			l.dispatch(effect)
		}
		return o.State
	case head.WaitOutcome:
		l.log.Trace("waiting on %s: %+v", event.EventTag(), o.Reason)
		return state
	case head.ErrorOutcome:
		l.log.Warn("rejected %s in %s: %v", event.EventTag(), state.Kind(), o.Err)
		return state
	default:
		l.log.Error("unknown outcome type %T for %s", outcome, event.EventTag())
		return state
	}
}

func (l *Loop) dispatch(effect head.Effect) {
	switch e := effect.(type) {
	case head.ClientEffectOf:
		l.client.Push(e.Output)
	case head.NetworkEffectOf:
		if err := l.network.Send(e.Message); err != nil {
			l.log.Warn("send %s: %v", e.Message, err)
		}
	case head.OnChainEffectOf:
		if err := l.chain.Post(e.Tx); err != nil {
			l.log.Warn("post %T: %v", e.Tx, err)
		}
	case head.Delay:
		l.schedule.Schedule(e.DelayFor, e.Event, l.Submit)
	default:
		l.log.Error("unknown effect type %T", effect)
	}
}
