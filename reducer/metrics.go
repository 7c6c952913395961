package reducer

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sevanspowell/hydra-poc/head"
)

// Metrics counts reducer outcomes, grounded on the teacher's MeterVM
// pattern: a metering decorator observes a pure component from the
// outside rather than instrumenting it internally.
type Metrics struct {
	newState,
	wait,
	error,
	snapshotsConfirmed,
	badAckDropped prometheus.Counter
}

// Initialize registers m's counters under namespace on registerer.
func (m *Metrics) Initialize(namespace string, registerer prometheus.Registerer) error {
	m.newState = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "outcomes_new_state_total",
		Help: "Number of Update calls that produced a NewStateOutcome.",
	})
	m.wait = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "outcomes_wait_total",
		Help: "Number of Update calls that produced a WaitOutcome.",
	})
	m.error = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "outcomes_error_total",
		Help: "Number of Update calls that produced an ErrorOutcome.",
	})
	m.snapshotsConfirmed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "snapshots_confirmed_total",
		Help: "Number of snapshots confirmed by a complete aggregate signature.",
	})
	m.badAckDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "acks_bad_signature_dropped_total",
		Help: "Number of AckSn messages silently dropped for failing signature verification.",
	})

	for _, c := range []prometheus.Counter{m.newState, m.wait, m.error, m.snapshotsConfirmed, m.badAckDropped} {
		if err := registerer.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// observe updates m from a single Update call's outcome, without changing
// how that outcome is reported to the caller.
func (m *Metrics) observe(outcome head.Outcome) {
	switch o := outcome.(type) {
	case head.NewStateOutcome:
		m.newState.Inc()
		for _, e := range o.Effects {
			ce, ok := e.(head.ClientEffectOf)
			if !ok {
				continue
			}
			if _, ok := ce.Output.(head.SnapshotConfirmed); ok {
				m.snapshotsConfirmed.Inc()
			}
		}
	case head.WaitOutcome:
		m.wait.Inc()
	case head.ErrorOutcome:
		m.error.Inc()
	}
}
