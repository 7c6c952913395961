package head

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sevanspowell/hydra-poc/ids"
	"github.com/sevanspowell/hydra-poc/ledger"
)

// envelope is the stable wire shape every tagged union in this package
// round-trips through: a discriminator plus the variant's own JSON body
// (spec §6: "Field names and tag discriminators are part of the public
// contract").
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func marshalTagged(tag string, v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: tag, Data: data})
}

func unmarshalEnvelope(b []byte) (string, json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return "", nil, err
	}
	return env.Type, env.Data, nil
}

// MarshalMessage renders m as its tagged wire form.
func MarshalMessage(m Message) ([]byte, error) { return marshalTagged(m.Tag(), m) }

// UnmarshalMessage parses a tagged wire form into a concrete Message.
func UnmarshalMessage(b []byte) (Message, error) {
	tag, data, err := unmarshalEnvelope(b)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "ReqTx":
		var m ReqTx
		return m, json.Unmarshal(data, &m)
	case "ReqSn":
		var m ReqSn
		return m, json.Unmarshal(data, &m)
	case "AckSn":
		var m AckSn
		return m, json.Unmarshal(data, &m)
	case "Connected":
		var m Connected
		return m, json.Unmarshal(data, &m)
	case "Disconnected":
		var m Disconnected
		return m, json.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("head: unknown message tag %q", tag)
	}
}

// MarshalCommand renders c as its tagged wire form.
func MarshalCommand(c Command) ([]byte, error) { return marshalTagged(c.CommandName(), c) }

// UnmarshalCommand parses a tagged wire form into a concrete Command.
func UnmarshalCommand(b []byte) (Command, error) {
	tag, data, err := unmarshalEnvelope(b)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "Init":
		var c InitCmd
		return c, json.Unmarshal(data, &c)
	case "Commit":
		var c CommitCmd
		return c, json.Unmarshal(data, &c)
	case "NewTx":
		var c NewTxCmd
		return c, json.Unmarshal(data, &c)
	case "Close":
		var c CloseCmd
		return c, json.Unmarshal(data, &c)
	case "Contest":
		var c ContestCmd
		return c, json.Unmarshal(data, &c)
	case "GetUTxO":
		var c GetUTxOCmd
		return c, json.Unmarshal(data, &c)
	case "Abort":
		var c AbortCmd
		return c, json.Unmarshal(data, &c)
	default:
		return nil, fmt.Errorf("head: unknown command tag %q", tag)
	}
}

// MarshalOnChainTx renders t as its tagged wire form.
func MarshalOnChainTx(t OnChainTx) ([]byte, error) { return marshalTagged(t.OnChainTag(), t) }

// UnmarshalOnChainTx parses a tagged wire form into a concrete OnChainTx.
func UnmarshalOnChainTx(b []byte) (OnChainTx, error) {
	tag, data, err := unmarshalEnvelope(b)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "OnInitTx":
		var t OnInitTx
		return t, json.Unmarshal(data, &t)
	case "OnCommitTx":
		var t OnCommitTx
		return t, json.Unmarshal(data, &t)
	case "OnCollectComTx":
		var t OnCollectComTx
		return t, json.Unmarshal(data, &t)
	case "OnAbortTx":
		var t OnAbortTx
		return t, json.Unmarshal(data, &t)
	case "OnCloseTx":
		var t OnCloseTx
		return t, json.Unmarshal(data, &t)
	case "OnContestTx":
		var t OnContestTx
		return t, json.Unmarshal(data, &t)
	case "OnFanoutTx":
		var t OnFanoutTx
		return t, json.Unmarshal(data, &t)
	default:
		return nil, fmt.Errorf("head: unknown on-chain tx tag %q", tag)
	}
}

// chainEventWire is the JSON shape of a ChainEvent: Observation nests a
// tagged OnChainTx; Rollback/Tick carry their own plain fields.
type chainEventWire struct {
	Depth *int            `json:"depth,omitempty"`
	Time  *string         `json:"time,omitempty"`
	Tx    json.RawMessage `json:"tx,omitempty"`
}

// MarshalChainEvent renders e as its tagged wire form.
func MarshalChainEvent(e ChainEvent) ([]byte, error) {
	switch v := e.(type) {
	case Observation:
		txBytes, err := MarshalOnChainTx(v.Tx)
		if err != nil {
			return nil, err
		}
		return marshalTagged(e.ChainEventTag(), chainEventWire{Tx: txBytes})
	case Rollback:
		depth := v.Depth
		return marshalTagged(e.ChainEventTag(), chainEventWire{Depth: &depth})
	case Tick:
		s := v.Time.Format(timeLayout)
		return marshalTagged(e.ChainEventTag(), chainEventWire{Time: &s})
	default:
		return nil, fmt.Errorf("head: unknown chain event type %T", e)
	}
}

// UnmarshalChainEvent parses a tagged wire form into a concrete ChainEvent.
func UnmarshalChainEvent(b []byte) (ChainEvent, error) {
	tag, data, err := unmarshalEnvelope(b)
	if err != nil {
		return nil, err
	}
	var w chainEventWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	switch tag {
	case "Observation":
		tx, err := UnmarshalOnChainTx(w.Tx)
		if err != nil {
			return nil, err
		}
		return Observation{Tx: tx}, nil
	case "Rollback":
		if w.Depth == nil {
			return nil, fmt.Errorf("head: rollback missing depth")
		}
		return Rollback{Depth: *w.Depth}, nil
	case "Tick":
		if w.Time == nil {
			return nil, fmt.Errorf("head: tick missing time")
		}
		t, err := parseTime(*w.Time)
		if err != nil {
			return nil, err
		}
		return Tick{Time: t}, nil
	default:
		return nil, fmt.Errorf("head: unknown chain event tag %q", tag)
	}
}

// MarshalServerOutput renders o as its tagged wire form.
func MarshalServerOutput(o ServerOutput) ([]byte, error) { return marshalTagged(o.OutputTag(), o) }

// UnmarshalServerOutput parses a tagged wire form into a concrete
// ServerOutput.
func UnmarshalServerOutput(b []byte) (ServerOutput, error) {
	tag, data, err := unmarshalEnvelope(b)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "PeerConnected":
		var o PeerConnected
		return o, json.Unmarshal(data, &o)
	case "PeerDisconnected":
		var o PeerDisconnected
		return o, json.Unmarshal(data, &o)
	case "HeadIsInitializing":
		var o HeadIsInitializing
		return o, json.Unmarshal(data, &o)
	case "HeadIsOpen":
		var o HeadIsOpen
		return o, json.Unmarshal(data, &o)
	case "SnapshotConfirmed":
		var o SnapshotConfirmed
		return o, json.Unmarshal(data, &o)
	case "RolledBack":
		var o RolledBack
		return o, json.Unmarshal(data, &o)
	case "HeadIsClosed":
		var o HeadIsClosed
		return o, json.Unmarshal(data, &o)
	case "HeadIsFinalized":
		var o HeadIsFinalized
		return o, json.Unmarshal(data, &o)
	case "HeadIsAborted":
		var o HeadIsAborted
		return o, json.Unmarshal(data, &o)
	case "UTxO":
		var o UTxOOutput
		return o, json.Unmarshal(data, &o)
	default:
		return nil, fmt.Errorf("head: unknown server output tag %q", tag)
	}
}

// eventWire is the JSON shape of a top-level Event: each variant nests at
// most one tagged sub-union.
type eventWire struct {
	Command    json.RawMessage `json:"command,omitempty"`
	Message    json.RawMessage `json:"message,omitempty"`
	ChainEvent json.RawMessage `json:"chainEvent,omitempty"`
}

// MarshalEvent renders e as its tagged wire form.
func MarshalEvent(e Event) ([]byte, error) {
	switch v := e.(type) {
	case ClientEventOf:
		cmd, err := MarshalCommand(v.Command)
		if err != nil {
			return nil, err
		}
		return marshalTagged(e.EventTag(), eventWire{Command: cmd})
	case NetworkEventOf:
		msg, err := MarshalMessage(v.Message)
		if err != nil {
			return nil, err
		}
		return marshalTagged(e.EventTag(), eventWire{Message: msg})
	case OnChainEventOf:
		ce, err := MarshalChainEvent(v.ChainEvent)
		if err != nil {
			return nil, err
		}
		return marshalTagged(e.EventTag(), eventWire{ChainEvent: ce})
	case ShouldPostFanoutEvent:
		return marshalTagged(e.EventTag(), eventWire{})
	default:
		return nil, fmt.Errorf("head: unknown event type %T", e)
	}
}

// UnmarshalEvent parses a tagged wire form into a concrete Event.
func UnmarshalEvent(b []byte) (Event, error) {
	tag, data, err := unmarshalEnvelope(b)
	if err != nil {
		return nil, err
	}
	var w eventWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	switch tag {
	case "ClientEvent":
		cmd, err := UnmarshalCommand(w.Command)
		if err != nil {
			return nil, err
		}
		return ClientEventOf{Command: cmd}, nil
	case "NetworkEvent":
		msg, err := UnmarshalMessage(w.Message)
		if err != nil {
			return nil, err
		}
		return NetworkEventOf{Message: msg}, nil
	case "OnChainEvent":
		ce, err := UnmarshalChainEvent(w.ChainEvent)
		if err != nil {
			return nil, err
		}
		return OnChainEventOf{ChainEvent: ce}, nil
	case "ShouldPostFanout":
		return ShouldPostFanoutEvent{}, nil
	default:
		return nil, fmt.Errorf("head: unknown event tag %q", tag)
	}
}

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

func parseTime(s string) (time.Time, error) { return time.Parse(timeLayout, s) }

// committedWire is Initial.Committed on the wire, keyed by each party's hex
// form. Decoding goes through Party.UnmarshalText for each key.
type committedWire map[ids.Party]ledger.UTxO

func (c committedWire) MarshalJSON() ([]byte, error) {
	out := make(map[string]ledger.UTxO, len(c))
	for p, u := range c {
		out[p.String()] = u
	}
	return json.Marshal(out)
}

// stateWire is the JSON shape of a State. Prev nests recursively as its own
// tagged envelope; fields that don't apply to a given Kind are omitted.
type stateWire struct {
	Parameters           *HeadParameters       `json:"parameters,omitempty"`
	PendingCommits       ids.PartySet          `json:"pendingCommits,omitempty"`
	Committed            committedWire         `json:"committed,omitempty"`
	CoordinatedHeadState *CoordinatedHeadState `json:"coordinatedHeadState,omitempty"`
	ConfirmedSnapshot    *ConfirmedSnapshot    `json:"confirmedSnapshot,omitempty"`
	Prev                 json.RawMessage       `json:"prev,omitempty"`
}

// MarshalState renders s as its tagged wire form.
func MarshalState(s State) ([]byte, error) {
	var prev json.RawMessage
	if p := s.Previous(); p != nil {
		b, err := MarshalState(p)
		if err != nil {
			return nil, err
		}
		prev = b
	}

	var w stateWire
	w.Prev = prev

	switch v := s.(type) {
	case Idle:
		// no extra fields
	case Initial:
		w.Parameters = &v.Parameters
		w.PendingCommits = v.PendingCommits
		w.Committed = v.Committed
	case Open:
		w.Parameters = &v.Parameters
		w.CoordinatedHeadState = &v.CoordinatedHeadState
	case Closed:
		w.Parameters = &v.Parameters
		w.ConfirmedSnapshot = &v.ConfirmedSnapshot
	case Final:
		// no extra fields
	default:
		return nil, fmt.Errorf("head: unknown state type %T", s)
	}
	return marshalTagged(s.Kind(), w)
}

// UnmarshalState parses a tagged wire form into a concrete State.
func UnmarshalState(b []byte) (State, error) {
	tag, data, err := unmarshalEnvelope(b)
	if err != nil {
		return nil, err
	}
	var w stateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}

	var prev State
	if len(w.Prev) > 0 {
		prev, err = UnmarshalState(w.Prev)
		if err != nil {
			return nil, err
		}
	}

	switch tag {
	case "Idle":
		return Idle{}, nil
	case "Initial":
		if w.Parameters == nil {
			return nil, fmt.Errorf("head: initial state missing parameters")
		}
		return Initial{
			Parameters:     *w.Parameters,
			PendingCommits: w.PendingCommits,
			Committed:      w.Committed,
			Prev:           prev,
		}, nil
	case "Open":
		if w.Parameters == nil || w.CoordinatedHeadState == nil {
			return nil, fmt.Errorf("head: open state missing parameters or coordinated state")
		}
		return Open{
			Parameters:           *w.Parameters,
			CoordinatedHeadState: *w.CoordinatedHeadState,
			Prev:                 prev,
		}, nil
	case "Closed":
		if w.Parameters == nil || w.ConfirmedSnapshot == nil {
			return nil, fmt.Errorf("head: closed state missing parameters or confirmed snapshot")
		}
		return Closed{
			Parameters:        *w.Parameters,
			ConfirmedSnapshot: *w.ConfirmedSnapshot,
			Prev:              prev,
		}, nil
	case "Final":
		return Final{Prev: prev}, nil
	default:
		return nil, fmt.Errorf("head: unknown state tag %q", tag)
	}
}
