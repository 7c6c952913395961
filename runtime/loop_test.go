package runtime

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/sevanspowell/hydra-poc/crypto"
	"github.com/sevanspowell/hydra-poc/head"
	"github.com/sevanspowell/hydra-poc/ids"
	"github.com/sevanspowell/hydra-poc/ledger"
	"github.com/sevanspowell/hydra-poc/log"
	"github.com/sevanspowell/hydra-poc/reducer"
)

type fakeNetwork struct{ sent []head.Message }

func (n *fakeNetwork) Send(m head.Message) error { n.sent = append(n.sent, m); return nil }

type fakeChain struct{ posted []head.PostChainTx }

func (c *fakeChain) Post(tx head.PostChainTx) error { c.posted = append(c.posted, tx); return nil }

type fakeClient struct{ pushed []head.ServerOutput }

func (c *fakeClient) Push(o head.ServerOutput) { c.pushed = append(c.pushed, o) }

// fakeScheduler runs the redelivery synchronously instead of after a real
// delay, so tests don't need to sleep.
type fakeScheduler struct{ scheduled []head.Event }

func (s *fakeScheduler) Schedule(_ time.Duration, event head.Event, redeliver func(head.Event)) {
	s.scheduled = append(s.scheduled, event)
	redeliver(event)
}

func newTestLoop(t *testing.T) (*Loop, *fakeNetwork, *fakeChain, *fakeClient, *fakeScheduler) {
	t.Helper()
	capability, err := crypto.NewBLSCapability()
	require.NoError(t, err)
	sk, vk, err := crypto.GenerateKey()
	require.NoError(t, err)
	self := ids.PartyFromBytes(vk)

	m := &reducer.Metrics{}
	require.NoError(t, m.Initialize("hydra_poc_loop_test", prometheus.NewRegistry()))
	instrumented := &reducer.Instrumented{Ledger: ledger.New(), Capability: capability, Metrics: m}

	network, chain, client, scheduler := &fakeNetwork{}, &fakeChain{}, &fakeClient{}, &fakeScheduler{}
	env := head.Environment{Self: self, SigningKey: sk, Others: ids.NewPartySet()}
	l := New(env, log.New("loop-test", false), network, chain, client, scheduler, instrumented)
	return l, network, chain, client, scheduler
}

func TestLoopDispatchesOnChainEffect(t *testing.T) {
	l, _, chain, client, _ := newTestLoop(t)

	params := head.HeadParameters{ContestationPeriod: time.Second, Parties: []ids.Party{l.env.Self}}
	go l.Run(head.Idle{})
	defer l.Stop()

	l.Submit(head.ClientEventOf{Command: head.InitCmd{Parameters: params}})

	require.Eventually(t, func() bool { return len(chain.posted) == 1 }, time.Second, time.Millisecond)
	_, ok := chain.posted[0].(head.InitTx)
	require.True(t, ok)
	require.Empty(t, client.pushed)
}

func TestLoopDispatchesClientEffectAndAdvancesState(t *testing.T) {
	l, _, _, client, _ := newTestLoop(t)
	params := head.HeadParameters{ContestationPeriod: time.Second, Parties: []ids.Party{l.env.Self}}

	final := make(chan head.State, 1)
	go func() { final <- l.Run(head.Idle{}) }()

	l.Submit(head.OnChainEventOf{ChainEvent: head.Observation{Tx: head.OnInitTx{Parameters: params}}})

	require.Eventually(t, func() bool { return len(client.pushed) == 1 }, time.Second, time.Millisecond)
	_, ok := client.pushed[0].(head.HeadIsInitializing)
	require.True(t, ok)

	l.Stop()
	state := <-final
	_, ok = state.(head.Initial)
	require.True(t, ok)
}
