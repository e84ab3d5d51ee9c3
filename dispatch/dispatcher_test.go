package dispatch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/lasersell/streamproto/contracts"
	"github.com/lasersell/streamproto/serialization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchRoutesByTag(t *testing.T) {
	d := NewDispatcher[contracts.ClientMessage]()

	var gotPing, gotConfigure int
	require.NoError(t, d.RegisterFunc(contracts.TypePing, func(ctx context.Context, msg contracts.ClientMessage) error {
		gotPing++
		_, ok := msg.(contracts.Ping)
		assert.True(t, ok)
		return nil
	}))
	require.NoError(t, d.RegisterFunc(contracts.TypeConfigure, func(ctx context.Context, msg contracts.ClientMessage) error {
		gotConfigure++
		return nil
	}))

	require.NoError(t, d.Dispatch(context.Background(), contracts.Ping{ClientTimeMs: 1}))
	require.NoError(t, d.Dispatch(context.Background(), contracts.Ping{ClientTimeMs: 2}))
	assert.Equal(t, 2, gotPing)
	assert.Equal(t, 0, gotConfigure)
}

func TestDispatchUnhandledTag(t *testing.T) {
	d := NewDispatcher[contracts.ServerMessage]()
	err := d.Dispatch(context.Background(), contracts.Pong{ServerTimeMs: 1})
	assert.Error(t, err)
}

func TestDispatchHandlerError(t *testing.T) {
	d := NewDispatcher[contracts.ClientMessage]()
	boom := errors.New("boom")
	require.NoError(t, d.RegisterFunc(contracts.TypePing, func(ctx context.Context, msg contracts.ClientMessage) error {
		return boom
	}))

	err := d.Dispatch(context.Background(), contracts.Ping{})
	assert.ErrorIs(t, err, boom)
}

func TestRegisterValidation(t *testing.T) {
	d := NewDispatcher[contracts.ClientMessage]()
	assert.Error(t, d.Register("", HandlerFunc[contracts.ClientMessage](nil)))
	assert.Error(t, d.Register(contracts.TypePing, nil))
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	outer := func(ctx context.Context, msg contracts.ClientMessage, next Handler[contracts.ClientMessage]) error {
		order = append(order, "outer")
		return next.Handle(ctx, msg)
	}
	inner := func(ctx context.Context, msg contracts.ClientMessage, next Handler[contracts.ClientMessage]) error {
		order = append(order, "inner")
		return next.Handle(ctx, msg)
	}

	d := NewDispatcher(WithMiddleware(outer, inner))
	require.NoError(t, d.RegisterFunc(contracts.TypePing, func(ctx context.Context, msg contracts.ClientMessage) error {
		order = append(order, "handler")
		return nil
	}))

	require.NoError(t, d.Dispatch(context.Background(), contracts.Ping{}))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestMiddlewareCanShortCircuit(t *testing.T) {
	rejected := errors.New("rejected")
	d := NewDispatcher(WithMiddleware(func(ctx context.Context, msg contracts.ClientMessage, next Handler[contracts.ClientMessage]) error {
		return rejected
	}))

	var called bool
	require.NoError(t, d.RegisterFunc(contracts.TypePing, func(ctx context.Context, msg contracts.ClientMessage) error {
		called = true
		return nil
	}))

	err := d.Dispatch(context.Background(), contracts.Ping{})
	assert.ErrorIs(t, err, rejected)
	assert.False(t, called)
}

// Decode-then-dispatch is the intended consumption pattern for a server
// reading wire text off its transport.
func TestDispatchDecodedWireText(t *testing.T) {
	d := NewDispatcher[contracts.ClientMessage]()

	var wallets atomic.Int32
	require.NoError(t, d.RegisterFunc(contracts.TypeConfigure, func(ctx context.Context, msg contracts.ClientMessage) error {
		cfg := msg.(contracts.Configure)
		wallets.Add(int32(len(cfg.WalletPubkeys)))
		return nil
	}))

	raw := `{
		"type": "configure",
		"wallet_pubkeys": ["Wallet1", "Wallet2"],
		"strategy": {"target_profit_pct": 5.0, "stop_loss_pct": 1.5, "deadline_timeout_sec": 45}
	}`
	msg, err := serialization.DecodeClientMessage(raw)
	require.NoError(t, err)

	require.NoError(t, d.Dispatch(context.Background(), msg))
	assert.Equal(t, int32(2), wallets.Load())
}
