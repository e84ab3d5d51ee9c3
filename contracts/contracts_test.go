package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuralEquality(t *testing.T) {
	a := StrategyConfig{TargetProfitPct: 5.0, StopLossPct: 1.5, DeadlineTimeoutSec: 45}
	b := StrategyConfig{TargetProfitPct: 5.0, StopLossPct: 1.5, DeadlineTimeoutSec: 45}
	assert.Equal(t, a, b)

	b.StopLossPct = 2.0
	assert.NotEqual(t, a, b)
}

func TestMessageTypeTags(t *testing.T) {
	clients := map[string]ClientMessage{
		TypePing:              Ping{},
		TypeConfigure:         Configure{},
		TypeUpdateStrategy:    UpdateStrategy{},
		TypeClosePosition:     ClosePosition{},
		TypeRequestExitSignal: RequestExitSignal{},
	}
	for tag, msg := range clients {
		assert.Equal(t, tag, msg.MessageType())
	}

	servers := map[string]ServerMessage{
		TypeHelloOk:          HelloOk{},
		TypePong:             Pong{},
		TypeError:            ErrorReply{},
		TypePnlUpdate:        PnlUpdate{},
		TypeBalanceUpdate:    BalanceUpdate{},
		TypePositionOpened:   PositionOpened{},
		TypePositionClosed:   PositionClosed{},
		TypeExitSignalWithTx: ExitSignalWithTx{},
	}
	for tag, msg := range servers {
		assert.Equal(t, tag, msg.MessageType())
	}
}

func TestMarketTypeValid(t *testing.T) {
	for _, m := range MarketTypes() {
		assert.True(t, m.Valid(), "market %q", m)
	}
	assert.False(t, MarketType("dark_pool").Valid())
	assert.False(t, MarketType("").Valid())
}

func TestMarketTypeUnmarshalRejectsUnknown(t *testing.T) {
	var m MarketType
	err := json.Unmarshal([]byte(`"pump_fun"`), &m)
	require.NoError(t, err)
	assert.Equal(t, MarketPumpFun, m)

	err = json.Unmarshal([]byte(`"dark_pool"`), &m)
	require.Error(t, err)
	assert.True(t, IsDecodeKind(err, TypeMismatch))
}

func TestConfigureUnmarshalWalletForms(t *testing.T) {
	t.Run("array form", func(t *testing.T) {
		var c Configure
		err := json.Unmarshal([]byte(`{"wallet_pubkeys":["a","b"],"strategy":{"target_profit_pct":1,"stop_loss_pct":2,"deadline_timeout_sec":3}}`), &c)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, c.WalletPubkeys)
	})

	t.Run("legacy single string form", func(t *testing.T) {
		var c Configure
		err := json.Unmarshal([]byte(`{"wallet_pubkey":"a","strategy":{"target_profit_pct":1,"stop_loss_pct":2,"deadline_timeout_sec":3}}`), &c)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, c.WalletPubkeys)
	})

	t.Run("canonical key wins over legacy key", func(t *testing.T) {
		var c Configure
		err := json.Unmarshal([]byte(`{"wallet_pubkeys":["a"],"wallet_pubkey":"b","strategy":{"target_profit_pct":1,"stop_loss_pct":2,"deadline_timeout_sec":3}}`), &c)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, c.WalletPubkeys)
	})

	t.Run("non-string wallet value fails", func(t *testing.T) {
		var c Configure
		err := json.Unmarshal([]byte(`{"wallet_pubkeys":7,"strategy":{"target_profit_pct":1,"stop_loss_pct":2,"deadline_timeout_sec":3}}`), &c)
		require.Error(t, err)
		assert.True(t, IsDecodeKind(err, TypeMismatch))
	})
}

func TestDecodeErrorMessages(t *testing.T) {
	cases := []struct {
		err  *DecodeError
		want string
	}{
		{&DecodeError{Kind: UnknownVariant, Tag: "warp_drive"}, `decode: unknown variant "warp_drive"`},
		{&DecodeError{Kind: MissingField, Tag: "ping", Field: "client_time_ms"}, `decode: ping: missing required field "client_time_ms"`},
		{&DecodeError{Kind: MissingField, Field: "type"}, `decode: missing required field "type"`},
		{&DecodeError{Kind: TypeMismatch, Tag: "pong", Field: "server_time_ms"}, `decode: pong: field "server_time_ms" has wrong type`},
		{&DecodeError{Kind: MalformedText}, "decode: malformed text"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.Error())
	}
}

func TestDecodeErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", &DecodeError{Kind: MalformedText, Err: cause})

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, MalformedText, de.Kind)
	assert.ErrorIs(t, err, cause)

	assert.True(t, IsDecodeKind(err, MalformedText))
	assert.False(t, IsDecodeKind(err, UnknownVariant))
	assert.False(t, IsDecodeKind(nil, MalformedText))
}

func TestDecodeErrorKindString(t *testing.T) {
	assert.Equal(t, "malformed_text", MalformedText.String())
	assert.Equal(t, "unknown_variant", UnknownVariant.String())
	assert.Equal(t, "missing_field", MissingField.String())
	assert.Equal(t, "type_mismatch", TypeMismatch.String())
}
