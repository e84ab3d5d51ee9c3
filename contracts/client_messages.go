package contracts

import "encoding/json"

// Wire tags for client commands. Tags are part of the protocol surface and
// are never renamed or reused.
const (
	TypePing              = "ping"
	TypeConfigure         = "configure"
	TypeUpdateStrategy    = "update_strategy"
	TypeClosePosition     = "close_position"
	TypeRequestExitSignal = "request_exit_signal"

	// TypeSellNow is the legacy alias for TypeRequestExitSignal. It is
	// accepted on decode only; encoding always uses the canonical tag.
	TypeSellNow = "sell_now"
)

// ClientMessage is implemented by every command a client may send. The union
// is closed: only types in this package can implement it.
type ClientMessage interface {
	// MessageType returns the wire discriminator for the command.
	MessageType() string

	isClientMessage()
}

// Ping is a keepalive from the client.
type Ping struct {
	// ClientTimeMs is the client timestamp in Unix milliseconds.
	ClientTimeMs uint64 `json:"client_time_ms"`
}

func (Ping) MessageType() string { return TypePing }
func (Ping) isClientMessage()    {}

// Configure is the initial session configuration for wallets and strategy.
type Configure struct {
	// WalletPubkeys lists the wallet pubkeys to monitor, in client order.
	WalletPubkeys []string `json:"wallet_pubkeys"`
	// Strategy holds the strategy thresholds for the session.
	Strategy StrategyConfig `json:"strategy"`
}

func (Configure) MessageType() string { return TypeConfigure }
func (Configure) isClientMessage()    {}

// UnmarshalJSON also accepts the legacy wallet_pubkey key, carrying either a
// single pubkey string or an array.
func (c *Configure) UnmarshalJSON(data []byte) error {
	var raw struct {
		WalletPubkeys json.RawMessage `json:"wallet_pubkeys"`
		WalletPubkey  json.RawMessage `json:"wallet_pubkey"`
		Strategy      StrategyConfig  `json:"strategy"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Strategy = raw.Strategy

	keys, field := raw.WalletPubkeys, "wallet_pubkeys"
	if keys == nil {
		keys, field = raw.WalletPubkey, "wallet_pubkey"
	}
	if keys == nil {
		c.WalletPubkeys = nil
		return nil
	}

	var many []string
	if err := json.Unmarshal(keys, &many); err == nil {
		c.WalletPubkeys = many
		return nil
	}
	var one string
	if err := json.Unmarshal(keys, &one); err != nil {
		return &DecodeError{Kind: TypeMismatch, Field: field, Err: err}
	}
	c.WalletPubkeys = []string{one}
	return nil
}

// UpdateStrategy replaces the strategy thresholds of an active session.
type UpdateStrategy struct {
	Strategy StrategyConfig `json:"strategy"`
}

func (UpdateStrategy) MessageType() string { return TypeUpdateStrategy }
func (UpdateStrategy) isClientMessage()    {}

// ClosePosition requests that a tracked position be closed. Either the
// internal position ID or the token account may identify the position.
type ClosePosition struct {
	PositionID *uint64 `json:"position_id,omitempty"`
	// TokenAccount is used for lookup when the position ID is unknown.
	TokenAccount *string `json:"token_account,omitempty"`
}

func (ClosePosition) MessageType() string { return TypeClosePosition }
func (ClosePosition) isClientMessage()    {}

// RequestExitSignal requests an immediate exit signal and unsigned
// transaction for a position.
type RequestExitSignal struct {
	PositionID   *uint64 `json:"position_id,omitempty"`
	TokenAccount *string `json:"token_account,omitempty"`
	// SlippageBps is the optional slippage tolerance in basis points.
	SlippageBps *uint16 `json:"slippage_bps,omitempty"`
}

func (RequestExitSignal) MessageType() string { return TypeRequestExitSignal }
func (RequestExitSignal) isClientMessage()    {}
