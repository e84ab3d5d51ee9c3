package contracts

// Wire tags for server events and responses.
const (
	TypeHelloOk         = "hello_ok"
	TypePong            = "pong"
	TypeError           = "error"
	TypePnlUpdate       = "pnl_update"
	TypeBalanceUpdate   = "balance_update"
	TypePositionOpened  = "position_opened"
	TypePositionClosed  = "position_closed"
	TypeExitSignalWithTx = "exit_signal_with_tx"
)

// ServerMessage is implemented by every event or response a server may send.
// The union is closed and independent of ClientMessage: tags of one union are
// never accepted by a decoder for the other.
type ServerMessage interface {
	// MessageType returns the wire discriminator for the event.
	MessageType() string

	isServerMessage()
}

// HelloOk is the successful handshake response.
type HelloOk struct {
	// SessionID is the assigned session identifier.
	SessionID uint64 `json:"session_id"`
	// ServerTimeMs is the server timestamp in Unix milliseconds.
	ServerTimeMs uint64 `json:"server_time_ms"`
	// Limits holds the effective limits for the session and API key.
	Limits Limits `json:"limits"`
}

func (HelloOk) MessageType() string { return TypeHelloOk }
func (HelloOk) isServerMessage()    {}

// Pong is the keepalive response to a client Ping.
type Pong struct {
	ServerTimeMs uint64 `json:"server_time_ms"`
}

func (Pong) MessageType() string { return TypePong }
func (Pong) isServerMessage()    {}

// ErrorReply reports an invalid request or runtime failure to the client.
type ErrorReply struct {
	// Code is a stable machine-readable error code.
	Code string `json:"code"`
	// Message is a human-readable description.
	Message string `json:"message"`
}

func (ErrorReply) MessageType() string { return TypeError }
func (ErrorReply) isServerMessage()    {}

// PnlUpdate is an incremental profit/loss update for a position.
type PnlUpdate struct {
	PositionID uint64 `json:"position_id"`
	// ProfitUnits is the profit or loss in quote units; negative is a loss.
	ProfitUnits int64 `json:"profit_units"`
	// ProceedsUnits is the estimated proceeds in quote units.
	ProceedsUnits uint64 `json:"proceeds_units"`
	ServerTimeMs  uint64 `json:"server_time_ms"`
}

func (PnlUpdate) MessageType() string { return TypePnlUpdate }
func (PnlUpdate) isServerMessage()    {}

// BalanceUpdate reports a balance change for a tracked wallet and mint.
type BalanceUpdate struct {
	WalletPubkey string  `json:"wallet_pubkey"`
	Mint         string  `json:"mint"`
	TokenAccount *string `json:"token_account,omitempty"`
	TokenProgram *string `json:"token_program,omitempty"`
	// Tokens is the token amount in native units.
	Tokens uint64 `json:"tokens"`
	// Slot is the slot the balance snapshot came from.
	Slot uint64 `json:"slot"`
}

func (BalanceUpdate) MessageType() string { return TypeBalanceUpdate }
func (BalanceUpdate) isServerMessage()    {}

// PositionOpened announces that a new position is being tracked.
type PositionOpened struct {
	PositionID   uint64  `json:"position_id"`
	WalletPubkey string  `json:"wallet_pubkey"`
	Mint         string  `json:"mint"`
	TokenAccount string  `json:"token_account"`
	TokenProgram *string `json:"token_program,omitempty"`
	Tokens       uint64  `json:"tokens"`
	// EntryQuoteUnits is the entry cost in quote units.
	EntryQuoteUnits uint64         `json:"entry_quote_units"`
	MarketContext   *MarketContext `json:"market_context,omitempty"`
	Slot            uint64         `json:"slot"`
}

func (PositionOpened) MessageType() string { return TypePositionOpened }
func (PositionOpened) isServerMessage()    {}

// PositionClosed announces that a tracked position was closed.
type PositionClosed struct {
	PositionID   uint64  `json:"position_id"`
	WalletPubkey string  `json:"wallet_pubkey"`
	Mint         string  `json:"mint"`
	TokenAccount *string `json:"token_account,omitempty"`
	// Reason describes why the position closed.
	Reason string `json:"reason"`
	Slot   uint64 `json:"slot"`
}

func (PositionClosed) MessageType() string { return TypePositionClosed }
func (PositionClosed) isServerMessage()    {}

// ExitSignalWithTx is an exit signal carrying an unsigned transaction the
// client may sign and submit.
type ExitSignalWithTx struct {
	// SessionID correlates the signal with the session that configured the
	// wallet.
	SessionID      uint64  `json:"session_id"`
	PositionID     uint64  `json:"position_id"`
	WalletPubkey   string  `json:"wallet_pubkey"`
	Mint           string  `json:"mint"`
	TokenAccount   *string `json:"token_account,omitempty"`
	TokenProgram   *string `json:"token_program,omitempty"`
	PositionTokens uint64  `json:"position_tokens"`
	ProfitUnits    int64   `json:"profit_units"`
	// Reason names the trigger for the exit.
	Reason string `json:"reason"`
	// TriggeredAtMs is the trigger timestamp in Unix milliseconds.
	TriggeredAtMs uint64         `json:"triggered_at_ms"`
	MarketContext *MarketContext `json:"market_context,omitempty"`
	// UnsignedTxB64 is the base64-encoded unsigned transaction payload.
	UnsignedTxB64 string `json:"unsigned_tx_b64"`
}

func (ExitSignalWithTx) MessageType() string { return TypeExitSignalWithTx }
func (ExitSignalWithTx) isServerMessage()    {}
