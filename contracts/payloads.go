package contracts

// StrategyConfig carries the client-side strategy thresholds used for
// automated exits. Percentages are plain percent values (5.0 means 5%); the
// protocol places no bounds on them, range checks belong to the application.
type StrategyConfig struct {
	// TargetProfitPct is the take-profit threshold in percent.
	TargetProfitPct float64 `json:"target_profit_pct"`
	// StopLossPct is the stop-loss threshold in percent.
	StopLossPct float64 `json:"stop_loss_pct"`
	// DeadlineTimeoutSec is the max seconds to wait for an outbound
	// transaction deadline.
	DeadlineTimeoutSec uint64 `json:"deadline_timeout_sec"`
}

// Limits describes the server-enforced per-session and per-key limits.
// The per-wallet and per-key fields were added after the initial protocol
// version and default to zero when absent from the wire.
type Limits struct {
	// HiCapacity is the max concurrent positions tracked at high priority.
	HiCapacity uint32 `json:"hi_capacity"`
	// PnlFlushMs is the PnL push cadence in milliseconds.
	PnlFlushMs uint64 `json:"pnl_flush_ms"`
	// MaxPositionsPerSession is the max positions allowed in one session.
	MaxPositionsPerSession uint32 `json:"max_positions_per_session"`
	// MaxWalletsPerSession is the max wallets accepted in one session.
	MaxWalletsPerSession uint32 `json:"max_wallets_per_session,omitempty"`
	// MaxPositionsPerWallet is the max tracked positions per wallet.
	MaxPositionsPerWallet uint32 `json:"max_positions_per_wallet,omitempty"`
	// MaxSessionsPerAPIKey is the max simultaneous sessions per API key.
	MaxSessionsPerAPIKey uint32 `json:"max_sessions_per_api_key,omitempty"`
}
