package contracts

import (
	"encoding/json"
	"fmt"
)

// MarketType identifies the venue an opened position trades on.
type MarketType string

const (
	MarketPumpFun          MarketType = "pump_fun"
	MarketPumpSwap         MarketType = "pump_swap"
	MarketMeteoraDbc       MarketType = "meteora_dbc"
	MarketMeteoraDammV2    MarketType = "meteora_damm_v2"
	MarketRaydiumLaunchpad MarketType = "raydium_launchpad"
	MarketRaydiumCpmm      MarketType = "raydium_cpmm"
)

// MarketTypes returns every supported market type.
func MarketTypes() []MarketType {
	return []MarketType{
		MarketPumpFun,
		MarketPumpSwap,
		MarketMeteoraDbc,
		MarketMeteoraDammV2,
		MarketRaydiumLaunchpad,
		MarketRaydiumCpmm,
	}
}

// Valid reports whether m is one of the supported market types.
func (m MarketType) Valid() bool {
	switch m {
	case MarketPumpFun, MarketPumpSwap, MarketMeteoraDbc,
		MarketMeteoraDammV2, MarketRaydiumLaunchpad, MarketRaydiumCpmm:
		return true
	default:
		return false
	}
}

// UnmarshalJSON rejects market types outside the closed set instead of
// carrying an unrecognized string forward.
func (m *MarketType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	mt := MarketType(s)
	if !mt.Valid() {
		return &DecodeError{Kind: TypeMismatch, Field: "market_type", Err: errUnknownMarketType(s)}
	}
	*m = mt
	return nil
}

type errUnknownMarketType string

func (e errUnknownMarketType) Error() string {
	return fmt.Sprintf("unknown market type %q", string(e))
}

// PumpFunContext is the context payload for pump.fun markets. It carries no
// fields and acts as an explicit marker.
type PumpFunContext struct{}

// PumpSwapContext is the context payload for PumpSwap markets.
type PumpSwapContext struct {
	// Pool is the PumpSwap pool account.
	Pool string `json:"pool"`
	// GlobalConfig is the optional PumpSwap global config account.
	GlobalConfig *string `json:"global_config,omitempty"`
}

// MeteoraDbcContext is the context payload for Meteora Dynamic Bonding Curve
// markets.
type MeteoraDbcContext struct {
	Pool      string `json:"pool"`
	Config    string `json:"config"`
	QuoteMint string `json:"quote_mint"`
}

// MeteoraDammV2Context is the context payload for Meteora DAMM v2 markets.
type MeteoraDammV2Context struct {
	Pool string `json:"pool"`
}

// RaydiumLaunchpadContext is the context payload for Raydium Launchpad
// markets.
type RaydiumLaunchpadContext struct {
	Pool     string `json:"pool"`
	Config   string `json:"config"`
	Platform string `json:"platform"`
	// QuoteMint is the quote mint used by the pool.
	QuoteMint string `json:"quote_mint"`
	// UserQuoteAccount is the user's quote token account associated with the
	// position.
	UserQuoteAccount string `json:"user_quote_account"`
}

// RaydiumCpmmContext is the context payload for Raydium CPMM markets.
type RaydiumCpmmContext struct {
	Pool             string `json:"pool"`
	Config           string `json:"config"`
	QuoteMint        string `json:"quote_mint"`
	UserQuoteAccount string `json:"user_quote_account"`
}

// MarketContext is the market-specific metadata carried with position events.
// Exactly one context field should be set and it should match MarketType.
type MarketContext struct {
	// MarketType discriminates which context field is active.
	MarketType MarketType `json:"market_type"`

	PumpFun          *PumpFunContext          `json:"pumpfun,omitempty"`
	PumpSwap         *PumpSwapContext         `json:"pumpswap,omitempty"`
	MeteoraDbc       *MeteoraDbcContext       `json:"meteora_dbc,omitempty"`
	MeteoraDammV2    *MeteoraDammV2Context    `json:"meteora_damm_v2,omitempty"`
	RaydiumLaunchpad *RaydiumLaunchpadContext `json:"raydium_launchpad,omitempty"`
	RaydiumCpmm      *RaydiumCpmmContext      `json:"raydium_cpmm,omitempty"`
}
