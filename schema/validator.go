// Package schema provides business-constraint validation for protocol
// payloads.
//
// The protocol itself never validates: construction, encoding, and decoding
// accept any structurally well-formed value. Applications that want the
// conventional constraints (finite non-negative percentages, non-empty wallet
// lists, positive limits) call these helpers explicitly, typically right
// after decoding a message or right before encoding one.
package schema

import (
	"fmt"
	"math"

	"github.com/lasersell/streamproto/contracts"
)

// ValidationResult reports the outcome of validating one payload.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError describes a single constraint violation.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface for ValidationError.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", ve.Field, ve.Message)
}

// Violation codes reported by the validators.
const (
	CodeNotFinite   = "not_finite"
	CodeNegative    = "negative"
	CodeZero        = "zero"
	CodeEmptyList   = "empty_list"
	CodeEmptyString = "empty_string"
)

func (r *ValidationResult) add(field, code, message string, value interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Message: message,
		Code:    code,
		Value:   value,
	})
}

func validResult() ValidationResult {
	return ValidationResult{Valid: true}
}

// ValidateStrategyConfig checks that both percentages are finite,
// non-negative numbers and that the deadline is positive. The protocol
// enforces no upper bound on percentages.
func ValidateStrategyConfig(cfg contracts.StrategyConfig) ValidationResult {
	result := validResult()
	checkPercentage(&result, "target_profit_pct", cfg.TargetProfitPct)
	checkPercentage(&result, "stop_loss_pct", cfg.StopLossPct)
	if cfg.DeadlineTimeoutSec == 0 {
		result.add("deadline_timeout_sec", CodeZero, "deadline must be positive", cfg.DeadlineTimeoutSec)
	}
	return result
}

// ValidateConfigure checks the wallet list and the embedded strategy of a
// configure command.
func ValidateConfigure(msg contracts.Configure) ValidationResult {
	result := validResult()
	if len(msg.WalletPubkeys) == 0 {
		result.add("wallet_pubkeys", CodeEmptyList, "at least one wallet pubkey is required", nil)
	}
	for i, pubkey := range msg.WalletPubkeys {
		if pubkey == "" {
			result.add(fmt.Sprintf("wallet_pubkeys[%d]", i), CodeEmptyString, "wallet pubkey cannot be empty", nil)
		}
	}

	strategy := ValidateStrategyConfig(msg.Strategy)
	for _, ve := range strategy.Errors {
		result.add("strategy."+ve.Field, ve.Code, ve.Message, ve.Value)
	}
	return result
}

// ValidateLimits checks that capacities and the flush cadence are positive.
// The per-wallet and per-key fields may be zero, meaning unset.
func ValidateLimits(limits contracts.Limits) ValidationResult {
	result := validResult()
	if limits.HiCapacity == 0 {
		result.add("hi_capacity", CodeZero, "high-priority capacity must be positive", limits.HiCapacity)
	}
	if limits.PnlFlushMs == 0 {
		result.add("pnl_flush_ms", CodeZero, "PnL flush cadence must be positive", limits.PnlFlushMs)
	}
	if limits.MaxPositionsPerSession == 0 {
		result.add("max_positions_per_session", CodeZero, "session position limit must be positive", limits.MaxPositionsPerSession)
	}
	return result
}

func checkPercentage(result *ValidationResult, field string, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		result.add(field, CodeNotFinite, "percentage must be a finite number", value)
		return
	}
	if value < 0 {
		result.add(field, CodeNegative, "percentage cannot be negative", value)
	}
}
