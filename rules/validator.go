// Package rules enforces the wallet domain invariants that are independent
// of transport shape: currency-code format, amount positivity, bounds and
// precision, and balance sufficiency for debits. The validator is pure and
// evaluates every rule, so one result can carry several violations.
package rules

import (
	"fmt"

	"walletprobe/check"
	"walletprobe/wallet"
)

// RuleSet is the name attached to results produced by this package.
const RuleSet = "businessRules"

// Default limits of the reference deployment.
const (
	DefaultMaxAmount        = 1_000_000
	DefaultMaxDecimalPlaces = 4
)

// Validator checks transaction specs against the configured limits.
type Validator struct {
	maxAmount        float64
	maxDecimalPlaces int
}

// Option configures a Validator.
type Option func(*Validator)

// WithMaxAmount overrides the amount ceiling.
func WithMaxAmount(max float64) Option {
	return func(v *Validator) {
		v.maxAmount = max
	}
}

// WithMaxDecimalPlaces overrides the precision limit.
func WithMaxDecimalPlaces(max int) Option {
	return func(v *Validator) {
		v.maxDecimalPlaces = max
	}
}

// New creates a Validator with the reference limits, adjusted by options.
func New(opts ...Option) *Validator {
	v := &Validator{
		maxAmount:        DefaultMaxAmount,
		maxDecimalPlaces: DefaultMaxDecimalPlaces,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Check evaluates every business rule against the spec. The wallet snapshot
// may be nil, in which case the balance-sufficiency rule is skipped. Rules do
// not short-circuit; each violation contributes its own error.
func (v *Validator) Check(spec wallet.TransactionSpec, snapshot *wallet.Wallet) check.Result {
	var errs []string

	if !check.IsCurrencyCode(spec.Currency) {
		errs = append(errs, "currency must be 3 uppercase letters")
	}

	if !check.IsPositiveAmount(spec.Amount) {
		errs = append(errs, "amount must be positive")
	}

	if spec.Amount > v.maxAmount {
		errs = append(errs, "amount exceeds maximum limit")
	}

	if !check.HasDecimalPrecision(spec.Amount, v.maxDecimalPlaces) {
		errs = append(errs, fmt.Sprintf("amount can have maximum %d decimal places", v.maxDecimalPlaces))
	}

	if spec.Type == wallet.TypeDebit && snapshot != nil {
		clip, ok := snapshot.Clip(spec.Currency)
		if !ok || clip.Balance < spec.Amount {
			available := 0.0
			if ok {
				available = clip.Balance
			}
			errs = append(errs, fmt.Sprintf(
				"insufficient balance for %s: required %v, available %v",
				spec.Currency, spec.Amount, available))
		}
	}

	return check.FromErrors(RuleSet, spec, errs)
}

// InsufficientBalanceOnly reports whether the result's only violation is the
// balance-sufficiency rule. Scenarios use this to deliberately let an
// underfunded debit through to the remote service.
func InsufficientBalanceOnly(result check.Result) bool {
	if result.Valid || len(result.Errors) != 1 {
		return false
	}
	return isInsufficientBalance(result.Errors[0])
}

// HasInsufficientBalance reports whether any violation in the result is the
// balance-sufficiency rule.
func HasInsufficientBalance(result check.Result) bool {
	for _, e := range result.Errors {
		if isInsufficientBalance(e) {
			return true
		}
	}
	return false
}

func isInsufficientBalance(msg string) bool {
	return len(msg) >= len("insufficient balance") && msg[:len("insufficient balance")] == "insufficient balance"
}
