// Package check provides pure predicates and structured results for the
// validation layers. Predicates return plain booleans so any assertion style
// can consume them; none of them perform I/O.
package check

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"walletprobe/wallet"
)

var (
	currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	emailPattern        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// IsUUID reports whether the value is a canonical hyphenated UUID string.
func IsUUID(value string) bool {
	if len(value) != 36 {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

// IsCurrencyCode reports whether the value is a 3-uppercase-letter code.
func IsCurrencyCode(value string) bool {
	return currencyCodePattern.MatchString(value)
}

// IsEmail reports whether the value looks like an email address.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsPositiveAmount reports whether the amount is strictly positive.
func IsPositiveAmount(amount float64) bool {
	return amount > 0
}

// HasDecimalPrecision reports whether the amount has at most maxDecimals
// fractional digits.
func HasDecimalPrecision(amount float64, maxDecimals int) bool {
	return FractionalDigits(amount) <= maxDecimals
}

// FractionalDigits returns the number of fractional digits in the shortest
// decimal representation of the amount.
func FractionalDigits(amount float64) int {
	d := decimal.NewFromFloat(amount)
	if exp := d.Exponent(); exp < 0 {
		return int(-exp)
	}
	return 0
}

// IsTransactionType reports whether the value is a known transaction type.
func IsTransactionType(value string) bool {
	return wallet.TxType(value).IsValid()
}

// IsTransactionStatus reports whether the value is a known transaction status.
func IsTransactionStatus(value string) bool {
	return wallet.Status(value).IsValid()
}

// IsTransactionOutcome reports whether the value is a known outcome.
func IsTransactionOutcome(value string) bool {
	return wallet.Outcome(value).IsValid()
}

// IsISO8601 reports whether the value parses as an RFC 3339 timestamp.
func IsISO8601(value string) bool {
	_, err := time.Parse(time.RFC3339, value)
	return err == nil
}

// IsOrderedTimestamps reports whether updated is not before created.
func IsOrderedTimestamps(created, updated time.Time) bool {
	return !updated.Before(created)
}

// WithinRange reports whether the value lies in [min, max].
func WithinRange(value, min, max float64) bool {
	return value >= min && value <= max
}

// UniqueIDs reports whether all identifiers in the slice are pairwise
// distinct.
func UniqueIDs(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

// ExpectedBalance computes the balance expected after applying a transaction
// of the given type to the current balance. Decimal arithmetic avoids float
// drift on repeated application.
func ExpectedBalance(current, amount float64, txType wallet.TxType) float64 {
	cur := decimal.NewFromFloat(current)
	amt := decimal.NewFromFloat(amount)
	if txType == wallet.TypeCredit {
		f, _ := cur.Add(amt).Float64()
		return f
	}
	f, _ := cur.Sub(amt).Float64()
	return f
}

// WithinTolerance reports whether two amounts differ by at most tolerance.
func WithinTolerance(a, b, tolerance float64) bool {
	diff := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
	return diff.LessThanOrEqual(decimal.NewFromFloat(tolerance))
}
