package walletprobe

import (
	"fmt"

	"walletprobe/check"
	"walletprobe/wallet"
)

// BalanceTolerance absorbs floating point drift when comparing balances.
const BalanceTolerance = 0.01

// BalanceDelta verifies that an approved transaction moved the balance of
// its currency by exactly the transaction amount, and that a denied one
// left it untouched.
func BalanceDelta(before, after *wallet.Wallet, spec wallet.TransactionSpec, approved bool) check.Result {
	const name = "balanceDelta"

	var beforeBalance, afterBalance float64
	if before != nil {
		beforeBalance = before.Balance(spec.Currency)
	}
	if after != nil {
		afterBalance = after.Balance(spec.Currency)
	}

	expected := beforeBalance
	if approved {
		expected = check.ExpectedBalance(beforeBalance, spec.Amount, spec.Type)
	}

	if !check.WithinTolerance(afterBalance, expected, BalanceTolerance) {
		return check.Fail(name, spec, fmt.Sprintf(
			"%s balance is %v, expected %v (before %v, amount %v, approved %v)",
			spec.Currency, afterBalance, expected, beforeBalance, spec.Amount, approved))
	}
	return check.Pass(name, spec)
}

// CurrencyIsolation verifies that a transaction in one currency left every
// other currency clip untouched, balance and transaction count alike.
func CurrencyIsolation(before, after *wallet.Wallet, currency string) check.Result {
	const name = "currencyIsolation"

	if before == nil || after == nil {
		return check.Pass(name, currency)
	}

	var errs []string
	for _, clip := range before.CurrencyClips {
		if clip.Currency == currency {
			continue
		}
		afterClip, ok := after.Clip(clip.Currency)
		if !ok {
			errs = append(errs, fmt.Sprintf("clip %s disappeared", clip.Currency))
			continue
		}
		if !check.WithinTolerance(afterClip.Balance, clip.Balance, BalanceTolerance) {
			errs = append(errs, fmt.Sprintf(
				"%s balance moved from %v to %v", clip.Currency, clip.Balance, afterClip.Balance))
		}
		if afterClip.TransactionCount != clip.TransactionCount {
			errs = append(errs, fmt.Sprintf(
				"%s transaction count moved from %d to %d",
				clip.Currency, clip.TransactionCount, afterClip.TransactionCount))
		}
	}
	return check.FromErrors(name, currency, errs)
}

// TransactionCount verifies that an approved or denied transaction bumped
// the currency's transaction count by exactly one, if the service counts
// denied attempts, or left it unchanged otherwise. Both behaviors are
// accepted when counted is nil.
func TransactionCount(before, after *wallet.Wallet, currency string, counted *bool) check.Result {
	const name = "transactionCount"

	if before == nil || after == nil {
		return check.Pass(name, currency)
	}

	var beforeCount, afterCount int
	if clip, ok := before.Clip(currency); ok {
		beforeCount = clip.TransactionCount
	}
	if clip, ok := after.Clip(currency); ok {
		afterCount = clip.TransactionCount
	}

	delta := afterCount - beforeCount
	switch {
	case counted == nil:
		if delta != 0 && delta != 1 {
			return check.Fail(name, currency, fmt.Sprintf(
				"%s transaction count moved by %d, expected 0 or 1", currency, delta))
		}
	case *counted:
		if delta != 1 {
			return check.Fail(name, currency, fmt.Sprintf(
				"%s transaction count moved by %d, expected 1", currency, delta))
		}
	default:
		if delta != 0 {
			return check.Fail(name, currency, fmt.Sprintf(
				"%s transaction count moved by %d, expected 0", currency, delta))
		}
	}
	return check.Pass(name, currency)
}
