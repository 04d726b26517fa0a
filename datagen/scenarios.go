package datagen

import (
	"errors"
	"fmt"

	"walletprobe/wallet"
)

// ErrUnknownScenario indicates a scenario name that is not registered.
var ErrUnknownScenario = errors.New("unknown scenario")

// Named scenario sequences.
const (
	ScenarioOnboarding    = "onboarding"
	ScenarioTrading       = "trading"
	ScenarioArbitrage     = "arbitrage"
	ScenarioMicropayments = "micropayments"
	ScenarioStress        = "stress"
)

// Scenarios lists the registered scenario names in a stable order.
func Scenarios() []string {
	return []string{
		ScenarioOnboarding,
		ScenarioTrading,
		ScenarioArbitrage,
		ScenarioMicropayments,
		ScenarioStress,
	}
}

// Scenario returns the transaction sequence for a named scenario. Fixed
// scenarios always return the same literal steps; the others draw fresh
// randomized steps on every call.
func (g *Generator) Scenario(name string) ([]wallet.TransactionSpec, error) {
	switch name {
	case ScenarioOnboarding:
		return g.onboarding(), nil
	case ScenarioTrading:
		return g.trading(), nil
	case ScenarioArbitrage:
		return g.arbitrage(), nil
	case ScenarioMicropayments:
		return g.micropayments(), nil
	case ScenarioStress:
		return g.stress(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
}

// onboarding walks a new user through funding and first spends.
func (g *Generator) onboarding() []wallet.TransactionSpec {
	return []wallet.TransactionSpec{
		wallet.Credit("USD", 1000),
		wallet.Debit("USD", 50),
		wallet.Credit("EUR", 500),
		wallet.Debit("EUR", 25),
	}
}

// trading emulates an active trader moving major currencies.
func (g *Generator) trading() []wallet.TransactionSpec {
	specs := make([]wallet.TransactionSpec, 20)
	currencies := []string{"USD", "EUR", "GBP"}
	for i := range specs {
		currency := currencies[g.rng.IntN(len(currencies))]
		specs[i] = g.Spec(
			WithCurrency(currency),
			WithRange(AmountRange{Min: 100, Max: 2000}),
		)
	}
	return specs
}

// arbitrage is a fixed cross-currency round trip.
func (g *Generator) arbitrage() []wallet.TransactionSpec {
	return []wallet.TransactionSpec{
		wallet.Credit("USD", 10000),
		wallet.Debit("USD", 5000),
		wallet.Credit("EUR", 4200),
		wallet.Debit("EUR", 2100),
		wallet.Credit("GBP", 1800),
	}
}

// micropayments is a burst of tiny USD debits.
func (g *Generator) micropayments() []wallet.TransactionSpec {
	specs := make([]wallet.TransactionSpec, 50)
	for i := range specs {
		specs[i] = g.Spec(
			WithCurrency("USD"),
			WithType(wallet.TypeDebit),
			WithRange(AmountRange{Min: 0.01, Max: 5.00}),
		)
	}
	return specs
}

// stress is a large fully randomized batch.
func (g *Generator) stress() []wallet.TransactionSpec {
	return g.Batch(100)
}
