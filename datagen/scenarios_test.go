package datagen

import (
	"errors"
	"testing"

	"walletprobe/wallet"
)

func TestScenario_Onboarding(t *testing.T) {
	g := New(WithSeed(1))

	specs, err := g.Scenario(ScenarioOnboarding)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []wallet.TransactionSpec{
		wallet.Credit("USD", 1000),
		wallet.Debit("USD", 50),
		wallet.Credit("EUR", 500),
		wallet.Debit("EUR", 25),
	}
	if len(specs) != len(want) {
		t.Fatalf("step count = %d, want %d", len(specs), len(want))
	}
	for i := range want {
		if specs[i] != want[i] {
			t.Errorf("step %d = %+v, want %+v", i, specs[i], want[i])
		}
	}
}

func TestScenario_Arbitrage(t *testing.T) {
	g := New(WithSeed(1))

	specs, err := g.Scenario(ScenarioArbitrage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 5 {
		t.Fatalf("step count = %d, want 5", len(specs))
	}
	if specs[0] != wallet.Credit("USD", 10000) {
		t.Errorf("first step = %+v", specs[0])
	}
	if specs[4] != wallet.Credit("GBP", 1800) {
		t.Errorf("last step = %+v", specs[4])
	}
}

func TestScenario_Trading(t *testing.T) {
	g := New(WithSeed(2))

	specs, err := g.Scenario(ScenarioTrading)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 20 {
		t.Fatalf("step count = %d, want 20", len(specs))
	}
	allowed := map[string]bool{"USD": true, "EUR": true, "GBP": true}
	for i, s := range specs {
		if !allowed[s.Currency] {
			t.Errorf("step %d currency %q not in trading pool", i, s.Currency)
		}
		multiplier := CurrencyMultipliers[s.Currency]
		if s.Amount < 100*multiplier || s.Amount > 2000*multiplier {
			t.Errorf("step %d amount %v outside scaled range for %s", i, s.Amount, s.Currency)
		}
	}
}

func TestScenario_Micropayments(t *testing.T) {
	g := New(WithSeed(3))

	specs, err := g.Scenario(ScenarioMicropayments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 50 {
		t.Fatalf("step count = %d, want 50", len(specs))
	}
	for i, s := range specs {
		if s.Currency != "USD" || s.Type != wallet.TypeDebit {
			t.Errorf("step %d = %+v, want USD debit", i, s)
		}
		if s.Amount < 0.01 || s.Amount > 5.00 {
			t.Errorf("step %d amount %v outside [0.01, 5.00]", i, s.Amount)
		}
	}
}

func TestScenario_Stress(t *testing.T) {
	g := New(WithSeed(4))

	specs, err := g.Scenario(ScenarioStress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 100 {
		t.Fatalf("step count = %d, want 100", len(specs))
	}
}

func TestScenario_Unknown(t *testing.T) {
	g := New()

	_, err := g.Scenario("liquidation")
	if !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("error = %v, want ErrUnknownScenario", err)
	}
}

func TestScenarios_CoversAllNames(t *testing.T) {
	g := New(WithSeed(5))

	for _, name := range Scenarios() {
		if _, err := g.Scenario(name); err != nil {
			t.Errorf("scenario %q: %v", name, err)
		}
	}
}
