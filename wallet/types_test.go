package wallet

import (
	"testing"
	"time"
)

func TestWallet_Clip(t *testing.T) {
	w := &Wallet{
		WalletID: "6d2f1a0e-8b1b-4b8e-9f1a-2d3c4b5a6978",
		CurrencyClips: []CurrencyClip{
			{Currency: "USD", Balance: 150.25, TransactionCount: 3},
			{Currency: "EUR", Balance: 80.00, TransactionCount: 1},
		},
	}

	clip, ok := w.Clip("EUR")
	if !ok {
		t.Fatal("expected EUR clip to exist")
	}
	if clip.Balance != 80.00 {
		t.Errorf("expected EUR balance 80.00, got %v", clip.Balance)
	}

	if _, ok := w.Clip("JPY"); ok {
		t.Error("expected no JPY clip")
	}
}

func TestWallet_Balance_MissingCurrency(t *testing.T) {
	w := &Wallet{CurrencyClips: []CurrencyClip{{Currency: "USD", Balance: 10}}}

	if got := w.Balance("USD"); got != 10 {
		t.Errorf("expected balance 10, got %v", got)
	}
	if got := w.Balance("GBP"); got != 0 {
		t.Errorf("expected balance 0 for absent clip, got %v", got)
	}
}

func TestTransaction_Terminal(t *testing.T) {
	tx := &Transaction{Status: StatusPending}
	if tx.Terminal() {
		t.Error("pending transaction should not be terminal")
	}

	tx.Status = StatusFinished
	if !tx.Terminal() {
		t.Error("finished transaction should be terminal")
	}
}

func TestTransaction_Approved(t *testing.T) {
	denied := OutcomeDenied
	approved := OutcomeApproved

	tests := []struct {
		name    string
		status  Status
		outcome *Outcome
		want    bool
	}{
		{"pending", StatusPending, nil, false},
		{"finished no outcome", StatusFinished, nil, false},
		{"finished denied", StatusFinished, &denied, false},
		{"finished approved", StatusFinished, &approved, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &Transaction{Status: tt.status, Outcome: tt.outcome}
			if got := tx.Approved(); got != tt.want {
				t.Errorf("Approved() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuthSession_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := &AuthSession{Expiry: now.Add(time.Hour)}
	if s.Expired(now) {
		t.Error("session should not be expired before expiry")
	}

	s.Expiry = now.Add(-time.Minute)
	if !s.Expired(now) {
		t.Error("session should be expired after expiry")
	}

	s.Expiry = time.Time{}
	if s.Expired(now) {
		t.Error("zero expiry should never report expired")
	}
}

func TestTransactionFilter_Query(t *testing.T) {
	f := TransactionFilter{Page: 2, StartDate: "2026-01-01"}
	q := f.Query()

	if q.Get("page") != "2" {
		t.Errorf("expected page=2, got %q", q.Get("page"))
	}
	if q.Get("startDate") != "2026-01-01" {
		t.Errorf("expected startDate=2026-01-01, got %q", q.Get("startDate"))
	}
	if _, ok := q["endDate"]; ok {
		t.Error("empty endDate should be omitted")
	}

	if got := (TransactionFilter{}).Query().Encode(); got != "" {
		t.Errorf("zero filter should encode empty, got %q", got)
	}
}

func TestSpecConstructors(t *testing.T) {
	c := Credit("USD", 100.50)
	if c.Type != TypeCredit || c.Currency != "USD" || c.Amount != 100.50 {
		t.Errorf("unexpected credit spec: %+v", c)
	}

	d := Debit("EUR", 25)
	if d.Type != TypeDebit || d.Currency != "EUR" || d.Amount != 25 {
		t.Errorf("unexpected debit spec: %+v", d)
	}
}
