// Package wallet defines the domain model for the remote wallet service:
// transactions, wallets, currency clips, auth sessions, and the wire shapes
// the service exchanges over HTTP. All values are read-only snapshots; only
// the remote service mutates them.
package wallet

import (
	"net/url"
	"strconv"
	"time"
)

// TxType is the direction of a transaction.
type TxType string

const (
	// TypeCredit adds funds to a currency clip
	TypeCredit TxType = "credit"
	// TypeDebit removes funds from a currency clip
	TypeDebit TxType = "debit"
)

// IsValid returns true if the type is one of the known transaction types.
func (t TxType) IsValid() bool {
	return t == TypeCredit || t == TypeDebit
}

// Status is the remote lifecycle status of a transaction.
type Status string

const (
	// StatusPending indicates the transaction has been accepted but not settled
	StatusPending Status = "pending"
	// StatusFinished indicates the transaction reached a terminal state
	StatusFinished Status = "finished"
)

// IsValid returns true if the status is one of the known statuses.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusFinished
}

// Outcome is the settlement result of a finished transaction.
type Outcome string

const (
	// OutcomeApproved indicates the transaction was settled
	OutcomeApproved Outcome = "approved"
	// OutcomeDenied indicates the transaction was rejected at settlement
	OutcomeDenied Outcome = "denied"
)

// IsValid returns true if the outcome is one of the known outcomes.
func (o Outcome) IsValid() bool {
	return o == OutcomeApproved || o == OutcomeDenied
}

// TransactionSpec is the request body for creating a transaction.
type TransactionSpec struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
	Type     TxType  `json:"type"`
}

// Credit builds a credit spec for the given currency and amount.
func Credit(currency string, amount float64) TransactionSpec {
	return TransactionSpec{Currency: currency, Amount: amount, Type: TypeCredit}
}

// Debit builds a debit spec for the given currency and amount.
func Debit(currency string, amount float64) TransactionSpec {
	return TransactionSpec{Currency: currency, Amount: amount, Type: TypeDebit}
}

// Transaction is the full transaction object as returned by the service.
// Outcome is nil unless Status is finished.
type Transaction struct {
	TransactionID string    `json:"transactionId"`
	Currency      string    `json:"currency"`
	Amount        float64   `json:"amount"`
	Type          TxType    `json:"type"`
	Status        Status    `json:"status"`
	Outcome       *Outcome  `json:"outcome,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Terminal returns true if the transaction reached its terminal status.
func (t *Transaction) Terminal() bool {
	return t.Status == StatusFinished
}

// Approved returns true if the transaction finished with an approved outcome.
func (t *Transaction) Approved() bool {
	return t.Terminal() && t.Outcome != nil && *t.Outcome == OutcomeApproved
}

// CreateResponse is the reduced transaction shape returned by the create
// endpoint. The full object must be fetched separately.
type CreateResponse struct {
	TransactionID string    `json:"transactionId"`
	Status        Status    `json:"status"`
	Outcome       *Outcome  `json:"outcome,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Terminal returns true if the created transaction is already terminal.
func (r *CreateResponse) Terminal() bool {
	return r.Status == StatusFinished
}

// CurrencyClip is a wallet's per-currency sub-balance record.
type CurrencyClip struct {
	Currency         string    `json:"currency"`
	Balance          float64   `json:"balance"`
	LastTransaction  time.Time `json:"lastTransaction"`
	TransactionCount int       `json:"transactionCount"`
}

// Wallet is a snapshot of a remote wallet. Clips are ordered by insertion
// and unique per currency.
type Wallet struct {
	WalletID      string         `json:"walletId"`
	CurrencyClips []CurrencyClip `json:"currencyClips"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Clip returns the clip for the given currency, if present.
func (w *Wallet) Clip(currency string) (*CurrencyClip, bool) {
	for i := range w.CurrencyClips {
		if w.CurrencyClips[i].Currency == currency {
			return &w.CurrencyClips[i], true
		}
	}
	return nil, false
}

// Balance returns the balance for the given currency, or 0 if the wallet
// holds no clip for it.
func (w *Wallet) Balance(currency string) float64 {
	if clip, ok := w.Clip(currency); ok {
		return clip.Balance
	}
	return 0
}

// AuthSession holds the credentials returned by login. It is cached for the
// duration of a scenario and never refreshed.
type AuthSession struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	Expiry       time.Time `json:"expiry"`
	UserID       string    `json:"userId"`
	Username     string    `json:"-"`
}

// Expired reports whether the session expiry has passed at the given time.
func (s *AuthSession) Expired(now time.Time) bool {
	return !s.Expiry.IsZero() && now.After(s.Expiry)
}

// UserInfo is the profile record linking a user to a wallet.
type UserInfo struct {
	WalletID string  `json:"walletId"`
	Email    string  `json:"email"`
	Name     *string `json:"name,omitempty"`
	Locale   *string `json:"locale,omitempty"`
	Region   *string `json:"region,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

// TransactionList is a page of transactions for a wallet.
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	TotalCount   int           `json:"totalCount"`
	CurrentPage  int           `json:"currentPage"`
	TotalPages   int           `json:"totalPages"`
}

// TransactionFilter holds the query filters accepted by the transaction
// list endpoint. Zero values are omitted from the query.
type TransactionFilter struct {
	Page      int
	StartDate string
	EndDate   string
}

// Query encodes the filter as URL query parameters.
func (f TransactionFilter) Query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	return q
}

// Health is the service health report.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

// WakeupInfo is the response of the warm-up endpoint.
type WakeupInfo struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// User is a test account known to the harness.
type User struct {
	Username string
	Password string
	Name     string
}
