package walletprobe

import (
	"context"
	"encoding/json"
	"time"

	"walletprobe/wallet"
)

// APIResponse is the observed outcome of one wallet API call. A non-2xx
// status is data to inspect, not a transport failure; only unreachable or
// misbehaving connections surface as errors.
type APIResponse struct {
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// OK reports whether the status code is in the 2xx range.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the response body into v.
func (r *APIResponse) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// JSON returns the response body as a generic map, suitable for schema
// validation.
func (r *APIResponse) JSON() (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(r.Body, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// WalletAPI is the wallet service surface the orchestrator drives.
// Implementations return an APIResponse for every completed exchange and an
// error only when no response was obtained at all.
type WalletAPI interface {
	// Wakeup pings the service to lift it out of a cold start.
	Wakeup(ctx context.Context) (*APIResponse, error)

	// Health checks service liveness.
	Health(ctx context.Context) (*APIResponse, error)

	// Login authenticates a user and returns the token response.
	Login(ctx context.Context, username, password string) (*APIResponse, error)

	// UserInfo fetches the profile of the authenticated user.
	UserInfo(ctx context.Context, token, userID string) (*APIResponse, error)

	// Wallet fetches the wallet with its currency clips.
	Wallet(ctx context.Context, token, walletID string) (*APIResponse, error)

	// CreateTransaction submits a well-formed transaction request.
	CreateTransaction(ctx context.Context, token, walletID string, spec wallet.TransactionSpec) (*APIResponse, error)

	// CreateTransactionRaw submits an arbitrary payload, allowing shapes a
	// typed spec cannot express.
	CreateTransactionRaw(ctx context.Context, token, walletID string, payload any) (*APIResponse, error)

	// Transaction fetches a single transaction by ID.
	Transaction(ctx context.Context, token, walletID, transactionID string) (*APIResponse, error)

	// Transactions fetches the transaction list, optionally filtered.
	Transactions(ctx context.Context, token, walletID string, filter wallet.TransactionFilter) (*APIResponse, error)
}
