// Package httpapi provides an HTTP implementation of the walletprobe
// WalletAPI interface.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"walletprobe"
	"walletprobe/wallet"
)

// Client talks to a wallet service deployment over HTTP. Every completed
// exchange is returned as an APIResponse regardless of status code; errors
// mean the exchange itself failed.
type Client struct {
	baseURL    string
	serviceID  string
	httpClient *http.Client
	logger     walletprobe.Logger
}

var _ walletprobe.WalletAPI = (*Client)(nil)

// Option is a functional option for configuring Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithServiceID sets the X-Service-Id header value sent on login.
func WithServiceID(id string) Option {
	return func(cl *Client) {
		cl.serviceID = id
	}
}

// WithLogger sets the logger.
func WithLogger(l walletprobe.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one exchange and captures its duration. A non-2xx response is
// returned as data; only a failed exchange is an error.
func (c *Client) do(ctx context.Context, method, path, token string, body any, headers map[string]string) (*walletprobe.APIResponse, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	duration := time.Since(start)
	if c.logger != nil {
		c.logger.Printf("[httpapi] %s %s -> %d in %v", method, path, resp.StatusCode, duration)
	}

	return &walletprobe.APIResponse{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Duration:   duration,
	}, nil
}

// Wakeup pings the service. Cold starts can take minutes, so the caller is
// expected to pass a context with a generous deadline.
func (c *Client) Wakeup(ctx context.Context) (*walletprobe.APIResponse, error) {
	return c.do(ctx, http.MethodGet, "/wakeup", "", nil, nil)
}

// Health checks service liveness.
func (c *Client) Health(ctx context.Context) (*walletprobe.APIResponse, error) {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

// Login authenticates a user. The service identifies callers through the
// X-Service-Id header on this endpoint only.
func (c *Client) Login(ctx context.Context, username, password string) (*walletprobe.APIResponse, error) {
	var headers map[string]string
	if c.serviceID != "" {
		headers = map[string]string{"X-Service-Id": c.serviceID}
	}
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/user/login", "", body, headers)
}

// UserInfo fetches the profile of the authenticated user.
func (c *Client) UserInfo(ctx context.Context, token, userID string) (*walletprobe.APIResponse, error) {
	return c.do(ctx, http.MethodGet, "/user/info/"+url.PathEscape(userID), token, nil, nil)
}

// Wallet fetches the wallet with its currency clips.
func (c *Client) Wallet(ctx context.Context, token, walletID string) (*walletprobe.APIResponse, error) {
	return c.do(ctx, http.MethodGet, "/wallet/"+url.PathEscape(walletID), token, nil, nil)
}

// CreateTransaction submits a well-formed transaction request.
func (c *Client) CreateTransaction(ctx context.Context, token, walletID string, spec wallet.TransactionSpec) (*walletprobe.APIResponse, error) {
	return c.do(ctx, http.MethodPost, "/wallet/"+url.PathEscape(walletID)+"/transaction", token, spec, nil)
}

// CreateTransactionRaw submits an arbitrary payload to the create endpoint.
func (c *Client) CreateTransactionRaw(ctx context.Context, token, walletID string, payload any) (*walletprobe.APIResponse, error) {
	return c.do(ctx, http.MethodPost, "/wallet/"+url.PathEscape(walletID)+"/transaction", token, payload, nil)
}

// Transaction fetches a single transaction by ID.
func (c *Client) Transaction(ctx context.Context, token, walletID, transactionID string) (*walletprobe.APIResponse, error) {
	path := "/wallet/" + url.PathEscape(walletID) + "/transaction/" + url.PathEscape(transactionID)
	return c.do(ctx, http.MethodGet, path, token, nil, nil)
}

// Transactions fetches the transaction list, filtered by the query values
// the filter produces.
func (c *Client) Transactions(ctx context.Context, token, walletID string, filter wallet.TransactionFilter) (*walletprobe.APIResponse, error) {
	path := "/wallet/" + url.PathEscape(walletID) + "/transactions"
	if query := filter.Query().Encode(); query != "" {
		path += "?" + query
	}
	return c.do(ctx, http.MethodGet, path, token, nil, nil)
}
