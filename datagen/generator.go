// Package datagen produces transaction specs for driving the wallet service:
// valid specs with currency-aware amount distributions, boundary values,
// named scenario sequences, and deliberately invalid payloads.
package datagen

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"walletprobe/wallet"
)

// ErrNoUsers indicates the user pool cannot satisfy the request.
var ErrNoUsers = errors.New("no users available matching criteria")

// Limits bound generated amounts when the caller supplies no range.
type Limits struct {
	MinAmount            float64
	MaxAmount            float64
	MaxDailyTransactions int
}

// DefaultLimits mirrors the reference deployment.
func DefaultLimits() Limits {
	return Limits{MinAmount: 0.01, MaxAmount: 10_000.00, MaxDailyTransactions: 100}
}

// CurrencyMultipliers scale amounts so they stay economically comparable
// across currencies (roughly the exchange rate against USD).
var CurrencyMultipliers = map[string]float64{
	"USD": 1,
	"EUR": 0.85,
	"GBP": 0.73,
	"JPY": 110,
	"AUD": 1.35,
	"CAD": 1.25,
	"CHF": 0.92,
	"SEK": 8.5,
	"NOK": 8.3,
	"DKK": 6.3,
	"AED": 3.67,
	"MXN": 20.5,
}

// zeroDecimalCurrencies round to whole units.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
}

// DefaultCurrencies is the currency pool used when none is configured.
var DefaultCurrencies = []string{"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "SEK", "NOK", "DKK"}

// DefaultUsers is the account pool of the reference environment.
var DefaultUsers = []wallet.User{
	{Username: "alice.johnson", Password: "password123", Name: "Alice Johnson"},
	{Username: "bob.smith", Password: "password123", Name: "Bob Smith"},
	{Username: "carlos.rodriguez", Password: "password123", Name: "Carlos Rodriguez"},
	{Username: "diana.chen", Password: "password123", Name: "Diana Chen"},
	{Username: "erik.larsson", Password: "password123", Name: "Erik Larsson"},
}

// FindUser looks up a pool account by username.
func FindUser(username string) (wallet.User, error) {
	for _, u := range DefaultUsers {
		if u.Username == username {
			return u, nil
		}
	}
	return wallet.User{}, fmt.Errorf("%w: no account named %q", ErrNoUsers, username)
}

// AmountRange is an explicit caller-supplied amount range. A zero value
// means "use the configured policy".
type AmountRange struct {
	Min float64
	Max float64
}

func (r AmountRange) isZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Generator produces transaction specs and scenario sequences. It is not
// safe for concurrent use; create one per workflow.
type Generator struct {
	currencies []string
	users      []wallet.User
	limits     Limits
	rng        *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithCurrencies overrides the currency pool.
func WithCurrencies(currencies ...string) Option {
	return func(g *Generator) {
		g.currencies = currencies
	}
}

// WithUsers overrides the user pool.
func WithUsers(users ...wallet.User) Option {
	return func(g *Generator) {
		g.users = users
	}
}

// WithLimits overrides the default amount limits.
func WithLimits(limits Limits) Option {
	return func(g *Generator) {
		g.limits = limits
	}
}

// WithSeed makes generation deterministic. Useful in tests.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// New creates a Generator with the reference pools and limits.
func New(opts ...Option) *Generator {
	g := &Generator{
		currencies: DefaultCurrencies,
		users:      DefaultUsers,
		limits:     DefaultLimits(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// specConfig collects the explicit choices for a single generated spec.
type specConfig struct {
	currency  string
	txType    wallet.TxType
	amount    float64
	amountSet bool
	amtRange  AmountRange
}

// SpecOption pins one aspect of a generated spec.
type SpecOption func(*specConfig)

// WithCurrency pins the currency.
func WithCurrency(currency string) SpecOption {
	return func(c *specConfig) {
		c.currency = currency
	}
}

// WithType pins the transaction type.
func WithType(txType wallet.TxType) SpecOption {
	return func(c *specConfig) {
		c.txType = txType
	}
}

// WithAmount pins the amount exactly, bypassing generation.
func WithAmount(amount float64) SpecOption {
	return func(c *specConfig) {
		c.amount = amount
		c.amountSet = true
	}
}

// WithRange generates the amount from an explicit range instead of the
// type-specific policy sub-range.
func WithRange(r AmountRange) SpecOption {
	return func(c *specConfig) {
		c.amtRange = r
	}
}

// Spec generates a single transaction spec. Unpinned fields are drawn from
// the configured pools.
func (g *Generator) Spec(opts ...SpecOption) wallet.TransactionSpec {
	var cfg specConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.currency == "" {
		cfg.currency = g.Currency()
	}
	if cfg.txType == "" {
		cfg.txType = g.TxType()
	}
	if !cfg.amountSet {
		cfg.amount = g.Amount(cfg.amtRange, cfg.currency, cfg.txType)
	}

	return wallet.TransactionSpec{
		Currency: cfg.currency,
		Amount:   cfg.amount,
		Type:     cfg.txType,
	}
}

// Batch generates n specs with the same options.
func (g *Generator) Batch(n int, opts ...SpecOption) []wallet.TransactionSpec {
	specs := make([]wallet.TransactionSpec, n)
	for i := range specs {
		specs[i] = g.Spec(opts...)
	}
	return specs
}

// Amount generates an amount for the given currency and transaction type.
//
// The configured limits apply when r is zero. Without an explicit range,
// credits skew toward a higher floor and ceiling than debits so generated
// debits stay safely below typically funded balances; an explicit range
// overrides that policy entirely. All bounds are scaled by the currency
// multiplier, and the result is rounded to the currency's natural precision.
func (g *Generator) Amount(r AmountRange, currency string, txType wallet.TxType) float64 {
	multiplier, ok := CurrencyMultipliers[currency]
	if !ok {
		multiplier = 1
	}

	var min, max float64
	if r.isZero() {
		min = g.limits.MinAmount * multiplier
		max = g.limits.MaxAmount * multiplier
		if txType == wallet.TypeCredit {
			min = math.Max(min, 10*multiplier)
			max = math.Min(max, 5000*multiplier)
		} else {
			min = math.Max(min, 1*multiplier)
			max = math.Min(max, 500*multiplier)
		}
	} else {
		min = r.Min * multiplier
		max = r.Max * multiplier
	}
	if max < min {
		max = min
	}

	amount := min + g.rng.Float64()*(max-min)
	return RoundForCurrency(amount, currency)
}

// Currency draws a random currency from the pool.
func (g *Generator) Currency() string {
	return g.currencies[g.rng.IntN(len(g.currencies))]
}

// TxType draws a random transaction type.
func (g *Generator) TxType() wallet.TxType {
	if g.rng.IntN(2) == 0 {
		return wallet.TypeCredit
	}
	return wallet.TypeDebit
}

// ID generates a fresh UUID string.
func (g *Generator) ID() string {
	return uuid.NewString()
}

// User draws a random user from the pool, skipping excluded usernames.
func (g *Generator) User(exclude ...string) (wallet.User, error) {
	available := g.filterUsers(exclude)
	if len(available) == 0 {
		return wallet.User{}, ErrNoUsers
	}
	return available[g.rng.IntN(len(available))], nil
}

// Users draws count distinct users from the pool.
func (g *Generator) Users(count int, exclude ...string) ([]wallet.User, error) {
	available := g.filterUsers(exclude)
	if count > len(available) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrNoUsers, count, len(available))
	}
	g.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	return available[:count], nil
}

func (g *Generator) filterUsers(exclude []string) []wallet.User {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}
	available := make([]wallet.User, 0, len(g.users))
	for _, u := range g.users {
		if !excluded[u.Username] {
			available = append(available, u)
		}
	}
	return available
}

// RoundForCurrency rounds an amount to the currency's natural precision:
// whole units for zero-decimal currencies, 2 decimal places otherwise.
func RoundForCurrency(amount float64, currency string) float64 {
	if zeroDecimalCurrencies[currency] {
		return math.Round(amount)
	}
	rounded, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return rounded
}

// EdgeCaseAmounts returns the boundary values worth probing explicitly.
func (g *Generator) EdgeCaseAmounts() map[string]float64 {
	return map[string]float64{
		"minimum":          g.limits.MinAmount,
		"maximum":          g.limits.MaxAmount,
		"justOverMinimum":  g.limits.MinAmount + 0.01,
		"justUnderMaximum": g.limits.MaxAmount - 0.01,
		"oneDecimal":       10.1,
		"twoDecimals":      10.12,
		"threeDecimals":    10.123,
		"fourDecimals":     10.1234,
		"largeRound":       1000.00,
		"verySmall":        0.01,
	}
}
