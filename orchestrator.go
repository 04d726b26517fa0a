// Package walletprobe orchestrates validation workflows against a remote
// wallet service: it opens authenticated sessions, submits transactions,
// polls them to completion, and checks every exchange against the wire
// contract, the business rules, and wallet state consistency.
package walletprobe

import (
	"context"
	"fmt"
	"log"
	"time"

	"walletprobe/check"
	"walletprobe/contract"
	"walletprobe/datagen"
	"walletprobe/event"
	"walletprobe/perf"
	"walletprobe/rules"
	"walletprobe/tracing"
	"walletprobe/wallet"
)

// Endpoint labels used for performance metrics and tracing.
const (
	EndpointWakeup            = "wakeup"
	EndpointHealth            = "health"
	EndpointLogin             = "login"
	EndpointUserInfo          = "getUserInfo"
	EndpointWallet            = "getWallet"
	EndpointCreateTransaction = "createTransaction"
	EndpointTransaction       = "getTransaction"
	EndpointTransactions      = "getTransactions"
)

// Logger is the minimal logging interface used by the orchestrator.
type Logger interface {
	Printf(format string, v ...any)
}

type defaultLogger struct{}

func (l *defaultLogger) Printf(format string, v ...any) {
	log.Printf(format, v...)
}

// Orchestrator drives probe workflows against a wallet service.
type Orchestrator struct {
	api      WalletAPI
	schemas  *contract.Validator
	rules    *rules.Validator
	gen      *datagen.Generator
	recorder *perf.Recorder
	events   event.EventBus
	tracer   tracing.Tracer
	logger   Logger
	config   Config
}

// OrchestratorOption is a function that configures the Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithAPI sets the wallet API client.
func WithAPI(api WalletAPI) OrchestratorOption {
	return func(o *Orchestrator) {
		o.api = api
	}
}

// WithSchemaValidator sets the wire contract validator.
func WithSchemaValidator(v *contract.Validator) OrchestratorOption {
	return func(o *Orchestrator) {
		o.schemas = v
	}
}

// WithRuleValidator sets the business rule validator.
func WithRuleValidator(v *rules.Validator) OrchestratorOption {
	return func(o *Orchestrator) {
		o.rules = v
	}
}

// WithGenerator sets the test data generator used for scenarios.
func WithGenerator(g *datagen.Generator) OrchestratorOption {
	return func(o *Orchestrator) {
		o.gen = g
	}
}

// WithRecorder sets the performance recorder.
func WithRecorder(r *perf.Recorder) OrchestratorOption {
	return func(o *Orchestrator) {
		o.recorder = r
	}
}

// WithEventBus sets the event bus.
func WithEventBus(bus event.EventBus) OrchestratorOption {
	return func(o *Orchestrator) {
		o.events = bus
	}
}

// WithTracer sets the tracer.
func WithTracer(t tracing.Tracer) OrchestratorOption {
	return func(o *Orchestrator) {
		o.tracer = t
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithOrchestratorConfig sets the configuration.
func WithOrchestratorConfig(cfg Config) OrchestratorOption {
	return func(o *Orchestrator) {
		o.config = cfg
	}
}

// New creates an Orchestrator. A wallet API client is required; every other
// dependency has a working default.
func New(opts ...OrchestratorOption) (*Orchestrator, error) {
	o := &Orchestrator{
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.api == nil {
		return nil, ErrNoAPI
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	if o.schemas == nil {
		o.schemas = contract.MustNew()
	}
	if o.rules == nil {
		o.rules = rules.New(
			rules.WithMaxAmount(o.config.MaxAmount),
			rules.WithMaxDecimalPlaces(o.config.MaxDecimalPlaces),
		)
	}
	if o.gen == nil {
		o.gen = datagen.New()
	}
	if o.recorder == nil {
		o.recorder = perf.NewRecorder()
	}
	if o.events == nil {
		o.events = event.NoOpEventBus{}
	}
	if o.tracer == nil {
		o.tracer = &tracing.NoopTracer{}
	}
	if o.logger == nil {
		o.logger = &defaultLogger{}
	}

	return o, nil
}

// Recorder exposes the performance recorder for post-run aggregation.
func (o *Orchestrator) Recorder() *perf.Recorder {
	return o.recorder
}

// observe records one API exchange and publishes the metric event.
func (o *Orchestrator) observe(ctx context.Context, endpoint string, resp *APIResponse) {
	m := o.recorder.Observe(ctx, endpoint, resp.Duration, resp.StatusCode, o.config.PerformanceCeiling)
	o.events.Publish(ctx, event.NewEvent(event.EventMetricRecorded).
		WithEndpoint(endpoint).
		WithData("duration", m.Duration).
		WithData("status", m.Status))
	if m.Exceeded {
		o.logger.Printf("[Orchestrator] %s took %v, over the %v ceiling", endpoint, m.Duration, m.Ceiling)
		o.events.Publish(ctx, event.NewEvent(event.EventAlertWarning).
			WithEndpoint(endpoint).
			WithData("duration", m.Duration))
	}
}

// transportErr wraps a failed exchange and publishes the transport event.
func (o *Orchestrator) transportErr(ctx context.Context, endpoint string, err error) error {
	o.events.Publish(ctx, event.NewEvent(event.EventTransportError).
		WithEndpoint(endpoint).
		WithError(err))
	return fmt.Errorf("%w: %s: %v", ErrTransportFailure, endpoint, err)
}

// validate checks a response body against a named schema and publishes a
// validation event on failure.
func (o *Orchestrator) validate(ctx context.Context, body []byte, schema string) check.Result {
	result := o.schemas.Validate(body, schema)
	if !result.Valid {
		o.logger.Printf("[Orchestrator] schema %s violated: %v", schema, result.Errors)
		o.events.Publish(ctx, event.NewEvent(event.EventValidationFailed).
			WithData("schema", schema).
			WithData("errors", result.Errors))
	}
	return result
}

// flagState records a transaction state inconsistency as a structured
// violation and publishes the validation event.
func (o *Orchestrator) flagState(ctx context.Context, transactionID string, data any, msg string) check.Result {
	o.logger.Printf("[Orchestrator] transaction %s: %s", transactionID, msg)
	o.events.Publish(ctx, event.NewEvent(event.EventValidationFailed).
		WithTransactionID(transactionID).
		WithData("check", "transactionState").
		WithData("errors", []string{msg}))
	return check.Fail("transactionState", data, msg)
}

// Wakeup pings the service with the extended cold-start timeout and
// validates the response shape.
func (o *Orchestrator) Wakeup(ctx context.Context) (*APIResponse, check.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.WakeupTimeout)
	defer cancel()

	resp, err := o.api.Wakeup(ctx)
	if err != nil {
		return nil, check.Result{}, o.transportErr(ctx, EndpointWakeup, err)
	}
	o.observe(ctx, EndpointWakeup, resp)

	result := o.validate(ctx, resp.Body, contract.SchemaWakeup)
	return resp, result, nil
}

// Health checks service liveness and validates the response shape.
func (o *Orchestrator) Health(ctx context.Context) (*APIResponse, check.Result, error) {
	resp, err := o.api.Health(ctx)
	if err != nil {
		return nil, check.Result{}, o.transportErr(ctx, EndpointHealth, err)
	}
	o.observe(ctx, EndpointHealth, resp)

	result := o.validate(ctx, resp.Body, contract.SchemaHealth)
	return resp, result, nil
}

// Open logs a user in, fetches their profile and wallet, and returns a
// ready session. Every response is validated against its schema; a schema
// violation on these setup calls is fatal for the session.
func (o *Orchestrator) Open(ctx context.Context, user wallet.User) (*Session, error) {
	ctx, span := o.tracer.StartWorkflow(ctx, "session.open", user.Username)
	defer span.End()

	resp, err := o.api.Login(ctx, user.Username, user.Password)
	if err != nil {
		span.SetError(err)
		return nil, o.transportErr(ctx, EndpointLogin, err)
	}
	o.observe(ctx, EndpointLogin, resp)
	if !resp.OK() {
		return nil, fmt.Errorf("%w: status %d", ErrLoginFailed, resp.StatusCode)
	}
	if result := o.validate(ctx, resp.Body, contract.SchemaUserToken); !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrSchemaViolation, contract.SchemaUserToken)
	}

	session := &Session{User: user}
	if err := resp.Decode(&session.Auth); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	session.Auth.Username = user.Username

	infoResp, err := o.api.UserInfo(ctx, session.Token(), session.Auth.UserID)
	if err != nil {
		span.SetError(err)
		return nil, o.transportErr(ctx, EndpointUserInfo, err)
	}
	o.observe(ctx, EndpointUserInfo, infoResp)
	if !infoResp.OK() {
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, EndpointUserInfo, infoResp.StatusCode)
	}
	if result := o.validate(ctx, infoResp.Body, contract.SchemaUserInfo); !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrSchemaViolation, contract.SchemaUserInfo)
	}
	if err := infoResp.Decode(&session.Info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}

	if err := o.RefreshWallet(ctx, session); err != nil {
		span.SetError(err)
		return nil, err
	}

	return session, nil
}

// RefreshWallet re-fetches the session's wallet snapshot.
func (o *Orchestrator) RefreshWallet(ctx context.Context, session *Session) error {
	if session == nil {
		return ErrNoSession
	}

	resp, err := o.api.Wallet(ctx, session.Token(), session.WalletID())
	if err != nil {
		return o.transportErr(ctx, EndpointWallet, err)
	}
	o.observe(ctx, EndpointWallet, resp)
	if !resp.OK() {
		return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, EndpointWallet, resp.StatusCode)
	}
	if result := o.validate(ctx, resp.Body, contract.SchemaWallet); !result.Valid {
		return fmt.Errorf("%w: %s", ErrSchemaViolation, contract.SchemaWallet)
	}

	snapshot := &wallet.Wallet{}
	if err := resp.Decode(snapshot); err != nil {
		return fmt.Errorf("decode wallet: %w", err)
	}
	session.Wallet = snapshot
	session.refreshedAt = time.Now()
	return nil
}

// SubmitOptions controls how a single transaction submission behaves.
type SubmitOptions struct {
	// PreCheck runs the business rules locally before any remote call.
	// A violation stops the submission without touching the service.
	PreCheck bool

	// AllowInsufficient lets a spec whose only violation is balance
	// sufficiency through to the service, to observe the denied outcome.
	AllowInsufficient bool

	// AwaitCompletion polls a pending transaction until it finishes or the
	// completion wait elapses.
	AwaitCompletion bool

	// ValidateSchema checks every response body against the wire contract.
	ValidateSchema bool
}

// DefaultSubmitOptions returns the options used by scenario runs.
func DefaultSubmitOptions() SubmitOptions {
	return SubmitOptions{
		PreCheck:        true,
		AwaitCompletion: true,
		ValidateSchema:  true,
	}
}

// SubmitResult is the full account of one submission attempt.
type SubmitResult struct {
	Spec          wallet.TransactionSpec
	TransactionID string
	Create        *APIResponse
	Created       *wallet.CreateResponse
	Final         *APIResponse
	FinalTx       *wallet.Transaction
	State         wallet.TxState
	Violations    []check.Result
	TimedOut      bool
}

// Rejected reports whether the submission was stopped by the local
// pre-check before reaching the service.
func (r *SubmitResult) Rejected() bool {
	return r.Create == nil && len(r.Violations) > 0
}

// Submit runs one transaction through the full workflow: local pre-check,
// remote creation, schema validation, and optional polling to completion.
// Business rule rejections and remote denials are recorded on the result,
// not returned as errors; only transport failures are errors.
func (o *Orchestrator) Submit(ctx context.Context, session *Session, spec wallet.TransactionSpec, opts SubmitOptions) (*SubmitResult, error) {
	if session == nil {
		return nil, ErrNoSession
	}

	result := &SubmitResult{Spec: spec}

	if opts.PreCheck {
		ruleResult := o.rules.Check(spec, session.Wallet)
		if !ruleResult.Valid {
			allowed := opts.AllowInsufficient && rules.InsufficientBalanceOnly(ruleResult)
			if !allowed {
				result.Violations = append(result.Violations, ruleResult)
				o.events.Publish(ctx, event.NewEvent(event.EventValidationFailed).
					WithCurrency(spec.Currency).
					WithData("errors", ruleResult.Errors))
				return result, nil
			}
		}
	}

	ctx, span := o.tracer.StartRequest(ctx, EndpointCreateTransaction, "")
	defer span.End()

	o.events.Publish(ctx, event.NewEvent(event.EventTxSubmitted).
		WithCurrency(spec.Currency).
		WithData("amount", spec.Amount).
		WithData("type", string(spec.Type)))

	resp, err := o.api.CreateTransaction(ctx, session.Token(), session.WalletID(), spec)
	if err != nil {
		span.SetError(err)
		return result, o.transportErr(ctx, EndpointCreateTransaction, err)
	}
	o.observe(ctx, EndpointCreateTransaction, resp)
	result.Create = resp

	if !resp.OK() {
		// A rejection body must still match the error contract.
		if opts.ValidateSchema {
			if errResult := o.validate(ctx, resp.Body, contract.SchemaError); !errResult.Valid {
				result.Violations = append(result.Violations, errResult)
			}
		}
		o.events.Publish(ctx, event.NewEvent(event.EventTxDenied).
			WithCurrency(spec.Currency).
			WithData("status", resp.StatusCode))
		return result, nil
	}

	if opts.ValidateSchema {
		if schemaResult := o.validate(ctx, resp.Body, contract.SchemaTransactionResponse); !schemaResult.Valid {
			result.Violations = append(result.Violations, schemaResult)
		}
	}

	created := &wallet.CreateResponse{}
	if err := resp.Decode(created); err != nil {
		return result, fmt.Errorf("decode create response: %w", err)
	}
	result.Created = created
	result.TransactionID = created.TransactionID
	result.State = wallet.StateFor(created.Status)

	if !wallet.OutcomeAllowed(created.Status, created.Outcome) {
		result.Violations = append(result.Violations, o.flagState(ctx, created.TransactionID, created,
			fmt.Sprintf("outcome %q is not allowed with status %q", *created.Outcome, created.Status)))
	}

	if created.Terminal() || !opts.AwaitCompletion {
		if created.Terminal() {
			o.events.Publish(ctx, event.NewEvent(event.EventTxFinished).
				WithTransactionID(created.TransactionID).
				WithCurrency(spec.Currency))
		}
		return result, nil
	}

	poll, err := o.AwaitCompletion(ctx, session, created.TransactionID, PollOptions{
		From:           result.State,
		ValidateSchema: opts.ValidateSchema,
	})
	if err != nil {
		return result, err
	}
	result.Final = poll.Final
	result.FinalTx = poll.FinalTx
	result.TimedOut = poll.TimedOut
	result.Violations = append(result.Violations, poll.Violations...)
	if poll.FinalTx != nil {
		result.State = wallet.StateFor(poll.FinalTx.Status)
	}

	if poll.TimedOut {
		o.events.Publish(ctx, event.NewEvent(event.EventTxTimeout).
			WithTransactionID(created.TransactionID).
			WithCurrency(spec.Currency))
	} else {
		o.events.Publish(ctx, event.NewEvent(event.EventTxFinished).
			WithTransactionID(created.TransactionID).
			WithCurrency(spec.Currency))
	}

	return result, nil
}

// SubmitRaw sends an arbitrary payload to the create endpoint, returning
// the local schema verdict alongside the service's response. Used to probe
// how the service handles malformed requests.
func (o *Orchestrator) SubmitRaw(ctx context.Context, session *Session, payload any) (*APIResponse, check.Result, error) {
	if session == nil {
		return nil, check.Result{}, ErrNoSession
	}

	local := o.schemas.Validate(payload, contract.SchemaTransactionRequest)

	resp, err := o.api.CreateTransactionRaw(ctx, session.Token(), session.WalletID(), payload)
	if err != nil {
		return nil, local, o.transportErr(ctx, EndpointCreateTransaction, err)
	}
	o.observe(ctx, EndpointCreateTransaction, resp)

	return resp, local, nil
}

// PollOptions controls how AwaitCompletion observes a transaction.
type PollOptions struct {
	// From is the last workflow state the caller observed for this
	// transaction; each polled state is checked as a transition from the
	// previous one. The zero value means no prior observation.
	From wallet.TxState

	// MaxWait bounds the poll loop. Zero uses the configured completion wait.
	MaxWait time.Duration

	// ValidateSchema checks every polled body against the transaction schema.
	ValidateSchema bool
}

// PollResult is the outcome of polling a transaction to completion. Final and
// FinalTx hold the last observed response and decoded transaction; Violations
// collects every schema or state inconsistency seen across the polls.
type PollResult struct {
	Final      *APIResponse
	FinalTx    *wallet.Transaction
	Violations []check.Result
	TimedOut   bool
}

// AwaitCompletion polls a transaction at the configured interval until it
// reaches a terminal status or the wait elapses. A timeout is soft: the last
// observed state is returned with TimedOut set, never an error. Each observed
// transaction is checked for state consistency: an outcome on a non-finished
// transaction and a transition the state machine forbids are both recorded as
// violations.
func (o *Orchestrator) AwaitCompletion(ctx context.Context, session *Session, transactionID string, opts PollOptions) (*PollResult, error) {
	if session == nil {
		return nil, ErrNoSession
	}

	maxWait := opts.MaxWait
	if maxWait <= 0 {
		maxWait = o.config.CompletionWait
	}
	prev := opts.From
	if prev == "" {
		prev = wallet.StateCreated
	}

	deadline := time.Now().Add(maxWait)

	poll := &PollResult{}
	for attempt := 0; ; attempt++ {
		pollCtx, span := o.tracer.StartPoll(ctx, transactionID, attempt)

		resp, err := o.api.Transaction(pollCtx, session.Token(), session.WalletID(), transactionID)
		if err != nil {
			span.SetError(err)
			span.End()
			return poll, o.transportErr(ctx, EndpointTransaction, err)
		}
		o.observe(pollCtx, EndpointTransaction, resp)
		span.End()
		poll.Final = resp

		if resp.OK() {
			if opts.ValidateSchema {
				if schemaResult := o.validate(ctx, resp.Body, contract.SchemaTransaction); !schemaResult.Valid {
					poll.Violations = append(poll.Violations, schemaResult)
				}
			}
			tx := &wallet.Transaction{}
			if err := resp.Decode(tx); err != nil {
				return poll, fmt.Errorf("decode transaction: %w", err)
			}
			poll.FinalTx = tx

			state := wallet.StateFor(tx.Status)
			if !wallet.OutcomeAllowed(tx.Status, tx.Outcome) {
				poll.Violations = append(poll.Violations, o.flagState(ctx, transactionID, tx,
					fmt.Sprintf("outcome %q is not allowed with status %q", *tx.Outcome, tx.Status)))
			}
			// Re-observing the same state is not a transition.
			if state != prev && !wallet.ValidateTransition(prev, state) {
				poll.Violations = append(poll.Violations, o.flagState(ctx, transactionID, tx,
					fmt.Sprintf("transaction moved from %s to %s", prev, state)))
			}
			prev = state

			if tx.Terminal() {
				return poll, nil
			}
		}

		if time.Now().After(deadline) {
			o.logger.Printf("[Orchestrator] transaction %s still pending after %v", transactionID, maxWait)
			poll.TimedOut = true
			return poll, nil
		}

		select {
		case <-ctx.Done():
			return poll, ctx.Err()
		case <-time.After(o.config.PollInterval):
		}
	}
}

// History fetches the transaction list for the session's wallet and
// validates its shape.
func (o *Orchestrator) History(ctx context.Context, session *Session, filter wallet.TransactionFilter) (*wallet.TransactionList, check.Result, error) {
	if session == nil {
		return nil, check.Result{}, ErrNoSession
	}

	resp, err := o.api.Transactions(ctx, session.Token(), session.WalletID(), filter)
	if err != nil {
		return nil, check.Result{}, o.transportErr(ctx, EndpointTransactions, err)
	}
	o.observe(ctx, EndpointTransactions, resp)
	if !resp.OK() {
		return nil, check.Result{}, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, EndpointTransactions, resp.StatusCode)
	}

	result := o.validate(ctx, resp.Body, contract.SchemaTransactionList)

	list := &wallet.TransactionList{}
	if err := resp.Decode(list); err != nil {
		return nil, result, fmt.Errorf("decode transaction list: %w", err)
	}
	return list, result, nil
}
