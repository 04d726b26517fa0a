package walletprobe

import (
	"context"
	"time"

	"walletprobe/check"
	"walletprobe/datagen"
	"walletprobe/event"
	"walletprobe/wallet"
)

// OrderPolicy controls how a batch of transactions is issued.
type OrderPolicy string

const (
	// OrderSequential submits steps one at a time, refreshing the wallet
	// snapshot before each step and waiting for completion.
	OrderSequential OrderPolicy = "sequential"

	// OrderUnordered issues every step without waiting for completion or
	// refreshing state between steps.
	OrderUnordered OrderPolicy = "unordered"
)

// BatchOptions controls how a batch of transaction specs is run.
type BatchOptions struct {
	Order             OrderPolicy
	InterStepDelay    time.Duration // Zero uses the configured default
	PreCheck          bool
	AllowInsufficient bool
	ValidateSchema    bool
}

// DefaultBatchOptions returns the options used by sequential scenario runs.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Order:             OrderSequential,
		PreCheck:          true,
		AllowInsufficient: true,
		ValidateSchema:    true,
	}
}

// BatchResult is the outcome of a batch run.
type BatchResult struct {
	Results []SubmitResult
}

// TransactionIDs returns the IDs of every step that reached the service.
func (b *BatchResult) TransactionIDs() []string {
	ids := make([]string, 0, len(b.Results))
	for _, r := range b.Results {
		if r.TransactionID != "" {
			ids = append(ids, r.TransactionID)
		}
	}
	return ids
}

// DistinctIDs reports whether every submitted step got its own transaction
// ID.
func (b *BatchResult) DistinctIDs() bool {
	return check.UniqueIDs(b.TransactionIDs())
}

// Rejected returns the steps stopped by the local pre-check.
func (b *BatchResult) Rejected() []SubmitResult {
	var out []SubmitResult
	for _, r := range b.Results {
		if r.Rejected() {
			out = append(out, r)
		}
	}
	return out
}

// RunBatch runs a batch of transaction specs against one session. A step
// rejected by the pre-check or denied by the service is recorded and the
// batch continues; only transport failures abort the run.
func (o *Orchestrator) RunBatch(ctx context.Context, session *Session, specs []wallet.TransactionSpec, opts BatchOptions) (*BatchResult, error) {
	if session == nil {
		return nil, ErrNoSession
	}
	if opts.Order == "" {
		opts.Order = OrderSequential
	}

	delay := opts.InterStepDelay
	if delay == 0 {
		delay = o.config.InterStepDelay
	}

	submitOpts := SubmitOptions{
		PreCheck:          opts.PreCheck,
		AllowInsufficient: opts.AllowInsufficient,
		AwaitCompletion:   opts.Order == OrderSequential,
		ValidateSchema:    opts.ValidateSchema,
	}

	batch := &BatchResult{Results: make([]SubmitResult, 0, len(specs))}

	for i, spec := range specs {
		if opts.Order == OrderSequential {
			if i > 0 && delay > 0 {
				select {
				case <-ctx.Done():
					return batch, ctx.Err()
				case <-time.After(delay):
				}
			}
			// The pre-check needs balances that include the previous steps.
			if err := o.RefreshWallet(ctx, session); err != nil {
				return batch, err
			}
		}

		result, err := o.Submit(ctx, session, spec, submitOpts)
		if result != nil {
			batch.Results = append(batch.Results, *result)
		}
		if err != nil {
			return batch, err
		}
	}

	return batch, nil
}

// RunScenario generates a named scenario and runs it. Fixed scenarios run
// sequentially; the stress scenario is issued unordered to exercise
// concurrent creation.
func (o *Orchestrator) RunScenario(ctx context.Context, session *Session, name string) (*BatchResult, error) {
	if session == nil {
		return nil, ErrNoSession
	}

	specs, err := o.gen.Scenario(name)
	if err != nil {
		return nil, err
	}

	opts := DefaultBatchOptions()
	if name == datagen.ScenarioStress {
		opts.Order = OrderUnordered
	}

	ctx, span := o.tracer.StartWorkflow(ctx, name, session.User.Username)
	defer span.End()

	o.logger.Printf("[Orchestrator] running scenario %s with %d steps", name, len(specs))
	batch, err := o.RunBatch(ctx, session, specs, opts)
	if err != nil {
		span.SetError(err)
		return batch, err
	}

	if rejected := batch.Rejected(); len(rejected) > 0 {
		o.events.Publish(ctx, event.NewEvent(event.EventAlertWarning).
			WithData("scenario", name).
			WithData("rejected", len(rejected)))
	}
	return batch, nil
}
