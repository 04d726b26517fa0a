// Package main provides the walletprobe command line runner.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"walletprobe"
	"walletprobe/datagen"
	"walletprobe/event"
	"walletprobe/httpapi"
	"walletprobe/wallet"
)

func main() {
	var (
		baseURL   = flag.String("base-url", "", "wallet service base URL (required)")
		username  = flag.String("username", "alice.johnson", "login username")
		password  = flag.String("password", "password123", "login password")
		serviceID = flag.String("service-id", "walletprobe", "X-Service-Id header sent on login")
		scenario  = flag.String("scenario", datagen.ScenarioOnboarding, "scenario to run: "+strings.Join(datagen.Scenarios(), ", "))
		seed      = flag.Uint64("seed", 0, "deterministic generator seed (0 uses a random seed)")
		skipWake  = flag.Bool("skip-wakeup", false, "skip the wakeup call before logging in")
		jsonOut   = flag.Bool("json", false, "print captured metrics as JSON")
	)
	flag.Parse()

	if *baseURL == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, runOptions{
		baseURL:   *baseURL,
		username:  *username,
		password:  *password,
		serviceID: *serviceID,
		scenario:  *scenario,
		seed:      *seed,
		skipWake:  *skipWake,
		jsonOut:   *jsonOut,
	}); err != nil {
		log.Fatalf("walletprobe: %v", err)
	}
}

type runOptions struct {
	baseURL   string
	username  string
	password  string
	serviceID string
	scenario  string
	seed      uint64
	skipWake  bool
	jsonOut   bool
}

func run(ctx context.Context, opts runOptions) error {
	client := httpapi.New(opts.baseURL, httpapi.WithServiceID(opts.serviceID))

	bus := event.NewMemoryEventBus()
	bus.Subscribe(event.EventAlertWarning, func(ctx context.Context, e event.Event) error {
		log.Printf("warning: %s %v", e.Type, e.Data)
		return nil
	})
	bus.Subscribe(event.EventValidationFailed, func(ctx context.Context, e event.Event) error {
		log.Printf("validation failed on %s: %v", e.Endpoint, e.Data)
		return nil
	})

	genOpts := []datagen.Option{}
	if opts.seed != 0 {
		genOpts = append(genOpts, datagen.WithSeed(opts.seed))
	}

	orch, err := walletprobe.New(
		walletprobe.WithAPI(client),
		walletprobe.WithEventBus(bus),
		walletprobe.WithGenerator(datagen.New(genOpts...)),
	)
	if err != nil {
		return err
	}

	if !opts.skipWake {
		log.Printf("waking up %s", opts.baseURL)
		if _, result, err := orch.Wakeup(ctx); err != nil {
			return fmt.Errorf("wakeup: %w", err)
		} else if !result.Valid {
			log.Printf("wakeup response failed validation: %v", result.Errors)
		}
	}

	user, err := datagen.FindUser(opts.username)
	if err != nil {
		user.Username = opts.username
	}
	user.Password = opts.password

	session, err := orch.Open(ctx, user)
	if err != nil {
		return fmt.Errorf("open session for %s: %w", user.Username, err)
	}
	log.Printf("session open: user=%s wallet=%s", session.User.Username, session.WalletID())

	batch, err := orch.RunScenario(ctx, session, opts.scenario)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", opts.scenario, err)
	}

	printReport(orch, batch, opts)
	return nil
}

func printReport(orch *walletprobe.Orchestrator, batch *walletprobe.BatchResult, opts runOptions) {
	rejected := batch.Rejected()
	fmt.Printf("scenario %s: %d steps, %d submitted, %d rejected locally\n",
		opts.scenario, len(batch.Results), len(batch.TransactionIDs()), len(rejected))
	if !batch.DistinctIDs() {
		fmt.Println("WARNING: transaction IDs were reused across steps")
	}

	for _, step := range batch.Results {
		status := "submitted"
		switch {
		case step.Rejected():
			status = "rejected"
		case step.TimedOut:
			status = "timed out"
		case wallet.IsTerminal(step.State):
			status = string(step.State)
		}
		fmt.Printf("  %-8s %s %s %.2f tx=%s\n",
			status, step.Spec.Type, step.Spec.Currency, step.Spec.Amount, step.TransactionID)
	}

	recorder := orch.Recorder()
	if opts.jsonOut {
		out, _ := json.MarshalIndent(recorder.Metrics(), "", "  ")
		fmt.Println(string(out))
		return
	}

	fmt.Println("endpoint timings:")
	for _, endpoint := range []string{
		walletprobe.EndpointLogin,
		walletprobe.EndpointUserInfo,
		walletprobe.EndpointWallet,
		walletprobe.EndpointCreateTransaction,
		walletprobe.EndpointTransaction,
	} {
		summary := recorder.SummaryFor(endpoint)
		if summary.Count == 0 {
			continue
		}
		fmt.Printf("  %-18s count=%-3d avg=%-12v median=%-12v max=%v\n",
			endpoint, summary.Count, summary.Avg.Round(time.Millisecond),
			summary.Median.Round(time.Millisecond), summary.Max.Round(time.Millisecond))
	}
	if exceeded := recorder.Exceeded(); len(exceeded) > 0 {
		fmt.Printf("  %d requests exceeded the performance ceiling\n", len(exceeded))
	}
}
