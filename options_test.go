package walletprobe

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.PollInterval)
	}
	if cfg.CompletionWait != 60*time.Second {
		t.Errorf("CompletionWait = %v, want 60s", cfg.CompletionWait)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.WakeupTimeout != 120*time.Second {
		t.Errorf("WakeupTimeout = %v, want 120s", cfg.WakeupTimeout)
	}
	if cfg.PerformanceCeiling != 5*time.Second {
		t.Errorf("PerformanceCeiling = %v, want 5s", cfg.PerformanceCeiling)
	}
	if cfg.MaxAmount != 1_000_000 {
		t.Errorf("MaxAmount = %v, want 1000000", cfg.MaxAmount)
	}
	if cfg.MaxDecimalPlaces != 4 {
		t.Errorf("MaxDecimalPlaces = %v, want 4", cfg.MaxDecimalPlaces)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestApplyOptions(t *testing.T) {
	cfg := ApplyOptions(
		WithPollInterval(time.Second),
		WithCompletionWait(30*time.Second),
		WithRequestTimeout(10*time.Second),
		WithWakeupTimeout(time.Minute),
		WithPerformanceCeiling(2*time.Second),
		WithInterStepDelay(100*time.Millisecond),
		WithMaxAmount(50_000),
		WithMaxDecimalPlaces(2),
	)

	if cfg.PollInterval != time.Second || cfg.CompletionWait != 30*time.Second {
		t.Errorf("polling config = %v / %v", cfg.PollInterval, cfg.CompletionWait)
	}
	if cfg.RequestTimeout != 10*time.Second || cfg.WakeupTimeout != time.Minute {
		t.Errorf("timeout config = %v / %v", cfg.RequestTimeout, cfg.WakeupTimeout)
	}
	if cfg.PerformanceCeiling != 2*time.Second || cfg.InterStepDelay != 100*time.Millisecond {
		t.Errorf("perf config = %v / %v", cfg.PerformanceCeiling, cfg.InterStepDelay)
	}
	if cfg.MaxAmount != 50_000 || cfg.MaxDecimalPlaces != 2 {
		t.Errorf("limit config = %v / %v", cfg.MaxAmount, cfg.MaxDecimalPlaces)
	}
}

func TestWithConfig(t *testing.T) {
	custom := Config{
		PollInterval:       time.Second,
		CompletionWait:     10 * time.Second,
		RequestTimeout:     5 * time.Second,
		WakeupTimeout:      time.Minute,
		PerformanceCeiling: time.Second,
		MaxAmount:          100,
		MaxDecimalPlaces:   2,
	}

	cfg := ApplyOptions(WithConfig(custom))
	if cfg != custom {
		t.Errorf("cfg = %+v, want %+v", cfg, custom)
	}
}

func TestConfigValidate(t *testing.T) {
	mutations := map[string]func(c *Config){
		"zero poll interval":           func(c *Config) { c.PollInterval = 0 },
		"zero completion wait":         func(c *Config) { c.CompletionWait = 0 },
		"poll interval over wait":      func(c *Config) { c.PollInterval = 2 * c.CompletionWait },
		"zero request timeout":         func(c *Config) { c.RequestTimeout = 0 },
		"zero wakeup timeout":          func(c *Config) { c.WakeupTimeout = 0 },
		"negative performance ceiling": func(c *Config) { c.PerformanceCeiling = -time.Second },
		"negative inter-step delay":    func(c *Config) { c.InterStepDelay = -time.Second },
		"zero max amount":              func(c *Config) { c.MaxAmount = 0 },
		"negative max decimal places":  func(c *Config) { c.MaxDecimalPlaces = -1 },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
