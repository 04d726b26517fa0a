package walletprobe

import (
	"time"
)

// Config holds the configuration for probe workflows.
type Config struct {
	// Polling configuration
	PollInterval   time.Duration // Interval between completion polls, default 2s
	CompletionWait time.Duration // Maximum wait for a transaction to finish, default 60s

	// Timeout configuration
	RequestTimeout time.Duration // Single request timeout, default 30s
	WakeupTimeout  time.Duration // Wakeup call timeout for cold starts, default 120s

	// Performance configuration
	PerformanceCeiling time.Duration // Duration above which a request is flagged, default 5s

	// Batch configuration
	InterStepDelay time.Duration // Pause between sequential workflow steps, default 500ms

	// Business rule limits
	MaxAmount        float64 // Amount ceiling, default 1,000,000
	MaxDecimalPlaces int     // Amount precision limit, default 4
}

// DefaultConfig returns the default configuration for probe workflows.
func DefaultConfig() Config {
	return Config{
		PollInterval:       2 * time.Second,
		CompletionWait:     60 * time.Second,
		RequestTimeout:     30 * time.Second,
		WakeupTimeout:      120 * time.Second,
		PerformanceCeiling: 5 * time.Second,
		InterStepDelay:     500 * time.Millisecond,
		MaxAmount:          1_000_000,
		MaxDecimalPlaces:   4,
	}
}

// Option is a function that modifies the Config.
type Option func(*Config)

// WithPollInterval sets the completion poll interval.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.PollInterval = interval
	}
}

// WithCompletionWait sets the maximum wait for transaction completion.
func WithCompletionWait(wait time.Duration) Option {
	return func(c *Config) {
		c.CompletionWait = wait
	}
}

// WithRequestTimeout sets the single request timeout.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.RequestTimeout = timeout
	}
}

// WithWakeupTimeout sets the wakeup call timeout.
func WithWakeupTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.WakeupTimeout = timeout
	}
}

// WithPerformanceCeiling sets the duration above which requests are flagged.
func WithPerformanceCeiling(ceiling time.Duration) Option {
	return func(c *Config) {
		c.PerformanceCeiling = ceiling
	}
}

// WithInterStepDelay sets the pause between sequential workflow steps.
func WithInterStepDelay(delay time.Duration) Option {
	return func(c *Config) {
		c.InterStepDelay = delay
	}
}

// WithMaxAmount sets the business rule amount ceiling.
func WithMaxAmount(max float64) Option {
	return func(c *Config) {
		c.MaxAmount = max
	}
}

// WithMaxDecimalPlaces sets the business rule precision limit.
func WithMaxDecimalPlaces(max int) Option {
	return func(c *Config) {
		c.MaxDecimalPlaces = max
	}
}

// WithConfig applies a complete Config, overriding all values.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// ApplyOptions applies the given options to a default config and returns the result.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return ErrInvalidConfig
	}
	if c.CompletionWait <= 0 {
		return ErrInvalidConfig
	}
	if c.PollInterval >= c.CompletionWait {
		return ErrInvalidConfig
	}
	if c.RequestTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.WakeupTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.PerformanceCeiling < 0 {
		return ErrInvalidConfig
	}
	if c.InterStepDelay < 0 {
		return ErrInvalidConfig
	}
	if c.MaxAmount <= 0 {
		return ErrInvalidConfig
	}
	if c.MaxDecimalPlaces < 0 {
		return ErrInvalidConfig
	}
	return nil
}
