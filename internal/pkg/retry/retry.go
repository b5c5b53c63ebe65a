package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 2
	defaultDelay    = 200 * time.Millisecond
	defaultMaxDelay = 2 * time.Second
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"2"`
	Delay    time.Duration `env:"DELAY" envDefault:"200ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(rc.Attempts),
		retry.MaxDelay(rc.MaxDelay),
		retry.Delay(rc.Delay),
	}
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}

// Do runs fn until it succeeds, retryable reports false, the attempts are
// exhausted or ctx is done. The last error is returned unwrapped.
func Do(ctx context.Context, rc *RetryConfig, retryable func(error) bool, fn func() error) error {
	if rc == nil {
		rc = DefaultRetryConfig()
	}

	opts := append(rc.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(retryable),
		retry.LastErrorOnly(true),
	)

	return retry.Do(fn, opts...)
}
