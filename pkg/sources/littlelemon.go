package sources

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/kerbaras/littlelemon/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMenuURL      = "https://raw.githubusercontent.com/Meta-Mobile-Developer-PC/Working-With-Data-API/main/menu.json"
	DefaultFetchTimeout = 10 * time.Second
	DefaultMaxRetries   = 3
	DefaultRetryDelay   = 500 * time.Millisecond
)

type Options struct {
	MenuURL      string
	FetchTimeout time.Duration
	MaxRetries   int           // attempts after the first one
	RetryDelay   time.Duration // grows linearly with each retry
	Logger       logrus.FieldLogger
}

// LittleLemon fetches the menu document from a fixed URL.
type LittleLemon struct {
	api        *utils.API
	retries    int
	retryDelay time.Duration
	log        logrus.FieldLogger
}

func NewLittleLemon(opts Options) (*LittleLemon, error) {
	if opts.MenuURL == "" {
		opts.MenuURL = DefaultMenuURL
	}
	if _, err := url.ParseRequestURI(opts.MenuURL); err != nil {
		return nil, fmt.Errorf("invalid menu url %q: %w", opts.MenuURL, err)
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	return &LittleLemon{
		api:        utils.NewAPI(opts.MenuURL, opts.FetchTimeout),
		retries:    opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		log:        opts.Logger,
	}, nil
}

// FetchMenu downloads and decodes the menu. Transport failures, timeouts,
// 429 and 5xx responses are retried; decode errors are not.
func (l *LittleLemon) FetchMenu(ctx context.Context) ([]MenuItem, error) {
	var lastErr error
	for attempt := 0; attempt <= l.retries; attempt++ {
		if attempt > 0 {
			delay := l.retryDelay * time.Duration(attempt)
			l.log.WithFields(logrus.Fields{
				"attempt": attempt + 1,
				"delay":   delay,
			}).WithError(lastErr).Warn("retrying menu fetch")

			select {
			case <-ctx.Done():
				return nil, &utils.FetchError{URL: l.api.URL("", nil), Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		body, err := l.api.Fetch(ctx, "", nil)
		if err == nil {
			return DecodeMenuBytes(body)
		}

		lastErr = err
		if !utils.IsRetryable(err) || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}
