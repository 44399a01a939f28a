package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

var ErrFetch = errors.New("fetch catalog")

// DefaultFetchTimeout bounds a request when no timeout is configured.
const DefaultFetchTimeout = 30 * time.Second

// Fetcher downloads the cosmetic feed over HTTP.
type Fetcher struct {
	URL     string
	Timeout time.Duration
}

func NewFetcher(url string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{URL: url, Timeout: timeout}
}

// timeout is the request bound: the configured timeout, capped by the
// context deadline. The request goroutine outlives a cancelled context by
// at most this long.
func (f *Fetcher) timeout(ctx context.Context) time.Duration {
	d := f.Timeout
	if d <= 0 {
		d = DefaultFetchTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left > 0 && left < d {
			d = left
		}
	}
	return d
}

type fetchResult struct {
	code int
	body []byte
	errs []error
}

func (f *Fetcher) Fetch(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agent := fiber.Get(f.URL)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.Timeout(f.timeout(ctx))

	done := make(chan fetchResult, 1)
	go func() {
		code, body, errs := agent.Bytes()
		done <- fetchResult{code: code, body: body, errs: errs}
	}()

	var res fetchResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-done:
	}

	if len(res.errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrFetch, errors.Join(res.errs...))
	}
	if res.code != fiber.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrFetch, f.URL, res.code)
	}
	records, err := Decode(res.body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrFetch, err)
	}
	return records, nil
}
