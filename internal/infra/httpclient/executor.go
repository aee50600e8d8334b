package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultMaxBodyBytes = 4 << 20 // 4MB; large oracle texts still fit

// ResponseData captures the response details and duration.
type ResponseData struct {
	Status    int
	Headers   http.Header
	BodyBytes []byte
	Truncated bool
	Duration  time.Duration
}

// Executor executes HTTP requests with timing, an optional rate limit and a
// bounded body read.
type Executor struct {
	client       *http.Client
	timeout      time.Duration
	limiter      *rate.Limiter
	maxBodyBytes int64
}

// ExecutorOption allows configuring an Executor.
type ExecutorOption func(*Executor)

// WithTimeout sets the default timeout applied to requests.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = timeout }
}

// WithClient sets a custom HTTP client.
func WithClient(client *http.Client) ExecutorOption {
	return func(e *Executor) { e.client = client }
}

// WithRateLimit allows at most perSecond requests per second with a burst of one.
// Zero or negative disables limiting.
func WithRateLimit(perSecond float64) ExecutorOption {
	return func(e *Executor) {
		if perSecond <= 0 {
			e.limiter = nil
			return
		}
		e.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithMaxBodyBytes caps how much of a response body is read.
func WithMaxBodyBytes(n int64) ExecutorOption {
	return func(e *Executor) {
		if n > 0 {
			e.maxBodyBytes = n
		}
	}
}

// NewExecutor builds an Executor with a default client and timeout.
func NewExecutor(opts ...ExecutorOption) *Executor {
	cfg := DefaultConfig()
	e := &Executor{
		client:       New(cfg),
		timeout:      cfg.Timeout,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Do waits for the rate limiter, executes the request and returns response data plus duration.
// Waiting on the limiter counts towards the duration but not towards the timeout.
func (e *Executor) Do(ctx context.Context, req *http.Request) (ResponseData, error) {
	start := time.Now()

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			// Wait fails early when the deadline cannot be met; report the context error if any.
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return ResponseData{Duration: time.Since(start)}, err
		}
	}

	ctxWithTimeout := ctx
	cancel := func() {}
	if e.timeout > 0 {
		ctxWithTimeout, cancel = context.WithTimeout(ctx, e.timeout)
	}
	defer cancel()

	resp, err := e.client.Do(req.WithContext(ctxWithTimeout))
	if err != nil {
		return ResponseData{Duration: time.Since(start)}, err
	}
	defer resp.Body.Close()

	body, truncated, err := readBounded(resp.Body, e.maxBodyBytes)
	duration := time.Since(start)
	if err != nil {
		return ResponseData{Status: resp.StatusCode, Duration: duration}, err
	}

	return ResponseData{
		Status:    resp.StatusCode,
		Headers:   resp.Header.Clone(),
		BodyBytes: body,
		Truncated: truncated,
		Duration:  duration,
	}, nil
}

func readBounded(r io.Reader, maxBytes int64) ([]byte, bool, error) {
	lim := io.LimitReader(r, maxBytes+1)
	b, err := io.ReadAll(lim)
	if err != nil {
		return nil, false, err
	}
	if int64(len(b)) > maxBytes {
		return b[:maxBytes], true, nil
	}
	return b, false, nil
}
