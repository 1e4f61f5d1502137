package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dghubble/sling"
)

const (
	UserAgent = "gridscrape/1.0 (github.com/pfrederiksen/gridscrape)"
	Timeout   = 10 * time.Second
)

// Policy controls how transient failures are retried.
type Policy struct {
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int
	// InitialInterval is the first backoff delay; subsequent delays grow
	// exponentially unless the server supplies a Retry-After hint.
	InitialInterval time.Duration
	// RetryStatuses is the set of response codes worth another attempt.
	RetryStatuses map[int]bool
	// RetryMethods limits retries to idempotent methods.
	RetryMethods map[string]bool
}

// DefaultPolicy returns the retry policy used when none is supplied:
// three retries, one-second initial backoff, the usual transient status
// codes, GET/HEAD/OPTIONS only.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:      3,
		InitialInterval: time.Second,
		RetryStatuses: map[int]bool{
			http.StatusTooManyRequests:     true,
			http.StatusInternalServerError: true,
			http.StatusBadGateway:          true,
			http.StatusServiceUnavailable:  true,
			http.StatusGatewayTimeout:      true,
		},
		RetryMethods: map[string]bool{
			http.MethodGet:     true,
			http.MethodHead:    true,
			http.MethodOptions: true,
		},
	}
}

// StatusError reports a final HTTP error status from the origin server.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.Code, e.URL)
}

// Fetcher handles fetching pages over HTTP with retry and backoff
type Fetcher struct {
	client *http.Client
	policy Policy
	agent  string
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithPolicy overrides the retry policy.
func WithPolicy(p Policy) Option {
	return func(f *Fetcher) {
		f.policy = p
	}
}

// WithUserAgent overrides the User-Agent header sent to the origin.
func WithUserAgent(agent string) Option {
	return func(f *Fetcher) {
		f.agent = agent
	}
}

// New creates a new Fetcher instance
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: Timeout,
		},
		policy: DefaultPolicy(),
		agent:  UserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch issues a GET request for url and returns the response body as text.
// Transient failures (transport errors and retryable status codes) are
// retried per the fetcher's policy before the error is surfaced; a final
// status >= 400 is returned as a *StatusError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := sling.New().Get(url).Set("User-Agent", f.agent).Request()
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	return f.do(req.WithContext(ctx))
}

// do runs the request under the retry policy and collects the body.
func (f *Fetcher) do(req *http.Request) (string, error) {
	retryable := f.policy.RetryMethods[req.Method]
	schedule := f.newBackOff()

	var body string
	attempt := func() error {
		resp, err := f.client.Do(req.Clone(req.Context()))
		if err != nil {
			err = fmt.Errorf("requesting %s: %w", req.URL, err)
			if !retryable {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			statusErr := &StatusError{URL: req.URL.String(), Code: resp.StatusCode}
			if retryable && f.policy.RetryStatuses[resp.StatusCode] {
				io.Copy(io.Discard, resp.Body)
				schedule.hint = retryAfter(resp)
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading %s: %w", req.URL, err)
		}
		body = string(data)
		return nil
	}

	if err := backoff.Retry(attempt, backoff.WithContext(schedule, req.Context())); err != nil {
		return "", err
	}
	return body, nil
}

// newBackOff builds the bounded exponential schedule for one request.
func (f *Fetcher) newBackOff() *hintedBackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = f.policy.InitialInterval
	return &hintedBackOff{
		BackOff: backoff.WithMaxRetries(exp, uint64(f.policy.MaxRetries)),
	}
}

// hintedBackOff overrides the next computed interval with a server-supplied
// Retry-After delay when one was present on the last retryable response.
type hintedBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func (b *hintedBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if b.hint > 0 && next != backoff.Stop {
		next = b.hint
	}
	b.hint = 0
	return next
}

// retryAfter parses a Retry-After header, either delay seconds or an
// HTTP-date. Returns 0 when the header is absent or unusable.
func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
