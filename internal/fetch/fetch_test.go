package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// testPolicy keeps retry delays out of the test runtime.
func testPolicy(retries int) Policy {
	p := DefaultPolicy()
	p.MaxRetries = retries
	p.InitialInterval = time.Millisecond
	return p
}

func TestFetchSuccess(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := New(WithPolicy(testPolicy(0)))
	body, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if body != "<html>ok</html>" {
		t.Errorf("unexpected body: %q", body)
	}
	if agent != UserAgent {
		t.Errorf("User-Agent = %q, expected %q", agent, UserAgent)
	}
}

func TestFetchRetriesTransientStatus(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := New(WithPolicy(testPolicy(3)))
	body, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if body != "ok" {
		t.Errorf("unexpected body: %q", body)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestFetchPermanentStatusNotRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(WithPolicy(testPolicy(3)))
	_, err := f.Fetch(context.Background(), srv.URL)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected a StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", statusErr.Code)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("expected 1 attempt for a non-retryable status, got %d", got)
	}
}

func TestFetchExhaustsRetries(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := New(WithPolicy(testPolicy(2)))
	_, err := f.Fetch(context.Background(), srv.URL)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected a StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", statusErr.Code)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("expected 3 attempts (1 + 2 retries), got %d", got)
	}
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := New(WithPolicy(testPolicy(1)))
	_, err := f.Fetch(context.Background(), url)
	if err == nil {
		t.Fatal("expected a network error")
	}
	if !strings.Contains(err.Error(), "requesting") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"absent", "", 0},
		{"seconds", "3", 3 * time.Second},
		{"zero seconds", "0", 0},
		{"garbage", "soon", 0},
		{"negative", "-5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			if tt.header != "" {
				resp.Header.Set("Retry-After", tt.header)
			}
			if got := retryAfter(resp); got != tt.want {
				t.Errorf("retryAfter(%q) = %v, expected %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestRetryAfterHTTPDate(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", time.Now().Add(2*time.Second).UTC().Format(http.TimeFormat))

	got := retryAfter(resp)
	if got <= 0 || got > 2*time.Second {
		t.Errorf("retryAfter(http-date) = %v, expected a delay up to 2s", got)
	}
}

func TestHintedBackOffPrefersServerHint(t *testing.T) {
	b := &hintedBackOff{BackOff: backoff.NewConstantBackOff(5 * time.Millisecond)}

	b.hint = 50 * time.Millisecond
	if got := b.NextBackOff(); got != 50*time.Millisecond {
		t.Errorf("expected the server hint to win, got %v", got)
	}

	// The hint applies once; the schedule resumes afterwards.
	if got := b.NextBackOff(); got != 5*time.Millisecond {
		t.Errorf("expected the schedule interval, got %v", got)
	}
}
