// Package fetch provides HTTP fetching with retry and backoff for gridscrape.
//
// The fetcher issues GET requests with a fixed timeout, identifies itself to
// the origin server, and retries transient failures (transport errors and the
// usual 429/5xx statuses) on an exponential schedule, honoring Retry-After
// hints from the server. Retries apply only to idempotent methods.
package fetch
