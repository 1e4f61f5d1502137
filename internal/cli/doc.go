// Package cli implements the command-line interface for gridscrape.
//
// The cli package provides the Cobra-based CLI that fetches one HTML page,
// extracts its table rows, and renders the parsed coordinate grid to stdout.
// It coordinates the fetch, rows, and grid packages, routes diagnostics to
// the error stream, and maps failures to process exit codes.
package cli
