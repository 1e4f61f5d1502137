// Package diag provides leveled diagnostic output for gridscrape.
//
// Diagnostics are single lines written to the error stream with a severity
// prefix ([debug], [info], [warn], [error]) so they never mix with the
// rendered grid on stdout. The package keeps a swappable default logger so
// the CLI can redirect output and raise verbosity in one place.
package diag
