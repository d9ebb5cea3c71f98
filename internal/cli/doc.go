// Package cli wires the tableau commands together: it parses flags and the
// optional config file, sets up logging, runs the prover and maps failures
// onto process exit codes.
package cli
