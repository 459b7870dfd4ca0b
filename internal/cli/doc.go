// Package cli turns the pulsartime command line into an app.Config. It owns
// flag definitions, usage text, input validation and the ExitError that
// carries a process exit code back to main.
package cli
