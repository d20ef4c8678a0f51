// Package cli parses command-line arguments into an app.Config and defines
// the error type carrying process exit codes.
package cli
