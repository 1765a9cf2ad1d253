// Package cli turns command-line arguments into an app.Config. It owns the
// cobra command, the mapping of positional `path/key=value` arguments to
// parameter overrides and the exit codes for usage errors.
package cli
