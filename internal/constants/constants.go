// Package constants provides centralized constant definitions for the sample
// application. Magic numbers, strings and configuration defaults live here so
// the bootstrap, the analytics client and the screen agree on them.
//
// The constants are organized into logical categories:
//   - time.go: flush intervals, timeouts and backoff durations
//   - limits.go: queue sizes, retry attempts and attribute limits
//   - paths.go: configuration directory and file names
//   - ui.go: screen labels, dimensions and messages
//   - colors.go: terminal color codes
//   - api.go: data-plane and control-plane endpoints
//   - http.go: HTTP status codes
//   - errors.go: error messages
package constants
