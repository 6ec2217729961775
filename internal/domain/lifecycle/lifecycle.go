// Package lifecycle holds shared bounds for start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single start or stop step such as a database ping
// or a graceful server shutdown.
const DefaultTimeout = 10 * time.Second
