// Package delivery holds the transports that expose the blog usecases.
package delivery

import "context"

// Delivery is a long-running transport started by the application.
type Delivery interface {
	// Serve blocks until the transport stops. A graceful stop returns nil.
	Serve(ctx context.Context) error
}
