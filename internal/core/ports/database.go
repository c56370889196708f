package ports

import "context"

// DatabaseProbe is the part of the Postgres adapter that the health
// endpoints depend on.
type DatabaseProbe interface {
	Ping(ctx context.Context) error
	// Health reports pool statistics and the applied migration version.
	Health(ctx context.Context) map[string]interface{}
}
