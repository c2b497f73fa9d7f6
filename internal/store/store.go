// Package store holds the optional PostgreSQL connection used for readiness
// checks. Nothing is persisted: the service keeps no data of its own.
package store

import "context"

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
