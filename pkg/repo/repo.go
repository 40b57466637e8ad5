// Package repo provides a generic Neo4j-backed node repository.
package repo

import "context"

// Repository is the persistence surface a node store needs: read one
// entity by ID, and write one idempotently.
type Repository[T any, ID comparable] interface {
	Get(ctx context.Context, id ID) (T, error)
	// Upsert creates the entity or updates it in place when one with
	// the same ID already exists.
	Upsert(ctx context.Context, entity T) (T, error)
}
