// Package noodle provides a uniform Create/Read/Update/Delete abstraction
// over heterogeneous storage backends.
//
// A BackingStorage is a long-lived handle to a storage medium (a SQL
// database, an object-store bucket). Entities persist through binding types
// that implement the capability interfaces below for one (entity, storage)
// pair. SQL bindings are generated by cmd/noodlegen; the object-store binding
// lives in object/s3.
//
// Every capability distinguishes three outcomes:
//
//	v, true, nil   // the record exists
//	_, false, nil  // the record does not exist
//	_, false, err  // the backend failed
//
// Absence is never reported as an error.
package noodle

import "context"

// BackingStorage is a storage medium whose records are identified by raw
// identifiers of type R.
type BackingStorage[R comparable] interface {
	// Name identifies the medium in errors and logs.
	Name() string
	// ParseRawID decodes the textual form of a raw identifier.
	ParseRawID(s string) (R, error)
}

// Creator stores new entities.
type Creator[E any, S BackingStorage[R], R comparable] interface {
	// Create stores entity and returns the identifier the storage assigned.
	Create(ctx context.Context, storage S, entity E) (AssocID[E, R], error)
}

// Reader loads entities.
type Reader[E any, S BackingStorage[R], R comparable] interface {
	// Read returns the entity stored under id, or false if there is none.
	Read(ctx context.Context, storage S, id AssocID[E, R]) (E, bool, error)
}

// Updater replaces entities.
type Updater[E any, S BackingStorage[R], R comparable] interface {
	// Update replaces the entity stored under id. It reports false, and
	// writes nothing, if there is no such entity.
	Update(ctx context.Context, storage S, id AssocID[E, R], entity E) (bool, error)
}

// Deleter removes entities.
type Deleter[E any, S BackingStorage[R], R comparable] interface {
	// Delete removes the entity stored under id. It reports false if there
	// was no such entity.
	Delete(ctx context.Context, storage S, id AssocID[E, R]) (bool, error)
}

// CRUD groups all four capabilities.
type CRUD[E any, S BackingStorage[R], R comparable] interface {
	Creator[E, S, R]
	Reader[E, S, R]
	Updater[E, S, R]
	Deleter[E, S, R]
}
