package health

import "context"

// StoreChecker reports whether the item store finished loading.
type StoreChecker interface {
	Loaded() bool
}

// PersistencePinger checks snapshot backend availability.
type PersistencePinger interface {
	Ping(ctx context.Context) error
}
