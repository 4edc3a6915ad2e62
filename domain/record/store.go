package record

import "context"

// Store provides read and patch access to the external record store.
// Implementations must tolerate optional or absent sub-fields in the
// store's property bags without raising.
type Store interface {
	// List returns the full current set of candidate records, in the order
	// the store returns them. The order is not guaranteed stable.
	List(ctx context.Context) ([]Record, error)

	// Patch applies a partial field update to the record with the given id.
	Patch(ctx context.Context, id string, patch Patch) error
}
