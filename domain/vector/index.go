package vector

import "context"

// Index provides upsert access to the similarity index. Upserting an id
// that already exists replaces the prior entry.
type Index interface {
	Upsert(ctx context.Context, entry Entry) error
}
