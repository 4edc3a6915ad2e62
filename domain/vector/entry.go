// Package vector provides vector index domain types. The index is
// best-effort: a catalog row may exist with no corresponding entry.
package vector

// Entry represents one indexed document, keyed by the catalog row id.
type Entry struct {
	id        string
	embedding []float32
	metadata  map[string]string
	document  string
}

// NewEntry creates a new Entry.
func NewEntry(id string, embedding []float32, metadata map[string]string, document string) Entry {
	emb := make([]float32, len(embedding))
	copy(emb, embedding)

	md := make(map[string]string, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}

	return Entry{
		id:        id,
		embedding: emb,
		metadata:  md,
		document:  document,
	}
}

// ID returns the entry id (the catalog row id, as string).
func (e Entry) ID() string { return e.id }

// Embedding returns the embedding vector.
func (e Entry) Embedding() []float32 {
	emb := make([]float32, len(e.embedding))
	copy(emb, e.embedding)
	return emb
}

// Metadata returns the metadata map.
func (e Entry) Metadata() map[string]string {
	md := make(map[string]string, len(e.metadata))
	for k, v := range e.metadata {
		md[k] = v
	}
	return md
}

// Document returns the source text the embedding was produced from.
func (e Entry) Document() string { return e.document }
